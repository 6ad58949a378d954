package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var teamID string

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(scorecardCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(announceCmd)
	rootCmd.AddCommand(metricsCmd)

	for _, c := range []*cobra.Command{scorecardCmd, finalizeCmd, unlockCmd} {
		c.Flags().StringVar(&teamID, "team", "", "The team ID")
		c.MarkFlagRequired("team")
	}
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/health", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/players", nil)
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams with their members",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/teams", nil)
	},
}

var scorecardCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "Show a team's scorecard for the event date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/scorecard", url.Values{"team_id": {teamID}})
	},
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Turn in a team's scorecard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/scorecard/finalize", url.Values{"team_id": {teamID}})
	},
}

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Reopen a finalized scorecard (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/scorecard/unlock", url.Values{"team_id": {teamID}})
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the current standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/leaderboard", nil)
	},
}

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Post the standings to Slack (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/leaderboard/announce", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/metrics", nil)
	},
}

func performRequest(method, endpoint string, params url.Values) error {
	target := host + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if actor != "" {
		req.Header.Set("X-Actor-ID", actor)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
