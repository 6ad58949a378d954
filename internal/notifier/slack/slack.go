package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/beeropen/scramble/internal/leaderboard"
	"github.com/beeropen/scramble/internal/metrics"
	"github.com/beeropen/scramble/internal/notifier"
)

// slackClient is an interface that contains the methods from the slack.Client
// that we use. This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client
// instance. Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// SendFinalizeNotification announces a team turning in its card.
func (s *Notifier) SendFinalizeNotification(row leaderboard.Row, dryRun bool) error {
	return s.sendMessage(s.formatFinalizeNotification(row), dryRun)
}

// SendUnlockNotification announces a card being reopened for corrections.
func (s *Notifier) SendUnlockNotification(teamName string, dryRun bool) error {
	return s.sendMessage(s.formatUnlockNotification(teamName), dryRun)
}

// SendLeaderboard posts the current standings.
func (s *Notifier) SendLeaderboard(eventName string, rows []leaderboard.Row, dryRun bool) error {
	return s.sendMessage(s.formatLeaderboard(eventName, rows), dryRun)
}

// formatFinalizeNotification creates the Slack message for a turned-in card
// using Block Kit.
func (s *Notifier) formatFinalizeNotification(row leaderboard.Row) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Card in! ⛳", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s has turned in their scorecard.", row.TeamName)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	if row.Total != nil {
		scoreText := fmt.Sprintf("Total: %d", *row.Total)
		if row.ToParDisplay != "" {
			scoreText += fmt.Sprintf(" (%s)", row.ToParDisplay)
		}
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("plain_text", scoreText, false, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatUnlockNotification creates the Slack message for a reopened card.
func (s *Notifier) formatUnlockNotification(teamName string) slack.Message {
	text := fmt.Sprintf("%s's scorecard has been reopened for corrections.", teamName)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil),
	)
}

// formatLeaderboard creates a Slack message to display the standings.
func (s *Notifier) formatLeaderboard(eventName string, rows []leaderboard.Row) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s Leaderboard 🏆", eventName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No teams yet. Go hit some balls!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, row := range rows {
		rank := row.Rank
		if rank == "" {
			rank = "-"
		}
		score := "no scores yet"
		if row.Total != nil {
			score = fmt.Sprintf("%d", *row.Total)
			if row.ToParDisplay != "" {
				score += fmt.Sprintf(" (%s)", row.ToParDisplay)
			}
			score += fmt.Sprintf(" thru %d", row.HolesEntered)
		}
		status := ""
		if row.Final {
			status = " ✅"
		}

		rowText := fmt.Sprintf("%s. %s%s\n> %s", rank, row.TeamName, status, score)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", rowText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}
