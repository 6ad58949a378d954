package slack

import (
	"context"
	"errors"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeropen/scramble/internal/leaderboard"
	"github.com/beeropen/scramble/internal/metrics"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func intPtr(n int) *int { return &n }

func TestSendMessage_DryRun(t *testing.T) {
	m := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	n := NewNotifierWithAPI(nil, "C123", m)

	err := n.sendMessage(slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, m.SlackSentCount)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	err := n.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, m.SlackSentCount)
	assert.Equal(t, 0, m.SlackFailedCount)
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, m.SlackSentCount)
	assert.Equal(t, 1, m.SlackFailedCount)
}

func TestSendFinalizeNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	row := leaderboard.Row{TeamName: "Eagles", Total: intPtr(68), ToParDisplay: "-4"}
	require.NoError(t, n.SendFinalizeNotification(row, false))
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendFinalizeNotification")
}

func TestFormatFinalizeNotification(t *testing.T) {
	n := &Notifier{channelID: "C123"}

	msg := n.formatFinalizeNotification(leaderboard.Row{TeamName: "Eagles", Total: intPtr(68), ToParDisplay: "-4"})
	require.Len(t, msg.Blocks.BlockSet, 3)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "Card in! ⛳", header.Text.Text)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Second block should be a SectionBlock")
	assert.Equal(t, "Eagles has turned in their scorecard.", details.Text.Text)

	contextBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok, "Third block should be a ContextBlock")
	require.Len(t, contextBlock.ContextElements.Elements, 1)
	scoreElement, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Total: 68 (-4)", scoreElement.Text)

	// Without a total there is no score context block.
	msg = n.formatFinalizeNotification(leaderboard.Row{TeamName: "Eagles"})
	require.Len(t, msg.Blocks.BlockSet, 2)
}

func TestFormatLeaderboard(t *testing.T) {
	n := &Notifier{channelID: "C123"}

	t.Run("displays standings", func(t *testing.T) {
		rows := []leaderboard.Row{
			{TeamName: "Eagles", Rank: "T-1", Total: intPtr(68), ToParDisplay: "-4", HolesEntered: 18, Final: true},
			{TeamName: "Birdies", Rank: "T-1", Total: intPtr(68), ToParDisplay: "-4", HolesEntered: 18},
			{TeamName: "Idle"},
		}

		msg := n.formatLeaderboard("Beer Open", rows)
		require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks (header + 3 teams)")

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🏆 Beer Open Leaderboard 🏆", header.Text.Text)

		first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, first.Text.Text, "T-1. Eagles ✅")
		assert.Contains(t, first.Text.Text, "> 68 (-4) thru 18")

		idle, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, idle.Text.Text, "-. Idle")
		assert.Contains(t, idle.Text.Text, "no scores yet")
	})

	t.Run("displays message when no teams exist", func(t *testing.T) {
		msg := n.formatLeaderboard("Beer Open", nil)
		require.Len(t, msg.Blocks.BlockSet, 2, "Expected 2 blocks (header + message)")

		message, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "No teams yet. Go hit some balls!", message.Text.Text)
	})
}

func TestFormatUnlockNotification(t *testing.T) {
	n := &Notifier{channelID: "C123"}

	msg := n.formatUnlockNotification("Eagles")
	require.Len(t, msg.Blocks.BlockSet, 1)

	section, ok := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Eagles's scorecard has been reopened for corrections.", section.Text.Text)
}
