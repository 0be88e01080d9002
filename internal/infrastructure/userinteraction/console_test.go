package userinteraction

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"robocon-bot/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedHandler struct {
	got []entity.InboundMessage
}

func (h *scriptedHandler) Handle(_ context.Context, msg entity.InboundMessage) string {
	h.got = append(h.got, msg)
	if msg.Text == "/noop" {
		return ""
	}
	return "reply to " + msg.Text
}

func TestRun_RelaysEachLine(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleUserInteractionWith(strings.NewReader("Who is Ada?\n/noop\n  Where is Paris?  \n"), &out)
	handler := &scriptedHandler{}

	err := console.Run(context.Background(), handler)

	require.NoError(t, err)
	require.Len(t, handler.got, 3)
	assert.Equal(t, "Who is Ada?", handler.got[0].Text)
	assert.Equal(t, "Where is Paris?", handler.got[2].Text)
	assert.Contains(t, out.String(), "reply to Who is Ada?")
	assert.Contains(t, out.String(), "reply to Where is Paris?")
	assert.NotContains(t, out.String(), "reply to /noop")
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, release := newBlockingReader()
	t.Cleanup(release)
	err := NewConsoleUserInteractionWith(r, &bytes.Buffer{}).Run(ctx, &scriptedHandler{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestShowTool(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleUserInteractionWith(strings.NewReader(""), &out)

	console.ShowToolStart(context.Background(), "get_place_info", `{"place":"Springfield"}`)
	console.ShowToolResult(context.Background(), "get_place_info", "Place: Springfield\nA town.", false)
	console.ShowToolResult(context.Background(), "get_team_info", "Error: timeout", true)

	text := out.String()
	assert.Contains(t, text, "Place lookup")
	assert.Contains(t, text, "place=Springfield")
	assert.Contains(t, text, "✓ Place: Springfield")
	assert.NotContains(t, text, "A town.")
	assert.Contains(t, text, "Error: timeout")
}

func TestFormatToolArguments(t *testing.T) {
	assert.Equal(t, "a=1, b=x", formatToolArguments(`{"b":"x","a":1}`))
	assert.Empty(t, formatToolArguments("not json"))
	assert.Empty(t, formatToolArguments("{}"))
}

func TestGetToolDisplay_Unknown(t *testing.T) {
	icon, name := getToolDisplay("get_weather")
	assert.Equal(t, "🔧", icon)
	assert.Equal(t, "get_weather", name)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "é...", truncate("éé", 1))
}

func newBlockingReader() (*blockingReader, func()) {
	r := &blockingReader{done: make(chan struct{})}
	return r, func() { close(r.done) }
}

type blockingReader struct {
	done chan struct{}
}

func (r *blockingReader) Read([]byte) (int, error) {
	<-r.done
	return 0, io.EOF
}
