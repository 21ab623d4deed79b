package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testClient(t *testing.T) *Client {
	t.Helper()
	return New("test-key", "https://api.groq.com/openai/v1", "llama-3.3-70b-versatile", time.UTC)
}

func TestDecodeSuccess(t *testing.T) {
	c := testClient(t)

	result, err := c.decode(`{"success": true, "datetime": "2026-03-15 09:00", "title": "團隊會議"}`, now)
	require.NoError(t, err)
	require.Equal(t, "團隊會議", result.Title)
	require.Equal(t, time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), result.EventTime)
}

func TestDecodeDatetimeLayouts(t *testing.T) {
	c := testClient(t)

	tests := []struct {
		name     string
		datetime string
	}{
		{"dashes", "2026-03-15 09:00"},
		{"with seconds", "2026-03-15 09:00:30"},
		{"slashes", "2026/03/15 09:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := c.decode(`{"success": true, "datetime": "`+tc.datetime+`", "title": "x"}`, now)
			require.NoError(t, err)
			require.Equal(t, 2026, result.EventTime.Year())
			require.Equal(t, 9, result.EventTime.Hour())
		})
	}
}

func TestDecodeStripsCodeFence(t *testing.T) {
	c := testClient(t)

	content := "```json\n{\"success\": true, \"datetime\": \"2026-03-15 09:00\", \"title\": \"開會\"}\n```"
	result, err := c.decode(content, now)
	require.NoError(t, err)
	require.Equal(t, "開會", result.Title)
}

func TestDecodeUsesConfiguredLocation(t *testing.T) {
	taipei, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)
	c := New("test-key", "https://api.groq.com/openai/v1", "llama-3.3-70b-versatile", taipei)

	result, err := c.decode(`{"success": true, "datetime": "2026-03-15 09:00", "title": "x"}`, now)
	require.NoError(t, err)
	require.Equal(t, taipei, result.EventTime.Location())
	require.Equal(t, 9, result.EventTime.Hour())
}

func TestDecodeRejectsPastTime(t *testing.T) {
	c := testClient(t)

	tests := []string{"2026-03-14 11:00", "2026-03-14 12:00", "2020-01-01 00:00"}
	for _, datetime := range tests {
		_, err := c.decode(`{"success": true, "datetime": "`+datetime+`", "title": "x"}`, now)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		require.Equal(t, msgPastTime, perr.Message)
	}
}

func TestDecodeDefaultsEmptyTitle(t *testing.T) {
	c := testClient(t)

	result, err := c.decode(`{"success": true, "datetime": "2026-03-15 09:00", "title": "  "}`, now)
	require.NoError(t, err)
	require.Equal(t, defaultTitle, result.Title)
}

func TestDecodeFailurePassthrough(t *testing.T) {
	c := testClient(t)

	_, err := c.decode(`{"success": false, "error": "無法理解時間"}`, now)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Contains(t, perr.Message, "無法理解時間")
	require.Contains(t, perr.Message, "試試這樣說")
}

func TestDecodeMalformedResponses(t *testing.T) {
	c := testClient(t)

	tests := []struct {
		name    string
		content string
	}{
		{"no json at all", "抱歉，我無法解析"},
		{"broken json", `{"success": true,`},
		{"bad datetime", `{"success": true, "datetime": "明天", "title": "x"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.decode(tc.content, now)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			require.Equal(t, msgBadResponse, perr.Message)
		})
	}
}
