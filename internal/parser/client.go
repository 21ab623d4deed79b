// Package parser turns natural-language schedule text into an event time and
// title using Groq's OpenAI-compatible chat completion API.
package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// User-facing failure messages. Handlers surface these verbatim.
const (
	msgServiceUnavailable = "AI 服務暫時無法使用\n請稍後再試"
	msgBadResponse        = "AI 回應格式錯誤\n請重新輸入"
	msgPastTime           = "這個時間已經過去了\n請設定未來的時間"

	retryExamples = "\n\n試試這樣說：\n• 明天早上9點開會\n• 後天下午2點聚餐\n• 1月20日晚上7點運動"

	defaultTitle = "待辦事項"
)

var weekdayNames = [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// ParseError carries the zh-TW message shown to the user when parsing fails.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string { return e.Message }
func (e *ParseError) Unwrap() error { return e.Err }

// Result is a successfully parsed schedule request.
type Result struct {
	EventTime time.Time
	Title     string
}

type Client struct {
	client *openai.Client
	model  string
	loc    *time.Location
}

func New(apiKey, baseURL, model string, loc *time.Location) *Client {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
		loc:    loc,
	}
}

const systemPromptTemplate = `你是行程助手，負責解析使用者輸入的行程安排。

【當前時間】
%s (%s)

【解析規則】
1. 時間關鍵字：
   - 明天 = 明天同時間
   - 後天 = 後天同時間
   - 大後天 = 大後天同時間
   - 下星期X = 下週的星期X
   - 這週X = 本週的星期X

2. 時段對應：
   - 早上/早晨 = 07:00
   - 上午 = 09:00
   - 中午 = 12:00
   - 下午 = 14:00
   - 傍晚 = 17:00
   - 晚上 = 19:00
   - 深夜 = 22:00

3. 如果只說時間沒說日期：
   - 時間已過 → 設為明天
   - 時間未過 → 設為今天

4. 行程標題：
   - 簡潔明確
   - 移除無關字詞

成功時輸出：
{"success": true, "datetime": "YYYY-MM-DD HH:MM", "title": "行程標題"}

失敗時輸出：
{"success": false, "error": "原因"}`

func (c *Client) systemPrompt(now time.Time) string {
	return fmt.Sprintf(systemPromptTemplate,
		now.Format("2006-01-02 15:04"), weekdayNames[now.Weekday()])
}

var scheduleSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"success": {
			"type": "boolean",
			"description": "Whether the text could be parsed into a schedule"
		},
		"datetime": {
			"type": "string",
			"description": "Event time as YYYY-MM-DD HH:MM, required when success is true"
		},
		"title": {
			"type": "string",
			"description": "Short schedule title"
		},
		"error": {
			"type": "string",
			"description": "Reason the text could not be parsed, when success is false"
		}
	},
	"required": ["success"],
	"additionalProperties": false
}`)

// Parse asks the model to interpret text relative to now. It rejects times
// that are not strictly in the future; every failure is a *ParseError whose
// Message is safe to show the user.
func (c *Client) Parse(ctx context.Context, text string, now time.Time) (*Result, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: c.systemPrompt(now.In(c.loc)),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "schedule",
				Schema: scheduleSchema,
				Strict: true,
			},
		},
		Temperature: 0.1,
		MaxTokens:   300,
	})
	if err != nil {
		return nil, &ParseError{Message: msgServiceUnavailable, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ParseError{Message: msgServiceUnavailable}
	}

	return c.decode(resp.Choices[0].Message.Content, now)
}

// Accepted layouts for the model's datetime field.
var datetimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04",
}

// decode extracts the JSON object from the model output, tolerating code
// fences and surrounding chatter, and validates the parsed schedule.
func (c *Client) decode(content string, now time.Time) (*Result, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, &ParseError{Message: msgBadResponse}
	}

	var raw struct {
		Success  bool   `json:"success"`
		Datetime string `json:"datetime"`
		Title    string `json:"title"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, &ParseError{Message: msgBadResponse, Err: err}
	}

	if !raw.Success {
		reason := raw.Error
		if reason == "" {
			reason = "無法理解時間格式"
		}
		return nil, &ParseError{Message: reason + retryExamples}
	}

	var eventTime time.Time
	parsed := false
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, raw.Datetime, c.loc); err == nil {
			eventTime = t
			parsed = true
			break
		}
	}
	if !parsed {
		return nil, &ParseError{Message: msgBadResponse}
	}

	if !eventTime.After(now) {
		return nil, &ParseError{Message: msgPastTime}
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = defaultTitle
	}

	return &Result{EventTime: eventTime, Title: title}, nil
}
