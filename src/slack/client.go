// Package slack wraps the Slack Web API calls used by the tool handlers.
package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"slackwatch-agent/src/parse"
)

// Client is a thin wrapper around the Slack Web API client.
type Client struct {
	api *slack.Client
}

// NewClient creates a Slack client authenticated with the given bot token.
func NewClient(botToken string) *Client {
	return &Client{api: slack.New(botToken)}
}

// History fetches the most recent messages in a channel, newest first.
func (c *Client) History(ctx context.Context, channelID string, limit int) ([]parse.Message, error) {
	resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel history: %w", translateError(err))
	}

	messages := make([]parse.Message, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		messages = append(messages, convertMessage(msg))
	}
	return messages, nil
}

// SearchMatch is a single full-text search hit.
type SearchMatch struct {
	Channel   string `json:"channel"`
	User      string `json:"user,omitempty"`
	Username  string `json:"username,omitempty"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
	Permalink string `json:"permalink,omitempty"`
}

// SearchResult holds one page of search hits plus the total match count.
type SearchResult struct {
	Total   int           `json:"total"`
	Matches []SearchMatch `json:"matches"`
}

// Search runs a full-text message search, newest matches first.
func (c *Client) Search(ctx context.Context, query string, count int) (*SearchResult, error) {
	params := slack.NewSearchParameters()
	params.Count = count
	params.Sort = "timestamp"
	params.SortDirection = "desc"

	resp, err := c.api.SearchMessagesContext(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", translateError(err))
	}

	matches := make([]SearchMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, SearchMatch{
			Channel:   m.Channel.Name,
			User:      m.User,
			Username:  m.Username,
			Timestamp: parse.FormatTimestamp(m.Timestamp),
			Text:      parse.Truncate(m.Text, parse.MaxTextLen),
			Permalink: m.Permalink,
		})
	}
	return &SearchResult{Total: resp.Total, Matches: matches}, nil
}

// PostReceipt describes a successfully posted message.
type PostReceipt struct {
	OK        bool   `json:"ok"`
	Channel   string `json:"channel"`
	Timestamp string `json:"timestamp"`
}

// Post sends a plain-text message to a channel.
func (c *Client) Post(ctx context.Context, channelID, text string) (*PostReceipt, error) {
	respChannel, ts, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return nil, fmt.Errorf("failed to post message: %w", translateError(err))
	}
	return &PostReceipt{OK: true, Channel: respChannel, Timestamp: ts}, nil
}

// ChannelInfo summarizes one channel for the list_channels tool.
type ChannelInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsPrivate  bool   `json:"is_private,omitempty"`
	NumMembers int    `json:"num_members"`
	Topic      string `json:"topic,omitempty"`
}

// ListChannels returns up to limit non-archived channels the bot can see.
func (c *Client) ListChannels(ctx context.Context, limit int) ([]ChannelInfo, error) {
	channels, _, err := c.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
		Types:           []string{"public_channel", "private_channel"},
		Limit:           limit,
		ExcludeArchived: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", translateError(err))
	}

	infos := make([]ChannelInfo, 0, len(channels))
	for _, ch := range channels {
		infos = append(infos, ChannelInfo{
			ID:         ch.ID,
			Name:       ch.Name,
			IsPrivate:  ch.IsPrivate,
			NumMembers: ch.NumMembers,
			Topic:      ch.Topic.Value,
		})
	}
	return infos, nil
}

// convertMessage maps an API message onto the parser's input record.
func convertMessage(msg slack.Message) parse.Message {
	var attachments []parse.Attachment
	for _, a := range msg.Attachments {
		attachments = append(attachments, parse.Attachment{
			Title: a.Title,
			Text:  a.Text,
			Color: a.Color,
		})
	}
	return parse.Message{
		Timestamp:   msg.Timestamp,
		Text:        msg.Text,
		User:        msg.User,
		Attachments: attachments,
	}
}

// translateError maps known Slack API error codes onto human-readable
// messages; anything unrecognized passes through unchanged.
func translateError(err error) error {
	if strings.Contains(err.Error(), "missing_scope") {
		return fmt.Errorf("bot token is missing a required OAuth scope (%v); grant channels:history, search:read, chat:write and channels:read", err)
	}
	return err
}
