// Package mcp exposes the Slack build-status tools over the Model Context
// Protocol. Every tool invocation returns a uniform envelope: serialized
// JSON on success, or the same shape with the error flag set.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"slackwatch-agent/src/config"
	"slackwatch-agent/src/logger"
	"slackwatch-agent/src/parse"
	"slackwatch-agent/src/pipeline"
	slackclient "slackwatch-agent/src/slack"
)

const (
	defaultMessageLimit = 10
	maxMessageLimit     = 100
	defaultSearchLimit  = 10
	maxSearchLimit      = 100
	defaultChannelLimit = 50
	maxChannelLimit     = 200
)

// Messenger is the subset of the Slack client the tool handlers call.
type Messenger interface {
	pipeline.Source
	Search(ctx context.Context, query string, count int) (*slackclient.SearchResult, error)
	Post(ctx context.Context, channelID, text string) (*slackclient.PostReceipt, error)
	ListChannels(ctx context.Context, limit int) ([]slackclient.ChannelInfo, error)
}

// Server is the MCP server for slackwatch.
type Server struct {
	mcpServer      *server.MCPServer
	slack          Messenger
	defaultChannel string
	log            logger.Logger
}

// NewServer wires the tool catalogue against a Slack client.
func NewServer(client Messenger, cfg *config.Config, log logger.Logger) *Server {
	s := server.NewMCPServer(
		"slackwatch",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	srv := &Server{
		mcpServer:      s,
		slack:          client,
		defaultChannel: cfg.DefaultChannel,
		log:            log,
	}
	srv.registerTools()

	return srv
}

// registerTools registers all available tools.
func (s *Server) registerTools() {
	checkBuildTool := mcp.NewTool("check_build_status",
		mcp.WithDescription("Check recent CI build notifications in a Slack channel. Each message is parsed for build status (succeeded/failed/running/cancelled), workflow name, and duration."),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max builds to return (default: %d, max: %d)", pipeline.DefaultLimit, pipeline.MaxLimit)),
			mcp.DefaultNumber(pipeline.DefaultLimit),
			mcp.Max(pipeline.MaxLimit),
		),
		mcp.WithString("workflow",
			mcp.Description("Only return builds mentioning this workflow name (substring match)"),
		),
		mcp.WithString("channel_id",
			mcp.Description("Channel to check (defaults to the configured channel)"),
		),
	)

	messagesTool := mcp.NewTool("get_channel_messages",
		mcp.WithDescription("Fetch recent messages from a Slack channel without build interpretation."),
		mcp.WithString("channel_id",
			mcp.Description("Channel to read (defaults to the configured channel)"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max messages to return (default: %d, max: %d)", defaultMessageLimit, maxMessageLimit)),
			mcp.DefaultNumber(defaultMessageLimit),
			mcp.Max(maxMessageLimit),
		),
	)

	searchTool := mcp.NewTool("search_messages",
		mcp.WithDescription("Full-text search across messages the bot can see."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max matches to return (default: %d)", defaultSearchLimit)),
			mcp.DefaultNumber(defaultSearchLimit),
		),
	)

	sendTool := mcp.NewTool("send_message",
		mcp.WithDescription("Post a plain-text message to a Slack channel."),
		mcp.WithString("channel_id",
			mcp.Description("Channel to post to (defaults to the configured channel)"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Message text"),
		),
	)

	channelsTool := mcp.NewTool("list_channels",
		mcp.WithDescription("List channels the bot can see."),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max channels to return (default: %d, max: %d)", defaultChannelLimit, maxChannelLimit)),
			mcp.DefaultNumber(defaultChannelLimit),
			mcp.Max(maxChannelLimit),
		),
	)

	s.mcpServer.AddTool(checkBuildTool, s.handleCheckBuildStatus)
	s.mcpServer.AddTool(messagesTool, s.handleGetChannelMessages)
	s.mcpServer.AddTool(searchTool, s.handleSearchMessages)
	s.mcpServer.AddTool(sendTool, s.handleSendMessage)
	s.mcpServer.AddTool(channelsTool, s.handleListChannels)
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// handleCheckBuildStatus handles the check_build_status tool call.
func (s *Server) handleCheckBuildStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	channelID, result := s.resolveChannel(request)
	if result != nil {
		return result, nil
	}

	opts := pipeline.Options{
		Limit:    request.GetInt("limit", pipeline.DefaultLimit),
		Workflow: request.GetString("workflow", ""),
	}

	builds, err := pipeline.Recent(ctx, s.slack, channelID, opts)
	if err != nil {
		s.log.Error("check_build_status failed: %v", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to check build status: %v", err)), nil
	}

	return jsonResult(struct {
		Channel string              `json:"channel"`
		Count   int                 `json:"count"`
		Builds  []parse.ParsedBuild `json:"builds"`
	}{channelID, len(builds), builds})
}

// channelMessage is the normalized shape returned by get_channel_messages.
type channelMessage struct {
	Timestamp   string                   `json:"timestamp"`
	User        string                   `json:"user,omitempty"`
	Text        string                   `json:"text"`
	Attachments []parse.ParsedAttachment `json:"attachments,omitempty"`
}

// handleGetChannelMessages handles the get_channel_messages tool call.
func (s *Server) handleGetChannelMessages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	channelID, result := s.resolveChannel(request)
	if result != nil {
		return result, nil
	}

	limit := clampLimit(request.GetInt("limit", defaultMessageLimit), defaultMessageLimit, maxMessageLimit)

	messages, err := s.slack.History(ctx, channelID, limit)
	if err != nil {
		s.log.Error("get_channel_messages failed: %v", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch messages: %v", err)), nil
	}

	records := make([]channelMessage, 0, len(messages))
	for _, msg := range messages {
		record := channelMessage{
			Timestamp: parse.FormatTimestamp(msg.Timestamp),
			User:      msg.User,
			Text:      parse.Truncate(msg.Text, parse.MaxTextLen),
		}
		if len(msg.Attachments) > 0 {
			record.Attachments = parse.SummarizeAttachments(msg.Attachments)
		}
		records = append(records, record)
	}

	return jsonResult(struct {
		Channel  string           `json:"channel"`
		Count    int              `json:"count"`
		Messages []channelMessage `json:"messages"`
	}{channelID, len(records), records})
}

// handleSearchMessages handles the search_messages tool call.
func (s *Server) handleSearchMessages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	limit := clampLimit(request.GetInt("limit", defaultSearchLimit), defaultSearchLimit, maxSearchLimit)

	result, err := s.slack.Search(ctx, query, limit)
	if err != nil {
		s.log.Error("search_messages failed: %v", err)
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	return jsonResult(result)
}

// handleSendMessage handles the send_message tool call.
func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	channelID, result := s.resolveChannel(request)
	if result != nil {
		return result, nil
	}

	receipt, err := s.slack.Post(ctx, channelID, text)
	if err != nil {
		s.log.Error("send_message failed: %v", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to send message: %v", err)), nil
	}

	return jsonResult(receipt)
}

// handleListChannels handles the list_channels tool call.
func (s *Server) handleListChannels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := clampLimit(request.GetInt("limit", defaultChannelLimit), defaultChannelLimit, maxChannelLimit)

	channels, err := s.slack.ListChannels(ctx, limit)
	if err != nil {
		s.log.Error("list_channels failed: %v", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to list channels: %v", err)), nil
	}

	return jsonResult(struct {
		Count    int                       `json:"count"`
		Channels []slackclient.ChannelInfo `json:"channels"`
	}{len(channels), channels})
}

// resolveChannel picks the explicit channel_id argument or the configured
// default. When neither exists it returns a soft error envelope; the call
// never reaches the Slack API.
func (s *Server) resolveChannel(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	channelID := request.GetString("channel_id", s.defaultChannel)
	if channelID == "" {
		return "", mcp.NewToolResultError("no channel configured: pass channel_id or set SLACK_DEFAULT_CHANNEL")
	}
	return channelID, nil
}

// clampLimit applies the default for non-positive values and the maximum
// for everything else. Out-of-range values are clamped, never rejected.
func clampLimit(v, def, max int) int {
	if v <= 0 {
		return def
	}
	return min(v, max)
}

// jsonResult wraps a handler result as serialized JSON inside the uniform
// text envelope.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
