// Package main provides the slackwatch CLI.
// It serves Slack build-status tools over the Model Context Protocol and
// offers a terminal dashboard for watching a notification channel directly.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slackwatch-agent/src/config"
	"slackwatch-agent/src/logger"
	"slackwatch-agent/src/mcp"
	"slackwatch-agent/src/pipeline"
	"slackwatch-agent/src/slack"
	"slackwatch-agent/src/tui"
)

// Application configuration, loaded once before any command runs.
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slackwatch",
	Short: "Slackwatch - CI build-status tools for Slack",
	Long: `Slackwatch parses CI build notifications posted to Slack and makes
them available to AI agents over the Model Context Protocol.

It exposes tools to check build status, read and search messages, post
messages, and list channels. Build status, workflow name, and duration
are extracted from free-text notifications with heuristic patterns.

Configuration comes from the environment:
- SLACK_BOT_TOKEN        bot token (required)
- SLACK_DEFAULT_CHANNEL  channel used when a call omits channel_id`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		appConfig, err = config.LoadFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Please set the SLACK_BOT_TOKEN environment variable")
			os.Exit(1)
		}
	},
}

// serveCmd runs the MCP server on stdio.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool catalogue over MCP stdio",
	Long: `Runs the MCP server on stdin/stdout. Point an MCP client at this
command to give an agent access to the Slack tools.

Example:
  slackwatch serve`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.NewConsoleLogger()
		client := slack.NewClient(appConfig.SlackBotToken)
		server := mcp.NewServer(client, appConfig, log)

		log.Info("MCP server listening on stdio")
		if err := server.Run(); err != nil {
			log.Error("MCP server error: %v", err)
			os.Exit(1)
		}
	},
}

// watchCmd launches the terminal dashboard.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a channel's build notifications in a terminal dashboard",
	Long: `Fetches the latest build notifications from a channel, parses them,
and renders the results in an interactive dashboard. Press 'r' to
refresh and 'q' to quit.

Example:
  slackwatch watch --channel C0123456789 --workflow nightly`,
	Run: func(cmd *cobra.Command, args []string) {
		channel, _ := cmd.Flags().GetString("channel")
		if channel == "" {
			channel = appConfig.DefaultChannel
		}
		if channel == "" {
			fmt.Fprintln(os.Stderr, "No channel: pass --channel or set SLACK_DEFAULT_CHANNEL")
			os.Exit(1)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		workflow, _ := cmd.Flags().GetString("workflow")
		client := slack.NewClient(appConfig.SlackBotToken)

		if err := tui.Start(client, channel, pipeline.Options{Limit: limit, Workflow: workflow}); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("channel", "c", "", "Channel ID to watch (defaults to SLACK_DEFAULT_CHANNEL)")
	watchCmd.Flags().IntP("limit", "n", pipeline.DefaultLimit, "Max builds to show")
	watchCmd.Flags().StringP("workflow", "w", "", "Only show builds mentioning this workflow")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
