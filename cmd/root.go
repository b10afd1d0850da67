package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the weather-mcp application
var rootCmd = &cobra.Command{
	Use:   "weather-mcp",
	Short: "MCP server for National Weather Service forecasts and a local task list",
	Long: `weather-mcp is a Model Context Protocol (MCP) server for AI assistants.

It provides three tools:
  - get_weather: forecast for a latitude/longitude from api.weather.gov
  - add_task: append a task to a local JSON file
  - search_tasks: list saved tasks, optionally filtered by due date

Running without a subcommand starts the server on stdio.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "weather-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
