package main

import (
	"github.com/ghelid/weather-mcp/cmd"
)

// version can be overridden at build time with -ldflags "-X main.version=..."
var version = "1.0.0"

func main() {
	// Set the version from build-time variable
	cmd.SetVersion(version)

	// Execute the root command
	cmd.Execute()
}
