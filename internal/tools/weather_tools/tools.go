package weather_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ghelid/weather-mcp/internal/server"
	"github.com/ghelid/weather-mcp/internal/tools/common"
	"github.com/ghelid/weather-mcp/internal/weather"
)

// ToolGetWeather is the registered name of the forecast tool.
const ToolGetWeather = "get_weather"

const invalidCoordinatesMessage = "Error: Both latitude and longitude must be provided as numbers"

// RegisterWeatherTools registers the weather tools with the MCP server
func RegisterWeatherTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getWeatherTool := mcp.NewTool(ToolGetWeather,
		mcp.WithDescription("Get weather forecast from the National Weather Service (weather.gov) for a specific location. "+
			"Provide latitude and longitude coordinates to get the current weather forecast."),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude coordinate (e.g., 39.7456 for Denver)"),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude coordinate (e.g., -97.0892 for Denver)"),
		),
	)

	s.AddTool(getWeatherTool, common.InstrumentedToolHandler(ToolGetWeather, sc, handleGetWeather(sc)))
	return nil
}

func handleGetWeather(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		latitude, latOK := common.GetNumberArg(args, "latitude")
		longitude, lonOK := common.GetNumberArg(args, "longitude")
		if !latOK || !lonOK {
			return mcp.NewToolResultError(invalidCoordinatesMessage), nil
		}

		report, err := sc.Weather().Report(ctx, weather.Coordinate{Latitude: latitude, Longitude: longitude})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error fetching weather data: %v", err)), nil
		}

		return mcp.NewToolResultText(report), nil
	}
}
