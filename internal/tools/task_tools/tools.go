package task_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ghelid/weather-mcp/internal/server"
	"github.com/ghelid/weather-mcp/internal/taskstore"
	"github.com/ghelid/weather-mcp/internal/tools/common"
)

// Registered tool names.
const (
	ToolAddTask     = "add_task"
	ToolSearchTasks = "search_tasks"
)

// RegisterTaskTools registers the task store tools with the MCP server
func RegisterTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	addTaskTool := mcp.NewTool(ToolAddTask,
		mcp.WithDescription("Add a task to the local task list. The task is saved to a JSON file on the server."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Short name of the task (e.g., Buy milk)"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Longer description of the task"),
		),
		mcp.WithString("dueDate",
			mcp.Required(),
			mcp.Description("Due date in YYYY-MM-DD format (e.g., 2025-12-31)"),
		),
	)
	s.AddTool(addTaskTool, common.InstrumentedToolHandler(ToolAddTask, sc, handleAddTask(sc)))

	searchTasksTool := mcp.NewTool(ToolSearchTasks,
		mcp.WithDescription("List saved tasks, optionally only those due on a specific date."),
		mcp.WithString("dueDate",
			mcp.Description("Only return tasks due on this date, in YYYY-MM-DD format. Omit to return all tasks."),
		),
	)
	s.AddTool(searchTasksTool, common.InstrumentedToolHandler(ToolSearchTasks, sc, handleSearchTasks(sc)))

	return nil
}

func handleAddTask(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		var task taskstore.Task
		for _, field := range []struct {
			key string
			dst *string
		}{
			{"name", &task.Name},
			{"description", &task.Description},
			{"dueDate", &task.DueDate},
		} {
			value, ok := common.GetStringArg(args, field.key)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("Error: %s is required", field.key)), nil
			}
			*field.dst = value
		}

		result, err := sc.Tasks().Add(ctx, task)
		if err != nil {
			return storeError("Error adding task", err), nil
		}

		return mcp.NewToolResultText(taskstore.FormatAdded(result)), nil
	}
}

func handleSearchTasks(sc *server.ServerContext) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dueDate, ok := common.GetOptionalStringArg(request.GetArguments(), "dueDate")
		if !ok {
			return mcp.NewToolResultError(taskstore.InvalidDueDateMessage), nil
		}

		result, err := sc.Tasks().Search(ctx, dueDate)
		if err != nil {
			return storeError("Error searching tasks", err), nil
		}

		return mcp.NewToolResultText(taskstore.FormatSearch(result)), nil
	}
}

func storeError(prefix string, err error) *mcp.CallToolResult {
	if errors.Is(err, taskstore.ErrInvalidDueDate) {
		return mcp.NewToolResultError(taskstore.InvalidDueDateMessage)
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", prefix, err))
}
