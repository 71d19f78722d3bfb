package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/atas/pkg/logic"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerRunCommandTool(srv, svc)
	registerListStudentsTool(srv, svc)
	registerListSessionsTool(srv, svc)
	registerCurrentSessionTool(srv, svc)
}

func registerRunCommandTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"run_command",
		mcp.WithDescription("Run one atas command line, e.g. `add n/Alice m/A1234567 e/alice@x.com` or `presence 1-3`."),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("The command line to run. Use `help` to list commands."),
		),
		mcp.WithBoolean("confirm",
			mcp.Description("Answer yes to the confirmation question of delete, edit and clear commands."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		line, err := request.RequireString("command")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		confirm := request.GetBool("confirm", false)

		res, err := svc.Run(ctx, line, confirm)
		if err != nil {
			if logic.Fatal(err) {
				return nil, err
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerListStudentsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_students",
		mcp.WithDescription("List the displayed students with their one-based index."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		students, err := svc.ListStudents(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"students": students,
			"count":    len(students),
		})
	})
}

func registerListSessionsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_sessions",
		mcp.WithDescription("List the displayed sessions in date order with attendance totals."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessions, err := svc.ListSessions(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"sessions": sessions,
			"count":    len(sessions),
		})
	})
}

func registerCurrentSessionTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"current_session",
		mcp.WithDescription("Show the attendance sheet of the entered session."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sheet, err := svc.CurrentSheet(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sheet)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
