package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerStudentsResource(srv, svc)
	registerSessionsResource(srv, svc)
}

func registerStudentsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"atas://students",
		"Students",
		mcp.WithResourceDescription("The displayed student list."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		students, err := svc.ListStudents(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"students": students,
			"count":    len(students),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerSessionsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"atas://sessions",
		"Sessions",
		mcp.WithResourceDescription("The displayed session list with attendance totals."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sessions, err := svc.ListSessions(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"sessions": sessions,
			"count":    len(sessions),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
