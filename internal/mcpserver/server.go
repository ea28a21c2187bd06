// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido task tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/taskservice"
)

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp *server.MCPServer
	svc *taskservice.Service
}

// New creates a new MCP server with all Raido tools registered.
func New(svc *taskservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List the tasks of one scope in display order. "+
			"Scope keys: inbox, project:<id>, header:<id>."),
		mcp.WithString("scope", mcp.Description("Scope key (default inbox)")),
		mcp.WithBoolean("include_completed", mcp.Description("Include completed tasks")),
	), s.listTasks)

	s.mcp.AddTool(mcp.NewTool("add_task",
		mcp.WithDescription("Create a task at the end of its list. The text supports "+
			"quick-add syntax: !1/!2/!3 or !low/!medium/!high for priority, @today, "+
			"@tomorrow, or @YYYY-MM-DD for the due date, and // to start notes."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Quick-add input, e.g. \"Buy milk !2 @tomorrow // oat\"")),
		mcp.WithString("project_id", mcp.Description("Optional project to file the task under")),
		mcp.WithString("header_id", mcp.Description("Optional header to file the task under")),
	), s.addTask)

	s.mcp.AddTool(mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task completed. The task keeps its position in the list."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Task id")),
	), s.completeTask)

	s.mcp.AddTool(mcp.NewTool("move_task",
		mcp.WithDescription("Move a task to another index within its current list."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Task id")),
		mcp.WithNumber("from", mcp.Required(), mcp.Description("Index the task currently occupies")),
		mcp.WithNumber("to", mcp.Required(), mcp.Description("Target index")),
	), s.moveTask)

	s.mcp.AddTool(mcp.NewTool("move_task_to_scope",
		mcp.WithDescription("Move a task into another list (inbox, project:<id>, or "+
			"header:<id>). The task lands at the end of the target list."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Task id")),
		mcp.WithString("scope", mcp.Required(), mcp.Description("Target scope key")),
	), s.moveTaskToScope)

	s.mcp.AddTool(mcp.NewTool("search_tasks",
		mcp.WithDescription("Full-text search through task titles and notes."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchTasks)

	s.mcp.AddTool(mcp.NewTool("audit_order",
		mcp.WithDescription("Inspect one list's position keys for duplicates, gaps, "+
			"and unkeyed tasks. Read-only."),
		mcp.WithString("scope", mcp.Required(), mcp.Description("Scope key to audit")),
	), s.auditOrder)

	s.mcp.AddTool(mcp.NewTool("repair_order",
		mcp.WithDescription("Repair ordering corruption. With a scope, reindexes that "+
			"list; without, bootstraps unkeyed tasks and reindexes every corrupted list."),
		mcp.WithString("scope", mcp.Description("Optional scope key to repair")),
	), s.repairOrder)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope := models.InboxScope()
	if raw := req.GetString("scope", ""); raw != "" {
		parsed, err := models.ParseScopeID(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		scope = parsed
	}
	tasks, err := s.svc.ListTasks(ctx, scope, req.GetBool("include_completed", false), 0, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(tasks, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	task, err := s.svc.CreateTask(ctx, taskservice.CreateTaskInput{
		Capture:   text,
		ProjectID: req.GetString("project_id", ""),
		HeaderID:  req.GetString("header_id", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) completeTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	done := true
	task, err := s.svc.UpdateTask(ctx, id, taskservice.UpdateTaskInput{Completed: &done})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("complete %s: %v", id, err)), nil
	}
	out, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) moveTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from := req.GetInt("from", 0)
	to := req.GetInt("to", 0)
	if err := s.svc.MoveTask(ctx, id, from, to); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("move %s: %v", id, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("moved %s to index %d", id, to)), nil
}

func (s *Server) moveTaskToScope(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := req.RequireString("scope")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	scope, err := models.ParseScopeID(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	task, err := s.svc.MoveTaskToScope(ctx, id, scope)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("move %s into %s: %v", id, raw, err)), nil
	}
	out, _ := json.MarshalIndent(task, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) auditOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("scope")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	scope, err := models.ParseScopeID(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := s.svc.Audit(ctx, scope)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) repairOrder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var scope models.ScopeID
	if raw := req.GetString("scope", ""); raw != "" {
		parsed, err := models.ParseScopeID(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		scope = parsed
	}
	if err := s.svc.Repair(ctx, scope); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("repair complete"), nil
}
