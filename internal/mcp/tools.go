// ABOUTME: MCP tool definitions and handlers for rotation and refresh operations
// ABOUTME: Exposes current article, navigation, pause state, and refresh diagnostics

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/newsticker/internal/models"
)

// Input/output structures

type ArticleOutput struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary,omitempty"`
	Link         string    `json:"link"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	SourceName   string    `json:"source_name,omitempty"`
	SourceURL    string    `json:"source_url,omitempty"`
	PublishedAt  time.Time `json:"published_at"`
	Tags         []string  `json:"tags,omitempty"`
	AuthorName   string    `json:"author_name,omitempty"`
}

type CurrentArticleOutput struct {
	Empty    bool           `json:"empty"`
	Article  *ArticleOutput `json:"article,omitempty"`
	QueueLen int            `json:"queue_len"`
	Paused   bool           `json:"paused"`
}

type NavigateOutput struct {
	Changed bool           `json:"changed"`
	Article *ArticleOutput `json:"article,omitempty"`
}

type PauseOutput struct {
	Paused bool `json:"paused"`
}

type RefreshOutput struct {
	Success      bool          `json:"success"`
	QueuedCount  int           `json:"queued_count"`
	SourceErrors []ErrorOutput `json:"source_errors,omitempty"`
}

type ErrorOutput struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

type SourceOutput struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

type ListSourcesOutput struct {
	Sources []SourceOutput `json:"sources"`
	Count   int            `json:"count"`
}

type LastErrorsOutput struct {
	Errors []ErrorOutput `json:"errors"`
	Count  int           `json:"count"`
}

// Tool registration

func (s *Server) registerTools() {
	s.registerNoArgTool("current_article",
		"Get the article currently on display in the rotation, along with queue length and pause state. Returns empty=true before the first article has rotated in.",
		s.handleCurrentArticle)
	s.registerNoArgTool("advance",
		"Move the rotation forward to the next queued article. A no-op when the queue is empty. Restarts the auto-advance countdown.",
		s.handleAdvance)
	s.registerNoArgTool("retreat",
		"Move the rotation one step backward through history. Never consumes from the queue; a no-op when there is no prior article.",
		s.handleRetreat)
	s.registerNoArgTool("pause",
		"Suspend automatic rotation. Manual advance/retreat still work while paused.",
		s.handlePause)
	s.registerNoArgTool("resume",
		"Resume automatic rotation. The next automatic advance is a full interval away.",
		s.handleResume)
	s.registerNoArgTool("refresh",
		"Fetch all enabled sources now, merge new articles into the rotation queue, and report per-source errors. success=false only when every source failed.",
		s.handleRefresh)
	s.registerNoArgTool("list_sources",
		"List the configured feed sources with their enabled state.",
		s.handleListSources)
	s.registerNoArgTool("last_refresh_errors",
		"Get the per-source failures recorded during the most recent refresh cycle, for diagnostics.",
		s.handleLastErrors)
}

func (s *Server) registerNoArgTool(name, description string, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)) {
	tool := mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
	s.mcpServer.AddTool(tool, handler)
}

// Handlers

func (s *Server) handleCurrentArticle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	output := CurrentArticleOutput{
		Empty:    true,
		QueueLen: s.engine.QueueLen(),
		Paused:   s.engine.Paused(),
	}
	if article, ok := s.engine.Current(); ok {
		output.Empty = false
		output.Article = articleOutput(article)
	}
	return jsonResult(output)
}

func (s *Server) handleAdvance(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	beforeID := s.currentID()
	s.engine.Advance()
	return s.navigateResult(beforeID)
}

func (s *Server) handleRetreat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	beforeID := s.currentID()
	s.engine.Retreat()
	return s.navigateResult(beforeID)
}

func (s *Server) handlePause(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engine.Pause()
	return jsonResult(PauseOutput{Paused: true})
}

func (s *Server) handleResume(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engine.Resume()
	return jsonResult(PauseOutput{Paused: false})
}

func (s *Server) handleRefresh(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	queued, err := s.engine.Refresh(ctx)
	output := RefreshOutput{
		Success:     err == nil,
		QueuedCount: queued,
	}
	for _, fe := range s.engine.LastRefreshErrors() {
		output.SourceErrors = append(output.SourceErrors, ErrorOutput{
			Source:  fe.Source,
			Message: fe.Err.Error(),
		})
	}
	return jsonResult(output)
}

func (s *Server) handleListSources(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sources := s.engine.Sources()
	output := ListSourcesOutput{Count: len(sources)}
	for _, src := range sources {
		output.Sources = append(output.Sources, SourceOutput{
			Name:    src.Name,
			URL:     src.URL,
			Enabled: src.Enabled,
		})
	}
	return jsonResult(output)
}

func (s *Server) handleLastErrors(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	errs := s.engine.LastRefreshErrors()
	output := LastErrorsOutput{Count: len(errs)}
	for _, fe := range errs {
		output.Errors = append(output.Errors, ErrorOutput{
			Source:  fe.Source,
			Message: fe.Err.Error(),
		})
	}
	return jsonResult(output)
}

// Helpers

func (s *Server) currentID() string {
	if article, ok := s.engine.Current(); ok {
		return article.ID
	}
	return ""
}

func (s *Server) navigateResult(beforeID string) (*mcp.CallToolResult, error) {
	output := NavigateOutput{}
	if after, ok := s.engine.Current(); ok {
		output.Article = articleOutput(after)
		output.Changed = after.ID != beforeID
	}
	return jsonResult(output)
}

func articleOutput(a models.Article) *ArticleOutput {
	return &ArticleOutput{
		ID:           a.ID,
		Title:        a.Title,
		Summary:      a.Summary,
		Link:         a.Link,
		ThumbnailURL: a.ThumbnailURL,
		SourceName:   a.SourceName,
		SourceURL:    a.SourceURL,
		PublishedAt:  a.PublishedAt,
		Tags:         a.Tags,
		AuthorName:   a.AuthorName,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
