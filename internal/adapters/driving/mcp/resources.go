package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/redraft-labs/redraft-cli/internal/core/services"
)

const (
	// uriScheme is the custom URI scheme for Redraft resources.
	uriScheme = "redraft://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the manuscript's chapter list.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "manuscript",
		Name:        "manuscript",
		Description: "The active manuscript's title and chapter list",
		MIMEType:    "application/json",
	}, s.handleManuscriptResource)

	// Static resource for the accumulated analysis report.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "report",
		Name:        "report",
		Description: "The accumulated analysis report for the active manuscript",
		MIMEType:    "text/plain",
	}, s.handleReportResource)

	// Template for chapter content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "chapters/{chapterId}",
		Name:        "chapter-content",
		Description: "Full text of a specific chapter",
		MIMEType:    "text/plain",
	}, s.handleChapterResource)
}

// handleManuscriptResource returns the chapter list of the active manuscript.
func (s *Server) handleManuscriptResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	ms := s.ports.Project.Manuscript()

	// Build simplified chapter list.
	type chapterInfo struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		WordCount int    `json:"word_count"`
	}

	infos := make([]chapterInfo, len(ms.Documents))
	for i, doc := range ms.Documents {
		infos[i] = chapterInfo{
			ID:        doc.ID,
			Title:     doc.Title,
			WordCount: doc.WordCount,
		}
	}

	payload := struct {
		ID       string        `json:"id"`
		Title    string        `json:"title"`
		Chapters []chapterInfo `json:"chapters"`
	}{
		ID:       ms.ID,
		Title:    ms.Title,
		Chapters: infos,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling manuscript: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleReportResource returns the rendered analysis report.
func (s *Server) handleReportResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Scan == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	report := services.RenderReport(s.ports.Project.Manuscript(), s.ports.Scan.Record())

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     report,
		}},
	}, nil
}

// handleChapterResource returns the text of a specific chapter.
func (s *Server) handleChapterResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract chapterId from URI: redraft://chapters/{chapterId}
	chapterID := extractChapterID(req.Params.URI)
	if chapterID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	ms := s.ports.Project.Manuscript()
	doc := ms.Document(chapterID)
	if doc == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     doc.Text,
		}},
	}, nil
}

// extractChapterID extracts the chapter ID from a URI like redraft://chapters/{chapterId}.
func extractChapterID(uri string) string {
	const prefix = uriScheme + "chapters/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
