package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/estix-cli/internal/adapters/driving/outline"
	"github.com/custodia-labs/estix-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for estix resources.
	uriScheme = "estix://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "projects",
		Name:        "projects",
		Description: "List of all stored estimate projects",
		MIMEType:    "application/json",
	}, s.handleProjectsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "projects/{projectId}",
		Name:        "project-outline",
		Description: "Levels, rooms, line items and photos of a project",
		MIMEType:    "text/plain",
	}, s.handleProjectResource)
}

// handleProjectsResource returns a list of all stored projects.
func (s *Server) handleProjectsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Project == nil {
		return textResult(req.Params.URI, "application/json", "[]"), nil
	}

	projects, err := s.ports.Project.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	type projectInfo struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		ClaimNumber string  `json:"claim_number,omitempty"`
		Total       float64 `json:"total"`
		URI         string  `json:"uri"`
	}

	infos := make([]projectInfo, len(projects))
	for i := range projects {
		infos[i] = projectInfo{
			ID:          projects[i].ID,
			Name:        projects[i].Name,
			ClaimNumber: projects[i].ClaimNumber,
			Total:       projects[i].Total,
			URI:         uriScheme + "projects/" + projects[i].ID,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling projects: %w", err)
	}

	return textResult(req.Params.URI, "application/json", string(data)), nil
}

// handleProjectResource returns the outline of one project.
func (s *Server) handleProjectResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Project == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	projectID := extractProjectID(req.Params.URI)
	if projectID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	graph, err := s.ports.Project.Get(ctx, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	var buf bytes.Buffer
	if err := outline.Write(&buf, outline.Build(outline.FromGraph(graph), nil)); err != nil {
		return nil, fmt.Errorf("rendering project: %w", err)
	}

	return textResult(req.Params.URI, "text/plain", buf.String()), nil
}

func textResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}

// extractProjectID extracts the project ID from a URI like estix://projects/{projectId}.
func extractProjectID(uri string) string {
	const prefix = uriScheme + "projects/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
