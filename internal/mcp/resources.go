// ABOUTME: MCP resource implementations for BMI measurements.
// ABOUTME: Provides bmi://recent and bmi://people resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/bmi/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	recentURI = "bmi://recent"
	peopleURI = "bmi://people"

	recentLimit = 10
)

func (s *Server) registerResources() {
	// bmi://recent - Last 10 measurements across everyone
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent BMI Measurements",
		Description: "Last 10 stored BMI measurements, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// bmi://people - Everyone with their latest reading
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         peopleURI,
		Name:        "People",
		Description: "Each person with a measurement count and their latest BMI",
		MIMEType:    "application/json",
	}, s.handlePeopleResource)
}

type personSummary struct {
	Name         string          `json:"name"`
	Measurements int             `json:"measurements"`
	LatestBMI    float64         `json:"latest_bmi"`
	Category     models.Category `json:"category"`
	LatestAt     string          `json:"latest_at"`
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	measurements, err := s.repo.ListMeasurements(nil, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	if measurements == nil {
		measurements = []*models.Measurement{}
	}

	return jsonResource(recentURI, map[string]interface{}{
		"measurements": measurements,
		"count":        len(measurements),
	})
}

func (s *Server) handlePeopleResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	names, err := s.repo.ListNames()
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	people := make([]personSummary, 0, len(names))
	for _, name := range names {
		n := name
		latest, err := s.repo.ListMeasurements(&n, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to list measurements for %s: %w", name, err)
		}
		if len(latest) == 0 {
			continue
		}
		people = append(people, personSummary{
			Name:         name,
			Measurements: len(latest),
			LatestBMI:    latest[0].BMI,
			Category:     latest[0].Category,
			LatestAt:     latest[0].RecordedAt.Format(time.RFC3339),
		})
	}

	return jsonResource(peopleURI, map[string]interface{}{
		"generated_at": s.now().Format(time.RFC3339),
		"people":       people,
	})
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
