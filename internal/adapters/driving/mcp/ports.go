package mcp

import (
	"time"

	"github.com/nautilus-labs/voxcart/internal/core/ports/driving"
)

// IndexStats describes the current index snapshot for the stats
// resource.
type IndexStats struct {
	Documents int       `json:"documents"`
	Chunks    int       `json:"chunks"`
	BuiltAt   time.Time `json:"built_at"`
}

// StatsProvider reports index statistics.
type StatsProvider interface {
	IndexStats() (documents, chunks int, builtAt time.Time)
}

// Ports aggregates the driving ports required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dispatcher validates and dispatches tool calls.
	Dispatcher driving.ToolDispatcher

	// Stats reports index statistics for the index resource. Optional.
	Stats StatsProvider
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Dispatcher == nil {
		return ErrMissingDispatcher
	}
	return nil
}
