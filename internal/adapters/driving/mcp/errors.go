// Package mcp exposes the voxcart tool set over the Model Context
// Protocol so the dialogue engine can invoke retrieval and order
// lookups mid-conversation through a schema-described interface.
package mcp

import "errors"

// ErrMissingDispatcher is returned when no tool dispatcher is provided.
var ErrMissingDispatcher = errors.New("mcp: tool dispatcher is required")
