package bridge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// Argument shapes for the closed tool set. Required fields use
// pointers so a missing key is distinguishable from a zero value.

type searchKnowledgeArgs struct {
	Query *string `json:"query"`
}

type lookupOrderByIDArgs struct {
	OrderID *string `json:"order_id"`
}

type lookupOrdersByEmailArgs struct {
	Email *string `json:"email"`
	Limit int     `json:"limit"`
}

type listRecentOrdersArgs struct {
	Count int `json:"count"`
}

// decodeArgs unmarshals raw arguments strictly. Unknown fields and
// type mismatches are malformed calls, not crashes.
func decodeArgs(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedToolCall, err)
	}
	return nil
}

// requireString validates a required string argument is present.
// Emptiness is the tool's own concern: search_knowledge treats an
// empty query as a valid no-results call.
func requireString(field string, val *string) (string, error) {
	if val == nil {
		return "", fmt.Errorf("%w: missing required argument %q", domain.ErrMalformedToolCall, field)
	}
	return *val, nil
}
