package server

import "strings"

// Defines an API for origin filters. An origin filter decides whether a websocket handshake coming from a given page
// origin is acceptable for the server or should rather be rejected.
type OriginFilter interface {
	// Checks for a given Origin header if the server should accept the handshake.
	Accept(origin string) bool
}

// ToggleOriginFilter accepts every origin or none.
type ToggleOriginFilter struct {
	Value bool
}

func (f *ToggleOriginFilter) Accept(string) bool {
	return f.Value
}

// ListOriginFilter accepts the listed origins, compared case-insensitively. Handshakes without an Origin header do not
// come from a browser and are accepted.
type ListOriginFilter struct {
	Origins []string
}

func (f *ListOriginFilter) Accept(origin string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range f.Origins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// NewOriginFilter returns a filter for the given allow list. An empty list accepts every origin.
func NewOriginFilter(origins []string) OriginFilter {
	if len(origins) == 0 {
		return &ToggleOriginFilter{Value: true}
	}
	return &ListOriginFilter{Origins: origins}
}
