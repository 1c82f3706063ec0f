// Package tools is the registry mapping tool id -> Tool and capability ->
// list<id>, with idempotent registration and no ranking at lookup time.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// Tool is an agent-callable operation with a typed parameter schema.
type Tool interface {
	ID() string
	DisplayName() string
	Description() string
	Capabilities() []string
	ParameterSchema() map[string]any
	Execute(ctx context.Context, params map[string]any) (json.RawMessage, error)
}

// ErrNoTool is returned when a lookup by id or capability finds nothing.
var ErrNoTool = errors.New("tools: no tool registered for that id or capability")

// Registry holds a write-once-then-read (after startup) set of tools.
type Registry struct {
	mu           sync.RWMutex
	byID         map[string]Tool
	byCapability map[string][]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:         map[string]Tool{},
		byCapability: map[string][]string{},
	}
}

// Register adds t to the registry. Registration is idempotent on id: a
// second Register call with the same id replaces the tool without
// duplicating capability-list entries.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID()]; exists {
		r.removeFromCapabilitiesLocked(t.ID())
	}
	r.byID[t.ID()] = t
	for _, cap := range t.Capabilities() {
		r.byCapability[cap] = append(r.byCapability[cap], t.ID())
	}
}

func (r *Registry) removeFromCapabilitiesLocked(id string) {
	for cap, ids := range r.byCapability {
		filtered := ids[:0]
		for _, existing := range ids {
			if existing != id {
				filtered = append(filtered, existing)
			}
		}
		r.byCapability[cap] = filtered
	}
}

// ByID looks up a tool by its unique id.
func (r *Registry) ByID(id string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	return t, ok
}

// ByCapability returns every tool id registered for a capability, in
// registration order; the registry performs no ranking.
func (r *Registry) ByCapability(capability string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byCapability[capability]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// All returns every registered tool, for handing provider tool
// definitions to a function-calling-capable backend.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	return out
}

// Execute dispatches to the named tool; the registry applies no timeout,
// that is the executor's concern.
func (r *Registry) Execute(ctx context.Context, id string, params map[string]any) (json.RawMessage, error) {
	t, ok := r.ByID(id)
	if !ok {
		return nil, ErrNoTool
	}
	return t.Execute(ctx, params)
}

// WithoutID returns a copy of the registry minus one tool id, used to hand
// a sub-agent the same tool set minus parallel_analyze itself (preventing
// unbounded recursion).
func (r *Registry) WithoutID(id string) *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub := NewRegistry()
	for toolID, t := range r.byID {
		if toolID == id {
			continue
		}
		sub.Register(t)
	}
	return sub
}
