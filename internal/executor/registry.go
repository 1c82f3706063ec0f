package executor

import "sync"

// CapableAgent is an agent instance the registry can dispatch tasks to.
type CapableAgent interface {
	CanHandleTask(taskType string) bool
	TaskPriority(taskType string) Priority
}

// AgentRegistry holds agent instances in registration order; there is no
// separate capability index. Lookup scans every agent and returns the
// highest-priority one among those that can handle a task, ties broken by
// registration order.
type AgentRegistry struct {
	mu     sync.Mutex
	agents []CapableAgent
}

// NewAgentRegistry returns an empty agent registry.
func NewAgentRegistry() *AgentRegistry {
	return &AgentRegistry{}
}

// Register appends an agent in registration order.
func (r *AgentRegistry) Register(a CapableAgent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents = append(r.agents, a)
}

// FindAgentForTask returns the highest-priority agent among those whose
// CanHandleTask is true; ties broken by registration order.
func (r *AgentRegistry) FindAgentForTask(taskType string) (CapableAgent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var best CapableAgent
	var bestPriority Priority = -1
	for _, a := range r.agents {
		if !a.CanHandleTask(taskType) {
			continue
		}
		if p := a.TaskPriority(taskType); p > bestPriority {
			best, bestPriority = a, p
		}
	}
	return best, best != nil
}
