package stage

import "fmt"

// GuardFunc evaluates whether an edge applies to a request's resolved path
type GuardFunc func(p Path) bool

// RegistryBuilder builds an immutable transition registry
type RegistryBuilder interface {
	// Configure returns the edge configuration for the given stage
	Configure(s Stage) StageConfiguration

	// Build freezes the configuration into a Registry
	Build() *Registry
}

// StageConfiguration declares the outgoing edges of a single stage
type StageConfiguration interface {
	// OnApprove adds an unconditional approve edge to the target stage
	OnApprove(to Stage) StageConfiguration

	// OnApproveIf adds an approve edge taken only when the guard passes for
	// the request's resolved path. Edges are evaluated in declaration order.
	OnApproveIf(to Stage, guard GuardFunc) StageConfiguration

	// OnReject adds an unconditional reject edge to the target stage
	OnReject(to Stage) StageConfiguration

	// OnRejectIf adds a reject edge taken only when the guard passes
	OnRejectIf(to Stage, guard GuardFunc) StageConfiguration
}

// edge is a single outgoing transition with an optional guard
type edge struct {
	to    Stage
	guard GuardFunc
}

type stageConfig struct {
	from  Stage
	edges map[Decision][]edge
}

type registryBuilder struct {
	configs map[Stage]*stageConfig
}

// Registry is the static transition graph. It is immutable after Build and
// shared by every engine instance; display metadata lives elsewhere and never
// influences transition legality.
type Registry struct {
	configs map[Stage]*stageConfig
}

// NewBuilder creates a new registry builder
func NewBuilder() RegistryBuilder {
	return &registryBuilder{
		configs: make(map[Stage]*stageConfig),
	}
}

// Configure returns the edge configuration for the given stage
func (b *registryBuilder) Configure(s Stage) StageConfiguration {
	if !s.IsValid() {
		panic(fmt.Sprintf("invalid stage: %s", s))
	}

	config, exists := b.configs[s]
	if !exists {
		config = &stageConfig{
			from:  s,
			edges: make(map[Decision][]edge),
		}
		b.configs[s] = config
	}

	return config
}

// Build freezes the configuration into a Registry
func (b *registryBuilder) Build() *Registry {
	// Deep copy so later builder mutation cannot leak into the registry
	configsCopy := make(map[Stage]*stageConfig)
	for s, config := range b.configs {
		edgesCopy := make(map[Decision][]edge)
		for d, edges := range config.edges {
			edgesCopy[d] = append([]edge{}, edges...)
		}
		configsCopy[s] = &stageConfig{
			from:  s,
			edges: edgesCopy,
		}
	}

	return &Registry{configs: configsCopy}
}

func (c *stageConfig) permit(d Decision, to Stage, guard GuardFunc) StageConfiguration {
	if !to.IsValid() {
		panic(fmt.Sprintf("invalid target stage: %s", to))
	}

	c.edges[d] = append(c.edges[d], edge{to: to, guard: guard})
	return c
}

// OnApprove adds an unconditional approve edge to the target stage
func (c *stageConfig) OnApprove(to Stage) StageConfiguration {
	return c.permit(DecisionApprove, to, nil)
}

// OnApproveIf adds a guarded approve edge to the target stage
func (c *stageConfig) OnApproveIf(to Stage, guard GuardFunc) StageConfiguration {
	return c.permit(DecisionApprove, to, guard)
}

// OnReject adds an unconditional reject edge to the target stage
func (c *stageConfig) OnReject(to Stage) StageConfiguration {
	return c.permit(DecisionReject, to, nil)
}

// OnRejectIf adds a guarded reject edge to the target stage
func (c *stageConfig) OnRejectIf(to Stage, guard GuardFunc) StageConfiguration {
	return c.permit(DecisionReject, to, guard)
}

// SuccessorsOf returns the target stages reachable from s under the given
// decision for the resolved path p. Returns ErrUnknownStage if s has no
// registered edges at all; a registered stage with no matching edge returns
// an empty slice (terminal stages behave this way).
func (r *Registry) SuccessorsOf(s Stage, d Decision, p Path) ([]Stage, error) {
	config, exists := r.configs[s]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, s)
	}

	edges := config.edges[d]
	var successors []Stage
	for _, e := range edges {
		if e.guard == nil || e.guard(p) {
			successors = append(successors, e.to)
		}
	}
	return successors, nil
}

// Successor resolves the single target stage for the decision on the resolved
// path. Returns ErrNoSuchTransition when no edge matches.
func (r *Registry) Successor(s Stage, d Decision, p Path) (Stage, error) {
	successors, err := r.SuccessorsOf(s, d, p)
	if err != nil {
		return "", err
	}
	if len(successors) == 0 {
		return "", fmt.Errorf("%w: decision %s from stage %s", ErrNoSuchTransition, d, s)
	}
	return successors[0], nil
}
