// Package recipe provides the controllers behind recipe generation and search.
// Each controller owns a state snapshot, publishes every change to its
// subscribers and fences responses with a request sequence number so only
// the most recently issued request can change state.
package recipe

import (
	"context"
	"sync"

	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/domain/shared"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"go.uber.org/zap"
)

const msgGenerateFailed = "failed to generate recipe"

// GeneratorState is a snapshot of the generation controller.
// The zero value is the idle state.
type GeneratorState struct {
	Recipe  *recipe.Recipe
	Loading bool
	Error   string
	Success bool
}

// Generator drives recipe generation
type Generator struct {
	api    outbound.RecipeAPI
	logger *zap.Logger

	mu    sync.Mutex
	state   GeneratorState
	seq     uint64
	version uint64

	changes shared.Broadcaster[GeneratorState]
}

// NewGenerator creates a new generation controller
func NewGenerator(api outbound.RecipeAPI, logger *zap.Logger) *Generator {
	return &Generator{
		api:    api,
		logger: logger.Named("recipe-generator"),
	}
}

// State returns the current snapshot
func (g *Generator) State() GeneratorState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Subscribe registers fn for every state change
func (g *Generator) Subscribe(fn func(GeneratorState)) (unsubscribe func()) {
	return g.changes.Subscribe(fn)
}

// Generate asks the backend for a recipe built from req.Ingredients and
// returns the resulting state. Failures end up in the state, never as a
// returned error.
func (g *Generator) Generate(ctx context.Context, req recipe.GenerationRequest) GeneratorState {
	if err := req.Validate(); err != nil {
		return g.update(func(s *GeneratorState) {
			g.seq++
			s.Loading = false
			s.Success = false
			s.Error = err.Error()
		})
	}

	var seq uint64
	g.update(func(s *GeneratorState) {
		g.seq++
		seq = g.seq
		*s = GeneratorState{Loading: true}
	})

	g.logger.Debug("Generating recipe",
		zap.Strings("ingredients", req.Ingredients),
		zap.Uint64("seq", seq),
	)
	generated, err := g.api.Generate(ctx, req)

	g.mu.Lock()
	if seq != g.seq {
		snapshot := g.state
		g.mu.Unlock()
		g.logger.Debug("Discarding superseded generation result", zap.Uint64("seq", seq))
		return snapshot
	}
	if err != nil {
		g.state = GeneratorState{Error: shared.MessageOf(err, msgGenerateFailed)}
	} else {
		g.state = GeneratorState{Recipe: generated, Success: true}
	}
	snapshot := g.state
	g.version++
	version := g.version
	g.mu.Unlock()

	if err != nil {
		g.logger.Warn("Recipe generation failed", zap.Error(err))
	}
	g.changes.PublishVersion(version, snapshot)
	return snapshot
}

// ClearError dismisses the current error message
func (g *Generator) ClearError() {
	g.update(func(s *GeneratorState) {
		s.Error = ""
	})
}

// Reset returns to idle and invalidates any in-flight request
func (g *Generator) Reset() {
	g.update(func(s *GeneratorState) {
		g.seq++
		*s = GeneratorState{}
	})
}

func (g *Generator) update(fn func(*GeneratorState)) GeneratorState {
	g.mu.Lock()
	fn(&g.state)
	snapshot := g.state
	g.version++
	version := g.version
	g.mu.Unlock()

	g.changes.PublishVersion(version, snapshot)
	return snapshot
}
