// Package inventory provides the pantry controller: the user's inventory,
// the recipes it can cover, and optimistic add/remove of items.
package inventory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/flavorforge/recipeai/internal/domain/inventory"
	"github.com/flavorforge/recipeai/internal/domain/recipe"
	"github.com/flavorforge/recipeai/internal/domain/shared"
	"github.com/flavorforge/recipeai/internal/ports/outbound"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Messages used when the backend gives none
const (
	MsgLoadInventoryFailed = "failed to load inventory"
	MsgLoadMatchesFailed   = "failed to load recipe matches"
	MsgAddItemFailed       = "failed to add item"
	MsgRemoveItemFailed    = "failed to remove item"
)

// State is a snapshot of the inventory controller. Inventory and Matches
// stay nil until the first successful fetch.
type State struct {
	Inventory *inventory.UserInventory
	Matches   *recipe.Matches
	Loading   bool
	Error     string
}

// Service owns the inventory snapshot
type Service struct {
	api    outbound.InventoryAPI
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	state    State
	inflight int
	// invSeq and matchSeq fence fetches: a snapshot only lands when no newer
	// fetch or optimistic edit has happened since it was issued
	invSeq   uint64
	matchSeq uint64
	// version orders published snapshots
	version uint64

	changes shared.Broadcaster[State]
}

// NewService creates a new inventory controller
func NewService(api outbound.InventoryAPI, logger *zap.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger.Named("inventory-service"),
		now:    time.Now,
	}
}

// State returns the current snapshot. The inventory is copied so callers
// may keep it.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every state change
func (s *Service) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// Load fetches inventory and matches concurrently. Each failure is recorded
// in the shared error field as it happens; the returned error joins both.
func (s *Service) Load(ctx context.Context) error {
	var g errgroup.Group
	var invErr, matchErr error
	g.Go(func() error {
		invErr = s.RefreshInventory(ctx)
		return nil
	})
	g.Go(func() error {
		matchErr = s.RefreshMatches(ctx)
		return nil
	})
	_ = g.Wait()
	return errors.Join(invErr, matchErr)
}

// RefreshInventory replaces the inventory snapshot with the server's
func (s *Service) RefreshInventory(ctx context.Context) error {
	seq := s.begin(func() uint64 { s.invSeq++; return s.invSeq })

	inv, err := s.api.Get(ctx)

	s.finish(func(st *State) {
		if seq != s.invSeq {
			return
		}
		if err != nil {
			st.Error = shared.UserMessageOr(err, MsgLoadInventoryFailed)
			return
		}
		st.Inventory = inv
	})
	if err != nil {
		s.logger.Warn("Inventory fetch failed", zap.Error(err))
	}
	return err
}

// RefreshMatches replaces the matches snapshot with the server's
func (s *Service) RefreshMatches(ctx context.Context) error {
	seq := s.begin(func() uint64 { s.matchSeq++; return s.matchSeq })

	matches, err := s.api.MatchRecipes(ctx)

	s.finish(func(st *State) {
		if seq != s.matchSeq {
			return
		}
		if err != nil {
			st.Error = shared.UserMessageOr(err, MsgLoadMatchesFailed)
			return
		}
		st.Matches = matches
	})
	if err != nil {
		s.logger.Warn("Recipe match fetch failed", zap.Error(err))
	}
	return err
}

// AddItem shows the item immediately as pending, then asks the backend to
// add it. On success both snapshots are refetched; on failure the inventory
// is refetched to drop the pending item, the error is recorded and returned.
func (s *Service) AddItem(ctx context.Context, req inventory.AddItemRequest) error {
	if err := req.Validate(); err != nil {
		s.setError(err.Error())
		return err
	}
	req.IngredientName = strings.TrimSpace(req.IngredientName)

	s.optimistic(func(inv *inventory.UserInventory) *inventory.UserInventory {
		return inv.WithItem(inventory.Item{
			IngredientName: req.IngredientName,
			Quantity:       req.Quantity,
			AddedAt:        s.now().UTC(),
			Pending:        true,
		})
	})

	s.logger.Debug("Adding inventory item", zap.String("ingredient", req.IngredientName))
	if _, err := s.api.AddItem(ctx, req); err != nil {
		return s.revert(ctx, err, MsgAddItemFailed)
	}
	s.reconcile(ctx)
	return nil
}

// RemoveItem hides the item immediately, then asks the backend to delete it.
// Success and failure are handled as in AddItem.
func (s *Service) RemoveItem(ctx context.Context, ingredientName string) error {
	name := strings.TrimSpace(ingredientName)
	if name == "" {
		s.setError(inventory.ErrEmptyIngredientName.Error())
		return inventory.ErrEmptyIngredientName
	}

	s.optimistic(func(inv *inventory.UserInventory) *inventory.UserInventory {
		return inv.WithoutItem(name)
	})

	s.logger.Debug("Removing inventory item", zap.String("ingredient", name))
	if err := s.api.RemoveItem(ctx, name); err != nil {
		return s.revert(ctx, err, MsgRemoveItemFailed)
	}
	s.reconcile(ctx)
	return nil
}

// ClearError dismisses the current error message
func (s *Service) ClearError() {
	s.setError("")
}

func (s *Service) optimistic(edit func(*inventory.UserInventory) *inventory.UserInventory) {
	s.mu.Lock()
	s.invSeq++
	s.state.Inventory = edit(s.state.Inventory)
	snapshot := s.snapshotLocked()
	version := s.nextVersionLocked()
	s.mu.Unlock()

	s.changes.PublishVersion(version, snapshot)
}

// revert refetches the server inventory and then records the mutation error
func (s *Service) revert(ctx context.Context, err error, fallback string) error {
	s.logger.Warn("Inventory mutation failed, reverting", zap.Error(err))
	_ = s.RefreshInventory(ctx)
	s.setError(shared.UserMessageOr(err, fallback))
	return err
}

// reconcile replaces both snapshots with the server's after a mutation
func (s *Service) reconcile(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error { return s.RefreshInventory(ctx) })
	g.Go(func() error { return s.RefreshMatches(ctx) })
	_ = g.Wait()
}

func (s *Service) begin(next func() uint64) uint64 {
	s.mu.Lock()
	seq := next()
	s.inflight++
	s.state.Loading = true
	snapshot := s.snapshotLocked()
	version := s.nextVersionLocked()
	s.mu.Unlock()

	s.changes.PublishVersion(version, snapshot)
	return seq
}

func (s *Service) finish(apply func(*State)) {
	s.mu.Lock()
	s.inflight--
	apply(&s.state)
	s.state.Loading = s.inflight > 0
	snapshot := s.snapshotLocked()
	version := s.nextVersionLocked()
	s.mu.Unlock()

	s.changes.PublishVersion(version, snapshot)
}

func (s *Service) setError(msg string) {
	s.mu.Lock()
	s.state.Error = msg
	snapshot := s.snapshotLocked()
	version := s.nextVersionLocked()
	s.mu.Unlock()

	s.changes.PublishVersion(version, snapshot)
}

func (s *Service) nextVersionLocked() uint64 {
	s.version++
	return s.version
}

func (s *Service) snapshotLocked() State {
	st := s.state
	st.Inventory = s.state.Inventory.Clone()
	return st
}
