package memory

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/neweraservicez/startup-os/internal/domain"
)

// BlueprintStore keeps one blueprint per user. Every read and write copies
// the document so callers see fetch/mutate/write-back semantics.
type BlueprintStore struct {
	mu         sync.RWMutex
	blueprints map[domain.UserID]*domain.Blueprint
}

func NewBlueprintStore() *BlueprintStore {
	return &BlueprintStore{
		blueprints: make(map[domain.UserID]*domain.Blueprint),
	}
}

func (s *BlueprintStore) GetBlueprint(_ context.Context, userID domain.UserID) (*domain.Blueprint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bp, ok := s.blueprints[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneBlueprint(bp), nil
}

func (s *BlueprintStore) CreateBlueprint(_ context.Context, bp *domain.Blueprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blueprints[bp.UserID]; exists {
		return errors.New("blueprint already exists")
	}
	s.blueprints[bp.UserID] = cloneBlueprint(bp)
	return nil
}

func (s *BlueprintStore) SaveLayers(_ context.Context, userID domain.UserID, layers []domain.LayerProgress, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bp, ok := s.blueprints[userID]
	if !ok {
		return nil
	}
	bp.Layers = cloneLayers(layers)
	bp.UpdatedAt = updatedAt
	return nil
}

func (s *BlueprintStore) UpdateCompanyName(_ context.Context, userID domain.UserID, name string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bp, ok := s.blueprints[userID]
	if !ok {
		return nil
	}
	bp.CompanyName = name
	bp.UpdatedAt = updatedAt
	return nil
}

func cloneBlueprint(bp *domain.Blueprint) *domain.Blueprint {
	cp := *bp
	cp.Layers = cloneLayers(bp.Layers)
	return &cp
}

func cloneLayers(layers []domain.LayerProgress) []domain.LayerProgress {
	out := make([]domain.LayerProgress, len(layers))
	for i, l := range layers {
		l.Content = maps.Clone(l.Content)
		out[i] = l
	}
	return out
}
