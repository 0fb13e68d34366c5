// Package blueprint owns the per-user blueprint document and the layer
// update engine.
package blueprint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neweraservicez/startup-os/internal/domain"
	"github.com/neweraservicez/startup-os/internal/observability"
)

type Service struct {
	store domain.BlueprintStore
	now   func() time.Time
}

func NewService(store domain.BlueprintStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetOrCreate returns the user's blueprint, seeding a default one on first access.
func (s *Service) GetOrCreate(ctx context.Context, userID domain.UserID) (*domain.Blueprint, error) {
	bp, err := s.store.GetBlueprint(ctx, userID)
	if err == nil {
		return bp, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get blueprint: %w", err)
	}

	bp = domain.NewBlueprint(userID, s.now())
	if err := s.store.CreateBlueprint(ctx, bp); err != nil {
		return nil, fmt.Errorf("create blueprint: %w", err)
	}

	observability.LoggerFromContext(ctx).Info("blueprint created",
		"user_id", userID,
		"blueprint_id", bp.ID,
	)
	return bp, nil
}

// Get returns the existing blueprint or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, userID domain.UserID) (*domain.Blueprint, error) {
	return s.store.GetBlueprint(ctx, userID)
}

// UpdateCompanyName sets the company name. Users without a blueprint get
// no error and no blueprint.
func (s *Service) UpdateCompanyName(ctx context.Context, userID domain.UserID, name string) error {
	return s.store.UpdateCompanyName(ctx, userID, name, s.now())
}

type UpdateLayerInput struct {
	UserID  domain.UserID
	LayerID domain.LayerID
	Content map[string]any
	// Status, when set, wins over the status derived from progress.
	Status *domain.LayerStatus
}

// UpdateLayer replaces one layer's content and recomputes its progress and
// status, then writes the whole layer sequence back. An unknown layer id
// leaves every layer untouched and still succeeds.
func (s *Service) UpdateLayer(ctx context.Context, in UpdateLayerInput) ([]domain.LayerProgress, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, &domain.InvalidInputError{Field: "status", Reason: fmt.Sprintf("unknown status %q", *in.Status)}
	}

	log := observability.LoggerFromContext(ctx).With(
		"user_id", in.UserID,
		"layer_id", in.LayerID,
	)

	bp, err := s.store.GetBlueprint(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if layer := bp.Layer(in.LayerID); layer != nil {
		layer.ApplyContent(in.Content, in.Status, now)
		log.Info("layer updated", "status", layer.Status, "progress_percent", layer.ProgressPercent)
	} else {
		log.Warn("layer id not in blueprint, layers left unchanged")
	}

	if err := s.store.SaveLayers(ctx, in.UserID, bp.Layers, now); err != nil {
		log.Error("failed to save layers", "error", err)
		return nil, err
	}
	return bp.Layers, nil
}
