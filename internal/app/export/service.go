// Package export produces read-only views of a blueprint.
package export

import (
	"context"
	"fmt"

	"github.com/neweraservicez/startup-os/internal/domain"
	"github.com/neweraservicez/startup-os/internal/observability"
)

// Renderer turns a Document into file bytes.
type Renderer interface {
	Render(doc Document) ([]byte, error)
}

// File is a downloadable export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Service struct {
	blueprints domain.BlueprintStore
	pdf        Renderer
}

func NewService(blueprints domain.BlueprintStore, pdf Renderer) *Service {
	return &Service{
		blueprints: blueprints,
		pdf:        pdf,
	}
}

// JSON returns the stored blueprint verbatim, or domain.ErrNotFound.
func (s *Service) JSON(ctx context.Context, userID domain.UserID) (*domain.Blueprint, error) {
	return s.blueprints.GetBlueprint(ctx, userID)
}

// PDF renders the stored blueprint, or fails with domain.ErrNotFound.
func (s *Service) PDF(ctx context.Context, userID domain.UserID) (*File, error) {
	bp, err := s.blueprints.GetBlueprint(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err := s.pdf.Render(BuildDocument(bp))
	if err != nil {
		observability.LoggerFromContext(ctx).Error("pdf render failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return &File{
		Name:        FileName(CompanyName(bp), "pdf"),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}
