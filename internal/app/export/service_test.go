package export_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neweraservicez/startup-os/internal/adapters/storage/memory"
	"github.com/neweraservicez/startup-os/internal/app/export"
	"github.com/neweraservicez/startup-os/internal/domain"
)

type fakeRenderer struct {
	got export.Document
	err error
}

func (f *fakeRenderer) Render(doc export.Document) ([]byte, error) {
	f.got = doc
	return []byte("%PDF-fake"), f.err
}

func TestPDF(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBlueprintStore()
	bp := domain.NewBlueprint("u1", time.Now())
	bp.CompanyName = "Night Owl"
	require.NoError(t, store.CreateBlueprint(ctx, bp))

	r := &fakeRenderer{}
	svc := export.NewService(store, r)

	file, err := svc.PDF(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Night_Owl_blueprint.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, []byte("%PDF-fake"), file.Data)
	assert.Equal(t, "Night Owl - Startup Blueprint", r.got.Title)
}

func TestPDF_Errors(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBlueprintStore()

	svc := export.NewService(store, &fakeRenderer{})
	_, err := svc.PDF(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.JSON(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.CreateBlueprint(ctx, domain.NewBlueprint("u1", time.Now())))
	svc = export.NewService(store, &fakeRenderer{err: errors.New("font missing")})
	_, err = svc.PDF(ctx, "u1")
	assert.Error(t, err)
}
