package pdf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neweraservicez/startup-os/internal/adapters/pdf"
	"github.com/neweraservicez/startup-os/internal/app/export"
)

func TestRenderProducesPDF(t *testing.T) {
	doc := export.Document{
		Title:    "Acme – Café - Startup Blueprint",
		Subtitle: "Generated by New Era Servicez",
		Sections: []export.Section{
			{
				Heading: "Layer: Identity Layer",
				Status:  "Status: In Progress (40% complete)",
				Fields: []export.Field{
					{Label: "Worldview", Value: "Founders deserve an operating system."},
					{Label: "Values", Value: "Speed, Craft, Honesty"},
				},
			},
			{Heading: "Layer: Product Layer", Status: "Status: Not Started (0% complete)"},
		},
	}

	data, err := pdf.NewRenderer().Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "missing PDF header")
}

func TestRenderPaginatesLongContent(t *testing.T) {
	var fields []export.Field
	for i := 0; i < 200; i++ {
		fields = append(fields, export.Field{Label: "Line", Value: "content that keeps going"})
	}
	doc := export.Document{
		Title:    "Big - Startup Blueprint",
		Sections: []export.Section{{Heading: "Layer: Systems Layer", Fields: fields}},
	}

	data, err := pdf.NewRenderer().Render(doc)
	require.NoError(t, err)
	// One "/Type /Pages" tree node plus at least two "/Type /Page" leaves.
	assert.Greater(t, bytes.Count(data, []byte("/Type /Page")), 2)
}
