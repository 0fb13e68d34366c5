package export

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/neweraservicez/startup-os/internal/domain"
)

const (
	defaultCompanyName = "Your Startup"
	documentSubtitle   = "Generated by New Era Servicez"
)

// Document is the renderer-neutral layout of an exported blueprint.
type Document struct {
	Title    string
	Subtitle string
	Sections []Section
}

// Section is one layer of the blueprint.
type Section struct {
	Heading string
	Status  string
	Fields  []Field
}

type Field struct {
	Label string
	Value string
}

// CompanyName returns the blueprint's company name or the placeholder.
func CompanyName(bp *domain.Blueprint) string {
	if bp.CompanyName == "" {
		return defaultCompanyName
	}
	return bp.CompanyName
}

// BuildDocument lays out a blueprint in stored layer order. Empty fields
// are skipped and field keys are listed alphabetically.
func BuildDocument(bp *domain.Blueprint) Document {
	doc := Document{
		Title:    CompanyName(bp) + " - Startup Blueprint",
		Subtitle: documentSubtitle,
		Sections: make([]Section, 0, len(bp.Layers)),
	}

	for _, layer := range bp.Layers {
		sec := Section{
			Heading: "Layer: " + layer.LayerName,
			Status:  fmt.Sprintf("Status: %s (%d%% complete)", Humanize(string(layer.Status)), layer.ProgressPercent),
		}

		keys := make([]string, 0, len(layer.Content))
		for k, v := range layer.Content {
			if domain.Truthy(v) {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)

		for _, k := range keys {
			sec.Fields = append(sec.Fields, Field{
				Label: Humanize(k),
				Value: FormatValue(layer.Content[k]),
			})
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc
}

// Humanize turns snake_case into Title Case: "ten_x_feature" -> "Ten X Feature".
func Humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")

	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}

// FormatValue renders a content value as a single line. Lists are joined
// with ", " and nested structures are written as compact JSON.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, FormatValue(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// FileName derives a download name from the company name: spaces become
// underscores and anything outside [A-Za-z0-9._-] is dropped.
func FileName(companyName, ext string) string {
	var b strings.Builder
	for _, r := range companyName {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.'):
			b.WriteRune(r)
		}
	}
	base := b.String()
	if base == "" {
		base = "blueprint"
	}
	return base + "_blueprint." + ext
}
