package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"spistory/internal/cache"
)

// captionRenderer renders caption markdown with glamour. Results are kept
// per width since word wrapping depends on it.
type captionRenderer struct {
	cache cache.Cache
	style string
}

func newCaptionRenderer(c cache.Cache, style string) *captionRenderer {
	return &captionRenderer{cache: c, style: style}
}

// Render returns md rendered for width columns. It falls back to the raw
// markdown if glamour fails.
func (r *captionRenderer) Render(md string, width int) string {
	if md == "" {
		return ""
	}
	width = max(20, width)
	k := cache.RenderKey(r.style, width, md)
	if b, ok := r.cache.Get(k); ok {
		return string(b)
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	out = strings.Trim(out, "\n")
	_ = r.cache.Set(k, []byte(out), 0)
	return out
}
