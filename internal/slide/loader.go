package slide

import (
	"github.com/joelhk/driftframe/internal/catalog"
	"github.com/joelhk/driftframe/internal/logging"
)

// Loader produces slides for catalog positions. On a decode failure it
// removes the offending entry and retries the same positional index, which
// now refers to the next surviving entry.
type Loader struct {
	catalog  *catalog.Catalog
	renderer Renderer
	width    int
	height   int
	log      *logging.Logger
}

// NewLoader creates a Loader rendering at the given display dimensions.
func NewLoader(cat *catalog.Catalog, renderer Renderer, width, height int, log *logging.Logger) *Loader {
	if log == nil {
		log = logging.New()
	}
	return &Loader{
		catalog:  cat,
		renderer: renderer,
		width:    width,
		height:   height,
		log:      log,
	}
}

// Load renders the slide at positional index idx (taken modulo the current
// catalog length). Failed entries are removed until a slide is produced; if
// the catalog empties it returns ErrCatalogExhausted. The returned position
// is where the slide's path sat when it was rendered.
func (l *Loader) Load(idx int) (*Slide, int, error) {
	for {
		path, pos, ok := l.catalog.At(idx)
		if !ok {
			return nil, 0, ErrCatalogExhausted
		}

		s, err := l.renderer.Render(path, l.width, l.height)
		if err == nil {
			return s, pos, nil
		}

		l.log.Warn("skipping unreadable image", "path", path, "error", err)
		l.catalog.Remove(path)
		// Keep idx: after removal it points at the next surviving entry.
	}
}
