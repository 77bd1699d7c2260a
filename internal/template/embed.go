package template

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed all:assets
var assetsFS embed.FS

// EmbeddedTemplates returns the embedded methodology asset filesystem,
// rooted at the assets directory so that paths start with the
// methodology id (e.g. "shape-up/pitch.md").
func EmbeddedTemplates() (fs.FS, error) {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return nil, fmt.Errorf("template: embedded assets: %w", err)
	}
	return sub, nil
}
