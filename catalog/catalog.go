// Package catalog serves the built-in, read-only design catalog shown in
// the gallery grid.
package catalog

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

//go:embed designs.json
var designsJSON []byte

// Design is one catalog entry. HoverImage is the full-size preview shown on
// hover; File is the downloadable asset.
type Design struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	HoverImage string `json:"hover-image"`
	File      string `json:"file"`
}

var (
	once    sync.Once
	designs []Design
)

// List returns every catalog design. The catalog is embedded at build time
// and never changes at runtime.
func List() []Design {
	once.Do(func() {
		if err := json.Unmarshal(designsJSON, &designs); err != nil {
			logrus.WithError(err).Error("Failed to parse embedded design catalog")
			designs = []Design{}
		}
	})
	return designs
}
