package catalog

import (
	"net/http"

	"greengallery/catalog"

	"github.com/go-chi/render"
)

// HandleList returns the built-in design catalog.
func HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, catalog.List())
	}
}
