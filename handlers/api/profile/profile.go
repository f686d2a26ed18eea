package profile

import (
	"errors"
	"net/http"

	"greengallery/core"
	"greengallery/gallery"
	"greengallery/middleware"

	"github.com/go-chi/render"
)

func serviceFor(m *gallery.Manager, r *http.Request) *gallery.Service {
	id, _ := middleware.IdentityFrom(r.Context())
	return m.For(r.Context(), id.ID)
}

// appearancePatch carries the appearance fields a client wants to change.
// Absent fields leave the draft untouched; values are free text and are
// accepted as-is.
type appearancePatch struct {
	BackgroundImage *string `json:"backgroundImage"`
	TextColor       *string `json:"textColor"`
	BorderColor     *string `json:"borderColor"`
	ButtonColor     *string `json:"buttonColor"`
	Font            *string `json:"font"`
	Avatar          *string `json:"avatar"`
	Theme           *string `json:"theme"`
	Layout          *string `json:"layout"`
}

func (p appearancePatch) apply(a *core.Appearance) {
	if p.BackgroundImage != nil {
		a.BackgroundImage = *p.BackgroundImage
	}
	if p.TextColor != nil {
		a.TextColor = *p.TextColor
	}
	if p.BorderColor != nil {
		a.BorderColor = *p.BorderColor
	}
	if p.ButtonColor != nil {
		a.ButtonColor = *p.ButtonColor
	}
	if p.Font != nil {
		a.Font = *p.Font
	}
	if p.Avatar != nil {
		a.Avatar = *p.Avatar
	}
	if p.Theme != nil {
		a.Theme = *p.Theme
	}
	if p.Layout != nil {
		a.Layout = *p.Layout
	}
}

// HandleGetSnapshot returns the full profile snapshot: committed appearance
// plus both media collections.
func HandleGetSnapshot(m *gallery.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, serviceFor(m, r).Snapshot())
	}
}

// HandleBeginEdit opens an appearance editing session and returns the draft,
// which starts as a copy of the committed values.
func HandleBeginEdit(m *gallery.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc := serviceFor(m, r)
		svc.BeginEdit()
		draft, _ := svc.Draft()
		render.JSON(w, r, draft)
	}
}

// HandleGetDraft returns the current draft, or 409 when no edit is open.
func HandleGetDraft(m *gallery.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := serviceFor(m, r).Draft()
		if !ok {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, map[string]string{"error": "No edit in progress"})
			return
		}
		render.JSON(w, r, draft)
	}
}

// HandleUpdateDraft applies a partial appearance patch to the open draft.
// Committed state is untouched until commit.
func HandleUpdateDraft(m *gallery.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch appearancePatch
		if err := render.DecodeJSON(r.Body, &patch); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Invalid request body"})
			return
		}

		svc := serviceFor(m, r)
		if err := svc.UpdateDraft(patch.apply); err != nil {
			renderNotEditing(w, r, err)
			return
		}
		draft, _ := svc.Draft()
		render.JSON(w, r, draft)
	}
}

// HandleCommitEdit commits the draft wholesale and persists the snapshot.
func HandleCommitEdit(m *gallery.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc := serviceFor(m, r)
		if err := svc.Commit(r.Context()); err != nil {
			renderNotEditing(w, r, err)
			return
		}
		render.JSON(w, r, svc.Snapshot().Appearance)
	}
}

// HandleCancelEdit discards the draft and leaves committed values as they were.
func HandleCancelEdit(m *gallery.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := serviceFor(m, r).Cancel(); err != nil {
			renderNotEditing(w, r, err)
			return
		}
		render.Status(r, http.StatusOK)
		render.JSON(w, r, map[string]string{"status": "cancelled"})
	}
}

func renderNotEditing(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrNotEditing) {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, map[string]string{"error": "No edit in progress"})
		return
	}
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, map[string]string{"error": "Failed to update draft"})
}
