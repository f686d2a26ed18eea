package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	assetmem "greengallery/assets/memory"
	"greengallery/gallery"
	storemem "greengallery/stores/memory"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() chi.Router {
	m := gallery.NewManager(storemem.NewStore(), assetmem.NewStore(), nil)
	r := chi.NewRouter()
	r.Get("/profile", HandleGetSnapshot(m))
	r.Post("/profile/edit", HandleBeginEdit(m))
	r.Get("/profile/edit", HandleGetDraft(m))
	r.Patch("/profile/edit", HandleUpdateDraft(m))
	r.Post("/profile/edit/commit", HandleCommitEdit(m))
	r.Post("/profile/edit/cancel", HandleCancelEdit(m))
	return r
}

func do(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGetSnapshotReturnsDefaults(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodGet, "/profile", "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decode(t, w)
	assert.Equal(t, "#1a1a1a", got["textColor"])
	assert.Equal(t, "Inter", got["font"])
	assert.Equal(t, []any{}, got["uploadedVideos"])
	assert.Equal(t, []any{}, got["videos"])
}

func TestEditCommitFlow(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/profile/edit", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "#1a1a1a", decode(t, w)["textColor"])

	w = do(t, r, http.MethodPatch, "/profile/edit", `{"textColor":"#ff0000","font":"Georgia"}`)
	require.Equal(t, http.StatusOK, w.Code)
	draft := decode(t, w)
	assert.Equal(t, "#ff0000", draft["textColor"])
	assert.Equal(t, "Georgia", draft["font"])

	// Committed state is untouched while the draft is open.
	w = do(t, r, http.MethodGet, "/profile", "")
	assert.Equal(t, "#1a1a1a", decode(t, w)["textColor"])

	w = do(t, r, http.MethodPost, "/profile/edit/commit", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/profile", "")
	got := decode(t, w)
	assert.Equal(t, "#ff0000", got["textColor"])
	assert.Equal(t, "Georgia", got["font"])
}

func TestCancelDiscardsDraft(t *testing.T) {
	r := newTestRouter()

	do(t, r, http.MethodPost, "/profile/edit", "")
	do(t, r, http.MethodPatch, "/profile/edit", `{"theme":"dark"}`)

	w := do(t, r, http.MethodPost, "/profile/edit/cancel", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/profile", "")
	assert.Equal(t, "light", decode(t, w)["theme"])

	w = do(t, r, http.MethodGet, "/profile/edit", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMutationsOutsideEditConflict(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPatch, "/profile/edit", `{"theme":"dark"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/profile/edit/commit", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/profile/edit/cancel", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPatchOnlyTouchesProvidedFields(t *testing.T) {
	r := newTestRouter()

	do(t, r, http.MethodPost, "/profile/edit", "")
	w := do(t, r, http.MethodPatch, "/profile/edit", `{"buttonColor":"coral"}`)
	require.Equal(t, http.StatusOK, w.Code)

	draft := decode(t, w)
	assert.Equal(t, "coral", draft["buttonColor"])
	assert.Equal(t, "#2e7d32", draft["borderColor"])
	assert.Equal(t, "light", draft["theme"])
}
