package videos

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"greengallery/core"
	"greengallery/gallery"
	"greengallery/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// maxUploadMemory bounds how much of a multipart body is held in memory
// before spilling to temp files.
const maxUploadMemory = 32 << 20

// jobState is the poll-visible state of one background upload.
type jobState struct {
	Progress float64           `json:"progress"`
	Done     bool              `json:"done"`
	Error    string            `json:"error,omitempty"`
	Video    *core.VideoRecord `json:"video,omitempty"`
}

// Jobs tracks background upload jobs so clients can poll for progress after
// the submit request has returned.
type Jobs struct {
	mu   sync.Mutex
	byID map[string]*jobState
}

func NewJobs() *Jobs {
	return &Jobs{byID: make(map[string]*jobState)}
}

func (j *Jobs) create() string {
	id := uuid.NewString()
	j.mu.Lock()
	j.byID[id] = &jobState{}
	j.mu.Unlock()
	return id
}

func (j *Jobs) setProgress(id string, pct float64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if st, ok := j.byID[id]; ok && pct > st.Progress {
		st.Progress = pct
	}
}

func (j *Jobs) finish(id string, rec *core.VideoRecord, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	st, ok := j.byID[id]
	if !ok {
		return
	}
	st.Done = true
	if err != nil {
		st.Error = err.Error()
		return
	}
	st.Progress = 100
	st.Video = rec
}

func (j *Jobs) get(id string) (jobState, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	st, ok := j.byID[id]
	if !ok {
		return jobState{}, false
	}
	return *st, true
}

func serviceFor(m *gallery.Manager, r *http.Request) *gallery.Service {
	id, _ := middleware.IdentityFrom(r.Context())
	return m.For(r.Context(), id.ID)
}

// readPart buffers a multipart file part so the upload goroutine owns the
// bytes after the request body is gone.
func readPart(r *http.Request, field string) ([]byte, string, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

// HandleSubmit accepts a multipart video submission and starts the upload in
// the background. The response carries a job ID for progress polling; the
// record itself appears in the collections once the transfer finishes.
//
// Form fields: title, description, url, addToProfile; file parts: video,
// thumbnail. Either url or video must be present.
func HandleSubmit(m *gallery.Manager, jobs *Jobs) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Invalid multipart body"})
			return
		}

		title := strings.TrimSpace(r.FormValue("title"))
		sourceURL := strings.TrimSpace(r.FormValue("url"))

		video, videoName, err := readPart(r, "video")
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Failed to read video part"})
			return
		}
		thumb, _, err := readPart(r, "thumbnail")
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Failed to read thumbnail part"})
			return
		}

		// Cheap checks fail fast here; SubmitVideo re-validates before
		// touching any backend.
		if title == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "title is required"})
			return
		}
		if sourceURL == "" && video == nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "a video URL or file is required"})
			return
		}

		draft := gallery.VideoDraft{
			Title:        title,
			Description:  r.FormValue("description"),
			SourceURL:    sourceURL,
			AddToProfile: r.FormValue("addToProfile") == "true",
		}
		if video != nil {
			draft.Source = bytes.NewReader(video)
			draft.SourceName = videoName
			draft.SourceSize = int64(len(video))
		}
		if thumb != nil {
			draft.Thumbnail = bytes.NewReader(thumb)
			draft.ThumbnailSize = int64(len(thumb))
		}

		svc := serviceFor(m, r)
		jobID := jobs.create()
		draft.OnProgress = func(pct float64) { jobs.setProgress(jobID, pct) }

		go func() {
			// The request context dies when the handler returns; the
			// transfer keeps its own lifetime.
			rec, err := svc.SubmitVideo(context.Background(), draft)
			if err != nil {
				logrus.WithError(err).WithField("job_id", jobID).Warn("Video submission failed")
				jobs.finish(jobID, nil, err)
				return
			}
			jobs.finish(jobID, &rec, nil)
		}()

		render.Status(r, http.StatusAccepted)
		render.JSON(w, r, map[string]string{"jobId": jobID})
	}
}

// HandleJobStatus reports progress for a background upload job.
func HandleJobStatus(jobs *Jobs) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := jobs.get(chi.URLParam(r, "jobID"))
		if !ok {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]string{"error": "Unknown job"})
			return
		}
		render.JSON(w, r, st)
	}
}

// HandleListUploaded returns every uploaded video, newest first.
func HandleListUploaded(m *gallery.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, serviceFor(m, r).UploadedVideos())
	}
}

// HandleListProfile returns the videos shown on the profile page.
func HandleListProfile(m *gallery.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, serviceFor(m, r).ProfileVideos())
	}
}

// HandleDelete removes a video from both collections. Deleting an unknown ID
// succeeds without effect.
func HandleDelete(m *gallery.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Video ID must be an integer"})
			return
		}
		serviceFor(m, r).DeleteVideo(r.Context(), id)
		render.Status(r, http.StatusOK)
		render.JSON(w, r, map[string]string{"status": "deleted"})
	}
}
