// Package gallery holds the profile state machine: the in-memory profile
// snapshot, the video upload pipeline that feeds its media collections, and
// the draft/commit editing protocol for appearance settings.
package gallery

import (
	"context"
	"encoding/base64"
	"io"
	"mime"
	"path"
	"strings"
	"sync"
	"time"

	"greengallery/assets"
	"greengallery/core"

	"github.com/sirupsen/logrus"
)

// VideoDraft is a logical "new video" request. Exactly one of SourceURL or
// Source must be set; Thumbnail is optional. OnProgress, when non-nil,
// receives upload percentages for the video transfer.
type VideoDraft struct {
	Title        string
	Description  string
	SourceURL    string
	Source       io.Reader
	SourceName   string
	SourceSize   int64
	Thumbnail    io.Reader
	ThumbnailSize int64
	AddToProfile bool
	OnProgress   func(pct float64)
}

// Service owns one user's profile snapshot. All mutations lock, apply
// against the current in-memory state and persist a copy, so two uploads
// resolving in any order both land in the collections — the later writer
// re-reads the snapshot instead of clobbering it with a stale copy captured
// before its upload suspended.
type Service struct {
	mu      sync.Mutex
	snap    *core.ProfileSnapshot
	draft   *core.Appearance
	store   core.SnapshotStore
	assets  core.AssetStore
	deriver core.ThumbnailDeriver
	userKey string
	log     *logrus.Entry
	now     func() time.Time
}

// NewService loads the user's snapshot from the durable store. A missing or
// unreadable snapshot is non-fatal: the service starts from defaults and the
// in-memory state is authoritative until the next successful save.
func NewService(ctx context.Context, store core.SnapshotStore, assetStore core.AssetStore, deriver core.ThumbnailDeriver, identityID string) *Service {
	userKey := identityID
	if userKey == "" {
		userKey = assets.GuestNamespace
	}
	log := logrus.WithField("user_id", userKey)

	snap, err := store.Load(ctx, userKey)
	if err != nil {
		log.WithError(err).Error("Failed to load profile snapshot, starting from defaults")
	}
	if snap == nil {
		snap = core.NewProfileSnapshot()
	}

	return &Service{
		snap:    snap,
		store:   store,
		assets:  assetStore,
		deriver: deriver,
		userKey: userKey,
		log:     log,
		now:     time.Now,
	}
}

// SubmitVideo validates the draft, resolves the playable URL (uploading the
// source file if no URL was given), resolves a thumbnail, and prepends the
// new record to the media collections. The snapshot is persisted afterwards;
// a persistence failure is logged, not surfaced, because the upload itself
// already succeeded.
func (s *Service) SubmitVideo(ctx context.Context, draft VideoDraft) (core.VideoRecord, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return core.VideoRecord{}, &core.ValidationError{Reason: "title is required"}
	}
	if draft.SourceURL == "" && draft.Source == nil {
		return core.VideoRecord{}, &core.ValidationError{Reason: "a video URL or file is required"}
	}

	start := s.now()
	log := s.log.WithField("title", title)

	url := draft.SourceURL
	uploadedFile := false
	if url == "" {
		key := assets.VideoKey(s.userKey, draft.SourceName, start)
		resolved, err := s.assets.Upload(ctx, key, videoContentType(draft.SourceName), draft.Source, draft.SourceSize, draft.OnProgress)
		if err != nil {
			log.WithError(err).Error("Video upload failed")
			return core.VideoRecord{}, &core.UploadError{Err: err}
		}
		url = resolved
		uploadedFile = true
		log.WithField("url", url).Info("Video uploaded")
	}

	thumb, err := s.resolveThumbnail(ctx, draft, url, uploadedFile, start)
	if err != nil {
		return core.VideoRecord{}, err
	}

	rec := core.NewVideoRecord(start, title, draft.Description, url, thumb)

	s.mu.Lock()
	s.snap.Media.Add(rec, draft.AddToProfile)
	snapCopy := s.snap.Clone()
	s.mu.Unlock()

	s.persist(ctx, snapCopy)
	return rec, nil
}

// resolveThumbnail prefers a user-supplied thumbnail file, which is uploaded
// and replaced by its resolved URL. Without one, a frame is derived from an
// uploaded video and inlined as a data URL. Derivation failure is silent:
// the record simply has no thumbnail.
func (s *Service) resolveThumbnail(ctx context.Context, draft VideoDraft, videoURL string, uploadedFile bool, start time.Time) (string, error) {
	if draft.Thumbnail != nil {
		key := assets.ThumbKey(s.userKey, start)
		resolved, err := s.assets.Upload(ctx, key, "image/jpeg", draft.Thumbnail, draft.ThumbnailSize, nil)
		if err != nil {
			s.log.WithError(err).Error("Thumbnail upload failed")
			return "", &core.UploadError{Err: err}
		}
		return resolved, nil
	}

	if uploadedFile && s.deriver != nil {
		img, err := s.deriver.Derive(ctx, videoURL)
		if err != nil {
			s.log.WithError(err).Debug("Thumbnail derivation failed, continuing without one")
			return "", nil
		}
		return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(img), nil
	}

	return "", nil
}

// DeleteVideo removes the record from both collections. Deleting an absent
// ID is a no-op and performs no persistence write. The remote asset itself
// is not reclaimed.
func (s *Service) DeleteVideo(ctx context.Context, id int64) {
	s.mu.Lock()
	removed := s.snap.Media.Remove(id)
	var snapCopy *core.ProfileSnapshot
	if removed {
		snapCopy = s.snap.Clone()
	}
	s.mu.Unlock()

	if !removed {
		return
	}
	s.log.WithField("video_id", id).Info("Video deleted")
	s.persist(ctx, snapCopy)
}

// Snapshot returns a deep copy of the current profile snapshot.
func (s *Service) Snapshot() *core.ProfileSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// UploadedVideos returns every video the user has uploaded, newest first.
func (s *Service) UploadedVideos() []core.VideoRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Media.Uploaded()
}

// ProfileVideos returns the videos attached to the profile page, newest first.
func (s *Service) ProfileVideos() []core.VideoRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Media.Profile()
}

// persist writes the snapshot to the durable store. Failure is logged and
// swallowed: the in-memory state stays authoritative until the next
// successful save. No retry is attempted.
func (s *Service) persist(ctx context.Context, snap *core.ProfileSnapshot) {
	if err := s.store.Save(ctx, s.userKey, snap); err != nil {
		s.log.WithError(err).Error("Failed to persist profile snapshot")
	}
}

func videoContentType(fileName string) string {
	if ct := mime.TypeByExtension(path.Ext(fileName)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
