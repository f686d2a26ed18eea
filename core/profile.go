package core

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the display format stamped onto new video records.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

type (
	// Appearance holds the customizable look of a profile page. Values are
	// free-form strings; invalid colors or unknown fonts degrade in the UI,
	// they are not rejected here.
	Appearance struct {
		BackgroundImage string `json:"backgroundImage"`
		TextColor       string `json:"textColor"`
		BorderColor     string `json:"borderColor"`
		ButtonColor     string `json:"buttonColor"`
		Font            string `json:"font"`
		Avatar          string `json:"avatar"`
		Theme           string `json:"theme"`
		Layout          string `json:"layout"`
	}

	// VideoRecord is one uploaded media entry. ID is the epoch-millisecond
	// timestamp taken when the upload started; two uploads starting in the
	// same millisecond collide, which is accepted and not corrected.
	VideoRecord struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Thumbnail   string `json:"thumbnail,omitempty"`
		Timestamp   string `json:"timestamp"`
	}

	// ProfileSnapshot is the full persisted state of one user: appearance
	// settings plus the media collections. It serializes to the legacy
	// document shape with two flat arrays, uploadedVideos and videos.
	ProfileSnapshot struct {
		Appearance Appearance
		Media      MediaSet
	}
)

// DefaultAppearance returns the built-in appearance used when the durable
// store has no value for a field.
func DefaultAppearance() Appearance {
	return Appearance{
		BackgroundImage: "",
		TextColor:       "#1a1a1a",
		BorderColor:     "#2e7d32",
		ButtonColor:     "#2e7d32",
		Font:            "Inter",
		Avatar:          "",
		Theme:           "light",
		Layout:          "grid",
	}
}

// NewProfileSnapshot returns a snapshot with default appearance and no media.
func NewProfileSnapshot() *ProfileSnapshot {
	return &ProfileSnapshot{Appearance: DefaultAppearance()}
}

type snapshotDoc struct {
	Appearance
	UploadedVideos []VideoRecord `json:"uploadedVideos"`
	Videos         []VideoRecord `json:"videos"`
}

func (s ProfileSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotDoc{
		Appearance:     s.Appearance,
		UploadedVideos: s.Media.Uploaded(),
		Videos:         s.Media.Profile(),
	})
}

// UnmarshalJSON treats every field as optional: the stored document carries
// no schema version, so absent appearance fields fall back to defaults and
// absent collections decode as empty.
func (s *ProfileSnapshot) UnmarshalJSON(data []byte) error {
	doc := snapshotDoc{Appearance: DefaultAppearance()}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	s.Appearance = doc.Appearance
	s.Media = buildMediaSet(doc.UploadedVideos, doc.Videos)
	return nil
}

// Clone returns an independent deep copy of the snapshot.
func (s *ProfileSnapshot) Clone() *ProfileSnapshot {
	return &ProfileSnapshot{
		Appearance: s.Appearance,
		Media:      s.Media.Clone(),
	}
}

// NewVideoRecord stamps a record with its identity and display timestamp
// derived from the upload start time.
func NewVideoRecord(start time.Time, title, description, url, thumbnail string) VideoRecord {
	return VideoRecord{
		ID:          start.UnixMilli(),
		Title:       title,
		Description: description,
		URL:         url,
		Thumbnail:   thumbnail,
		Timestamp:   start.Format(TimestampLayout),
	}
}
