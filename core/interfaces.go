package core

import (
	"context"
	"io"
)

type (
	// SnapshotStore is the durable key/value persistence layer. One key (the
	// user ID) holds one JSON-encoded profile snapshot.
	SnapshotStore interface {
		// Load returns the stored snapshot, or (nil, nil) when the key has
		// never been written.
		Load(ctx context.Context, userID string) (*ProfileSnapshot, error)

		// Save persists the snapshot under the user's key. Backends that
		// persist JSON must overlay the snapshot's fields onto any document
		// already stored under the key, preserving fields they do not know
		// about rather than truncating them.
		Save(ctx context.Context, userID string, snap *ProfileSnapshot) error
	}

	// AssetStore uploads a binary blob to a path and returns a stable
	// fetchable URL.
	//
	// onProgress, when non-nil, is invoked zero or more times with a
	// non-decreasing percentage in [0,100]. When size is negative the total
	// is unknown and no percentages are reported. Completion is signaled by
	// Upload returning, never by the percentage reaching 100.
	AssetStore interface {
		Upload(ctx context.Context, key, contentType string, r io.Reader, size int64, onProgress func(pct float64)) (string, error)
	}

	// ThumbnailDeriver extracts a single still frame from a playable video
	// URL. It blocks until the frame is captured and resolves exactly once.
	// Derivation is best effort: callers log failures and proceed without a
	// thumbnail.
	ThumbnailDeriver interface {
		Derive(ctx context.Context, videoURL string) ([]byte, error)
	}
)
