package thumbnail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeekPoint(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     time.Duration
	}{
		{"unknown duration falls back to one second", 0, time.Second},
		{"long video capped at one second", 10 * time.Minute, time.Second},
		{"exactly two seconds", 2 * time.Second, time.Second},
		{"short clip uses midpoint", time.Second, 500 * time.Millisecond},
		{"very short clip", 200 * time.Millisecond, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, seekPoint(tt.duration))
		})
	}
}

func TestDeriveMissingBinaryFails(t *testing.T) {
	f := &FFmpeg{FFmpegPath: "ffmpeg-definitely-not-installed", FFprobePath: "ffprobe-definitely-not-installed"}
	img, err := f.Derive(context.Background(), "https://example.com/video.mp4")
	assert.Error(t, err)
	assert.Nil(t, img)
	assert.False(t, f.Available())
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "1.000", formatSeconds(time.Second))
	assert.Equal(t, "0.500", formatSeconds(500*time.Millisecond))
}
