// Package thumbnail extracts a still frame from a playable video by
// shelling out to ffmpeg. Derivation is best effort: callers are expected
// to log failures and continue without a thumbnail.
package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultTimeout = 30 * time.Second

// FFmpeg derives thumbnails using the ffmpeg and ffprobe binaries.
type FFmpeg struct {
	FFmpegPath  string
	FFprobePath string
	Timeout     time.Duration
}

// NewFFmpeg returns a deriver using the binaries found on PATH.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		Timeout:     defaultTimeout,
	}
}

// Available reports whether the ffmpeg binary can be found.
func (f *FFmpeg) Available() bool {
	_, err := exec.LookPath(f.FFmpegPath)
	return err == nil
}

// Derive captures one frame from the video at min(1s, duration/2) and
// returns it as encoded JPEG bytes. It blocks until the capture completes
// and resolves exactly once, success or failure.
func (f *FFmpeg) Derive(ctx context.Context, videoURL string) ([]byte, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	seek := seekPoint(f.probeDuration(ctx, videoURL))

	var out, errb bytes.Buffer
	cmd := exec.CommandContext(ctx, f.FFmpegPath,
		"-ss", formatSeconds(seek),
		"-i", videoURL,
		"-frames:v", "1",
		"-vf", "scale=640:-1",
		"-q:v", "2",
		"-f", "image2",
		"-c:v", "mjpeg",
		"pipe:1",
	)
	cmd.Stdout = &out
	cmd.Stderr = &errb

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame capture failed: %w: %s", err, lastLine(errb.String()))
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no frame")
	}
	return out.Bytes(), nil
}

// probeDuration asks ffprobe for the video duration. Zero means unknown;
// the seek point then falls back to one second.
func (f *FFmpeg) probeDuration(ctx context.Context, videoURL string) time.Duration {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, f.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoURL,
	)
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		logrus.WithError(err).WithField("url", videoURL).Debug("ffprobe duration failed")
		return 0
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(out.String()), 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// seekPoint picks the capture position: min(1s, duration/2), so very short
// clips are sampled at their midpoint instead of past their end.
func seekPoint(duration time.Duration) time.Duration {
	if duration <= 0 {
		return time.Second
	}
	half := duration / 2
	if half < time.Second {
		return half
	}
	return time.Second
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
