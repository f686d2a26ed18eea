package assets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var when = time.UnixMilli(1756500000000)

func TestVideoKeyNamespacesByIdentity(t *testing.T) {
	assert.Equal(t, "videos/user-1/1756500000000_clip.mp4", VideoKey("user-1", "clip.mp4", when))
	assert.Equal(t, "videos/guest/1756500000000_clip.mp4", VideoKey("", "clip.mp4", when))
}

func TestVideoKeyStripsDirectories(t *testing.T) {
	assert.Equal(t, "videos/guest/1756500000000_clip.mp4", VideoKey("", "/tmp/evil/../clip.mp4", when))
	assert.Equal(t, "videos/guest/1756500000000_clip.mp4", VideoKey("", `C:\Users\me\clip.mp4`, when))
	assert.Equal(t, "videos/guest/1756500000000_video", VideoKey("", "", when))
}

func TestThumbKey(t *testing.T) {
	assert.Equal(t, "thumbnails/user-1/1756500000000.jpg", ThumbKey("user-1", when))
	assert.Equal(t, "thumbnails/guest/1756500000000.jpg", ThumbKey("", when))
}
