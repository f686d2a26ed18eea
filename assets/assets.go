// Package assets selects the remote asset store backend and builds the
// collision-resistant object keys assets are uploaded under.
package assets

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"greengallery/assets/filesystem"
	"greengallery/assets/memory"
	"greengallery/assets/s3"
	"greengallery/core"

	"github.com/sirupsen/logrus"
)

// GuestNamespace is used in asset keys when no identity is signed in.
const GuestNamespace = "guest"

// GetAssetStore selects the asset store backend from the environment.
func GetAssetStore() core.AssetStore {
	storeType := os.Getenv("ASSET_STORE")
	var store core.AssetStore

	storeField := logrus.Fields{
		"assetStore": storeType,
	}

	switch storeType {
	case "s3":
		bucketName := os.Getenv("S3_BUCKET_NAME")
		if bucketName == "" {
			logrus.Fatal("S3_BUCKET_NAME environment variable must be set for s3 asset store")
		}
		storeField["bucketName"] = bucketName
		store = s3.NewStore(bucketName)
	case "filesystem":
		basePath := os.Getenv("ASSET_STORAGE_PATH")
		if basePath == "" {
			basePath = "./data/assets" // Default path
		}
		baseURL := os.Getenv("ASSET_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:3002/assets"
		}
		storeField["basePath"] = basePath
		store = filesystem.NewStore(basePath, baseURL)
	default:
		store = memory.NewStore()
		storeField["assetStore"] = "in-memory"
	}
	logrus.WithFields(storeField).Info("Use asset storage")
	return store
}

func namespace(identityID string) string {
	if identityID == "" {
		return GuestNamespace
	}
	return identityID
}

// VideoKey returns the upload key for a video file:
// videos/{identityId|"guest"}/{epochMillis}_{originalFileName}.
func VideoKey(identityID, fileName string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "video"
	}
	return fmt.Sprintf("videos/%s/%d_%s", namespace(identityID), now.UnixMilli(), name)
}

// ThumbKey returns the upload key for a thumbnail image:
// thumbnails/{identityId|"guest"}/{epochMillis}.jpg.
func ThumbKey(identityID string, now time.Time) string {
	return fmt.Sprintf("thumbnails/%s/%d.jpg", namespace(identityID), now.UnixMilli())
}
