package stores

import (
	"os"

	"greengallery/core"
	"greengallery/stores/filesystem"
	"greengallery/stores/memory"
	"greengallery/stores/postgres"
	"greengallery/stores/sqlite"

	"github.com/sirupsen/logrus"
)

// GetStore selects the durable snapshot store from the environment.
func GetStore() core.SnapshotStore {
	storageType := os.Getenv("STORAGE_TYPE")
	var store core.SnapshotStore

	storageField := logrus.Fields{
		"storageType": storageType,
	}

	switch storageType {
	case "filesystem":
		basePath := os.Getenv("LOCAL_STORAGE_PATH")
		if basePath == "" {
			basePath = "./data/profiles" // Default path
		}
		storageField["basePath"] = basePath
		store = filesystem.NewStore(basePath)
	case "sqlite":
		dataSourceName := os.Getenv("DATA_SOURCE_NAME")
		if dataSourceName == "" {
			dataSourceName = "greengallery.db" // Default filename
		}
		storageField["dataSourceName"] = dataSourceName
		store = sqlite.NewStore(dataSourceName)
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			logrus.Fatal("DATABASE_URL environment variable must be set for postgres storage type")
		}
		store = postgres.NewStore(dsn)
	default:
		store = memory.NewStore()
		storageField["storageType"] = "in-memory"
	}
	logrus.WithFields(storageField).Info("Use profile storage")
	return store
}
