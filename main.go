package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"greengallery/assets"
	"greengallery/core"
	"greengallery/gallery"
	catalogAPI "greengallery/handlers/api/catalog"
	"greengallery/handlers/api/profile"
	"greengallery/handlers/api/videos"
	"greengallery/handlers/auth"
	"greengallery/identity"
	authMiddleware "greengallery/middleware"
	"greengallery/stores"
	"greengallery/thumbnail"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func setupRouter(manager *gallery.Manager, provider identity.Provider, tokens *identity.TokenIssuer) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Length", "X-CSRF-Token", "Token", "session", "Origin", "Host", "Connection", "Accept-Encoding", "Accept-Language", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	jobs := videos.NewJobs()

	r.Route("/api/v2", func(r chi.Router) {
		// Profile and upload routes work without a session; anonymous
		// callers share the guest profile.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuth(tokens))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profile.HandleGetSnapshot(manager))
				r.Route("/edit", func(r chi.Router) {
					r.Post("/", profile.HandleBeginEdit(manager))
					r.Get("/", profile.HandleGetDraft(manager))
					r.Patch("/", profile.HandleUpdateDraft(manager))
					r.Post("/commit", profile.HandleCommitEdit(manager))
					r.Post("/cancel", profile.HandleCancelEdit(manager))
				})
			})

			r.Route("/videos", func(r chi.Router) {
				r.Post("/", videos.HandleSubmit(manager, jobs))
				r.Get("/", videos.HandleListUploaded(manager))
				r.Get("/profile", videos.HandleListProfile(manager))
				r.Get("/jobs/{jobID}", videos.HandleJobStatus(jobs))
				r.Delete("/{id}", videos.HandleDelete(manager))
			})
		})

		r.Get("/designs", catalogAPI.HandleList())
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", auth.HandleSignUp(provider, tokens))
		r.Post("/signin", auth.HandleSignIn(provider, tokens))
		r.Post("/signout", auth.HandleSignOut())
	})

	return r
}

func newDeriver() core.ThumbnailDeriver {
	ff := thumbnail.NewFFmpeg()
	if !ff.Available() {
		logrus.Warn("ffmpeg not found, uploaded videos will have no derived thumbnails")
		return nil
	}
	return ff
}

func waitForShutdown() {
	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-sigC
	logrus.Info("Shutting down...")
	os.Exit(0)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	listenAddress := flag.String("listen", ":3002", "The address to listen on.")
	logLevel := flag.String("loglevel", "info", "The log level (debug, info, warn, error).")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		logrus.Warn("JWT_SECRET is not set. Sessions will not survive verification.")
	}
	tokens := identity.NewTokenIssuer(jwtSecret)

	usersDB := os.Getenv("USERS_DB")
	if usersDB == "" {
		usersDB = "users.db"
	}
	provider := identity.NewLocalProvider(usersDB)

	store := stores.GetStore()
	assetStore := assets.GetAssetStore()
	manager := gallery.NewManager(store, assetStore, newDeriver())

	r := setupRouter(manager, provider, tokens)

	// With the filesystem asset store the uploaded objects are served back
	// from the same process.
	if os.Getenv("ASSET_STORE") == "filesystem" {
		assetPath := os.Getenv("ASSET_STORAGE_PATH")
		if assetPath == "" {
			assetPath = "./data/assets"
		}
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(assetPath))))
	}

	logrus.WithField("addr", *listenAddress).Info("starting server")
	go func() {
		if err := http.ListenAndServe(*listenAddress, r); err != nil {
			logrus.WithField("event", "start server").Fatal(err)
		}
	}()

	logrus.Debug("Server is running in the background")
	waitForShutdown()
}
