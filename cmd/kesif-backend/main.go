package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kesif-backend/internal/config"
	"kesif-backend/internal/database"
	httpapi "kesif-backend/internal/http"
	"kesif-backend/internal/repository"
	"kesif-backend/internal/service"
	"kesif-backend/internal/storage"
	"kesif-backend/internal/store"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	kv := store.NewRedisKV(redisClient)
	sessions := store.NewSessionStore(kv)

	// repositories
	influencersRepo := repository.NewPostgresInfluencersRepository(db)
	brandsRepo := repository.NewPostgresBrandsRepository(db)
	sliderRepo := repository.NewPostgresSliderRepository(db)
	aboutRepo := repository.NewPostgresAboutRepository(db)
	adminsRepo := repository.NewPostgresAdminsRepository(db)
	codesRepo := repository.NewPostgresAccessCodesRepository(db)
	siteMetaRepo := repository.NewPostgresSiteMetaRepository(db)
	logsRepo := repository.NewPostgresLogsRepository(db)

	// services
	mailer := service.NewMailer(cfg.SMTP, logger)
	authService := service.NewAuthService(adminsRepo, codesRepo, logsRepo, sessions, mailer, logger)
	followerService := service.NewFollowerLookupService(cfg.Follower.APIBaseURL, cfg.Follower.PageBaseURL, logger)

	var uploader storage.Uploader
	if cfg.Upload.CloudinaryURL != "" {
		uploader, err = storage.NewCloudinaryUploader(cfg.Upload.CloudinaryURL, "kesif")
		if err != nil {
			logger.Fatal("Failed to init cloudinary uploader", zap.Error(err))
		}
	} else {
		logger.Warn("CLOUDINARY_URL not set, using local disk uploads", zap.String("dir", cfg.Upload.LocalDir))
		uploader, err = storage.NewLocalUploader(cfg.Upload.LocalDir, cfg.Upload.PublicPrefix)
		if err != nil {
			logger.Fatal("Failed to init local uploader", zap.Error(err))
		}
	}

	handlers := &httpapi.Handlers{
		Auth:        httpapi.NewAuthHandler(authService, logger),
		Influencers: httpapi.NewInfluencersHandler(influencersRepo, logsRepo, logger),
		Brands:      httpapi.NewBrandsHandler(brandsRepo, logsRepo, logger),
		Slider:      httpapi.NewSliderHandler(sliderRepo, logsRepo, logger),
		About:       httpapi.NewAboutHandler(aboutRepo, logsRepo, logger),
		SiteMeta:    httpapi.NewSiteMetaHandler(siteMetaRepo, logsRepo, logger),
		Logs:        httpapi.NewLogsHandler(logsRepo, logger),
		Follower:    httpapi.NewFollowerHandler(followerService),
		Proposal:    httpapi.NewProposalHandler(mailer, logger),
		Upload:      httpapi.NewUploadHandler(uploader, logger),
		Admins:      httpapi.NewAdminsHandler(adminsRepo, logsRepo, logger),
		Export:      httpapi.NewExportHandler(influencersRepo, logsRepo, logger),
	}

	router := httpapi.NewRouter(logger)
	router.RegisterPublicRoutes(handlers)
	router.RegisterAdminRoutes(handlers, authService)

	srv := service.NewServer(cfg.HTTP.Addr, router, logger)

	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		logger.Error("HTTP server exited", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
}
