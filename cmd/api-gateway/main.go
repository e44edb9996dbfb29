package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/schoolops-api/api/swagger"
	"github.com/noah-isme/schoolops-api/internal/handler"
	internalmiddleware "github.com/noah-isme/schoolops-api/internal/middleware"
	"github.com/noah-isme/schoolops-api/internal/repository"
	"github.com/noah-isme/schoolops-api/internal/service"
	"github.com/noah-isme/schoolops-api/migrations"
	"github.com/noah-isme/schoolops-api/pkg/cache"
	"github.com/noah-isme/schoolops-api/pkg/config"
	"github.com/noah-isme/schoolops-api/pkg/database"
	"github.com/noah-isme/schoolops-api/pkg/jobs"
	"github.com/noah-isme/schoolops-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/schoolops-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/schoolops-api/pkg/middleware/requestid"
	"github.com/noah-isme/schoolops-api/pkg/storage"
)

// @title SchoolOps API
// @version 1.0.0
// @description Accounts ledger, enrollment, course administration and the public notice board of a school.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(context.Background(), cfg.Database, logr)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.RunMigrations {
		version, err := database.Migrate(db, migrations.FS)
		if err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
		logr.Info("schema up to date", zap.Uint("version", version))
	}

	checks := map[string]handler.Pinger{"database": db}

	var cacheClient redis.Cmdable
	if cfg.AccountCache.Enabled {
		redisClient, err := cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, account cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheClient = redisClient
			checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			})
		}
	}

	files, err := storage.NewLocalStorage(cfg.Media.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare media storage", zap.Error(err))
	}
	objects := storage.NewObjectStore(files, cfg.Media.BaseURL)

	metricsSvc := service.NewMetricsService()
	validate := validator.New()
	uow := service.NewSQLUnitOfWork(repository.NewStore(db))

	cacheSvc := service.NewCacheService(repository.NewCacheRepository(cacheClient), metricsSvc, cfg.AccountCache.TTL, logr, cacheClient != nil)

	images := service.NewImageService(objects, cfg.Media, metricsSvc, logr)
	releaseQueue := jobs.NewQueue(service.ImageReleaseJob, images.HandleJob, jobs.QueueConfig{
		Workers:    cfg.ImageCleanup.Workers,
		MaxRetries: cfg.ImageCleanup.Retries,
		RetryDelay: cfg.ImageCleanup.RetryDelay,
		Logger:     logr,
		OnGiveUp: func(job jobs.Job, err error) {
			logr.Error("image release abandoned", zap.String("public_id", job.ID), zap.Int("attempts", job.Attempt), zap.Error(err))
		},
	})
	images.UseQueue(releaseQueue)

	ledger := service.NewLedgerService(uow, cacheSvc, metricsSvc, validate, logr)
	accounts := service.NewAccountService(uow, cacheSvc, cfg.AccountCache.TTL, logr)
	enrollments := service.NewEnrollmentService(uow, ledger, metricsSvc, logr)
	assignments := service.NewCourseAssignmentService(uow, ledger, metricsSvc, logr)
	reaper := service.NewReaperService(uow, images, cacheSvc, metricsSvc, logr)
	attendance := service.NewAttendanceService(uow, validate, logr)
	students := service.NewStudentService(uow, images, validate, logr)
	teachers := service.NewTeacherService(uow, images, validate, logr)
	courses := service.NewCourseService(uow, images, validate, logr)
	classroom := service.NewClassroomService(uow, images, validate, logr)
	notices := service.NewNoticeService(uow, images, validate, logr)
	gallery := service.NewGalleryService(uow, images, validate, logr)
	enquiries := service.NewEnquiryService(uow, validate, logr)
	identity := service.NewIdentityService(uow, logr)
	authSvc := service.NewAuthService(cfg.JWT.Secret)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(corsmiddleware.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		PublicOrigins:  cfg.CORS.PublicOrigins,
		PublicPrefix:   cfg.APIPrefix + "/public",
	}))
	r.Use(internalmiddleware.Metrics(metricsSvc, "/health", "/ready", "/metrics"))

	system := handler.NewSystemHandler(checks, objects, logr)
	r.GET("/health", system.Health)
	r.GET("/ready", system.Ready)
	r.GET("/media/*path", system.Media)
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := handler.Handlers{
		Accounts:  handler.NewAccountHandler(accounts, ledger),
		Students:  handler.NewStudentHandler(students, reaper, enrollments, attendance),
		Teachers:  handler.NewTeacherHandler(teachers, reaper),
		Courses:   handler.NewCourseHandler(courses, reaper, assignments, attendance, classroom),
		ClassWork: handler.NewClassWorkHandler(classroom),
		Me:        handler.NewMeHandler(students, teachers, accounts),
		Notices:   handler.NewNoticeHandler(notices),
		Enquiries: handler.NewEnquiryHandler(enquiries),
		Gallery:   handler.NewGalleryHandler(gallery),
	}
	handler.RegisterPublicRoutes(r.Group(cfg.APIPrefix+"/public"), handlers)

	api := r.Group(cfg.APIPrefix, internalmiddleware.JWT(authSvc), internalmiddleware.Identity(identity))
	handler.RegisterRoutes(api, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	releaseQueue.Start(ctx)
	defer releaseQueue.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
