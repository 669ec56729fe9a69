package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/access"
	"github.com/cloudcrave/craveops/internal/api"
	"github.com/cloudcrave/craveops/internal/brands"
	"github.com/cloudcrave/craveops/internal/calendar"
	"github.com/cloudcrave/craveops/internal/config"
	"github.com/cloudcrave/craveops/internal/db"
	"github.com/cloudcrave/craveops/internal/genai"
	"github.com/cloudcrave/craveops/internal/mentorship"
	"github.com/cloudcrave/craveops/internal/middleware"
	"github.com/cloudcrave/craveops/internal/notify"
	"github.com/cloudcrave/craveops/internal/observ"
	"github.com/cloudcrave/craveops/internal/state"
	"github.com/cloudcrave/craveops/internal/store"
	"github.com/cloudcrave/craveops/internal/tasks"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	allowlist, err := config.LoadAllowlist(cfg.AllowlistFile)
	if err != nil {
		return fmt.Errorf("load allowlist: %w", err)
	}

	// Startup has no parent deadline; Background is the right root here.
	ctx := context.Background()

	database, err := db.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	snapshots := store.NewPostgresSnapshots(database.Pool())
	if err := snapshots.EnsureSchema(ctx); err != nil {
		return err
	}
	sessions := store.NewRedisSessions(redisClient)

	app, err := state.Load(ctx, snapshots, logger)
	if err != nil {
		return fmt.Errorf("load entity store: %w", err)
	}

	accessCtl := access.NewController(app, allowlist)
	taskCtl := tasks.NewController(app)
	brandCtl := brands.NewController(app)
	mentorCtl := mentorship.NewController(app)
	notifySvc := notify.NewService(app)
	aiClient := genai.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, logger)
	calendarCtl := calendar.NewController(app, aiClient)

	authHandler := api.NewAuthHandler(accessCtl, sessions, cfg.JWTSecret, logger)
	userHandler := api.NewUserHandler(app, accessCtl, mentorCtl, logger)
	taskHandler := api.NewTaskHandler(taskCtl, logger)
	brandHandler := api.NewBrandHandler(brandCtl, logger)
	calendarHandler := api.NewCalendarHandler(calendarCtl, logger)
	notifHandler := api.NewNotificationHandler(notifySvc, logger)
	summaryHandler := api.NewSummaryHandler(taskCtl, aiClient, logger)
	prefsHandler := api.NewPrefsHandler(sessions, logger)

	srv := gin.New()
	srv.Use(gin.Logger(), gin.Recovery())

	logger.Info("starting CraveOps",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)

	// Health stays public so load balancers can probe it.
	srv.GET("/v1/health", func(c *gin.Context) {
		if err := database.Health(c.Request.Context()); err != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	srv.POST("/v1/auth/login", authHandler.Login)
	srv.POST("/v1/auth/register", authHandler.Register)

	v1 := srv.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret, sessions, accessCtl.Lookup))

	v1.POST("/auth/logout", authHandler.Logout)

	v1.GET("/users", userHandler.List)
	v1.GET("/users/me", userHandler.Me)
	v1.PATCH("/users/:id", userHandler.Update)
	v1.DELETE("/users/:id", userHandler.Delete)
	v1.POST("/users/:id/claim", userHandler.Claim)
	v1.PUT("/users/:id/mentor", userHandler.AssignMentor)

	v1.GET("/tasks", taskHandler.List)
	v1.POST("/tasks", taskHandler.Create)
	v1.GET("/tasks/:id", taskHandler.Get)
	v1.PATCH("/tasks/:id", taskHandler.Edit)
	v1.POST("/tasks/:id/comments", taskHandler.Comment)
	v1.POST("/tasks/:id/review", taskHandler.Review)

	v1.GET("/brands", brandHandler.List)
	v1.POST("/brands", brandHandler.Create)
	v1.PATCH("/brands/:id", brandHandler.Update)

	v1.GET("/calendars", calendarHandler.List)
	v1.POST("/calendars", calendarHandler.Create)
	v1.PUT("/calendars/:id", calendarHandler.Save)
	v1.POST("/calendars/:id/entries/:entryID/suggest", calendarHandler.Suggest)

	v1.GET("/notifications", notifHandler.List)
	v1.POST("/notifications/:id/read", notifHandler.MarkRead)
	v1.POST("/notifications/read-all", notifHandler.MarkAllRead)

	v1.POST("/summary", summaryHandler.Generate)

	v1.GET("/prefs/theme", prefsHandler.GetTheme)
	v1.PUT("/prefs/theme", prefsHandler.SetTheme)

	return srv.Run(":" + cfg.Port)
}
