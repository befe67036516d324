package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZigaLarissa/EduAssist/internal/config"
	"github.com/ZigaLarissa/EduAssist/internal/handlers"
	"github.com/ZigaLarissa/EduAssist/internal/middleware"
	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/ZigaLarissa/EduAssist/internal/repository"
	"github.com/ZigaLarissa/EduAssist/internal/services"
	"github.com/ZigaLarissa/EduAssist/internal/storage"
	"github.com/ZigaLarissa/EduAssist/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, envFound := config.Load()
	log := logger.New(cfg.LogLevel, cfg.IsProduction())
	if !envFound {
		log.Info("No .env file found, using system environment variables")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fb, err := config.InitFirebase(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize Firebase")
	}
	defer fb.Close(log)

	images, err := newImageStore(ctx, cfg, fb, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize image store")
	}

	// Repositories
	users := repository.NewUserRepository(fb.Firestore)
	classes := repository.NewClassRepository(fb.Firestore)
	subjects := repository.NewSubjectRepository(fb.Firestore)
	students := repository.NewStudentRepository(fb.Firestore)
	homeworks := repository.NewHomeworkRepository(fb.Firestore)
	announcements := repository.NewAnnouncementRepository(fb.Firestore)
	chats := repository.NewChatRepository(fb.Firestore)

	// Services
	tokens := services.NewTokenCache(cfg.TokenCacheTTL)
	go tokens.Run(ctx, cfg.TokenCleanupEvery)

	notifier := services.NewNotificationService(fb.Messaging, log)
	signer := services.NewIdentityToolkitClient(cfg.APIKey, os.Getenv("FIREBASE_AUTH_EMULATOR_HOST"), 15*time.Second)
	recommender := services.NewRecommendationClient(cfg.RecommenderURL, cfg.RecommenderTimeout)

	authService := services.NewAuthService(fb.Auth, signer, users, classes, students, notifier, tokens, log)
	classService := services.NewClassService(classes, subjects, users, notifier, log)
	studentService := services.NewStudentService(students, classes, users, notifier, log)
	homeworkService := services.NewHomeworkService(homeworks, classes, users, images, recommender, notifier, log)
	announcementService := services.NewAnnouncementService(announcements, classes, students, users, images, notifier, log)
	chatService := services.NewChatService(users, chats, notifier, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	classHandler := handlers.NewClassHandler(classService)
	studentHandler := handlers.NewStudentHandler(studentService)
	homeworkHandler := handlers.NewHomeworkHandler(homeworkService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	chatHandler := handlers.NewChatHandler(chatService, cfg.StreamKeepAlive, log)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.Metrics(), middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "EduAssist API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.AuthMiddleware(authService)
	teacherOnly := middleware.RequireRole(authService, models.RoleTeacher)

	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			authProtected := auth.Group("", requireAuth)
			{
				authProtected.GET("/me", authHandler.Me)
				authProtected.POST("/update-fcm-token", authHandler.UpdateFCMToken)
				authProtected.POST("/logout", authHandler.Logout)
			}
		}

		protected := api.Group("", requireAuth)

		protected.GET("/users", chatHandler.GetChatUsers)

		classRoutes := protected.Group("/classes")
		{
			classRoutes.GET("", classHandler.GetJoinedClasses)
			classRoutes.POST("", teacherOnly, classHandler.CreateClass)
			classRoutes.GET("/available", classHandler.GetAvailableClasses)
			classRoutes.GET("/:classId", classHandler.GetClass)
			classRoutes.POST("/:classId/join", teacherOnly, classHandler.JoinClass)
			classRoutes.GET("/:classId/subjects", classHandler.GetClassSubjects)
			classRoutes.POST("/:classId/subjects", teacherOnly, classHandler.CreateSubject)
			classRoutes.GET("/:classId/students", studentHandler.GetClassStudents)
			classRoutes.GET("/:classId/homeworks", homeworkHandler.GetClassHomeworks)
		}

		protected.GET("/subjects", classHandler.GetSubjects)

		studentRoutes := protected.Group("/students")
		{
			studentRoutes.GET("/mine", studentHandler.GetMyStudents)
			studentRoutes.POST("", teacherOnly, studentHandler.AddStudent)
			studentRoutes.PUT("/:studentId", teacherOnly, studentHandler.UpdateStudent)
			studentRoutes.DELETE("/:studentId", teacherOnly, studentHandler.DeleteStudent)
		}

		homeworkRoutes := protected.Group("/homeworks")
		{
			homeworkRoutes.POST("", teacherOnly, homeworkHandler.CreateHomework)
			homeworkRoutes.GET("/:homeworkId", homeworkHandler.GetHomework)
			homeworkRoutes.POST("/:homeworkId/toggle-complete", homeworkHandler.ToggleComplete)
			homeworkRoutes.POST("/:homeworkId/recommendation", homeworkHandler.GetRecommendation)
		}

		announcementRoutes := protected.Group("/announcements")
		{
			announcementRoutes.GET("", announcementHandler.GetFeed)
			announcementRoutes.POST("", teacherOnly, announcementHandler.CreateAnnouncement)
			announcementRoutes.GET("/:announcementId", announcementHandler.GetAnnouncement)
		}

		chatRoutes := protected.Group("/chats")
		{
			chatRoutes.GET("", chatHandler.GetChats)
			chatRoutes.POST("", chatHandler.CreateChat)
			chatRoutes.GET("/stream", chatHandler.StreamChats)
			chatRoutes.GET("/:chatId/messages", chatHandler.GetMessages)
			chatRoutes.POST("/:chatId/messages", chatHandler.SendMessage)
			chatRoutes.GET("/:chatId/messages/stream", chatHandler.StreamMessages)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
}

// newImageStore picks the upload backend. A nil store disables image uploads.
func newImageStore(ctx context.Context, cfg *config.Config, fb *config.Firebase, log *logrus.Logger) (storage.ImageStore, error) {
	switch cfg.ImageStore {
	case "b2":
		store, err := storage.NewB2Store(ctx, cfg.B2AccountID, cfg.B2AppKey, cfg.B2Bucket)
		if err != nil {
			return nil, err
		}
		log.Infof("✅ Images are stored in B2 bucket %s", cfg.B2Bucket)
		return store, nil
	default:
		if cfg.StorageBucket == "" {
			log.Warn("⚠️  FIREBASE_STORAGE_BUCKET is not set, image uploads are disabled")
			return nil, nil
		}
		bucket, err := fb.Storage.Bucket(cfg.StorageBucket)
		if err != nil {
			return nil, err
		}
		log.Infof("✅ Images are stored in Firebase Storage bucket %s", cfg.StorageBucket)
		return storage.NewFirebaseStore(bucket, cfg.StorageBucket), nil
	}
}
