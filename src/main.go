package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ninadtherock/MindCare/src/api"
	"github.com/ninadtherock/MindCare/src/config"
	"github.com/ninadtherock/MindCare/src/database"
	"github.com/ninadtherock/MindCare/src/middleware"
	"github.com/ninadtherock/MindCare/src/models"
	"github.com/ninadtherock/MindCare/src/realtime"
	"github.com/ninadtherock/MindCare/src/repository"
	"github.com/ninadtherock/MindCare/src/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to load configuration: %v", err)
	}

	db, err := database.Init(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}

	runMigrations(db)

	hub := realtime.NewHub()

	// Repositories
	assessmentRepo := repository.NewAssessmentRepository(db, hub)
	progressRepo := repository.NewProgressRepository(db, hub)
	counselorRepo := repository.NewCounselorRepository(db)
	chatRepo := repository.NewChatRepository()
	log.Println("INFO: [Main] Repositories initialized.")

	if err := counselorRepo.SeedDefaults(defaultCounselors()); err != nil {
		log.Fatalf("FATAL: [Main] Failed to seed counselor directory: %v", err)
	}

	// Services
	bank := services.NewQuestionBank()
	assessmentService := services.NewAssessmentService(bank, assessmentRepo)
	chatService := services.NewChatService(chatRepo)
	progressService := services.NewProgressService(progressRepo, assessmentRepo, hub)
	schedulerService := services.NewSchedulerService(cfg.Scheduling, counselorRepo)
	log.Println("INFO: [Main] Services initialized.")

	handler := api.NewAPIHandler(
		assessmentService,
		chatService,
		progressService,
		schedulerService,
		assessmentRepo,
		counselorRepo,
	)

	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())

	registerRoutes(r, handler)
	log.Println("INFO: [Main] Routes registered.")

	serverPort := ":" + cfg.Server.Port
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	err := db.AutoMigrate(
		&models.Assessment{},
		&models.ProgressEntry{},
		&models.CounselorProfile{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/init", handler.InitHandler)

		assessmentGroup := apiGroup.Group("/assessment")
		{
			assessmentGroup.POST("/start", handler.StartAssessmentHandler)
			assessmentGroup.POST("/:sessionID/answer", handler.AnswerHandler)
			assessmentGroup.POST("/:sessionID/reset", handler.ResetAssessmentHandler)
			assessmentGroup.GET("/:sessionID/result", handler.AssessmentResultHandler)
		}
		apiGroup.GET("/assessments", handler.AssessmentHistoryHandler)

		apiGroup.GET("/progress", handler.ProgressHandler)

		apiGroup.POST("/chat", handler.ChatHandler)
		apiGroup.GET("/chat/history", handler.ChatHistoryHandler)

		apiGroup.GET("/counselors", handler.ListCounselorsHandler)
		apiGroup.POST("/counselors/enroll", handler.EnrollCounselorHandler)

		apiGroup.POST("/schedule", handler.ScheduleHandler)
	}
}

// defaultCounselors seeds a fresh deployment so the booking flow works
// before any counselor has enrolled.
func defaultCounselors() []models.CounselorProfile {
	return []models.CounselorProfile{
		{
			FullName:        "Dr. Sarah Johnson",
			Email:           "sarah.johnson@mindcare.com",
			Specialization:  "Anxiety & Depression",
			ExperienceYears: 12,
			Bio:             "Licensed clinical psychologist focused on anxiety and mood disorders.",
			Availability:    "Mon-Fri, 9am-5pm UTC",
			Rating:          4.9,
			Reviews:         120,
		},
		{
			FullName:        "Dr. Michael Chen",
			Email:           "michael.chen@mindcare.com",
			Specialization:  "Stress Management,Sleep",
			ExperienceYears: 9,
			Bio:             "Specializes in stress-related sleep disruption and burnout recovery.",
			Availability:    "Tue-Sat, 10am-6pm UTC",
			Rating:          4.8,
			Reviews:         87,
		},
		{
			FullName:        "Dr. Amara Okafor",
			Email:           "amara.okafor@mindcare.com",
			Specialization:  "Relationships,Work-Life Balance",
			ExperienceYears: 15,
			Bio:             "Counselor for social and workplace wellbeing with a focus on young adults.",
			Availability:    "Mon-Thu, 8am-4pm UTC",
			Rating:          4.7,
			Reviews:         64,
		},
	}
}
