package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdalla343/kushof/internal/config"
	"github.com/Abdalla343/kushof/internal/handlers"
	"github.com/Abdalla343/kushof/internal/repository"
	"github.com/Abdalla343/kushof/internal/services"
	"github.com/Abdalla343/kushof/pkg/database"
	"github.com/Abdalla343/kushof/pkg/paytabs"
	"github.com/Abdalla343/kushof/pkg/storage"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаемся к базе данных
	db, err := database.NewDatabase(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Создаем администратора по умолчанию
	if err := db.CreateDefaultAdmin(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Инициализируем файловое хранилище
	fileStorage, err := storage.NewStorage(cfg.UploadPath, cfg.MaxFileSize)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Инициализируем клиент платежного шлюза
	payTabs := paytabs.NewClient(cfg.PayTabsProfileID, cfg.PayTabsServerKey, cfg.PayTabsRegion)

	// Создаем репозитории
	userRepo := repository.NewUserRepository(db.DB)
	classRepo := repository.NewClassRepository(db.DB)
	subjectRepo := repository.NewSubjectRepository(db.DB)
	examRepo := repository.NewExamRepository(db.DB)
	gradeRepo := repository.NewGradeRepository(db.DB)

	// Создаем сервисы
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration)
	classService := services.NewClassService(classRepo, userRepo)
	subjectService := services.NewSubjectService(subjectRepo, classRepo)
	examService := services.NewExamService(examRepo, subjectRepo, classRepo, fileStorage)
	gradeService := services.NewGradeService(gradeRepo, subjectRepo, classRepo)
	adminService := services.NewAdminService(userRepo)
	paymentService := services.NewPaymentService(payTabs, userRepo)

	// Создаем обработчики
	authHandler := handlers.NewAuthHandler(authService)
	classHandler := handlers.NewClassHandler(classService)
	subjectHandler := handlers.NewSubjectHandler(subjectService)
	examHandler := handlers.NewExamHandler(examService)
	gradeHandler := handlers.NewGradeHandler(gradeService)
	adminHandler := handlers.NewAdminHandler(adminService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	router := gin.Default()

	// Middleware
	router.Use(handlers.CORSMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Авторизация
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/profile", handlers.AuthMiddleware(authService), authHandler.GetProfile)
			auth.PATCH("/is-prime", handlers.AuthMiddleware(authService), authHandler.UpdateIsPrime)
		}

		// Классы
		classes := api.Group("/classes", handlers.AuthMiddleware(authService))
		{
			classes.POST("", handlers.TeacherOnlyMiddleware(), classHandler.CreateClass)
			classes.GET("", classHandler.GetClasses)
			classes.GET("/available-students", handlers.TeacherOnlyMiddleware(), classHandler.GetAvailableStudents)
			classes.GET("/:id", classHandler.GetClass)
			classes.POST("/:id/students", handlers.TeacherOnlyMiddleware(), classHandler.AddStudents)
		}

		// Предметы
		subjects := api.Group("/subjects", handlers.AuthMiddleware(authService))
		{
			subjects.POST("", handlers.TeacherOnlyMiddleware(), subjectHandler.CreateSubject)
			subjects.GET("/class/:classId", subjectHandler.GetSubjectsByClass)
			subjects.GET("/:id", subjectHandler.GetSubject)
			subjects.PUT("/:id", handlers.TeacherOnlyMiddleware(), subjectHandler.UpdateSubject)
		}

		// Экзамены
		exams := api.Group("/exams", handlers.AuthMiddleware(authService))
		{
			exams.POST("", handlers.TeacherOnlyMiddleware(), examHandler.CreateExam)
			exams.GET("", examHandler.GetExams)
			exams.GET("/:id", examHandler.GetExam)
			exams.POST("/:id/submit", handlers.StudentOnlyMiddleware(), examHandler.SubmitAnswer)
			exams.GET("/:id/download", examHandler.DownloadExam)
			exams.GET("/answer/:id/download", handlers.TeacherOnlyMiddleware(), examHandler.DownloadAnswer)
		}

		// Оценки
		grades := api.Group("/grades", handlers.AuthMiddleware(authService))
		{
			grades.POST("", handlers.TeacherOnlyMiddleware(), gradeHandler.AssignGrades)
			grades.GET("/my-grades", handlers.StudentOnlyMiddleware(), gradeHandler.GetMyGrades)
			grades.GET("/subject/:subjectId", handlers.TeacherOnlyMiddleware(), gradeHandler.GetSubjectGrades)
			grades.GET("/subject/:subjectId/my-grade", handlers.StudentOnlyMiddleware(), gradeHandler.GetMySubjectGrade)
		}

		// Оплата премиум-доступа
		payment := api.Group("/payment")
		{
			payment.POST("/checkout", handlers.AuthMiddleware(authService), paymentHandler.Checkout)
			payment.POST("/callback", paymentHandler.Callback)
			payment.GET("/success", paymentHandler.Success)
		}

		// Администрирование
		admin := api.Group("/admin", handlers.AuthMiddleware(authService), handlers.AdminOnlyMiddleware())
		{
			admin.GET("/users", adminHandler.GetUsers)
			admin.PUT("/approve/:id", adminHandler.ApproveTeacher)
			admin.DELETE("/user/:id", adminHandler.DeleteUser)
		}
	}

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
