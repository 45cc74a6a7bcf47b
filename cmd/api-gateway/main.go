package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/uni-portal-api/api/swagger"
	"github.com/noah-isme/uni-portal-api/internal/handler"
	"github.com/noah-isme/uni-portal-api/internal/middleware"
	"github.com/noah-isme/uni-portal-api/internal/repository"
	"github.com/noah-isme/uni-portal-api/internal/service"
	"github.com/noah-isme/uni-portal-api/pkg/cache"
	"github.com/noah-isme/uni-portal-api/pkg/config"
	"github.com/noah-isme/uni-portal-api/pkg/database"
	"github.com/noah-isme/uni-portal-api/pkg/export"
	"github.com/noah-isme/uni-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/uni-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/uni-portal-api/pkg/middleware/requestid"
)

// @title University Portal API
// @version 1.0.0
// @description Academic analytics and records engine
// @BasePath /api/v1
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, cacheRepo != nil)

	students := repository.NewStudentRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	sessions := repository.NewStudySessionRepository(db)
	performances := repository.NewSubjectPerformanceRepository(db)
	goals := repository.NewLearningGoalRepository(db)
	requirements := repository.NewProgramRequirementsRepository(db)

	validate := validator.New()

	recordSvc := service.NewRecordService(enrollments, students, cacheSvc, metricsSvc, logr, service.RecordServiceConfig{
		DeansListGPA: cfg.Academics.DeansListGPA,
		HonorRollGPA: cfg.Academics.HonorRollGPA,
		ProbationGPA: cfg.Academics.ProbationGPA,
		CacheTTL:     cfg.Analytics.CacheTTL,
	})
	degreeSvc := service.NewDegreeService(enrollments, students, requirements, logr, service.DegreeServiceConfig{
		AvgCreditsPerSemester: cfg.Academics.AvgCreditsPerSemester,
		SemesterMonths:        cfg.Academics.SemesterMonths,
	})
	transcriptSvc := service.NewTranscriptService(enrollments, students, export.NewCSVExporter(), export.NewPDFExporter(), logr)
	sessionSvc := service.NewSessionService(sessions, students, validate, logr)
	patternSvc := service.NewPatternService(sessionSvc, logr)
	efficiencySvc := service.NewEfficiencyService(sessionSvc, logr, service.EfficiencyServiceConfig{
		TrendDeadband:          cfg.Analytics.TrendDeadband,
		HighLoadDailyHours:     cfg.Analytics.HighLoadDailyHours,
		ModerateLoadDailyHours: cfg.Analytics.ModerateLoadDailyHours,
		HighRiskFocusScore:     cfg.Analytics.HighRiskFocusScore,
		ModerateRiskFocusScore: cfg.Analytics.ModerateRiskFocusScore,
		EffectiveEfficiencyMin: cfg.Analytics.EffectiveEfficiencyMin,
	})
	recommendationSvc := service.NewRecommendationService(patternSvc, efficiencySvc, performances, goals, enrollments, logr, service.RecommendationServiceConfig{
		MaxSubjectFocus: cfg.Recommendations.MaxSubjectFocus,
		MaxTotal:        cfg.Recommendations.MaxTotal,
		HoursPerCredit:  cfg.Academics.HoursPerCredit,
	})
	chartSvc := service.NewChartService(recordSvc, degreeSvc, patternSvc, logr)
	goalSvc := service.NewGoalService(goals, students, validate, logr)

	recordHandler := handler.NewRecordHandler(recordSvc)
	degreeHandler := handler.NewDegreeHandler(degreeSvc)
	transcriptHandler := handler.NewTranscriptHandler(transcriptSvc, metricsSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	analyticsHandler := handler.NewAnalyticsHandler(sessionSvc, patternSvc, efficiencySvc)
	recommendationHandler := handler.NewRecommendationHandler(recommendationSvc)
	chartHandler := handler.NewChartHandler(chartSvc)
	goalHandler := handler.NewGoalHandler(goalSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/snapshot", metricsHandler.Snapshot)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	student := api.Group("/students/:id")
	{
		student.GET("/academic-record", recordHandler.AcademicRecord)
		student.GET("/academic-record/summary", recordHandler.Summary)
		student.PUT("/enrollments/:enrollmentId/grade", recordHandler.PostGrade)
		student.GET("/degree-progress", degreeHandler.Progress)
		student.GET("/transcript", transcriptHandler.Get)
		student.GET("/study-sessions", sessionHandler.List)
		student.POST("/study-sessions", sessionHandler.Log)
		student.PUT("/study-sessions/:sessionId", sessionHandler.Update)
		student.DELETE("/study-sessions/:sessionId", sessionHandler.Delete)
		student.GET("/analytics/study", analyticsHandler.Study)
		student.GET("/analytics/patterns", analyticsHandler.Patterns)
		student.GET("/analytics/efficiency", analyticsHandler.Efficiency)
		student.GET("/recommendations", recommendationHandler.List)
		student.GET("/charts/:series", chartHandler.Series)
		student.GET("/goals", goalHandler.List)
		student.POST("/goals", goalHandler.Create)
		student.PUT("/goals/:goalId", goalHandler.Update)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
