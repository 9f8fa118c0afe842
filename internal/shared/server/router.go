package server

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"planner-backend/internal/advisor"
	"planner-backend/internal/advisor/openai"
	"planner-backend/internal/catalog"
	"planner-backend/internal/planner"
	"planner-backend/internal/recommend"
	"planner-backend/internal/shared/config"
	"planner-backend/internal/shared/metrics"
	"planner-backend/internal/shared/server/middleware"
	"planner-backend/internal/shared/server/respond"
	"planner-backend/internal/shared/storage/db"
	"planner-backend/internal/shared/telemetry"
	"planner-backend/internal/students"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Identity(cfg.Env),
		middleware.RateLimit(rateLimits()),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.CatalogStore == "postgres" && cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			telemetry.Warn("db.fallback_memory", map[string]any{"error": err.Error()})
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				telemetry.Warn("db.migrations_failed", map[string]any{"error": err.Error()})
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	catalogRepo := newCatalogRepo(cfg, sqlDB)
	catalogSvc := catalog.NewService(catalogRepo, cfg.CatalogTTL)
	seedCatalog(catalogSvc, cfg.CatalogSeedFile)
	catalogHandler := catalog.NewHandler(catalogSvc)

	var planRepo planner.Repo
	if sqlDB != nil {
		planRepo = &planner.PGRepo{DB: sqlDB}
	} else {
		planRepo = planner.NewMemoryRepo()
	}
	planSvc := &planner.Service{Repo: planRepo}
	planHandler := planner.NewHandler(planSvc)

	var profilesRepo students.ProfilesRepo
	var programsRepo students.ProgramsRepo
	if sqlDB != nil {
		profilesRepo = &students.PGRepo{DB: sqlDB}
		programsRepo = &students.PGProgramsRepo{DB: sqlDB}
	} else {
		profilesRepo = students.NewMemoryRepo()
		programsRepo = &students.MemoryProgramsRepo{}
	}
	studentSvc := &students.Service{Profiles: profilesRepo, Programs: programsRepo}
	studentHandler := students.NewHandler(studentSvc)

	recHandler := &recommend.Handler{
		Catalog:  catalogSvc,
		Plans:    planSvc,
		Students: studentSvc,
		Engine:   recommend.NewEngine(),
		Enhancer: &recommend.Enhancer{Client: newAdvisorClient(cfg), Timeout: cfg.AdvisorTimeout},
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	catalogHandler.RegisterRoutes(api)
	planHandler.RegisterRoutes(api)
	studentHandler.RegisterRoutes(api)
	recHandler.RegisterRoutes(api)

	return r
}

func newCatalogRepo(cfg config.Config, sqlDB *sql.DB) catalog.Repo {
	switch {
	case cfg.CatalogStore == "postgres" && sqlDB != nil:
		return &catalog.PGRepo{DB: sqlDB}
	case cfg.CatalogStore == "sqlite":
		repo, err := catalog.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			telemetry.Warn("catalog.sqlite_fallback_memory", map[string]any{"error": err.Error()})
			return catalog.NewMemoryRepo()
		}
		return repo
	default:
		return catalog.NewMemoryRepo()
	}
}

func newAdvisorClient(cfg config.Config) advisor.Client {
	if cfg.AdvisorProvider != "openai" {
		return advisor.PlaceholderClient{}
	}
	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.AdvisorModel, cfg.AdvisorTimeout)
	if err != nil {
		telemetry.Warn("advisor.disabled", map[string]any{"error": err.Error()})
		return advisor.PlaceholderClient{}
	}
	return client
}

func seedCatalog(svc *catalog.Service, path string) {
	if path == "" {
		return
	}
	courses, err := catalog.LoadSeedFile(path)
	if err != nil {
		telemetry.Warn("catalog.seed_load_failed", map[string]any{"error": err.Error()})
		return
	}
	if _, err := svc.Seed(context.Background(), courses); err != nil {
		telemetry.Warn("catalog.seed_failed", map[string]any{"error": err.Error()})
	}
}

// rateLimits keeps polling of recommendations cheaper to allow while
// protecting plan mutations.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/recommendations" {
				return "RECOMMENDATIONS"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":         {Rate: 5, Burst: 20},
			"RECOMMENDATIONS": {Rate: 10, Burst: 30},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
