package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bechobazaar/geminiai/internal/advice"
	"github.com/bechobazaar/geminiai/internal/config"
	"github.com/bechobazaar/geminiai/internal/db"
	"github.com/bechobazaar/geminiai/internal/llm"
	"github.com/bechobazaar/geminiai/internal/middleware"
	"github.com/bechobazaar/geminiai/internal/search"
	"github.com/bechobazaar/geminiai/internal/storage"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"LLM_API_KEY",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	cfg := config.Load()

	// ───────────────────────── DB (optional) ─────────────────────────
	var history advice.Repository
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pool := db.ConnectPostgres(dsn)
		defer pool.Close()
		history = advice.NewPostgresRepository(pool)
	} else {
		log.Println("DATABASE_URL not set, keeping advice history in memory")
		history = advice.NewInMemoryRepository()
	}

	// ───────────────────────── ARCHIVE (optional) ─────────────────────────
	var archive advice.Archiver
	if storage.R2Configured() {
		r2, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("R2 init failed:", err)
		}
		archive = r2
	}

	// ───────────────────────── PIPELINE ─────────────────────────
	tavily := search.NewTavilyClient(cfg.TavilyAPIKey, cfg.TavilyURL, cfg.SearchTimeout)
	if !tavily.Configured() {
		log.Println("TAVILY_API_KEY not set, advice will run without web evidence")
	}
	gatherer := search.NewGatherer(tavily, cfg.MaxEvidence, cfg.SnippetLimit)

	client := llm.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMAPIURL, cfg.LLMTimeout)

	service := advice.NewService(cfg, gatherer, client, history, archive)
	handler := advice.NewHandler(service)

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.PlanMiddleware(cfg.PlanJWTSecret))

	// ───────────────────────── ROUTES ─────────────────────────
	r.POST("/advice", handler.Advise())
	r.GET("/advice/history", handler.History())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Printf("API running at http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
