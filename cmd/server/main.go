// wordtrainer is a vocabulary-drilling service: users store word/translation
// pairs, practice them, and receive AI-generated suggestions for new words
// tailored to their existing vocabulary.
package main

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/gaborvas/wordtrainer/internal/api/handlers"
	"github.com/gaborvas/wordtrainer/internal/config"
	"github.com/gaborvas/wordtrainer/internal/database"
	"github.com/gaborvas/wordtrainer/internal/metrics"
	"github.com/gaborvas/wordtrainer/internal/middleware"
	"github.com/gaborvas/wordtrainer/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Refuse to serve against a store that was altered outside the
	// application. Must run before gorm touches the file.
	guard := database.NewIntegrityGuard(cfg.DBPath, cfg.IntegrityKey)
	if err := guard.Verify(); err != nil {
		log.Fatalf("Store integrity check failed: %v", err)
	}

	if err := database.Initialize(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := database.GetDB()

	// Migrations may have rewritten the file; re-anchor the digest.
	if err := guard.UpdateAfterCommit(); err != nil {
		log.Fatalf("Failed to refresh store digest: %v", err)
	}

	fallback, err := services.LoadFallbackDictionary(cfg.FallbackDictPath)
	if err != nil {
		log.Fatalf("Failed to load fallback dictionary: %v", err)
	}

	words := services.NewWordStore(db, guard)
	users := services.NewUserStore(db, guard)
	cache := services.NewSuggestionCache(db, guard, words)
	flights := services.NewFlightTable()
	generator := services.NewWordGenerator(
		services.NewOllamaClient(cfg.OllamaURL), cfg.OllamaModel, cfg.GenerateTimeout)
	suggestions := services.NewSuggestionService(cache, flights, generator, words, fallback, cfg.AIEnabled)
	importer := services.NewWordImporter(words)

	if cfg.PrecacheOnStart {
		services.NewPrecacher(suggestions, users, cfg.PrecacheWorkers).Start()
	}
	if cfg.TopUpEnabled {
		scheduler := services.NewTopUpScheduler(suggestions, users, cache, cfg.TopUpInterval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	metrics.UpdateVocabularyMetrics(db)

	router := setupRouter(cfg, users, words, importer, suggestions)

	log.Printf("wordtrainer listening on :%s (ai=%v, model=%s)", cfg.Port, cfg.AIEnabled, cfg.OllamaModel)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func setupRouter(cfg *config.Config, users *services.UserStore, words *services.WordStore,
	importer *services.WordImporter, suggestions *services.SuggestionService) *gin.Engine {

	router := gin.Default()
	router.Use(metrics.HTTPMetrics())

	corsConfig := cors.DefaultConfig()
	if cfg.CORSOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	router.Use(cors.New(corsConfig))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	router.Use(sessions.Sessions("wordtrainer_session", store))

	authHandler := handlers.NewAuthHandler(users)
	wordHandler := handlers.NewWordHandler(words, importer)
	practiceHandler := handlers.NewPracticeHandler(words, users)
	suggestHandler := handlers.NewSuggestHandler(suggestions, words)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	authed := router.Group("/", middleware.RequireLogin())
	{
		authed.GET("/get_user_info", authHandler.GetUserInfo)
		authed.POST("/update_user", authHandler.UpdateUser)
		authed.POST("/set_theme", authHandler.SetTheme)

		authed.POST("/add_word", wordHandler.AddWord)
		authed.GET("/get_user_words", wordHandler.GetUserWords)
		authed.GET("/get_word_by_id", wordHandler.GetWordByID)
		authed.POST("/update_word", wordHandler.UpdateWord)
		authed.POST("/delete_word", wordHandler.DeleteWord)
		authed.GET("/get_word_count", wordHandler.GetWordCount)
		authed.POST("/import_words", wordHandler.ImportWords)

		authed.GET("/get_random_word", practiceHandler.GetRandomWord)
		authed.POST("/update_score", practiceHandler.UpdateScore)
		authed.POST("/get_choices", practiceHandler.GetChoices)
		authed.POST("/switch_translation", practiceHandler.SwitchTranslation)
		authed.GET("/get_learning_words", practiceHandler.GetLearningWords)
		authed.GET("/get_word_statistics", practiceHandler.GetWordStatistics)

		// Suggestion endpoints sit in front of a slow AI backend;
		// cap how fast a single user can drive them.
		suggest := authed.Group("/", middleware.PerUserRateLimit(rate.Limit(1), 5))
		{
			suggest.GET("/recommend_word", suggestHandler.RecommendWord)
			suggest.GET("/recommend_smart_word", suggestHandler.RecommendSmartWord)
			suggest.POST("/accept_word", suggestHandler.AcceptWord)
		}
	}

	return router
}
