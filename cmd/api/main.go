package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"abplayground/domain/experiment"
	"abplayground/internal/abtest"
	"abplayground/internal/api"
	"abplayground/internal/batch"
	"abplayground/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	evaluator := abtest.NewEvaluator()
	runner := batch.NewEvaluator(evaluator, batch.Config{
		MaxConcurrency:     appConfig.Batch.MaxConcurrency,
		DefaultAlpha:       appConfig.Experiments.DefaultAlpha,
		DefaultAlternative: appConfig.Experiments.DefaultAlternative,
	})
	defaults := experiment.Input{
		Alpha:       appConfig.Experiments.DefaultAlpha,
		Alternative: appConfig.Experiments.DefaultAlternative,
	}
	router := api.NewRouter(api.NewHandler(evaluator, runner, defaults))

	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("🚀 Performance profiling server starting on :%s", appConfig.Profiling.Port)
			log.Printf("💡 View profiles: go tool pprof -http=:8081 http://localhost:%s/debug/pprof/profile?seconds=30", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("❌ pprof server failed: %v", err)
			}
		}()
	}

	log.Printf("🚀 Starting A/B evaluation API on port %s (alpha=%v, alternative=%s)",
		appConfig.Server.Port, appConfig.Experiments.DefaultAlpha, appConfig.Experiments.DefaultAlternative)
	log.Fatal(router.Run(":" + appConfig.Server.Port))
}
