package main

import (
	"log"

	"abplayground/domain/experiment"
	"abplayground/internal/abtest"
	"abplayground/internal/config"
	"abplayground/ui"

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

	app, err := ui.NewApp(ui.Config{
		Port: appConfig.UI.Port,
		Defaults: experiment.Input{
			Alpha:       appConfig.Experiments.DefaultAlpha,
			Alternative: appConfig.Experiments.DefaultAlternative,
		},
	}, abtest.NewEvaluator())
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("🚀 Starting A/B playground on http://localhost:%s", appConfig.UI.Port)
	log.Fatal(app.Start())
}
