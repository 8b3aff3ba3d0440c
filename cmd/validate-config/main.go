package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/fittrack/internal/config"
)

func main() {
	fmt.Println("Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("warning: .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration is valid.")
	fmt.Println("Details:")
	fmt.Printf("  - Port: %s\n", cfg.Port)
	fmt.Printf("  - Timezone: %s\n", cfg.Timezone)
	fmt.Printf("  - Storage: %s\n", cfg.Storage)
	if cfg.Storage == config.StoragePostgres {
		fmt.Printf("  - DB: %s@%s:%s/%s (sslmode=%s)\n", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.DBName, cfg.DB.SSLMode)
	}
	if cfg.Redis.Addr != "" {
		fmt.Printf("  - Redis: %s (db %d)\n", cfg.Redis.Addr, cfg.Redis.DB)
	} else {
		fmt.Println("  - Redis: <not set, in-process locks>")
	}
	fmt.Printf("  - AI Provider: %s (timeout %s)\n", cfg.AI.Provider, cfg.AI.Timeout)
	fmt.Printf("  - OpenAI API Key: %s (model %s)\n", maskToken(cfg.AI.OpenAIAPIKey), cfg.AI.OpenAIModel)
	fmt.Printf("  - Gemini API Key: %s (model %s)\n", maskToken(cfg.AI.GeminiAPIKey), cfg.AI.GeminiModel)
	if !cfg.HasAIKey() {
		fmt.Printf("  ! no key for %s, recipe generation will fail\n", cfg.AI.Provider)
	}
	fmt.Printf("  - CORS Origins: %s\n", strings.Join(cfg.CORS.AllowedOrigins, ", "))
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
