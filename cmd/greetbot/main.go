package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/m3rciful/greetbot/bot"
	corecmd "github.com/m3rciful/greetbot/core/cmd"
)

func main() {
	// Optional .env for local development; real deployments use env vars.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: bot.Bootstrap,
	})
	if err != nil {
		log.Fatalf("greetbot: %v", err)
	}
}
