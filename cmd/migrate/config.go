package main

import (
	"github.com/joho/godotenv"
)

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}
