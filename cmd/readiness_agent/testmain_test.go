package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain picks up READINESS_* and RATE_LIMIT_* overrides from a local .env when present.
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}
