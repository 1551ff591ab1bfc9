package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultStorePath  = "db.txt"
	DefaultBackupPath = "db_backup.txt"
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("ℹ️  No .env file found, continuing...")
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetStorePath returns CAFE_DB_PATH or db.txt.
func GetStorePath() string {
	return getenv("CAFE_DB_PATH", DefaultStorePath)
}

// GetBackupPath returns CAFE_BACKUP_PATH or db_backup.txt.
func GetBackupPath() string {
	return getenv("CAFE_BACKUP_PATH", DefaultBackupPath)
}

// GetBackupOnStart reports whether CAFE_BACKUP_ON_START is a true value.
func GetBackupOnStart() bool {
	on, err := strconv.ParseBool(os.Getenv("CAFE_BACKUP_ON_START"))
	return err == nil && on
}

// GetSchemaPath returns CAFE_SCHEMA; empty selects the built-in catalog.
func GetSchemaPath() string {
	return os.Getenv("CAFE_SCHEMA")
}

func GetDatabaseURL() (string, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return "", fmt.Errorf("DATABASE_URL not set (in .env or environment)")
	}
	return url, nil
}
