package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds every process-wide setting. It is populated once at startup
// and read-only afterwards.
type Config struct {
	Port          string
	MongoURI      string
	MongoDBName   string
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
	UploadDir     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, relying on environment")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "5000"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDBName:   getEnv("MONGO_DB_NAME", "student_portal"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET variable is not set")
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD variables are not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
