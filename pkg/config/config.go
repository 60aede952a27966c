package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every process-level setting. It is built once in main and
// passed down explicitly; no package keeps a global copy.
type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	SessionJWTSecret        string
}

// Load reads the environment (and .env when present) into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		PostgresConnStr:         os.Getenv("POSTGRES_CONN_STR"),
		MongoURI:                os.Getenv("MONGO_URI"),
		SessionJWTSecret:        getEnv("SESSION_JWT_SECRET", "supersecretjwtkey"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
