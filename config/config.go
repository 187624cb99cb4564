package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
)

type Config struct {
	Env            string
	Port           string
	DBURL          string
	SecretKey      string
	Algorithm      string
	AccessTTLMin   int
	RefreshTTLDays int
	HashWorkFactor int
}

func Load() *Config {
	env := getEnv("ENV", "development")
	return &Config{
		Env:            env,
		Port:           getEnv("PORT", "8080"),
		DBURL:          mustGetEnv("DB_URL"),
		SecretKey:      getSecretKey(env),
		Algorithm:      getAlgorithm(),
		AccessTTLMin:   getEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 30),
		RefreshTTLDays: getEnvAsInt("REFRESH_TOKEN_TTL_DAYS", 7),
		HashWorkFactor: getEnvAsInt("HASH_WORK_FACTOR", 12),
	}
}

// getSecretKey requires SECRET_KEY in production. Outside production a
// random per-process key is generated, so tokens do not survive restarts.
func getSecretKey(env string) string {
	if env == "production" {
		return mustGetEnv("SECRET_KEY")
	}
	if value := os.Getenv("SECRET_KEY"); value != "" {
		return value
	}
	log.Print("SECRET_KEY not set, using a random key for this process")
	return randomKey()
}

func getAlgorithm() string {
	alg := getEnv("ALGORITHM", "HS256")
	switch alg {
	case "HS256", "HS384", "HS512":
		return alg
	}
	log.Printf("Unsupported ALGORITHM %q, using HS256", alg)
	return "HS256"
}

func randomKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate random secret key: %v", err)
	}
	return hex.EncodeToString(b)
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
