package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultCascadePaths are the usual install locations of the frontal face cascade.
var DefaultCascadePaths = []string{
	"/usr/share/opencv4/haarcascades/haarcascade_frontalface_default.xml",
	"/usr/local/share/opencv4/haarcascades/haarcascade_frontalface_default.xml",
	"haarcascade_frontalface_default.xml",
}

type Config struct {
	ImagePath      string
	ModelPath      string
	ConfigPath     string
	OutputPath     string
	CascadePaths   []string
	DrawLimit      int // Ile najlepszych detekcji rysować
	LogDirectory   string
	DatabasePath   string
	HistoryEnabled bool // Zapisuj wyniki każdego uruchomienia do SQLite
}

// Load reads the optional .env file and then the environment.
func Load() *Config {
	// .env jest opcjonalny
	_ = godotenv.Load()

	return &Config{
		ImagePath:      getEnv("IMAGE_PATH", filepath.Join("cache", "image_with_faces.jpg")),
		ModelPath:      getEnv("MODEL_PATH", filepath.Join("models", "opencv_face_detector_uint8.pb")),
		ConfigPath:     getEnv("CONFIG_PATH", filepath.Join("models", "opencv_face_detector.pbtxt")),
		OutputPath:     getEnv("OUTPUT_PATH", "facediag_detection_results.jpg"),
		CascadePaths:   getEnvAsList("CASCADE_PATHS", DefaultCascadePaths),
		DrawLimit:      getEnvAsInt("DRAW_LIMIT", 20),
		LogDirectory:   getEnv("LOG_DIR", "logs"),
		DatabasePath:   getEnv("DB_PATH", filepath.Join("data", "facediag.db")),
		HistoryEnabled: getEnvAsBool("HISTORY_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}

	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return list
}
