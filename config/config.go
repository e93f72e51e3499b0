package config

import "os"

// Config collects the env-driven settings the server needs. Everything
// has a local-dev default so the binary runs without any env set; the
// Vertex project is the only thing that gates the real LLM provider.
type Config struct {
	Port        string
	LogLevel    string
	SessionsDir string
	AudioDir    string

	VertexProject  string
	VertexLocation string
	VertexModel    string

	JWTSecret string
	RedisAddr string
}

func Load() Config {
	return Config{
		Port:        getenv("PORT", "8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		SessionsDir: getenv("SESSIONS_DIR", "data/interview_sessions"),
		AudioDir:    getenv("AUDIO_DIR", "data/audio_uploads"),

		VertexProject:  os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation: getenv("VERTEX_LOCATION", "us-central1"),
		VertexModel:    os.Getenv("VERTEX_MODEL"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
