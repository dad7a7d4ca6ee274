package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything read from the environment. It is built once
// in main and passed by reference; nothing reads env vars after startup.
type Config struct {
	Port string

	// OpenRouter (speech analysis)
	OpenRouterKey     string
	OpenRouterBaseURL string
	AnalysisModel     string
	AnalysisMaxTokens int
	AnalysisTimeout   time.Duration

	// OpenAI (Whisper transcription)
	OpenAIKey string

	// ElevenLabs (TTS + voice cloning)
	ElevenLabsKey     string
	ElevenLabsBaseURL string
	DefaultVoiceID    string

	// Optional S3 archive for generated audio
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
}

func Load() *Config {
	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		OpenRouterKey:     os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: getenv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		AnalysisModel:     getenv("ANALYSIS_MODEL", "mistralai/mistral-7b-instruct"),
		AnalysisMaxTokens: getenvInt("ANALYSIS_MAX_TOKENS", 1500),
		AnalysisTimeout:   30 * time.Second,

		OpenAIKey: os.Getenv("OPENAI_API_KEY"),

		ElevenLabsKey:     os.Getenv("ELEVENLABS_API_KEY"),
		ElevenLabsBaseURL: getenv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io/v1"),
		DefaultVoiceID:    getenv("DEFAULT_VOICE_ID", "EXAVITQu4vr4xnSDxMaL"), // Rachel

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    os.Getenv("S3_REGION"),
	}
	return cfg
}

// S3Enabled reports whether the optional audio archive is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
