package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIAddr string

	// Extraction
	TesseractPath string
	OCRLanguage   string
	OCRDPI        int
	TextGateChars int
	OCRGateChars  int
	MaxPDFBytes   int64

	// Translation
	LLMProviders    string
	DefaultModel    string
	MaxChunkSize    int
	Temperature     float64
	MaxOutputTokens int

	// HTTP hardening
	RateLimitEvery        time.Duration
	RateLimitBurst        int
	MaxConcurrentRequests int64
	RequestTimeout        time.Duration
}

func Load() Config {
	return Config{
		APIAddr:               getenv("COATRANS_API_ADDR", ":8080"),
		TesseractPath:         getenv("COATRANS_TESSERACT_PATH", "tesseract"),
		OCRLanguage:           getenv("COATRANS_OCR_LANG", "eng"),
		OCRDPI:                getenvInt("COATRANS_OCR_DPI", 300),
		TextGateChars:         getenvInt("COATRANS_TEXT_GATE_CHARS", 50),
		OCRGateChars:          getenvInt("COATRANS_OCR_GATE_CHARS", 20),
		MaxPDFBytes:           int64(getenvInt("COATRANS_MAX_PDF_MB", 50)) << 20,
		LLMProviders:          getenv("COATRANS_LLM_PROVIDERS", "openai"),
		DefaultModel:          getenv("COATRANS_DEFAULT_MODEL", "gpt-4o"),
		MaxChunkSize:          getenvInt("COATRANS_MAX_CHUNK_SIZE", 6000),
		Temperature:           getenvFloat("COATRANS_TEMPERATURE", 0.1),
		MaxOutputTokens:       getenvInt("COATRANS_MAX_OUTPUT_TOKENS", 4096),
		RateLimitEvery:        getenvDuration("COATRANS_RATE_LIMIT_EVERY", time.Second),
		RateLimitBurst:        getenvInt("COATRANS_RATE_LIMIT_BURST", 5),
		MaxConcurrentRequests: int64(getenvInt("COATRANS_MAX_CONCURRENT_REQUESTS", 4)),
		RequestTimeout:        getenvDuration("COATRANS_REQUEST_TIMEOUT", 5*time.Minute),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(k string, fallback float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvDuration(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
