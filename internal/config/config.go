package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIBase               string
	UploadTimeoutSecs     int
	RequestTimeoutSecs    int
	PostgresURL           string
	StubAddr              string
	StubMaxUploadMB       int
	StubDataDir           string
	HistoryDefaultEntries int
}

func Load() Config {
	return Config{
		APIBase:               getenv("PAPERDESK_API_BASE", "http://localhost:8000"),
		UploadTimeoutSecs:     getenvInt("PAPERDESK_UPLOAD_TIMEOUT_SECONDS", 60),
		RequestTimeoutSecs:    getenvInt("PAPERDESK_REQUEST_TIMEOUT_SECONDS", 120),
		PostgresURL:           getenv("PAPERDESK_POSTGRES_URL", ""),
		StubAddr:              getenv("PAPERDESK_STUB_ADDR", ":8000"),
		StubMaxUploadMB:       getenvInt("PAPERDESK_STUB_MAX_UPLOAD_MB", 50),
		StubDataDir:           getenv("PAPERDESK_STUB_DATA_DIR", ""),
		HistoryDefaultEntries: getenvInt("PAPERDESK_HISTORY_ENTRIES", 20),
	}
}

// UploadTimeout bounds the whole process-papers call.
func (c Config) UploadTimeout() time.Duration {
	return secondsOrDefault(c.UploadTimeoutSecs, 60)
}

func (c Config) RequestTimeout() time.Duration {
	return secondsOrDefault(c.RequestTimeoutSecs, 120)
}

func secondsOrDefault(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
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
