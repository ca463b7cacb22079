package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BackendURL string        `yaml:"backend_url"`
	Language   string        `yaml:"language"`
	Theme      string        `yaml:"theme"`
	StateDir   string        `yaml:"state_dir"`
	Timeout    time.Duration `yaml:"timeout"`
	// TTSCommand pipes read-aloud text to an external synthesizer, e.g.
	// "espeak-ng -v {lang}". Empty disables read-aloud.
	TTSCommand string `yaml:"tts_command"`
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sahayak"
	}
	return filepath.Join(home, ".sahayak")
}

// Load builds the config from the optional YAML file under the state dir,
// then lets SAHAYAK_* env vars override it.
func Load() *Config {
	cfg := &Config{
		BackendURL: "http://127.0.0.1:8000",
		Language:   "en",
		Theme:      "light",
		StateDir:   defaultStateDir(),
		Timeout:    60 * time.Second,
	}

	if dir := os.Getenv("SAHAYAK_STATE_DIR"); dir != "" {
		cfg.StateDir = dir
	}

	if data, err := os.ReadFile(filepath.Join(cfg.StateDir, "config.yaml")); err == nil {
		// A broken config file falls back to defaults rather than
		// blocking startup.
		_ = yaml.Unmarshal(data, cfg)
	}

	cfg.BackendURL = getEnv("SAHAYAK_BACKEND_URL", cfg.BackendURL)
	cfg.Language = getEnv("SAHAYAK_LANGUAGE", cfg.Language)
	cfg.Theme = getEnv("SAHAYAK_THEME", cfg.Theme)
	cfg.TTSCommand = getEnv("SAHAYAK_TTS_CMD", cfg.TTSCommand)
	if v := os.Getenv("SAHAYAK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return cfg
}
