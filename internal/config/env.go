package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Env is the part of the configuration that stays out of YAML files.
type Env struct {
	SlackWebhookURL string
	Port            string
	ContactURL      string
}

// LoadEnv loads .env style files into the process environment and returns
// the variables dotfield reads. Missing files are skipped; variables that
// are already set win over file values.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	}
	return ReadEnv(), nil
}

func ReadEnv() Env {
	return Env{
		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
		Port:            os.Getenv("PORT"),
		ContactURL:      os.Getenv("DOTFIELD_CONTACT_URL"),
	}
}

// RelayAddr picks the listen address: PORT from the environment when set,
// else the configured address.
func (e Env) RelayAddr(cfg *Config) string {
	if e.Port != "" {
		return ":" + e.Port
	}
	if cfg.Relay.Addr != "" {
		return cfg.Relay.Addr
	}
	return DefaultRelayAddr
}
