package impl

import (
	"io"
	"log/slog"

	"shelf/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(maxSize int) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: 4,
		},
		Collections: &config.CollectionsConfig{
			MaxSize: maxSize,
		},
	}
}
