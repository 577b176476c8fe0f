// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envFileSecrets holds values that may be mounted as files, e.g. Docker or
// Kubernetes secrets. The variable names a path; the file's content is the
// value.
type envFileSecrets struct {
	TokenSignKey string `env:"APP_TOKEN_SIGN_KEY_FILE,file"`
}

// parseEnv populates cfg from environment variables through the `env` and
// `envPrefix` tags of [StructuredConfig].
//
// When APP_TOKEN_SIGN_KEY is unset the sign key is read from the file named
// by APP_TOKEN_SIGN_KEY_FILE, trimmed of the trailing newline editors add.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	var secrets envFileSecrets
	if err := env.Parse(&secrets); err != nil {
		return fmt.Errorf("error reading env secret files: %w", err)
	}
	if cfg.App.TokenSignKey == "" {
		cfg.App.TokenSignKey = strings.TrimSpace(secrets.TokenSignKey)
	}

	return nil
}
