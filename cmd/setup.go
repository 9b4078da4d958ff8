package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tunepool/tunepool/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter config.toml from the embedded template.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		return r.writePlainln("Config already exists at %s, leaving it untouched.", configPath)
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)

	if err := r.writePlainln("✓ Wrote %s", configPath); err != nil {
		return err
	}
	return r.writePlain("Edit the [catalog] section to point at your catalog API.\n")
}
