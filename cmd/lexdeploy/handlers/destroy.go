package handlers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/imamik/lexdeploy/internal/output"
	"github.com/imamik/lexdeploy/internal/provisioning"
	"github.com/imamik/lexdeploy/internal/provisioning/destroy"
)

// Destroy handles the destroy command.
//
// It deletes the provisioned resources in reverse dependency order, then
// removes the local record and its S3 copy. Failing to remove the S3 copy
// is only logged.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Destroying bot: %s", cfg.Bot.Name)

	awsCfg, err := loadAWSConfig(ctx, cfg.Region)
	if err != nil {
		return err
	}

	observer := provisioning.NewSlogObserver(slog.Default()).WithFields(map[string]string{
		"bot": cfg.Bot.Name,
	})
	destroyer := destroy.NewProvisioner(newResourceClient(awsCfg), cfg, observer)
	if err := destroyer.Destroy(ctx); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	if err := os.Remove(cfg.Output.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", cfg.Output.Path, err)
	}

	if cfg.Output.Bucket != "" {
		remote := output.NewRemote(newObjectStore(awsCfg), cfg.Output.Bucket, cfg.Output.Key)
		if err := remote.Remove(ctx); err != nil {
			log.Printf("Warning: failed to remove %s: %v", remote.URI(), err)
		}
	}

	log.Printf("Bot %s destroyed successfully", cfg.Bot.Name)
	return nil
}
