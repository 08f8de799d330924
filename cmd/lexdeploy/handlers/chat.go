package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/lexdeploy/internal/config"
	"github.com/imamik/lexdeploy/internal/output"
	"github.com/imamik/lexdeploy/internal/session"
)

// ChatOptions holds the chat command flags.
type ChatOptions struct {
	// RecordPath overrides output.path from the configuration.
	RecordPath string

	// SessionID names the conversation. Empty means a random id.
	SessionID string
}

// Chat handles the chat command.
//
// It reads the provision record and relays stdin lines to the recorded
// bot alias until the user quits.
func Chat(ctx context.Context, configPath string, opts ChatOptions) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	rec, err := loadRecord(ctx, cfg, opts.RecordPath)
	if err != nil {
		return err
	}

	region := rec.Region
	if region == "" {
		region = cfg.Region
	}
	awsCfg, err := loadAWSConfig(ctx, region)
	if err != nil {
		return err
	}

	sender := newSender(awsCfg, session.Target{
		BotID:    rec.BotID,
		AliasID:  rec.BotAliasID,
		LocaleID: rec.LocaleID,
	}, opts.SessionID)

	return session.Chat(ctx, sender, stdin, stdout)
}

// loadRecord reads the local record, falling back to the S3 copy when the
// configuration names a bucket.
func loadRecord(ctx context.Context, cfg *config.Config, path string) (*output.Record, error) {
	if path == "" {
		path = cfg.Output.Path
	}

	rec, err := output.Load(path)
	if err == nil {
		return rec, nil
	}
	if cfg.Output.Bucket == "" {
		return nil, fmt.Errorf("no provisioned bot found, run provision first: %w", err)
	}

	log.Printf("Local record unavailable (%v), fetching from S3", err)
	awsCfg, awsErr := loadAWSConfig(ctx, cfg.Region)
	if awsErr != nil {
		return nil, awsErr
	}
	return output.NewRemote(newObjectStore(awsCfg), cfg.Output.Bucket, cfg.Output.Key).Fetch(ctx)
}
