package handlers

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/imamik/lexdeploy/internal/config"
	"github.com/imamik/lexdeploy/internal/output"
	"github.com/imamik/lexdeploy/internal/provisioning"
	"github.com/imamik/lexdeploy/internal/provisioning/bot"
)

// ProvisionOptions holds the provision command flags.
type ProvisionOptions struct {
	// DryRun prints the execution plan without calling AWS.
	DryRun bool

	// OutputPath overrides output.path from the configuration.
	OutputPath string
}

// Provision handles the provision command.
//
// It loads the bot blueprint, runs the provisioning chain and records the
// resulting bot and alias ids. A failed run prints the partial summary and
// returns the step error.
func Provision(ctx context.Context, configPath string, opts ProvisionOptions) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if opts.OutputPath != "" {
		cfg.Output.Path = opts.OutputPath
	}

	code, err := loadBundle(ctx, cfg)
	if err != nil {
		return err
	}
	timeouts := loadTimeouts()

	if opts.DryRun {
		return printPlan(cfg, timeouts, code)
	}

	awsCfg, err := loadAWSConfig(ctx, cfg.Region)
	if err != nil {
		return err
	}

	p, err := bot.NewProvisioner(newResourceClient(awsCfg), cfg, timeouts, code)
	if err != nil {
		return err
	}

	log.Printf("Provisioning bot %s in %s", cfg.Bot.Name, cfg.Region)

	metrics := provisioning.NewMetrics()
	observer := provisioning.NewSlogObserver(slog.Default()).WithFields(map[string]string{
		"bot": cfg.Bot.Name,
	})
	orch := provisioning.NewOrchestrator(
		provisioning.WithObserver(observer),
		provisioning.WithMetrics(metrics),
		provisioning.WithRunTimeout(timeouts.Run),
	)

	run, runErr := orch.Run(ctx, p.Steps())
	if run != nil {
		fmt.Fprint(stdout, renderRunSummary(cfg, run))
	}
	writeMetrics(metrics)
	if runErr != nil {
		return fmt.Errorf("provisioning failed: %w", runErr)
	}

	rec, err := output.FromRun(cfg, run, p.Fingerprint(), now().UTC())
	if err != nil {
		return err
	}
	if err := output.Save(cfg.Output.Path, rec); err != nil {
		return err
	}
	log.Printf("Bot configuration saved to %s", cfg.Output.Path)

	if cfg.Output.Bucket != "" {
		remote := output.NewRemote(newObjectStore(awsCfg), cfg.Output.Bucket, cfg.Output.Key)
		if err := remote.Publish(ctx, rec); err != nil {
			return err
		}
		log.Printf("Bot configuration uploaded to %s", remote.URI())
	}

	return nil
}

// printPlan renders the execution batches. Step closures are never invoked,
// so no AWS client is needed.
func printPlan(cfg *config.Config, timeouts *config.Timeouts, code []byte) error {
	p, err := bot.NewProvisioner(nil, cfg, timeouts, code)
	if err != nil {
		return err
	}
	plan, err := provisioning.NewOrchestrator().Plan(p.Steps())
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, renderPlan(cfg, p.Fingerprint(), plan))
	return nil
}

func writeMetrics(m *provisioning.Metrics) {
	path := os.Getenv(envMetricsTextfile)
	if path == "" {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		log.Printf("Warning: failed to write metrics: %v", err)
	}
}
