// Package handlers implements the business logic for CLI commands.
//
// Each handler loads configuration, builds its AWS clients through the
// factory variables below and delegates to the internal packages. Tests
// replace the factories to run handlers without AWS.
package handlers

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/imamik/lexdeploy/internal/bundle"
	"github.com/imamik/lexdeploy/internal/config"
	"github.com/imamik/lexdeploy/internal/output"
	awsplatform "github.com/imamik/lexdeploy/internal/platform/aws"
	s3platform "github.com/imamik/lexdeploy/internal/platform/s3"
	"github.com/imamik/lexdeploy/internal/session"
	"github.com/imamik/lexdeploy/internal/util/logging"
)

const (
	// envEndpoint redirects every AWS call, e.g. to a local emulator.
	envEndpoint = "LEXDEPLOY_AWS_ENDPOINT"

	// envMetricsTextfile receives the run metrics in Prometheus text format.
	envMetricsTextfile = "LEXDEPLOY_METRICS_TEXTFILE"
)

// Factory function variables - can be replaced in tests.
var (
	loadConfig   = config.Load
	loadTimeouts = config.LoadTimeouts
	loadDotEnv   = config.LoadDotEnv
	initLogging  = logging.Initialize

	// loadBundle returns the function's deployment zip.
	loadBundle = func(ctx context.Context, cfg *config.Config) ([]byte, error) {
		return bundle.ForFunction(cfg.Function).Bundle(ctx)
	}

	// loadAWSConfig resolves credentials from the environment and the
	// default chain.
	loadAWSConfig = func(ctx context.Context, region string) (aws.Config, error) {
		opts := []awsplatform.ClientOption{
			awsplatform.WithStaticCredentials(
				os.Getenv("AWS_ACCESS_KEY_ID"),
				os.Getenv("AWS_SECRET_ACCESS_KEY"),
				os.Getenv("AWS_SESSION_TOKEN"),
			),
		}
		if endpoint := os.Getenv(envEndpoint); endpoint != "" {
			opts = append(opts, awsplatform.WithEndpoint(endpoint))
		}
		return awsplatform.LoadConfig(ctx, region, opts...)
	}

	newResourceClient = func(cfg aws.Config) awsplatform.Manager {
		return awsplatform.NewFromConfig(cfg)
	}

	newObjectStore = func(cfg aws.Config) output.ObjectStore {
		return s3platform.NewFromConfig(cfg, func(o *awss3.Options) {
			o.UsePathStyle = os.Getenv(envEndpoint) != ""
		})
	}

	newSender = func(cfg aws.Config, target session.Target, sessionID string) session.Sender {
		return session.NewFromConfig(cfg, target, session.WithSessionID(sessionID))
	}

	now = time.Now

	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// Setup loads .env from the working directory and installs the process
// logger. Non-empty flag values override LEXDEPLOY_LOG_LEVEL and
// LEXDEPLOY_LOG_FORMAT.
func Setup(logLevel, logFormat string) error {
	if _, err := loadDotEnv(); err != nil {
		return err
	}

	opts := logging.FromEnv()
	if logLevel != "" {
		opts.Level = logLevel
	}
	if logFormat != "" {
		opts.Format = logFormat
	}
	_, err := initLogging(opts)
	return err
}
