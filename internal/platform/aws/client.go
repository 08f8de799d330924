package aws

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lexmodelsv2"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/imamik/lexdeploy/internal/util/retry"
)

// RoleManager defines the IAM operations.
type RoleManager interface {
	// CreateRole creates the role and attaches its managed policies.
	CreateRole(ctx context.Context, spec RoleSpec) (Role, error)
	GetRole(ctx context.Context, name string) (Role, error)
	// AttachRolePolicies attaches managed policies; repeating it is harmless.
	AttachRolePolicies(ctx context.Context, name string, arns []string) error
	// DeleteRole detaches all managed policies, then deletes the role.
	DeleteRole(ctx context.Context, name string) error
}

// FunctionManager defines the Lambda operations.
type FunctionManager interface {
	CreateFunction(ctx context.Context, spec FunctionSpec) (Function, error)
	GetFunction(ctx context.Context, name string) (Function, error)
	DeleteFunction(ctx context.Context, name string) error
	AddPermission(ctx context.Context, spec PermissionSpec) error
	// GetPermission returns the statement from the function's resource
	// policy, or a NotFoundError.
	GetPermission(ctx context.Context, functionName, statementID string) (Permission, error)
	RemovePermission(ctx context.Context, functionName, statementID string) error
}

// BotManager defines the Lex Models V2 operations. Locale, intent and slot
// operations act on the DRAFT version.
type BotManager interface {
	CreateBot(ctx context.Context, spec BotSpec) (Bot, error)
	FindBot(ctx context.Context, name string) (Bot, error)
	DescribeBot(ctx context.Context, botID string) (Bot, error)
	DeleteBot(ctx context.Context, botID string) error

	CreateLocale(ctx context.Context, spec LocaleSpec) (Locale, error)
	DescribeLocale(ctx context.Context, botID, localeID string) (Locale, error)
	// BuildLocale starts a build. It returns a ConflictError when the locale
	// is already built and unchanged since.
	BuildLocale(ctx context.Context, botID, localeID string) (Locale, error)

	CreateIntent(ctx context.Context, spec IntentSpec) (Intent, error)
	FindIntent(ctx context.Context, botID, localeID, name string) (Intent, error)
	// SetSlotPriorities rewrites the intent's slot order. It reports false
	// without calling UpdateIntent when the order already matches.
	SetSlotPriorities(ctx context.Context, botID, localeID, intentID string, priorities []SlotPriority) (bool, error)

	CreateSlot(ctx context.Context, spec SlotSpec) (Slot, error)
	FindSlot(ctx context.Context, botID, localeID, intentID, name string) (Slot, error)

	// CreateVersion snapshots DRAFT. It returns a ConflictError when a
	// version with the same description already exists.
	CreateVersion(ctx context.Context, botID, localeID, description string) (Version, error)
	FindVersion(ctx context.Context, botID, description string) (Version, error)
	DescribeVersion(ctx context.Context, botID, version string) (Version, error)

	CreateAlias(ctx context.Context, spec AliasSpec) (Alias, error)
	FindAlias(ctx context.Context, botID, name string) (Alias, error)
	UpdateAlias(ctx context.Context, aliasID string, spec AliasSpec) (Alias, error)
	DescribeAlias(ctx context.Context, botID, aliasID string) (Alias, error)
	DeleteAlias(ctx context.Context, botID, aliasID string) error
}

// AccountResolver resolves the caller's account.
type AccountResolver interface {
	AccountID(ctx context.Context) (string, error)
}

// Manager is the full resource client used by the bot provisioner.
type Manager interface {
	RoleManager
	FunctionManager
	BotManager
	AccountResolver
	Region() string
}

// RealClient implements Manager against AWS.
type RealClient struct {
	iam    *iam.Client
	lambda *lambda.Client
	lex    *lexmodelsv2.Client
	sts    *sts.Client
	region string

	// retryOpts are appended to the defaults of every retried call.
	retryOpts []retry.Option
}

var _ Manager = (*RealClient)(nil)

type clientOptions struct {
	accessKey    string
	secretKey    string
	sessionToken string
	endpoint     string
	httpClient   *http.Client
}

// ClientOption configures LoadConfig.
type ClientOption func(*clientOptions)

// WithStaticCredentials uses fixed credentials instead of the default chain.
// Empty keys are ignored.
func WithStaticCredentials(accessKey, secretKey, sessionToken string) ClientOption {
	return func(o *clientOptions) {
		o.accessKey = accessKey
		o.secretKey = secretKey
		o.sessionToken = sessionToken
	}
}

// WithEndpoint sends every request to url, e.g. a local emulator.
func WithEndpoint(url string) ClientOption {
	return func(o *clientOptions) {
		o.endpoint = url
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// LoadConfig resolves the shared AWS configuration for region.
func LoadConfig(ctx context.Context, region string, opts ...ClientOption) (aws.Config, error) {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if o.accessKey != "" && o.secretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.accessKey, o.secretKey, o.sessionToken),
		))
	}
	if o.httpClient != nil {
		loadOpts = append(loadOpts, config.WithHTTPClient(o.httpClient))
	}
	if o.endpoint != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(o.endpoint))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewClient loads the AWS configuration and creates a RealClient.
func NewClient(ctx context.Context, region string, opts ...ClientOption) (*RealClient, error) {
	cfg, err := LoadConfig(ctx, region, opts...)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg), nil
}

// NewFromConfig creates a RealClient from a resolved configuration.
func NewFromConfig(cfg aws.Config) *RealClient {
	return &RealClient{
		iam:    iam.NewFromConfig(cfg),
		lambda: lambda.NewFromConfig(cfg),
		lex:    lexmodelsv2.NewFromConfig(cfg),
		sts:    sts.NewFromConfig(cfg),
		region: cfg.Region,
	}
}

// Region returns the region requests are sent to.
func (c *RealClient) Region() string {
	return c.region
}

func (c *RealClient) retryOptions(base []retry.Option) []retry.Option {
	opts := make([]retry.Option, 0, len(base)+len(c.retryOpts))
	opts = append(opts, base...)
	return append(opts, c.retryOpts...)
}
