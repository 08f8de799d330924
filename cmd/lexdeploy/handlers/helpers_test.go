package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/imamik/lexdeploy/internal/config"
	"github.com/imamik/lexdeploy/internal/output"
	awsplatform "github.com/imamik/lexdeploy/internal/platform/aws"
	"github.com/imamik/lexdeploy/internal/session"
	"github.com/imamik/lexdeploy/internal/util/logging"
)

// saveAndRestoreFactories restores every factory variable after the test.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origLoadConfig := loadConfig
	origLoadTimeouts := loadTimeouts
	origLoadDotEnv := loadDotEnv
	origInitLogging := initLogging
	origLoadBundle := loadBundle
	origLoadAWSConfig := loadAWSConfig
	origNewResourceClient := newResourceClient
	origNewObjectStore := newObjectStore
	origNewSender := newSender
	origNow := now
	origStdin := stdin
	origStdout := stdout

	t.Cleanup(func() {
		loadConfig = origLoadConfig
		loadTimeouts = origLoadTimeouts
		loadDotEnv = origLoadDotEnv
		initLogging = origInitLogging
		loadBundle = origLoadBundle
		loadAWSConfig = origLoadAWSConfig
		newResourceClient = origNewResourceClient
		newObjectStore = origNewObjectStore
		newSender = origNewSender
		now = origNow
		stdin = origStdin
		stdout = origStdout
	})
}

// stubFactories points every factory at in-memory fakes and returns the
// captured stdout.
func stubFactories(t *testing.T, cfg *config.Config, client awsplatform.Manager, store output.ObjectStore) *bytes.Buffer {
	t.Helper()
	saveAndRestoreFactories(t)

	loadConfig = func(_ string) (*config.Config, error) { return cfg, nil }
	loadTimeouts = fastTimeouts
	loadBundle = func(_ context.Context, _ *config.Config) ([]byte, error) { return []byte("zip"), nil }
	loadAWSConfig = func(_ context.Context, region string) (aws.Config, error) {
		return aws.Config{Region: region}, nil
	}
	newResourceClient = func(_ aws.Config) awsplatform.Manager { return client }
	newObjectStore = func(_ aws.Config) output.ObjectStore { return store }
	now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	initLogging = func(_ logging.Options) (*slog.Logger, error) { return slog.Default(), nil }

	out := &bytes.Buffer{}
	stdout = out
	return out
}

func fastTimeouts() *config.Timeouts {
	return &config.Timeouts{
		Run:           time.Minute,
		FunctionReady: time.Second,
		FunctionPoll:  time.Millisecond,
		BotReady:      time.Second,
		BotPoll:       time.Millisecond,
		LocaleReady:   time.Second,
		LocalePoll:    time.Millisecond,
		Build:         time.Second,
		BuildPoll:     time.Millisecond,
		VersionReady:  time.Second,
		VersionPoll:   time.Millisecond,
		AliasReady:    time.Second,
		AliasPoll:     time.Millisecond,
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Path = filepath.Join(t.TempDir(), "bot-config.json")
	return cfg
}

// readyClient returns a mock on which every resource is created and
// immediately ready.
func readyClient() *awsplatform.MockClient {
	return &awsplatform.MockClient{
		RegionName: "us-east-1",
		AccountIDFunc: func(_ context.Context) (string, error) {
			return "123456789012", nil
		},
		CreateRoleFunc: func(_ context.Context, spec awsplatform.RoleSpec) (awsplatform.Role, error) {
			return awsplatform.Role{Name: spec.Name, ARN: "arn:aws:iam::123456789012:role/" + spec.Name}, nil
		},
		CreateFunctionFunc: func(_ context.Context, spec awsplatform.FunctionSpec) (awsplatform.Function, error) {
			return awsplatform.Function{
				Name: spec.Name,
				ARN:  "arn:aws:lambda:us-east-1:123456789012:function:" + spec.Name,
			}, nil
		},
		GetFunctionFunc: func(_ context.Context, name string) (awsplatform.Function, error) {
			return awsplatform.Function{Name: name, State: "Active"}, nil
		},
		CreateBotFunc: func(_ context.Context, spec awsplatform.BotSpec) (awsplatform.Bot, error) {
			return awsplatform.Bot{ID: "BOT1", Name: spec.Name, Status: "Creating"}, nil
		},
		DescribeBotFunc: func(_ context.Context, botID string) (awsplatform.Bot, error) {
			return awsplatform.Bot{ID: botID, Status: "Available"}, nil
		},
		CreateLocaleFunc: func(_ context.Context, spec awsplatform.LocaleSpec) (awsplatform.Locale, error) {
			return awsplatform.Locale{BotID: spec.BotID, LocaleID: spec.LocaleID, Status: "Creating"}, nil
		},
		BuildLocaleFunc: func(_ context.Context, botID, localeID string) (awsplatform.Locale, error) {
			return awsplatform.Locale{BotID: botID, LocaleID: localeID, Status: "Building"}, nil
		},
		DescribeLocaleFunc: func(_ context.Context, botID, localeID string) (awsplatform.Locale, error) {
			return awsplatform.Locale{BotID: botID, LocaleID: localeID, Status: "Built"}, nil
		},
		CreateIntentFunc: func(_ context.Context, spec awsplatform.IntentSpec) (awsplatform.Intent, error) {
			return awsplatform.Intent{ID: "INTENT-" + spec.Name, Name: spec.Name}, nil
		},
		CreateSlotFunc: func(_ context.Context, spec awsplatform.SlotSpec) (awsplatform.Slot, error) {
			return awsplatform.Slot{ID: "SLOT-" + spec.Name, Name: spec.Name, IntentID: spec.IntentID}, nil
		},
		CreateVersionFunc: func(_ context.Context, botID, _, description string) (awsplatform.Version, error) {
			return awsplatform.Version{BotID: botID, Version: "1", Description: description, Status: "Creating"}, nil
		},
		DescribeVersionFunc: func(_ context.Context, botID, version string) (awsplatform.Version, error) {
			return awsplatform.Version{BotID: botID, Version: version, Status: "Available"}, nil
		},
		CreateAliasFunc: func(_ context.Context, spec awsplatform.AliasSpec) (awsplatform.Alias, error) {
			return awsplatform.Alias{ID: "ALIAS1", Name: spec.Name, BotID: spec.BotID, Version: spec.Version, Status: "Creating"}, nil
		},
		DescribeAliasFunc: func(_ context.Context, botID, aliasID string) (awsplatform.Alias, error) {
			return awsplatform.Alias{ID: aliasID, BotID: botID, Status: "Available"}, nil
		},
	}
}

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (m *memoryStore) EnsureBucket(_ context.Context, _ string) error { return nil }

func (m *memoryStore) PutObject(_ context.Context, bucket, key, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memoryStore) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, fmt.Errorf("no such key %s", key)
	}
	return data, nil
}

func (m *memoryStore) DeleteObject(_ context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, bucket+"/"+key)
	m.deleted = append(m.deleted, bucket+"/"+key)
	return nil
}

// echoSender replies with the utterance.
type echoSender struct {
	target    session.Target
	sessionID string
	sent      []string
}

func (s *echoSender) Send(_ context.Context, text string) (string, error) {
	s.sent = append(s.sent, text)
	return "You said: " + text, nil
}
