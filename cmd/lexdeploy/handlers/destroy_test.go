package handlers

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/lexdeploy/internal/output"
	awsplatform "github.com/imamik/lexdeploy/internal/platform/aws"
)

func deployedClient() *awsplatform.MockClient {
	return &awsplatform.MockClient{
		RegionName: "us-east-1",
		FindBotFunc: func(_ context.Context, name string) (awsplatform.Bot, error) {
			return awsplatform.Bot{ID: "BOT1", Name: name}, nil
		},
		FindAliasFunc: func(_ context.Context, botID, name string) (awsplatform.Alias, error) {
			return awsplatform.Alias{ID: "ALIAS1", BotID: botID, Name: name}, nil
		},
	}
}

func TestDestroy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Bucket = "deploy-records"
	cfg.Output.Key = "bots/echo.json"
	client := deployedClient()
	store := newMemoryStore()
	stubFactories(t, cfg, client, store)
	require.NoError(t, output.Save(cfg.Output.Path, testRecord()))

	err := Destroy(context.Background(), "lexdeploy.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"RemovePermission",
		"FindBot",
		"FindAlias",
		"DeleteAlias",
		"DeleteBot",
		"DeleteFunction",
		"DeleteRole",
	}, client.Calls())

	_, statErr := os.Stat(cfg.Output.Path)
	assert.True(t, os.IsNotExist(statErr), "local record should be removed")
	assert.Equal(t, []string{"deploy-records/bots/echo.json"}, store.deleted)
}

func TestDestroy_NothingDeployed(t *testing.T) {
	cfg := testConfig(t)
	client := &awsplatform.MockClient{
		FindBotFunc: func(_ context.Context, name string) (awsplatform.Bot, error) {
			return awsplatform.Bot{}, &awsplatform.NotFoundError{Kind: "bot", Name: name}
		},
		RemovePermissionFunc: func(_ context.Context, _, sid string) error {
			return &awsplatform.NotFoundError{Kind: "permission", Name: sid}
		},
		DeleteFunctionFunc: func(_ context.Context, name string) error {
			return &awsplatform.NotFoundError{Kind: "function", Name: name}
		},
		DeleteRoleFunc: func(_ context.Context, name string) error {
			return &awsplatform.NotFoundError{Kind: "role", Name: name}
		},
	}
	stubFactories(t, cfg, client, nil)

	err := Destroy(context.Background(), "lexdeploy.yaml")
	require.NoError(t, err)
	assert.NotContains(t, client.Calls(), "DeleteBot")
}

func TestDestroy_Failure(t *testing.T) {
	cfg := testConfig(t)
	client := deployedClient()
	client.DeleteBotFunc = func(_ context.Context, _ string) error {
		return errors.New("bot is in use")
	}
	stubFactories(t, cfg, client, nil)
	require.NoError(t, output.Save(cfg.Output.Path, testRecord()))

	err := Destroy(context.Background(), "lexdeploy.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destroy failed")
	assert.NotContains(t, client.Calls(), "DeleteFunction")

	_, statErr := os.Stat(cfg.Output.Path)
	assert.NoError(t, statErr, "record is kept while resources remain")
}
