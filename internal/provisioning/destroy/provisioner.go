package destroy

import (
	"context"
	"fmt"

	"github.com/imamik/lexdeploy/internal/config"
	awsplatform "github.com/imamik/lexdeploy/internal/platform/aws"
	"github.com/imamik/lexdeploy/internal/provisioning"
)

// Client is the subset of the resource client used for teardown.
type Client interface {
	FindBot(ctx context.Context, name string) (awsplatform.Bot, error)
	DeleteBot(ctx context.Context, botID string) error
	FindAlias(ctx context.Context, botID, name string) (awsplatform.Alias, error)
	DeleteAlias(ctx context.Context, botID, aliasID string) error
	RemovePermission(ctx context.Context, functionName, statementID string) error
	DeleteFunction(ctx context.Context, name string) error
	DeleteRole(ctx context.Context, name string) error
}

// Provisioner handles deployment destruction.
type Provisioner struct {
	client   Client
	cfg      *config.Config
	observer provisioning.Observer
}

// NewProvisioner creates a new destroy provisioner. A nil observer discards
// events.
func NewProvisioner(client Client, cfg *config.Config, observer provisioning.Observer) *Provisioner {
	if observer == nil {
		observer = provisioning.NopObserver{}
	}
	return &Provisioner{client: client, cfg: cfg, observer: observer}
}

// Destroy deletes every resource of the deployment and stops at the first
// failure.
func (p *Provisioner) Destroy(ctx context.Context) error {
	fn := p.cfg.Function

	err := p.remove(provisioning.KindPermission, fn.StatementID, func() error {
		return p.client.RemovePermission(ctx, fn.Name, fn.StatementID)
	})
	if err != nil {
		return err
	}

	if err := p.destroyBot(ctx); err != nil {
		return err
	}

	err = p.remove(provisioning.KindFunction, fn.Name, func() error {
		return p.client.DeleteFunction(ctx, fn.Name)
	})
	if err != nil {
		return err
	}

	return p.remove(provisioning.KindRole, p.cfg.Role.Name, func() error {
		return p.client.DeleteRole(ctx, p.cfg.Role.Name)
	})
}

func (p *Provisioner) destroyBot(ctx context.Context) error {
	name := p.cfg.Bot.Name
	bot, err := p.client.FindBot(ctx, name)
	if awsplatform.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find bot %s: %w", name, err)
	}

	aliasName := p.cfg.Bot.Alias.Name
	alias, err := p.client.FindAlias(ctx, bot.ID, aliasName)
	switch {
	case awsplatform.IsNotFound(err):
	case err != nil:
		return fmt.Errorf("failed to find alias %s: %w", aliasName, err)
	default:
		err := p.remove(provisioning.KindAlias, aliasName, func() error {
			return p.client.DeleteAlias(ctx, bot.ID, alias.ID)
		})
		if err != nil {
			return err
		}
	}

	return p.remove(provisioning.KindBot, name, func() error {
		return p.client.DeleteBot(ctx, bot.ID)
	})
}

// remove runs del and treats a missing resource as already deleted.
func (p *Provisioner) remove(kind provisioning.Kind, name string, del func() error) error {
	provisioning.LogResourceDeleting(p.observer, kind, name)
	err := del()
	if err != nil && !awsplatform.IsNotFound(err) {
		return fmt.Errorf("failed to delete %s %s: %w", kind, name, err)
	}
	provisioning.LogResourceDeleted(p.observer, kind, name)
	return nil
}
