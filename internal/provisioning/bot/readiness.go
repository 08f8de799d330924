package bot

import (
	"context"

	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	lextypes "github.com/aws/aws-sdk-go-v2/service/lexmodelsv2/types"

	"github.com/imamik/lexdeploy/internal/provisioning"
	"github.com/imamik/lexdeploy/internal/util/naming"
	"github.com/imamik/lexdeploy/internal/util/poll"
)

var (
	functionActive   = poll.StatusIn(string(lambdatypes.StateActive))
	botAvailable     = poll.StatusIn(string(lextypes.BotStatusAvailable))
	localeCreated    = poll.StatusIn(string(lextypes.BotLocaleStatusBuilt), string(lextypes.BotLocaleStatusNotBuilt))
	localeBuilt      = poll.StatusIn(string(lextypes.BotLocaleStatusBuilt))
	versionAvailable = poll.StatusIn(string(lextypes.BotStatusAvailable))
	aliasAvailable   = poll.StatusIn(string(lextypes.BotAliasStatusAvailable))
)

func (p *Provisioner) functionStatus(ctx context.Context, r ref, _ provisioning.Refs) (poll.Snapshot, error) {
	f, err := p.client.GetFunction(ctx, r.Name)
	if err != nil {
		return poll.Snapshot{}, err
	}
	snap := poll.Snapshot{Status: f.State, Terminal: f.Terminal()}
	if f.StateReason != "" {
		snap.Reasons = []string{f.StateReason}
	}
	return snap, nil
}

func (p *Provisioner) botStatus(ctx context.Context, r ref, _ provisioning.Refs) (poll.Snapshot, error) {
	b, err := p.client.DescribeBot(ctx, r.ID)
	if err != nil {
		return poll.Snapshot{}, err
	}
	return poll.Snapshot{Status: b.Status, Terminal: b.Terminal(), Reasons: b.FailureReasons}, nil
}

// localeStatus serves the locale and build steps; r.ID is the bot id and
// r.Qualifier the locale id.
func (p *Provisioner) localeStatus(ctx context.Context, r ref, _ provisioning.Refs) (poll.Snapshot, error) {
	l, err := p.client.DescribeLocale(ctx, r.ID, r.Qualifier)
	if err != nil {
		return poll.Snapshot{}, err
	}
	return poll.Snapshot{Status: l.Status, Terminal: l.Terminal(), Reasons: l.FailureReasons}, nil
}

func (p *Provisioner) versionStatus(ctx context.Context, r ref, _ provisioning.Refs) (poll.Snapshot, error) {
	v, err := p.client.DescribeVersion(ctx, r.ID, r.Qualifier)
	if err != nil {
		return poll.Snapshot{}, err
	}
	return poll.Snapshot{Status: v.Status, Terminal: v.Terminal(), Reasons: v.FailureReasons}, nil
}

func (p *Provisioner) aliasStatus(ctx context.Context, r ref, deps provisioning.Refs) (poll.Snapshot, error) {
	b, err := deps.Require(naming.StepBot)
	if err != nil {
		return poll.Snapshot{}, err
	}
	a, err := p.client.DescribeAlias(ctx, b.ID, r.ID)
	if err != nil {
		return poll.Snapshot{}, err
	}
	return poll.Snapshot{Status: a.Status, Terminal: a.Terminal()}, nil
}
