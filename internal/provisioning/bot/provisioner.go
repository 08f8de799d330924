package bot

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/imamik/lexdeploy/internal/config"
	awsplatform "github.com/imamik/lexdeploy/internal/platform/aws"
	"github.com/imamik/lexdeploy/internal/provisioning"
	"github.com/imamik/lexdeploy/internal/util/naming"
)

const (
	// lexPrincipal is the service principal of Lex V2.
	lexPrincipal = "lexv2.amazonaws.com"
	invokeAction = "lambda:InvokeFunction"
)

// trustPolicy lets both the function and the bot assume the shared role.
const trustPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"Service": ["lambda.amazonaws.com", "lexv2.amazonaws.com"]},
      "Action": "sts:AssumeRole"
    }
  ]
}`

// Provisioner builds the step chain of one bot deployment.
type Provisioner struct {
	client      awsplatform.Manager
	cfg         *config.Config
	timeouts    *config.Timeouts
	code        []byte
	fingerprint string

	mu      sync.Mutex
	account string
}

// NewProvisioner creates a provisioner deploying cfg with code as the
// function's deployment zip.
func NewProvisioner(client awsplatform.Manager, cfg *config.Config, timeouts *config.Timeouts, code []byte) (*Provisioner, error) {
	fp, err := Fingerprint(cfg, code)
	if err != nil {
		return nil, err
	}
	if timeouts == nil {
		timeouts = config.LoadTimeouts()
	}
	return &Provisioner{
		client:      client,
		cfg:         cfg,
		timeouts:    timeouts,
		code:        code,
		fingerprint: fp,
	}, nil
}

// Fingerprint returns the fingerprint of the blueprint and function code.
func (p *Provisioner) Fingerprint() string {
	return p.fingerprint
}

// Steps returns the chain in execution order. Slots of one intent are
// flagged concurrent.
func (p *Provisioner) Steps() []provisioning.StepSpec {
	steps := []provisioning.StepSpec{
		p.roleStep(),
		p.functionStep(),
		p.permissionStep(),
		p.botStep(),
		p.localeStep(),
	}
	for _, intent := range p.cfg.Bot.Intents {
		steps = append(steps, p.intentStep(intent))
		for _, slot := range intent.Slots {
			steps = append(steps, p.slotStep(intent.Name, slot))
		}
	}
	return append(steps,
		p.buildStep(),
		p.versionStep(),
		p.aliasStep(),
		p.aliasPermissionStep(),
	)
}

// accountID resolves the caller's account once per provisioner.
func (p *Provisioner) accountID(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.account != "" {
		return p.account, nil
	}
	id, err := p.client.AccountID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve account: %w", err)
	}
	p.account = id
	return id, nil
}

func (p *Provisioner) policyARNs() []string {
	arns := []string{naming.BasicExecutionPolicyARN}
	for _, arn := range p.cfg.Role.PolicyARNs {
		if !slices.Contains(arns, arn) {
			arns = append(arns, arn)
		}
	}
	return arns
}

// intentSteps lists the step names of all intents and slots in declaration
// order.
func (p *Provisioner) intentSteps() []string {
	var names []string
	for _, intent := range p.cfg.Bot.Intents {
		names = append(names, naming.IntentStep(intent.Name))
		for _, slot := range intent.Slots {
			names = append(names, naming.SlotStep(intent.Name, slot.Name))
		}
	}
	return names
}
