package bot

import (
	"context"

	"github.com/imamik/lexdeploy/internal/config"
	awsplatform "github.com/imamik/lexdeploy/internal/platform/aws"
	"github.com/imamik/lexdeploy/internal/provisioning"
	"github.com/imamik/lexdeploy/internal/util/naming"
)

type ref = provisioning.ResourceRef

func (p *Provisioner) roleStep() provisioning.StepSpec {
	role := p.cfg.Role
	return provisioning.StepSpec{
		Name: naming.StepRole,
		Kind: provisioning.KindRole,
		Create: func(ctx context.Context, _ provisioning.Refs) (ref, error) {
			r, err := p.client.CreateRole(ctx, awsplatform.RoleSpec{
				Name:        role.Name,
				Description: role.Description,
				TrustPolicy: trustPolicy,
				PolicyARNs:  p.policyARNs(),
			})
			if err != nil {
				return ref{}, err
			}
			return roleRef(r), nil
		},
		Lookup: func(ctx context.Context, _ provisioning.Refs) (ref, error) {
			r, err := p.client.GetRole(ctx, role.Name)
			if err != nil {
				return ref{}, err
			}
			// An earlier run may have created the role and failed before
			// attaching every policy.
			if err := p.client.AttachRolePolicies(ctx, r.Name, p.policyARNs()); err != nil {
				return ref{}, err
			}
			return roleRef(r), nil
		},
	}
}

func (p *Provisioner) functionStep() provisioning.StepSpec {
	fn := p.cfg.Function
	return provisioning.StepSpec{
		Name:      naming.StepFunction,
		Kind:      provisioning.KindFunction,
		DependsOn: []string{naming.StepRole},
		Create: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			role, err := deps.Require(naming.StepRole)
			if err != nil {
				return ref{}, err
			}
			f, err := p.client.CreateFunction(ctx, awsplatform.FunctionSpec{
				Name:        fn.Name,
				Description: fn.Description,
				Runtime:     fn.Runtime,
				Handler:     fn.Handler,
				RoleARN:     role.ARN,
				Timeout:     fn.Timeout,
				MemorySize:  fn.MemorySize,
				ZipFile:     p.code,
			})
			if err != nil {
				return ref{}, err
			}
			return functionRef(f), nil
		},
		Lookup: func(ctx context.Context, _ provisioning.Refs) (ref, error) {
			f, err := p.client.GetFunction(ctx, fn.Name)
			if err != nil {
				return ref{}, err
			}
			return functionRef(f), nil
		},
		Readiness: &provisioning.Readiness{
			Fetch:    p.functionStatus,
			Until:    functionActive,
			Interval: p.timeouts.FunctionPoll,
			Timeout:  p.timeouts.FunctionReady,
		},
	}
}

func (p *Provisioner) permissionStep() provisioning.StepSpec {
	fn := p.cfg.Function
	return provisioning.StepSpec{
		Name:      naming.StepPermission,
		Kind:      provisioning.KindPermission,
		DependsOn: []string{naming.StepFunction},
		Create: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			f, err := deps.Require(naming.StepFunction)
			if err != nil {
				return ref{}, err
			}
			account, err := p.accountID(ctx)
			if err != nil {
				return ref{}, err
			}
			spec := awsplatform.PermissionSpec{
				FunctionName: f.Name,
				StatementID:  fn.StatementID,
				Action:       invokeAction,
				Principal:    lexPrincipal,
				SourceARN:    naming.LexSourceARN(p.client.Region(), account),
			}
			if err := p.client.AddPermission(ctx, spec); err != nil {
				return ref{}, err
			}
			return permissionRef(f.Name, awsplatform.Permission{StatementID: spec.StatementID, SourceARN: spec.SourceARN}), nil
		},
		Lookup: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			return p.lookupPermission(ctx, deps)
		},
	}
}

func (p *Provisioner) botStep() provisioning.StepSpec {
	b := p.cfg.Bot
	return provisioning.StepSpec{
		Name:      naming.StepBot,
		Kind:      provisioning.KindBot,
		DependsOn: []string{naming.StepRole},
		Create: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			role, err := deps.Require(naming.StepRole)
			if err != nil {
				return ref{}, err
			}
			created, err := p.client.CreateBot(ctx, awsplatform.BotSpec{
				Name:           b.Name,
				Description:    b.Description,
				RoleARN:        role.ARN,
				IdleSessionTTL: b.IdleSessionTTL,
				ChildDirected:  b.ChildDirected,
			})
			if err != nil {
				return ref{}, err
			}
			return botRef(created), nil
		},
		Lookup: func(ctx context.Context, _ provisioning.Refs) (ref, error) {
			found, err := p.client.FindBot(ctx, b.Name)
			if err != nil {
				return ref{}, err
			}
			return botRef(found), nil
		},
		Readiness: &provisioning.Readiness{
			Fetch:    p.botStatus,
			Until:    botAvailable,
			Interval: p.timeouts.BotPoll,
			Timeout:  p.timeouts.BotReady,
		},
	}
}

func (p *Provisioner) localeStep() provisioning.StepSpec {
	locale := p.cfg.Bot.Locale
	return provisioning.StepSpec{
		Name:      naming.StepLocale,
		Kind:      provisioning.KindLocale,
		DependsOn: []string{naming.StepBot},
		Create: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			b, err := deps.Require(naming.StepBot)
			if err != nil {
				return ref{}, err
			}
			l, err := p.client.CreateLocale(ctx, awsplatform.LocaleSpec{
				BotID:               b.ID,
				LocaleID:            locale.ID,
				ConfidenceThreshold: locale.ConfidenceThreshold,
				VoiceID:             locale.VoiceID,
			})
			if err != nil {
				return ref{}, err
			}
			return localeRef(provisioning.KindLocale, l), nil
		},
		Lookup: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			return p.lookupLocale(ctx, deps, provisioning.KindLocale)
		},
		Readiness: &provisioning.Readiness{
			Fetch:    p.localeStatus,
			Until:    localeCreated,
			Interval: p.timeouts.LocalePoll,
			Timeout:  p.timeouts.LocaleReady,
		},
	}
}

func (p *Provisioner) intentStep(intent config.IntentConfig) provisioning.StepSpec {
	localeID := p.cfg.Bot.Locale.ID
	return provisioning.StepSpec{
		Name:      naming.IntentStep(intent.Name),
		Kind:      provisioning.KindIntent,
		DependsOn: []string{naming.StepBot, naming.StepLocale},
		Create: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			b, err := deps.Require(naming.StepBot)
			if err != nil {
				return ref{}, err
			}
			created, err := p.client.CreateIntent(ctx, awsplatform.IntentSpec{
				BotID:          b.ID,
				LocaleID:       localeID,
				Name:           intent.Name,
				Description:    intent.Description,
				Utterances:     intent.Utterances,
				Fulfillment:    intent.Fulfillment,
				SuccessMessage: intent.SuccessMessage,
			})
			if err != nil {
				return ref{}, err
			}
			return intentRef(localeID, created), nil
		},
		Lookup: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			b, err := deps.Require(naming.StepBot)
			if err != nil {
				return ref{}, err
			}
			found, err := p.client.FindIntent(ctx, b.ID, localeID, intent.Name)
			if err != nil {
				return ref{}, err
			}
			return intentRef(localeID, found), nil
		},
	}
}

func (p *Provisioner) slotStep(intentName string, slot config.SlotConfig) provisioning.StepSpec {
	localeID := p.cfg.Bot.Locale.ID
	intentStep := naming.IntentStep(intentName)

	// resolve returns the bot and intent ids from deps.
	resolve := func(deps provisioning.Refs) (string, string, error) {
		b, err := deps.Require(naming.StepBot)
		if err != nil {
			return "", "", err
		}
		intent, err := deps.Require(intentStep)
		if err != nil {
			return "", "", err
		}
		return b.ID, intent.ID, nil
	}

	return provisioning.StepSpec{
		Name:       naming.SlotStep(intentName, slot.Name),
		Kind:       provisioning.KindSlot,
		DependsOn:  []string{naming.StepBot, naming.StepLocale, intentStep},
		Concurrent: true,
		Create: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			botID, intentID, err := resolve(deps)
			if err != nil {
				return ref{}, err
			}
			created, err := p.client.CreateSlot(ctx, awsplatform.SlotSpec{
				BotID:      botID,
				LocaleID:   localeID,
				IntentID:   intentID,
				Name:       slot.Name,
				TypeID:     slot.TypeID,
				Required:   slot.Required,
				Prompt:     slot.Prompt,
				MaxRetries: slot.MaxRetries,
			})
			if err != nil {
				return ref{}, err
			}
			return slotRef(created), nil
		},
		Lookup: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			botID, intentID, err := resolve(deps)
			if err != nil {
				return ref{}, err
			}
			found, err := p.client.FindSlot(ctx, botID, localeID, intentID, slot.Name)
			if err != nil {
				return ref{}, err
			}
			return slotRef(found), nil
		},
	}
}

// buildStep orders each intent's slots by declaration, then builds the
// locale. An unchanged, already built locale resolves through Lookup.
func (p *Provisioner) buildStep() provisioning.StepSpec {
	localeID := p.cfg.Bot.Locale.ID
	return provisioning.StepSpec{
		Name:      naming.StepBuild,
		Kind:      provisioning.KindBuild,
		DependsOn: append([]string{naming.StepBot, naming.StepLocale}, p.intentSteps()...),
		Create: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			b, err := deps.Require(naming.StepBot)
			if err != nil {
				return ref{}, err
			}
			if err := p.orderSlots(ctx, b.ID, deps); err != nil {
				return ref{}, err
			}
			l, err := p.client.BuildLocale(ctx, b.ID, localeID)
			if err != nil {
				return ref{}, err
			}
			return localeRef(provisioning.KindBuild, l), nil
		},
		Lookup: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			return p.lookupLocale(ctx, deps, provisioning.KindBuild)
		},
		Readiness: &provisioning.Readiness{
			Fetch:    p.localeStatus,
			Until:    localeBuilt,
			Interval: p.timeouts.BuildPoll,
			Timeout:  p.timeouts.Build,
		},
	}
}

// versionDescription tags a version with the build of the DRAFT locale it
// is published from. An unchanged DRAFT keeps its last build, so reruns find
// the version they published before.
func (p *Provisioner) versionDescription(ctx context.Context, botID string) (string, error) {
	l, err := p.client.DescribeLocale(ctx, botID, p.cfg.Bot.Locale.ID)
	if err != nil {
		return "", err
	}
	return naming.VersionDescription(DraftFingerprint(l)), nil
}

// orderSlots gives every intent's slots priorities 1..n in declaration
// order.
func (p *Provisioner) orderSlots(ctx context.Context, botID string, deps provisioning.Refs) error {
	localeID := p.cfg.Bot.Locale.ID
	for _, intent := range p.cfg.Bot.Intents {
		if len(intent.Slots) == 0 {
			continue
		}
		intentRef, err := deps.Require(naming.IntentStep(intent.Name))
		if err != nil {
			return err
		}
		priorities := make([]awsplatform.SlotPriority, 0, len(intent.Slots))
		for i, slot := range intent.Slots {
			slotRef, err := deps.Require(naming.SlotStep(intent.Name, slot.Name))
			if err != nil {
				return err
			}
			priorities = append(priorities, awsplatform.SlotPriority{SlotID: slotRef.ID, Priority: int32(i + 1)})
		}
		if _, err := p.client.SetSlotPriorities(ctx, botID, localeID, intentRef.ID, priorities); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provisioner) versionStep() provisioning.StepSpec {
	localeID := p.cfg.Bot.Locale.ID
	return provisioning.StepSpec{
		Name:      naming.StepVersion,
		Kind:      provisioning.KindVersion,
		DependsOn: []string{naming.StepBot, naming.StepBuild},
		Create: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			b, err := deps.Require(naming.StepBot)
			if err != nil {
				return ref{}, err
			}
			description, err := p.versionDescription(ctx, b.ID)
			if err != nil {
				return ref{}, err
			}
			v, err := p.client.CreateVersion(ctx, b.ID, localeID, description)
			if err != nil {
				return ref{}, err
			}
			return versionRef(v), nil
		},
		Lookup: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			b, err := deps.Require(naming.StepBot)
			if err != nil {
				return ref{}, err
			}
			description, err := p.versionDescription(ctx, b.ID)
			if err != nil {
				return ref{}, err
			}
			v, err := p.client.FindVersion(ctx, b.ID, description)
			if err != nil {
				return ref{}, err
			}
			return versionRef(v), nil
		},
		Readiness: &provisioning.Readiness{
			Fetch:           p.versionStatus,
			Until:           versionAvailable,
			Interval:        p.timeouts.VersionPoll,
			Timeout:         p.timeouts.VersionReady,
			NotFoundPending: true,
		},
	}
}

func (p *Provisioner) aliasStep() provisioning.StepSpec {
	return provisioning.StepSpec{
		Name:      naming.StepAlias,
		Kind:      provisioning.KindAlias,
		DependsOn: []string{naming.StepBot, naming.StepVersion, naming.StepFunction},
		Create: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			spec, err := p.aliasSpec(deps)
			if err != nil {
				return ref{}, err
			}
			a, err := p.client.CreateAlias(ctx, spec)
			if err != nil {
				return ref{}, err
			}
			return p.aliasRef(ctx, a)
		},
		Lookup: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			spec, err := p.aliasSpec(deps)
			if err != nil {
				return ref{}, err
			}
			a, err := p.client.FindAlias(ctx, spec.BotID, spec.Name)
			if err != nil {
				return ref{}, err
			}
			if a.Version != spec.Version {
				// The alias follows the newest build of the DRAFT.
				if a, err = p.client.UpdateAlias(ctx, a.ID, spec); err != nil {
					return ref{}, err
				}
			}
			return p.aliasRef(ctx, a)
		},
		Readiness: &provisioning.Readiness{
			Fetch:    p.aliasStatus,
			Until:    aliasAvailable,
			Interval: p.timeouts.AliasPoll,
			Timeout:  p.timeouts.AliasReady,
		},
	}
}

func (p *Provisioner) aliasSpec(deps provisioning.Refs) (awsplatform.AliasSpec, error) {
	b, err := deps.Require(naming.StepBot)
	if err != nil {
		return awsplatform.AliasSpec{}, err
	}
	v, err := deps.Require(naming.StepVersion)
	if err != nil {
		return awsplatform.AliasSpec{}, err
	}
	f, err := deps.Require(naming.StepFunction)
	if err != nil {
		return awsplatform.AliasSpec{}, err
	}
	return awsplatform.AliasSpec{
		BotID:       b.ID,
		Name:        p.cfg.Bot.Alias.Name,
		Version:     v.Qualifier,
		LocaleID:    p.cfg.Bot.Locale.ID,
		FunctionARN: f.ARN,
	}, nil
}

func (p *Provisioner) aliasRef(ctx context.Context, a awsplatform.Alias) (ref, error) {
	account, err := p.accountID(ctx)
	if err != nil {
		return ref{}, err
	}
	return ref{
		Kind:      provisioning.KindAlias,
		ID:        a.ID,
		Name:      a.Name,
		Qualifier: a.Version,
		ARN:       naming.BotAliasARN(p.client.Region(), account, a.BotID, a.ID),
	}, nil
}

// aliasPermissionStep replaces the function's Lex statement with one scoped
// to the alias. It runs on every deployment.
func (p *Provisioner) aliasPermissionStep() provisioning.StepSpec {
	statementID := p.cfg.Function.StatementID
	return provisioning.StepSpec{
		Name:      naming.StepAliasPermission,
		Kind:      provisioning.KindAliasPermission,
		DependsOn: []string{naming.StepFunction, naming.StepPermission, naming.StepAlias},
		Create: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			f, err := deps.Require(naming.StepFunction)
			if err != nil {
				return ref{}, err
			}
			alias, err := deps.Require(naming.StepAlias)
			if err != nil {
				return ref{}, err
			}

			err = p.client.RemovePermission(ctx, f.Name, statementID)
			if err != nil && !awsplatform.IsNotFound(err) {
				return ref{}, err
			}

			spec := awsplatform.PermissionSpec{
				FunctionName: f.Name,
				StatementID:  statementID,
				Action:       invokeAction,
				Principal:    lexPrincipal,
				SourceARN:    alias.ARN,
			}
			if err := p.client.AddPermission(ctx, spec); err != nil {
				return ref{}, err
			}
			r := permissionRef(f.Name, awsplatform.Permission{StatementID: statementID, SourceARN: alias.ARN})
			r.Kind = provisioning.KindAliasPermission
			return r, nil
		},
		Lookup: func(ctx context.Context, deps provisioning.Refs) (ref, error) {
			r, err := p.lookupPermission(ctx, deps)
			r.Kind = provisioning.KindAliasPermission
			return r, err
		},
	}
}

func (p *Provisioner) lookupPermission(ctx context.Context, deps provisioning.Refs) (ref, error) {
	f, err := deps.Require(naming.StepFunction)
	if err != nil {
		return ref{}, err
	}
	perm, err := p.client.GetPermission(ctx, f.Name, p.cfg.Function.StatementID)
	if err != nil {
		return ref{}, err
	}
	return permissionRef(f.Name, perm), nil
}

func (p *Provisioner) lookupLocale(ctx context.Context, deps provisioning.Refs, kind provisioning.Kind) (ref, error) {
	b, err := deps.Require(naming.StepBot)
	if err != nil {
		return ref{}, err
	}
	l, err := p.client.DescribeLocale(ctx, b.ID, p.cfg.Bot.Locale.ID)
	if err != nil {
		return ref{}, err
	}
	return localeRef(kind, l), nil
}
