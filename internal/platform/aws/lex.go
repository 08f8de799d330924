package aws

import (
	"context"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexmodelsv2"
	lextypes "github.com/aws/aws-sdk-go-v2/service/lexmodelsv2/types"
)

const (
	kindBot     = "bot"
	kindLocale  = "locale"
	kindIntent  = "intent"
	kindSlot    = "slot"
	kindBuild   = "build"
	kindVersion = "version"
	kindAlias   = "alias"

	codeHookInterfaceVersion = "1.0"
)

// CreateBot creates a bot. Returns a ConflictError if the name is taken.
func (c *RealClient) CreateBot(ctx context.Context, spec BotSpec) (Bot, error) {
	out, err := c.lex.CreateBot(ctx, &lexmodelsv2.CreateBotInput{
		BotName:                 aws.String(spec.Name),
		Description:             optionalString(spec.Description),
		RoleArn:                 aws.String(spec.RoleARN),
		IdleSessionTTLInSeconds: aws.Int32(spec.IdleSessionTTL),
		DataPrivacy:             &lextypes.DataPrivacy{ChildDirected: spec.ChildDirected},
	})
	if err != nil {
		return Bot{}, classify(err, "create", kindBot, spec.Name)
	}
	return Bot{ID: aws.ToString(out.BotId), Name: aws.ToString(out.BotName), Status: string(out.BotStatus)}, nil
}

// FindBot looks a bot up by exact name.
func (c *RealClient) FindBot(ctx context.Context, name string) (Bot, error) {
	paginator := lexmodelsv2.NewListBotsPaginator(c.lex, &lexmodelsv2.ListBotsInput{
		Filters: []lextypes.BotFilter{{
			Name:     lextypes.BotFilterNameBotName,
			Operator: lextypes.BotFilterOperatorEquals,
			Values:   []string{name},
		}},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return Bot{}, classify(err, "list", kindBot, name)
		}
		for _, b := range page.BotSummaries {
			if aws.ToString(b.BotName) == name {
				return Bot{ID: aws.ToString(b.BotId), Name: name, Status: string(b.BotStatus)}, nil
			}
		}
	}
	return Bot{}, &NotFoundError{Kind: kindBot, Name: name, Code: "NoMatchingName"}
}

// DescribeBot returns the bot's status snapshot.
func (c *RealClient) DescribeBot(ctx context.Context, botID string) (Bot, error) {
	out, err := c.lex.DescribeBot(ctx, &lexmodelsv2.DescribeBotInput{BotId: aws.String(botID)})
	if err != nil {
		return Bot{}, classify(err, "describe", kindBot, botID)
	}
	return Bot{
		ID:             aws.ToString(out.BotId),
		Name:           aws.ToString(out.BotName),
		Status:         string(out.BotStatus),
		FailureReasons: out.FailureReasons,
	}, nil
}

// DeleteBot deletes the bot with all its locales, versions and aliases.
func (c *RealClient) DeleteBot(ctx context.Context, botID string) error {
	_, err := c.lex.DeleteBot(ctx, &lexmodelsv2.DeleteBotInput{
		BotId:                  aws.String(botID),
		SkipResourceInUseCheck: true,
	})
	if err != nil {
		return classify(err, "delete", kindBot, botID)
	}
	return nil
}

// CreateLocale adds a locale to the draft bot.
func (c *RealClient) CreateLocale(ctx context.Context, spec LocaleSpec) (Locale, error) {
	input := &lexmodelsv2.CreateBotLocaleInput{
		BotId:                        aws.String(spec.BotID),
		BotVersion:                   aws.String(DraftVersion),
		LocaleId:                     aws.String(spec.LocaleID),
		Description:                  optionalString(spec.Description),
		NluIntentConfidenceThreshold: aws.Float64(spec.ConfidenceThreshold),
	}
	if spec.VoiceID != "" {
		input.VoiceSettings = &lextypes.VoiceSettings{VoiceId: aws.String(spec.VoiceID)}
	}

	out, err := c.lex.CreateBotLocale(ctx, input)
	if err != nil {
		return Locale{}, classify(err, "create", kindLocale, spec.LocaleID)
	}
	return Locale{
		BotID:    spec.BotID,
		LocaleID: aws.ToString(out.LocaleId),
		Status:   string(out.BotLocaleStatus),
	}, nil
}

// DescribeLocale returns the draft locale's status snapshot.
func (c *RealClient) DescribeLocale(ctx context.Context, botID, localeID string) (Locale, error) {
	out, err := c.lex.DescribeBotLocale(ctx, &lexmodelsv2.DescribeBotLocaleInput{
		BotId:      aws.String(botID),
		BotVersion: aws.String(DraftVersion),
		LocaleId:   aws.String(localeID),
	})
	if err != nil {
		return Locale{}, classify(err, "describe", kindLocale, localeID)
	}
	return Locale{
		BotID:              botID,
		LocaleID:           localeID,
		Status:             string(out.BotLocaleStatus),
		FailureReasons:     out.FailureReasons,
		LastBuildSubmitted: aws.ToTime(out.LastBuildSubmittedDateTime),
		LastUpdated:        aws.ToTime(out.LastUpdatedDateTime),
	}, nil
}

// BuildLocale starts a build of the draft locale. A locale that is already
// built and unchanged since yields a ConflictError.
func (c *RealClient) BuildLocale(ctx context.Context, botID, localeID string) (Locale, error) {
	current, err := c.DescribeLocale(ctx, botID, localeID)
	if err != nil {
		return Locale{}, err
	}
	if current.UpToDate() {
		return Locale{}, &ConflictError{
			Kind:    kindBuild,
			Name:    localeID,
			Code:    "AlreadyBuilt",
			Message: "locale is built and unchanged since the last build",
		}
	}

	out, err := c.lex.BuildBotLocale(ctx, &lexmodelsv2.BuildBotLocaleInput{
		BotId:      aws.String(botID),
		BotVersion: aws.String(DraftVersion),
		LocaleId:   aws.String(localeID),
	})
	if err != nil {
		return Locale{}, classify(err, "build", kindLocale, localeID)
	}
	return Locale{
		BotID:              botID,
		LocaleID:           localeID,
		Status:             string(out.BotLocaleStatus),
		LastBuildSubmitted: aws.ToTime(out.LastBuildSubmittedDateTime),
	}, nil
}

// CreateIntent creates an intent in the draft locale.
func (c *RealClient) CreateIntent(ctx context.Context, spec IntentSpec) (Intent, error) {
	utterances := make([]lextypes.SampleUtterance, 0, len(spec.Utterances))
	for _, u := range spec.Utterances {
		utterances = append(utterances, lextypes.SampleUtterance{Utterance: aws.String(u)})
	}

	input := &lexmodelsv2.CreateIntentInput{
		BotId:            aws.String(spec.BotID),
		BotVersion:       aws.String(DraftVersion),
		LocaleId:         aws.String(spec.LocaleID),
		IntentName:       aws.String(spec.Name),
		Description:      optionalString(spec.Description),
		SampleUtterances: utterances,
	}
	if spec.Fulfillment {
		hook := &lextypes.FulfillmentCodeHookSettings{Enabled: true}
		if spec.SuccessMessage != "" {
			hook.PostFulfillmentStatusSpecification = &lextypes.PostFulfillmentStatusSpecification{
				SuccessResponse: &lextypes.ResponseSpecification{
					MessageGroups: plainText(spec.SuccessMessage),
				},
			}
		}
		input.FulfillmentCodeHook = hook
	}

	out, err := c.lex.CreateIntent(ctx, input)
	if err != nil {
		return Intent{}, classify(err, "create", kindIntent, spec.Name)
	}
	return Intent{ID: aws.ToString(out.IntentId), Name: aws.ToString(out.IntentName)}, nil
}

// FindIntent looks an intent up by exact name.
func (c *RealClient) FindIntent(ctx context.Context, botID, localeID, name string) (Intent, error) {
	paginator := lexmodelsv2.NewListIntentsPaginator(c.lex, &lexmodelsv2.ListIntentsInput{
		BotId:      aws.String(botID),
		BotVersion: aws.String(DraftVersion),
		LocaleId:   aws.String(localeID),
		Filters: []lextypes.IntentFilter{{
			Name:     lextypes.IntentFilterNameIntentName,
			Operator: lextypes.IntentFilterOperatorEquals,
			Values:   []string{name},
		}},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return Intent{}, classify(err, "list", kindIntent, name)
		}
		for _, i := range page.IntentSummaries {
			if aws.ToString(i.IntentName) == name {
				return Intent{ID: aws.ToString(i.IntentId), Name: name}, nil
			}
		}
	}
	return Intent{}, &NotFoundError{Kind: kindIntent, Name: name, Code: "NoMatchingName"}
}

// SetSlotPriorities rewrites the intent's slot elicitation order. UpdateIntent
// replaces the whole intent, so every field read back from DescribeIntent is
// passed through unchanged.
func (c *RealClient) SetSlotPriorities(ctx context.Context, botID, localeID, intentID string, priorities []SlotPriority) (bool, error) {
	cur, err := c.lex.DescribeIntent(ctx, &lexmodelsv2.DescribeIntentInput{
		BotId:      aws.String(botID),
		BotVersion: aws.String(DraftVersion),
		LocaleId:   aws.String(localeID),
		IntentId:   aws.String(intentID),
	})
	if err != nil {
		return false, classify(err, "describe", kindIntent, intentID)
	}

	if slices.Equal(fromLexPriorities(cur.SlotPriorities), priorities) {
		return false, nil
	}

	_, err = c.lex.UpdateIntent(ctx, &lexmodelsv2.UpdateIntentInput{
		BotId:                     aws.String(botID),
		BotVersion:                aws.String(DraftVersion),
		LocaleId:                  aws.String(localeID),
		IntentId:                  aws.String(intentID),
		IntentName:                cur.IntentName,
		Description:               cur.Description,
		ParentIntentSignature:     cur.ParentIntentSignature,
		SampleUtterances:          cur.SampleUtterances,
		DialogCodeHook:            cur.DialogCodeHook,
		FulfillmentCodeHook:       cur.FulfillmentCodeHook,
		IntentConfirmationSetting: cur.IntentConfirmationSetting,
		IntentClosingSetting:      cur.IntentClosingSetting,
		InitialResponseSetting:    cur.InitialResponseSetting,
		InputContexts:             cur.InputContexts,
		OutputContexts:            cur.OutputContexts,
		KendraConfiguration:       cur.KendraConfiguration,
		SlotPriorities:            toLexPriorities(priorities),
	})
	if err != nil {
		return false, classify(err, "update", kindIntent, aws.ToString(cur.IntentName))
	}
	return true, nil
}

// CreateSlot creates a slot on an intent of the draft locale.
func (c *RealClient) CreateSlot(ctx context.Context, spec SlotSpec) (Slot, error) {
	constraint := lextypes.SlotConstraintOptional
	if spec.Required {
		constraint = lextypes.SlotConstraintRequired
	}

	out, err := c.lex.CreateSlot(ctx, &lexmodelsv2.CreateSlotInput{
		BotId:      aws.String(spec.BotID),
		BotVersion: aws.String(DraftVersion),
		LocaleId:   aws.String(spec.LocaleID),
		IntentId:   aws.String(spec.IntentID),
		SlotName:   aws.String(spec.Name),
		SlotTypeId: aws.String(spec.TypeID),
		ValueElicitationSetting: &lextypes.SlotValueElicitationSetting{
			SlotConstraint: constraint,
			PromptSpecification: &lextypes.PromptSpecification{
				MessageGroups: plainText(spec.Prompt),
				MaxRetries:    aws.Int32(spec.MaxRetries),
			},
		},
	})
	if err != nil {
		return Slot{}, classify(err, "create", kindSlot, spec.Name)
	}
	return Slot{ID: aws.ToString(out.SlotId), Name: aws.ToString(out.SlotName), IntentID: spec.IntentID}, nil
}

// FindSlot looks a slot up by exact name.
func (c *RealClient) FindSlot(ctx context.Context, botID, localeID, intentID, name string) (Slot, error) {
	paginator := lexmodelsv2.NewListSlotsPaginator(c.lex, &lexmodelsv2.ListSlotsInput{
		BotId:      aws.String(botID),
		BotVersion: aws.String(DraftVersion),
		LocaleId:   aws.String(localeID),
		IntentId:   aws.String(intentID),
		Filters: []lextypes.SlotFilter{{
			Name:     lextypes.SlotFilterNameSlotName,
			Operator: lextypes.SlotFilterOperatorEquals,
			Values:   []string{name},
		}},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return Slot{}, classify(err, "list", kindSlot, name)
		}
		for _, s := range page.SlotSummaries {
			if aws.ToString(s.SlotName) == name {
				return Slot{ID: aws.ToString(s.SlotId), Name: name, IntentID: intentID}, nil
			}
		}
	}
	return Slot{}, &NotFoundError{Kind: kindSlot, Name: name, Code: "NoMatchingName"}
}

// CreateVersion snapshots the draft locale into a numbered version. The
// description identifies the content, so an existing version with the same
// description is reported as a ConflictError instead of creating a copy.
func (c *RealClient) CreateVersion(ctx context.Context, botID, localeID, description string) (Version, error) {
	existing, err := c.FindVersion(ctx, botID, description)
	switch {
	case err == nil:
		return Version{}, &ConflictError{
			Kind:    kindVersion,
			Name:    description,
			Code:    "VersionExists",
			Message: "version " + existing.Version + " has the same content",
		}
	case !IsNotFound(err):
		return Version{}, err
	}

	out, err := c.lex.CreateBotVersion(ctx, &lexmodelsv2.CreateBotVersionInput{
		BotId:       aws.String(botID),
		Description: optionalString(description),
		BotVersionLocaleSpecification: map[string]lextypes.BotVersionLocaleDetails{
			localeID: {SourceBotVersion: aws.String(DraftVersion)},
		},
	})
	if err != nil {
		return Version{}, classify(err, "create", kindVersion, botID)
	}
	return Version{
		BotID:       botID,
		Version:     aws.ToString(out.BotVersion),
		Description: aws.ToString(out.Description),
		Status:      string(out.BotStatus),
	}, nil
}

// FindVersion returns the numbered version with the given description.
func (c *RealClient) FindVersion(ctx context.Context, botID, description string) (Version, error) {
	paginator := lexmodelsv2.NewListBotVersionsPaginator(c.lex, &lexmodelsv2.ListBotVersionsInput{
		BotId: aws.String(botID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return Version{}, classify(err, "list", kindVersion, botID)
		}
		for _, v := range page.BotVersionSummaries {
			if aws.ToString(v.BotVersion) == DraftVersion || aws.ToString(v.Description) != description {
				continue
			}
			return Version{
				BotID:       botID,
				Version:     aws.ToString(v.BotVersion),
				Description: description,
				Status:      string(v.BotStatus),
			}, nil
		}
	}
	return Version{}, &NotFoundError{Kind: kindVersion, Name: description, Code: "NoMatchingDescription"}
}

// DescribeVersion returns the version's status snapshot.
func (c *RealClient) DescribeVersion(ctx context.Context, botID, version string) (Version, error) {
	out, err := c.lex.DescribeBotVersion(ctx, &lexmodelsv2.DescribeBotVersionInput{
		BotId:      aws.String(botID),
		BotVersion: aws.String(version),
	})
	if err != nil {
		return Version{}, classify(err, "describe", kindVersion, version)
	}
	return Version{
		BotID:          botID,
		Version:        aws.ToString(out.BotVersion),
		Description:    aws.ToString(out.Description),
		Status:         string(out.BotStatus),
		FailureReasons: out.FailureReasons,
	}, nil
}

// CreateAlias creates an alias with the Lambda code hook enabled for the
// locale. Returns a ConflictError if the name is taken.
func (c *RealClient) CreateAlias(ctx context.Context, spec AliasSpec) (Alias, error) {
	out, err := c.lex.CreateBotAlias(ctx, &lexmodelsv2.CreateBotAliasInput{
		BotId:                     aws.String(spec.BotID),
		BotAliasName:              aws.String(spec.Name),
		BotVersion:                aws.String(spec.Version),
		BotAliasLocaleSettings:    aliasLocaleSettings(spec),
		SentimentAnalysisSettings: &lextypes.SentimentAnalysisSettings{DetectSentiment: false},
	})
	if err != nil {
		return Alias{}, classify(err, "create", kindAlias, spec.Name)
	}
	return Alias{
		ID:      aws.ToString(out.BotAliasId),
		Name:    aws.ToString(out.BotAliasName),
		BotID:   spec.BotID,
		Version: aws.ToString(out.BotVersion),
		Status:  string(out.BotAliasStatus),
	}, nil
}

// FindAlias looks an alias up by exact name.
func (c *RealClient) FindAlias(ctx context.Context, botID, name string) (Alias, error) {
	paginator := lexmodelsv2.NewListBotAliasesPaginator(c.lex, &lexmodelsv2.ListBotAliasesInput{
		BotId: aws.String(botID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return Alias{}, classify(err, "list", kindAlias, name)
		}
		for _, a := range page.BotAliasSummaries {
			if aws.ToString(a.BotAliasName) != name {
				continue
			}
			return Alias{
				ID:      aws.ToString(a.BotAliasId),
				Name:    name,
				BotID:   botID,
				Version: aws.ToString(a.BotVersion),
				Status:  string(a.BotAliasStatus),
			}, nil
		}
	}
	return Alias{}, &NotFoundError{Kind: kindAlias, Name: name, Code: "NoMatchingName"}
}

// UpdateAlias repoints an existing alias to spec.Version.
func (c *RealClient) UpdateAlias(ctx context.Context, aliasID string, spec AliasSpec) (Alias, error) {
	out, err := c.lex.UpdateBotAlias(ctx, &lexmodelsv2.UpdateBotAliasInput{
		BotId:                     aws.String(spec.BotID),
		BotAliasId:                aws.String(aliasID),
		BotAliasName:              aws.String(spec.Name),
		BotVersion:                aws.String(spec.Version),
		BotAliasLocaleSettings:    aliasLocaleSettings(spec),
		SentimentAnalysisSettings: &lextypes.SentimentAnalysisSettings{DetectSentiment: false},
	})
	if err != nil {
		return Alias{}, classify(err, "update", kindAlias, spec.Name)
	}
	return Alias{
		ID:      aws.ToString(out.BotAliasId),
		Name:    aws.ToString(out.BotAliasName),
		BotID:   spec.BotID,
		Version: aws.ToString(out.BotVersion),
		Status:  string(out.BotAliasStatus),
	}, nil
}

// DescribeAlias returns the alias's status snapshot.
func (c *RealClient) DescribeAlias(ctx context.Context, botID, aliasID string) (Alias, error) {
	out, err := c.lex.DescribeBotAlias(ctx, &lexmodelsv2.DescribeBotAliasInput{
		BotId:      aws.String(botID),
		BotAliasId: aws.String(aliasID),
	})
	if err != nil {
		return Alias{}, classify(err, "describe", kindAlias, aliasID)
	}
	return Alias{
		ID:      aws.ToString(out.BotAliasId),
		Name:    aws.ToString(out.BotAliasName),
		BotID:   botID,
		Version: aws.ToString(out.BotVersion),
		Status:  string(out.BotAliasStatus),
	}, nil
}

// DeleteAlias deletes the alias.
func (c *RealClient) DeleteAlias(ctx context.Context, botID, aliasID string) error {
	_, err := c.lex.DeleteBotAlias(ctx, &lexmodelsv2.DeleteBotAliasInput{
		BotId:                  aws.String(botID),
		BotAliasId:             aws.String(aliasID),
		SkipResourceInUseCheck: true,
	})
	if err != nil {
		return classify(err, "delete", kindAlias, aliasID)
	}
	return nil
}

func aliasLocaleSettings(spec AliasSpec) map[string]lextypes.BotAliasLocaleSettings {
	settings := lextypes.BotAliasLocaleSettings{Enabled: true}
	if spec.FunctionARN != "" {
		settings.CodeHookSpecification = &lextypes.CodeHookSpecification{
			LambdaCodeHook: &lextypes.LambdaCodeHook{
				LambdaARN:                aws.String(spec.FunctionARN),
				CodeHookInterfaceVersion: aws.String(codeHookInterfaceVersion),
			},
		}
	}
	return map[string]lextypes.BotAliasLocaleSettings{spec.LocaleID: settings}
}

func plainText(text string) []lextypes.MessageGroup {
	return []lextypes.MessageGroup{{
		Message: &lextypes.Message{
			PlainTextMessage: &lextypes.PlainTextMessage{Value: aws.String(text)},
		},
	}}
}

func fromLexPriorities(in []lextypes.SlotPriority) []SlotPriority {
	out := make([]SlotPriority, 0, len(in))
	for _, p := range in {
		out = append(out, SlotPriority{SlotID: aws.ToString(p.SlotId), Priority: aws.ToInt32(p.Priority)})
	}
	slices.SortFunc(out, func(a, b SlotPriority) int { return int(a.Priority - b.Priority) })
	return out
}

func toLexPriorities(in []SlotPriority) []lextypes.SlotPriority {
	out := make([]lextypes.SlotPriority, 0, len(in))
	for _, p := range in {
		out = append(out, lextypes.SlotPriority{SlotId: aws.String(p.SlotID), Priority: aws.Int32(p.Priority)})
	}
	return out
}

