package config

// Config holds the desired state of one bot deployment.
type Config struct {
	// Region is the AWS region all resources are created in.
	Region string `yaml:"region" validate:"required"`

	Role     RoleConfig     `yaml:"role"`
	Function FunctionConfig `yaml:"function"`
	Bot      BotConfig      `yaml:"bot"`
	Output   OutputConfig   `yaml:"output"`
}

// RoleConfig describes the IAM role shared by the function and the bot.
type RoleConfig struct {
	Name        string   `yaml:"name" validate:"required,max=64"`
	Description string   `yaml:"description,omitempty"`
	PolicyARNs  []string `yaml:"policy_arns,omitempty" validate:"dive,startswith=arn:"`
}

// FunctionConfig describes the Lambda function fulfilling intents.
type FunctionConfig struct {
	Name        string `yaml:"name" validate:"required,max=64"`
	Description string `yaml:"description,omitempty"`
	Runtime     string `yaml:"runtime" validate:"required"`
	Handler     string `yaml:"handler" validate:"required"`
	Timeout     int32  `yaml:"timeout" validate:"min=1,max=900"`
	MemorySize  int32  `yaml:"memory_size" validate:"min=128,max=10240"`

	// BundlePath points to a prebuilt deployment zip. Empty means the
	// built-in echo handler is packaged.
	BundlePath string `yaml:"bundle_path,omitempty"`

	// StatementID names the resource-policy statement granting Lex access.
	StatementID string `yaml:"statement_id" validate:"required"`
}

// BotConfig is the bot blueprint.
type BotConfig struct {
	Name           string         `yaml:"name" validate:"required,max=100"`
	Description    string         `yaml:"description,omitempty"`
	IdleSessionTTL int32          `yaml:"idle_session_ttl" validate:"min=60,max=86400"`
	ChildDirected  bool           `yaml:"child_directed"`
	Locale         LocaleConfig   `yaml:"locale"`
	Intents        []IntentConfig `yaml:"intents" validate:"required,min=1,unique=Name,dive"`
	Alias          AliasConfig    `yaml:"alias"`
}

// LocaleConfig describes the single locale the bot is built for.
type LocaleConfig struct {
	ID                  string  `yaml:"id" validate:"required"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold" validate:"gte=0,lte=1"`
	VoiceID             string  `yaml:"voice_id,omitempty"`
}

// IntentConfig describes one intent and its slots.
type IntentConfig struct {
	Name           string       `yaml:"name" validate:"required,max=100"`
	Description    string       `yaml:"description,omitempty"`
	Utterances     []string     `yaml:"utterances" validate:"required,min=1,dive,required"`
	Fulfillment    bool         `yaml:"fulfillment"`
	SuccessMessage string       `yaml:"success_message,omitempty"`
	Slots          []SlotConfig `yaml:"slots,omitempty" validate:"unique=Name,dive"`
}

// SlotConfig describes one slot. Slots are elicited in declaration order.
type SlotConfig struct {
	Name       string `yaml:"name" validate:"required,max=100"`
	TypeID     string `yaml:"type_id" validate:"required"`
	Required   bool   `yaml:"required"`
	Prompt     string `yaml:"prompt" validate:"required"`
	// MaxRetries of zero selects the default of two re-prompts.
	MaxRetries int32  `yaml:"max_retries" validate:"min=0,max=5"`
}

// AliasConfig describes the alias runtime sessions talk to.
type AliasConfig struct {
	Name string `yaml:"name" validate:"required,max=100"`
}

// OutputConfig controls where the run record is persisted.
type OutputConfig struct {
	// Path is the local JSON file receiving the record.
	Path string `yaml:"path" validate:"required"`

	// Bucket optionally receives a copy of the record under Key.
	Bucket string `yaml:"bucket,omitempty"`
	Key    string `yaml:"key,omitempty" validate:"required_with=Bucket"`
}

// Intent returns the intent with the given name.
func (c *Config) Intent(name string) (IntentConfig, bool) {
	for _, intent := range c.Bot.Intents {
		if intent.Name == name {
			return intent, true
		}
	}
	return IntentConfig{}, false
}
