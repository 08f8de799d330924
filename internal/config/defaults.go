package config

// Default values for the stock echo bot.
const (
	DefaultRegion              = "us-east-1"
	DefaultRoleName            = "LambdaLexExecutionRole"
	DefaultFunctionName        = "ChatbotLogic"
	DefaultRuntime             = "python3.12"
	DefaultHandler             = "lambda_function.lambda_handler"
	DefaultFunctionTimeout     = 15
	DefaultMemorySize          = 128
	DefaultStatementID         = "AllowLexToInvoke"
	DefaultBotName             = "EchoChatbot"
	DefaultIdleSessionTTL      = 300
	DefaultLocaleID            = "en_US"
	DefaultConfidenceThreshold = 0.40
	DefaultAliasName           = "TestAlias"
	DefaultOutputPath          = "bot-config.json"
	DefaultSuccessMessage      = "Success"
)

// Default returns the configuration of the stock echo bot.
func Default() *Config {
	cfg := &Config{
		Bot: BotConfig{
			Intents: []IntentConfig{
				{
					Name:        "EchoIntent",
					Description: "Echo back what the user says",
					Utterances: []string{
						"Hello",
						"Hi",
						"Hey",
						"Echo",
						"What's up",
						"How are you",
						"Good morning",
						"Tell me something",
						"Can you help me",
					},
					Fulfillment: true,
				},
			},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}

	if c.Role.Name == "" {
		c.Role.Name = DefaultRoleName
	}
	if c.Role.Description == "" {
		c.Role.Description = "Role for Lambda to execute and interact with Lex"
	}

	f := &c.Function
	if f.Name == "" {
		f.Name = DefaultFunctionName
	}
	if f.Runtime == "" {
		f.Runtime = DefaultRuntime
	}
	if f.Handler == "" {
		f.Handler = DefaultHandler
	}
	if f.Timeout == 0 {
		f.Timeout = DefaultFunctionTimeout
	}
	if f.MemorySize == 0 {
		f.MemorySize = DefaultMemorySize
	}
	if f.StatementID == "" {
		f.StatementID = DefaultStatementID
	}

	b := &c.Bot
	if b.Name == "" {
		b.Name = DefaultBotName
	}
	if b.Description == "" {
		b.Description = "A simple echo chatbot"
	}
	if b.IdleSessionTTL == 0 {
		b.IdleSessionTTL = DefaultIdleSessionTTL
	}
	if b.Locale.ID == "" {
		b.Locale.ID = DefaultLocaleID
	}
	if b.Locale.ConfidenceThreshold == 0 {
		b.Locale.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if b.Alias.Name == "" {
		b.Alias.Name = DefaultAliasName
	}
	for i := range b.Intents {
		if b.Intents[i].Fulfillment && b.Intents[i].SuccessMessage == "" {
			b.Intents[i].SuccessMessage = DefaultSuccessMessage
		}
		for j := range b.Intents[i].Slots {
			if b.Intents[i].Slots[j].MaxRetries == 0 {
				b.Intents[i].Slots[j].MaxRetries = 2
			}
		}
	}

	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}
}
