package session

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
	"github.com/google/uuid"
)

// NoResponse is returned by Send when the bot answers without a message.
const NoResponse = "No response"

// RecognizeTextAPI is the runtime operation used by Client.
type RecognizeTextAPI interface {
	RecognizeText(ctx context.Context, params *lexruntimev2.RecognizeTextInput, optFns ...func(*lexruntimev2.Options)) (*lexruntimev2.RecognizeTextOutput, error)
}

// Target identifies the alias and locale a session talks to.
type Target struct {
	BotID    string
	AliasID  string
	LocaleID string
}

// Option configures a Client.
type Option func(*Client)

// WithSessionID sets the session id instead of a random one.
func WithSessionID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.sessionID = id
		}
	}
}

// Client sends user utterances to a bot alias.
type Client struct {
	api       RecognizeTextAPI
	target    Target
	sessionID string
}

// New creates a Client with a random session id unless overridden.
func New(api RecognizeTextAPI, target Target, opts ...Option) *Client {
	c := &Client{
		api:       api,
		target:    target,
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a Client backed by the Lex V2 runtime.
func NewFromConfig(cfg aws.Config, target Target, opts ...Option) *Client {
	return New(lexruntimev2.NewFromConfig(cfg), target, opts...)
}

// SessionID returns the id shared by all turns of the conversation.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Send delivers text and returns the content of the bot's first message, or
// NoResponse if it sent none.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	out, err := c.api.RecognizeText(ctx, &lexruntimev2.RecognizeTextInput{
		BotId:      aws.String(c.target.BotID),
		BotAliasId: aws.String(c.target.AliasID),
		LocaleId:   aws.String(c.target.LocaleID),
		SessionId:  aws.String(c.sessionID),
		Text:       aws.String(text),
	})
	if err != nil {
		return "", fmt.Errorf("failed to recognize text: %w", err)
	}
	if len(out.Messages) == 0 || out.Messages[0].Content == nil {
		return NoResponse, nil
	}
	return *out.Messages[0].Content, nil
}
