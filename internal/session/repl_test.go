package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type senderFunc func(ctx context.Context, text string) (string, error)

func (f senderFunc) Send(ctx context.Context, text string) (string, error) { return f(ctx, text) }

func echo(sent *[]string) Sender {
	return senderFunc(func(_ context.Context, text string) (string, error) {
		*sent = append(*sent, text)
		return "You said: " + text, nil
	})
}

func TestChat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantSent []string
		wantOut  []string
	}{
		{
			name:     "exit ends the conversation",
			input:    "hello\nexit\nignored\n",
			wantSent: []string{"hello"},
			wantOut:  []string{"Bot: You said: hello"},
		},
		{
			name:     "quit is case insensitive",
			input:    "QUIT\n",
			wantSent: nil,
		},
		{
			name:     "blank lines re-prompt",
			input:    "\n   \nhi\n",
			wantSent: []string{"hi"},
			wantOut:  []string{"Please enter some text.", "Bot: You said: hi"},
		},
		{
			name:     "eof ends the conversation",
			input:    "one\ntwo",
			wantSent: []string{"one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var sent []string
			var out bytes.Buffer
			require.NoError(t, Chat(context.Background(), echo(&sent), strings.NewReader(tt.input), &out))

			assert.Equal(t, tt.wantSent, sent)
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestChat_ErrorsDoNotEndConversation(t *testing.T) {
	t.Parallel()

	calls := 0
	sender := senderFunc(func(_ context.Context, text string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("throttled")
		}
		return "ok", nil
	})

	var out bytes.Buffer
	require.NoError(t, Chat(context.Background(), sender, strings.NewReader("a\nb\nexit\n"), &out))

	assert.Equal(t, 2, calls)
	assert.Contains(t, out.String(), "Error in conversation: throttled")
	assert.Contains(t, out.String(), "Bot: ok")
}

func TestChat_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sent []string
	err := Chat(ctx, echo(&sent), strings.NewReader("hello\n"), &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sent)
}
