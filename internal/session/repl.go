package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Sender delivers one utterance and returns the bot's reply.
type Sender interface {
	Send(ctx context.Context, text string) (string, error)
}

// Chat reads utterances from in line by line and writes the replies to out
// until "exit", "quit", EOF or cancellation of ctx. Failed turns are
// reported on out and do not end the conversation.
func Chat(ctx context.Context, s Sender, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Chatting with the bot. Type 'exit' to quit.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		case "":
			fmt.Fprintln(out, "Please enter some text.")
			continue
		}

		reply, err := s.Send(ctx, line)
		if err != nil {
			fmt.Fprintf(out, "Error in conversation: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Bot: %s\n", reply)
	}
}
