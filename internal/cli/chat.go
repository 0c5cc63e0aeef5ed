package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/carebot/internal/text"
	"github.com/aretw0/carebot/pkg/domain"
	"github.com/aretw0/carebot/pkg/session"
)

// ChatOptions configures an interactive chat.
type ChatOptions struct {
	UserID  string
	CheckIn bool // open with a check-in prompt
	JSON    bool // NDJSON in and out
}

type chatLine struct {
	Message string `json:"message"`
}

type chatReply struct {
	Message string           `json:"message"`
	Context domain.FlowState `json:"context"`
	Intent  *domain.Intent   `json:"intent,omitempty"`
}

// RunChat reads one message per line from in and writes each reply to out
// until EOF, "exit" or "quit", or ctx is done.
func RunChat(ctx context.Context, m *session.Manager, in io.Reader, out io.Writer, opts ChatOptions) error {
	if opts.UserID == "" {
		opts.UserID = "cli"
	}
	sanitizer := text.NewSanitizer(0)

	emit := func(r *session.Reply) error {
		if opts.JSON {
			return json.NewEncoder(out).Encode(chatReply{Message: r.Message, Context: r.Flow, Intent: r.Intent})
		}
		_, err := fmt.Fprintf(out, "%s\n", r.Message)
		return err
	}

	if opts.CheckIn {
		r, err := m.InitiateCheckIn(ctx, opts.UserID)
		if err != nil {
			return err
		}
		if err := emit(r); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		if !opts.JSON {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if opts.JSON && line != "" {
			var cl chatLine
			if err := json.Unmarshal([]byte(line), &cl); err != nil {
				return fmt.Errorf("invalid input line: %w", err)
			}
			line = cl.Message
		}
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		msg, err := sanitizer.Sanitize(line)
		if err != nil {
			fmt.Fprintf(out, ">>> %v\n", err)
			continue
		}
		r, err := m.SendMessage(ctx, opts.UserID, msg)
		if err != nil {
			return err
		}
		if err := emit(r); err != nil {
			return err
		}
	}
}
