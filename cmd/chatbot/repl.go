package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"news-assistant/internal/app"
	"news-assistant/internal/dispatch"
	"news-assistant/internal/session"
)

// run drives the interactive loop: prompt, read, moderate, dispatch, print,
// until "exit" or end of input. Both endings are normal termination.
func run(ctx context.Context, deps app.Deps, d *dispatch.Dispatcher, in io.Reader, out io.Writer) error {
	printWelcome(out)

	state := session.State{}
	scanner := bufio.NewScanner(in)

	for {
		_, _ = fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			_, _ = fmt.Fprintln(out, "Goodbye!")
			return scanner.Err()
		}

		turnLog := deps.Log.With("turn_id", uuid.NewString())
		turnLog.Debug("input received", "len", len(input))

		verdict, err := deps.LLM.Moderate(ctx, input)
		if err != nil {
			turnLog.Warn("input moderation errored, continuing", "err", err)
		}
		if verdict.Flagged {
			printReply(out, dispatch.RefusalInput)
			if len(verdict.Categories) > 0 {
				_, _ = fmt.Fprintf(out, "Flagged categories: %s\n\n", strings.Join(verdict.Categories, ", "))
			}
			continue
		}

		reply, next := d.Handle(ctx, input, state)

		// A reply that fails output moderation is dropped entirely: it is
		// neither printed nor remembered as the last response.
		verdict, err = deps.LLM.Moderate(ctx, reply)
		if err != nil {
			turnLog.Warn("output moderation errored, continuing", "err", err)
		}
		if verdict.Flagged {
			turnLog.Warn("generated reply rejected by moderation", "categories", verdict.Categories)
			printReply(out, dispatch.RefusalOutput)
			continue
		}

		state = next
		printReply(out, reply)
	}
	return scanner.Err()
}

func printWelcome(out io.Writer) {
	_, _ = fmt.Fprintln(out, "Welcome to the Interactive News Assistant!")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Commands you can use:")
	_, _ = fmt.Fprintln(out, "- 'trending': Show current trending topics")
	_, _ = fmt.Fprintln(out, "- 'help': Show available commands")
	_, _ = fmt.Fprintln(out, "- 'exit': Quit the assistant")
	_, _ = fmt.Fprintln(out)
}

func printReply(out io.Writer, reply string) {
	_, _ = fmt.Fprintf(out, "\nAssistant: %s\n\n", reply)
}
