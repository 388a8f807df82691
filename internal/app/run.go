package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const prompt = "> "

// Run answers questions read line by line from in until EOF, "exit" or
// cancellation of ctx.
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "FinAssist: ask about budgets, investments or saving tips. Type 'exit' to quit.")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		const maxLineSize = 1024 * 1024
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			a.logger.Debug("Chat interrupted")
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				if err := <-errc; err != nil {
					return fmt.Errorf("stdin error: %w", err)
				}
				return nil
			}

			question := strings.TrimSpace(line)
			switch strings.ToLower(question) {
			case "":
				continue
			case "exit", "quit":
				return nil
			}

			fmt.Fprintln(out, a.Ask(ctx, question))
			fmt.Fprintln(out)
		}
	}
}
