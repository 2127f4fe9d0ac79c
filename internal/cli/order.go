package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"assistant-kit/internal/app"
	"assistant-kit/internal/assistant"
	"assistant-kit/internal/order"
)

func newOrderCmd(s *state) *cobra.Command {
	var (
		script  bool
		backend string
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Talk to the shoe sales agent, one message per line",
		Long:  "order reads human messages from stdin (or the built-in script with --script) and prints the agent's replies and the final order record.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.config()
			if err != nil {
				return err
			}
			a, err := app.Build(cmd.Context(), cfg, s.log(), app.Options{Backend: backend})
			if err != nil {
				return err
			}
			defer a.Close()

			messages := order.ScriptedMessages
			if !script {
				messages, err = readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}
			return runOrder(cmd, a.Assistant, messages)
		},
	}
	cmd.Flags().BoolVar(&script, "script", false, "replay the scripted shoe order")
	cmd.Flags().StringVar(&backend, "backend", "", "conversation log backend (memory, redis, dynamodb)")
	return cmd
}

func runOrder(cmd *cobra.Command, uc assistant.UseCase, messages []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	sess, err := uc.NewSession(ctx)
	if err != nil {
		return err
	}
	for _, msg := range messages {
		res, err := uc.Order(ctx, assistant.OrderInput{SessionID: sess.ID, Message: msg})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Human: %s\nAI: %s\n\n", msg, res.Reply)
	}

	details, err := uc.OrderDetails(ctx, sess.ID)
	if err != nil {
		return err
	}
	body, err := json.MarshalIndent(details.Order, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Order:\n%s\n", body)
	if len(details.Missing) > 0 {
		fmt.Fprintf(out, "Missing: %s\n", strings.Join(details.Missing, ", "))
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
