package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"assistant-kit/internal/app"
	"assistant-kit/internal/router"
)

func newRouteCmd(s *state) *cobra.Command {
	var complete bool

	cmd := &cobra.Command{
		Use:   "route <message>",
		Short: "Show which intent a message routes to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.config()
			if err != nil {
				return err
			}
			completer, err := s.llm()
			if err != nil {
				return err
			}
			rt, err := app.NewRouter(cmd.Context(), cfg, s.log(), completer)
			if err != nil {
				return err
			}

			msg := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			if !complete {
				d, err := rt.Decide(cmd.Context(), msg)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "intent: %s\nscore: %.3f\nfallback: %t\n", d.Intent, d.Score, d.Fallback)
				return err
			}

			resp, err := rt.Route(cmd.Context(), router.RouteInput{Utterance: msg})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "intent: %s\nscore: %.3f\nfallback: %t\n\n%s\n", resp.Intent, resp.Score, resp.Fallback, resp.Text)
			return err
		},
	}
	cmd.Flags().BoolVar(&complete, "complete", false, "also complete the routed prompt")
	return cmd
}
