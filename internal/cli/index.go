package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"assistant-kit/internal/app"
)

func newIndexCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Embed the intent catalog into the Qdrant collection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.config()
			if err != nil {
				return err
			}
			n, err := app.IndexCatalog(cmd.Context(), cfg, s.log())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d intents into %s\n", n, cfg.Qdrant.CollectionName)
			return err
		},
	}
}
