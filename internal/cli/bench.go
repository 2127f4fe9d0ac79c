package cli

import (
	"github.com/spf13/cobra"

	"assistant-kit/internal/app"
	"assistant-kit/internal/bench"
	"assistant-kit/internal/conversation/repository"
	"assistant-kit/pkg/embedding"
)

func newBenchCmd(s *state) *cobra.Command {
	var (
		runs          int
		backends      []string
		window        int
		memoryKind    string
		summaryTokens int
		topK          int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure turn latency per conversation log backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.config()
			if err != nil {
				return err
			}
			completer, err := s.llm()
			if err != nil {
				return err
			}
			if runs <= 0 {
				runs = cfg.Bench.Runs
			}
			if len(backends) == 0 {
				backends = cfg.Bench.Backends
			}

			memCfg := bench.MemoryConfig{
				Kind:          firstNonEmpty(memoryKind, cfg.Bench.Memory),
				HistoryWindow: window,
				SummaryTokens: firstPositive(summaryTokens, cfg.Bench.SummaryTokens),
				TopK:          firstPositive(topK, cfg.Bench.TopK),
			}
			var embedder embedding.Embedder
			if memCfg.Kind == bench.MemoryRetriever {
				if embedder, _, err = app.NewEmbedder(cfg); err != nil {
					return err
				}
			}
			mem, err := bench.NewMemory(memCfg, completer, embedder)
			if err != nil {
				return err
			}

			runner, err := bench.NewRunner(s.log(), completer, bench.Iceland, bench.WithMemory(mem))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			results := make([]bench.Result, 0, len(backends))
			for _, b := range backends {
				memory, closeFn, err := repository.Open(ctx, b, cfg)
				if err != nil {
					return err
				}
				res, err := runner.Run(ctx, b, memory, runs)
				closeFn()
				if err != nil {
					return err
				}
				results = append(results, res)
			}
			return bench.WriteReport(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().IntVarP(&runs, "runs", "n", 0, "runs per backend (default bench.runs)")
	cmd.Flags().StringSliceVarP(&backends, "backend", "b", nil, "backends to measure (default bench.backends)")
	cmd.Flags().IntVar(&window, "window", 0, "history turns rendered into the prompt by the buffer memory, 0 for all")
	cmd.Flags().StringVarP(&memoryKind, "memory", "m", "", "prompt memory: buffer, summary or retriever (default bench.memory)")
	cmd.Flags().IntVar(&summaryTokens, "summary-tokens", 0, "words kept verbatim before the summary memory folds older turns")
	cmd.Flags().IntVar(&topK, "top-k", 0, "documents the retriever memory puts into the prompt")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
