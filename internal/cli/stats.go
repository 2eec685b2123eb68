package cli

import (
	"fmt"
	"io"
	"sort"

	"ccse-study-service/internal/catalog"
	"ccse-study-service/internal/config"
	"ccse-study-service/internal/domain"
	"github.com/spf13/cobra"
)

// NewStatsCmd prints the locally persisted progress.
func NewStatsCmd(configPath *string) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show exam statistics, favorites and the most missed questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			local, err := openLocalStore(cfg)
			if err != nil {
				return err
			}
			defer local.Close()

			tracker := newTracker(ctx, cfg, local, catalog.Builtin(), nil)
			printStats(cmd.OutOrStdout(), tracker.Snapshot(), top)
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 5, "number of most missed questions to list")
	return cmd
}

type missed struct {
	id    int
	stats domain.QuestionStats
}

// weakest orders questions by mistakes, then by error rate, then by id.
func weakest(history map[int]domain.QuestionStats, n int) []missed {
	out := make([]missed, 0, len(history))
	for id, s := range history {
		if s.Incorrect > 0 {
			out = append(out, missed{id: id, stats: s})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].stats, out[j].stats
		if a.Incorrect != b.Incorrect {
			return a.Incorrect > b.Incorrect
		}
		if a.Incorrect*b.Seen != b.Incorrect*a.Seen {
			return a.Incorrect*b.Seen > b.Incorrect*a.Seen
		}
		return out[i].id < out[j].id
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func printStats(w io.Writer, state domain.ProgressState, top int) {
	s := state.Stats
	fmt.Fprintf(w, "exams taken:  %d\n", s.ExamsTaken)
	fmt.Fprintf(w, "exams passed: %d\n", s.ExamsPassed)
	if s.TotalQuestionsAnswered > 0 {
		fmt.Fprintf(w, "accuracy:     %d/%d (%.1f%%)\n", s.TotalCorrect, s.TotalQuestionsAnswered,
			100*float64(s.TotalCorrect)/float64(s.TotalQuestionsAnswered))
	}
	fmt.Fprintf(w, "favorites:    %v\n", state.Favorites)

	list := weakest(state.QuestionHistory, top)
	if len(list) == 0 {
		return
	}
	fmt.Fprintln(w, "most missed:")
	for _, m := range list {
		fmt.Fprintf(w, "  %d  %d/%d wrong\n", m.id, m.stats.Incorrect, m.stats.Seen)
	}
}
