package cli

import (
	"fmt"
	"io"
	"strings"

	"ccse-study-service/internal/app"
	"ccse-study-service/internal/config"
	"ccse-study-service/internal/domain"
	"github.com/spf13/cobra"
)

// NewExamCmd prints a freshly generated exam.
func NewExamCmd(configPath *string) *cobra.Command {
	var showAnswers bool
	cmd := &cobra.Command{
		Use:   "exam",
		Short: "Generate a mock exam from the configured distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			pool, err := connectPostgres(ctx, cfg)
			if err != nil {
				return err
			}
			if pool != nil {
				defer pool.Close()
			}

			cat := loadCatalog(ctx, pool)
			set := app.NewGenerator().Generate(cat, distribution(cfg))
			printExam(cmd.OutOrStdout(), set, showAnswers)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showAnswers, "answers", false, "include the answer key")
	return cmd
}

func printExam(w io.Writer, set domain.ExamSet, showAnswers bool) {
	parts := make([]string, 0, len(set.Composition))
	for _, q := range set.Composition {
		parts = append(parts, fmt.Sprintf("task %d: %d", q.Task, q.Count))
	}
	fmt.Fprintf(w, "exam %s (%d questions, pass with %d)\n", set.ID, len(set.Questions), app.PassThreshold)
	fmt.Fprintf(w, "%s\n\n", strings.Join(parts, ", "))

	for i, q := range set.Questions {
		fmt.Fprintf(w, "%2d. [%d] %s\n", i+1, q.ID, q.Prompt)
		for j, opt := range q.Options {
			letter, _ := domain.LetterAt(j)
			fmt.Fprintf(w, "      %s) %s\n", letter, opt)
		}
		if showAnswers {
			fmt.Fprintf(w, "      answer: %s\n", q.Answer)
		}
	}
}
