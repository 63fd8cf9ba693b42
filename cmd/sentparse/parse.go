package main

import (
	"bufio"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ling0322/sentparse/internal/pipeline"
	"github.com/ling0322/sentparse/internal/report"
)

func parseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [dir|file]...",
		Short: "Parse sentences and extract NP/VP chunks",
		Long: `Parse sentences and extract their noun phrase and verb phrase chunks.

Each file holds one sentence. A directory argument is replaced by its .txt
files, ordered by their numeric names (1.txt, 2.txt, ..., 10.txt).
With --sentence the given sentences are parsed instead, and with no argument
at all one sentence per line is read from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sentences, _ := cmd.Flags().GetStringArray("sentence")
			if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
				a.cfg.Workers = workers
			}
			if noTags, _ := cmd.Flags().GetBool("no-tags"); noTags {
				a.cfg.Tagging.Enabled = false
			}

			analyzer, err := pipeline.New(a.cfg, a.logger)
			if err != nil {
				return err
			}

			var results []*pipeline.Result
			switch {
			case len(sentences) > 0:
				results, err = analyzer.AnalyzeSentences(cmd.Context(), sentences)
			case len(args) > 0:
				paths, perr := pipeline.ExpandInputs(args)
				if perr != nil {
					return perr
				}
				a.logger.Info("parsing sentence files", zap.Int("files", len(paths)))
				results, err = analyzer.AnalyzeFiles(cmd.Context(), paths)
			default:
				lines, rerr := readLines(cmd)
				if rerr != nil {
					return rerr
				}
				results, err = analyzer.AnalyzeSentences(cmd.Context(), lines)
			}
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), a.cfg.Output.Format, results)
		},
	}

	cmd.Flags().StringArrayP("sentence", "s", nil, "sentence to parse (repeatable)")
	cmd.Flags().IntP("workers", "w", 0, "sentences analyzed concurrently (default from config)")
	cmd.Flags().Bool("no-tags", false, "disable POS tagging and tag-pattern chunks")

	return cmd
}

// readLines reads the non-empty lines of standard input
func readLines(cmd *cobra.Command) ([]string, error) {
	lines := []string{}
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading sentences")
	}
	return lines, nil
}
