package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ling0322/sentparse/internal/pipeline"
	"github.com/ling0322/sentparse/pcfg"
)

func grammarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the loaded grammar",
		Long: `Print the rules of the loaded grammar with their weights.
With --cnf the grammar is printed in the Chomsky normal form the chart parser
uses; unit rules collapsed by the conversion are shown in parentheses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grammarText, err := pipeline.LoadGrammar(a.cfg.Grammar)
			if err != nil {
				return err
			}
			parser, err := pcfg.NewParser(grammarText, pcfg.WithLogger(a.logger.Named("pcfg")))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cnf, _ := cmd.Flags().GetBool("cnf"); cnf {
				_, err = fmt.Fprint(out, parser.CNF().String())
				return err
			}
			fmt.Fprintf(out, "%%start %s\n", parser.Grammar().Start)
			fmt.Fprint(out, parser.Grammar().String())
			if words, _ := cmd.Flags().GetBool("words"); words {
				terminals := parser.Grammar().Terminals()
				fmt.Fprintf(out, "\n# %d words\n", len(terminals))
				for _, word := range terminals {
					fmt.Fprintln(out, word)
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("cnf", false, "print the grammar in Chomsky normal form")
	cmd.Flags().Bool("words", false, "list the words covered by the grammar")
	return cmd
}
