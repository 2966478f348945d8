package cmd

import (
	"fmt"

	"github.com/npillmayer/scoretree"
	"github.com/spf13/cobra"
)

func newTokensCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens of score notation, one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, source, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			for _, tok := range scoretree.Tokenize(source) {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}
}
