package cmd

import (
	"fmt"
	"time"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/scoretree"
	"github.com/spf13/cobra"
)

func newParseCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse score notation and print the score tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, source, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			start := time.Now()
			score, err := scoretree.Parse(source, s.parserOptions()...)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			gtrace.CoreTracer.Infof("parsed %s in %v", name, time.Since(start))
			return s.printTree(cmd.OutOrStdout(), score)
		},
	}
}
