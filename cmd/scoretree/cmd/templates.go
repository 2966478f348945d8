package cmd

import (
	"fmt"
	"strings"

	"github.com/npillmayer/scoretree"
	"github.com/npillmayer/scoretree/internal/templates"
	"github.com/npillmayer/scoretree/parser"
	"github.com/spf13/cobra"
)

func newTemplatesCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in notation templates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for i, name := range templates.Names() {
				tmpl, _ := templates.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %-8s %s\n", i+1, tmpl.Name, s.heading(tmpl.Title))
			}
		},
	}
}

func newTemplateCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "template <name>",
		Short: "Print a built-in template and its score tree",
		Long: `Print a built-in template and its score tree. Templates are selected by name,
title or number, see 'scoretree templates'. Templates are always parsed with
a lenient tempo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, ok := templates.Lookup(args[0])
			if !ok {
				return fmt.Errorf("no template %q, try one of %s", args[0],
					strings.Join(templates.Names(), ", "))
			}
			score, err := scoretree.Parse(tmpl.Source, parser.LenientTempo(true))
			if err != nil {
				return fmt.Errorf("template %s: %w", tmpl.Name, err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, s.heading(tmpl.Title))
			fmt.Fprintln(w, tmpl.Source)
			fmt.Fprintln(w)
			return s.printTree(w, score)
		},
	}
}

func newNotationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "notation",
		Short: "Explain the score notation",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), templates.Help)
		},
	}
}
