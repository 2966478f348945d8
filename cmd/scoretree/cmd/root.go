package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/scoretree/ast"
	"github.com/npillmayer/scoretree/parser"
	"github.com/npillmayer/scoretree/printer"
	"github.com/spf13/cobra"
)

// settings collects flag values and the resolved configuration of a single
// command invocation.
type settings struct {
	cfgFile      string
	traceLevel   string
	format       string
	ascii        bool
	color        bool
	lenientTempo bool
	cfg          *Config
}

// NewRootCommand creates the scoretree command with all of its sub-commands.
func NewRootCommand() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:   "scoretree",
		Short: "Parse music notation into a score tree",
		Long: `scoretree reads a compact text notation for music (notes, rests, bars,
repeats, dynamics and tempo commands) and prints it as a score tree.

Source text is read from a file or, if no file is given, from standard input.
Run 'scoretree notation' for a description of the notation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.resolve(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&s.cfgFile, "config", "", "config file (default: ./scoretree.toml)")
	flags.StringVar(&s.traceLevel, "trace", "", "trace level: debug, info or error")
	flags.StringVar(&s.format, "format", "", "output format: tree or yaml")
	flags.BoolVar(&s.ascii, "ascii", false, "use ASCII tree guides")
	flags.BoolVar(&s.color, "color", false, "color node kinds")
	flags.BoolVar(&s.lenientTempo, "lenient-tempo", false, `accept \bpm values ending in 0`)
	root.AddCommand(
		newParseCommand(s),
		newTokensCommand(s),
		newTemplatesCommand(s),
		newTemplateCommand(s),
		newNotationCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the scoretree command on the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// resolve loads the config file, applies flags which have been set
// explicitly and sets up tracing.
func (s *settings) resolve(cmd *cobra.Command) error {
	cfg, err := loadConfig(s.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("trace") {
		cfg.TraceLevel = s.traceLevel
	}
	if flags.Changed("format") {
		cfg.Format = s.format
	}
	if flags.Changed("ascii") {
		cfg.ASCII = s.ascii
	}
	if flags.Changed("color") {
		cfg.Color = s.color
	}
	if flags.Changed("lenient-tempo") {
		cfg.LenientTempo = s.lenientTempo
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	s.cfg = cfg
	level, _ := traceLevel(cfg.TraceLevel)
	setupTracing(level)
	return nil
}

func setupTracing(level tracing.TraceLevel) {
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(level)
	gtrace.SyntaxTracer = gologadapter.New()
	gtrace.SyntaxTracer.SetTraceLevel(level)
}

func (s *settings) parserOptions() []parser.Option {
	return []parser.Option{parser.LenientTempo(s.cfg.LenientTempo)}
}

// printTree writes a score tree in the configured format.
func (s *settings) printTree(w io.Writer, score *ast.Node) error {
	if s.cfg.Format == FormatYAML {
		return printer.FprintYAML(w, score)
	}
	opts := []printer.Option{printer.WithGlyphs(printer.GlyphsFromEnvironment())}
	if s.cfg.ASCII {
		opts = append(opts, printer.WithGlyphs(printer.ASCII))
	}
	if s.cfg.Color {
		opts = append(opts, printer.WithStyler(styleKind))
	}
	return printer.Fprint(w, score, opts...)
}

// readSource reads the file given as the single argument, or standard input.
func readSource(cmd *cobra.Command, args []string) (name string, source string, err error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading standard input: %w", err)
		}
		return "<stdin>", string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(b), nil
}
