package parser

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/gorgo/lr/scanner"
	"github.com/npillmayer/scoretree/ast"
	"github.com/npillmayer/scoretree/token"
)

// ErrMissingTempo is reported if a \bpm command is not followed by a number.
// ErrTempoRange is reported if the number following \bpm does not fit an int.
var (
	ErrMissingTempo = errors.New(`expected BPM value after \bpm command`)
	ErrTempoRange   = errors.New("BPM value out of range")
)

// TempoCommand is the command text of a tempo marking, without the backslash.
const TempoCommand = "bpm"

// SyntaxError is a fatal parse error. It aborts the parse.
type SyntaxError struct {
	Line int   // source line of the offending token
	Err  error // one of ErrMissingTempo or ErrTempoRange
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %v", e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parser is a recursive descent parser for score notation. A parser holds the
// grouping state of a single parse run and must not be shared between
// goroutines.
type Parser struct {
	tokens       []token.Token
	current      int               // index of the next token
	root         *ast.Node         // SCORE
	section      *ast.Node         // root or a repeat node
	bar          *ast.Node         // pending bar, or nil
	frames       *arraystack.Stack // outer state of open repeat sections
	lenientTempo bool
}

// frame saves the grouping state outside of a repeat section.
type frame struct {
	section *ast.Node
	bar     *ast.Node
	start   int // index of the REPEAT_START token
}

// New creates a parser for a sequence of tokens. If the sequence is not
// terminated by an END token, one is appended.
func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{tokens: tokens}
	if n := len(tokens); n == 0 || tokens[n-1].Kind != token.END {
		line := 1
		if n > 0 {
			line = tokens[n-1].Line
		}
		p.tokens = append(tokens[:n:n], token.New(token.END, "", line))
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewFromTokenizer creates a parser for all the tokens a tokenizer delivers
// up to scanner.EOF. Tokens which are not of type token.Token are converted
// using their token value as kind.
func NewFromTokenizer(tokenizer scanner.Tokenizer, opts ...Option) *Parser {
	var tokens []token.Token
	line := 1
	for {
		tokval, tok, _, _ := tokenizer.NextToken(scanner.AnyToken)
		t, ok := tok.(token.Token)
		if ok {
			line = t.Line
		}
		if tokval == scanner.EOF {
			tokens = append(tokens, token.New(token.END, "", line))
			break
		}
		if !ok {
			t = token.New(token.Kind(tokval), fmt.Sprint(tok), line)
		}
		tokens = append(tokens, t)
	}
	return New(tokens, opts...)
}

// Parse builds a score tree. It returns the SCORE root or a *SyntaxError.
// No partial tree is returned in case of an error.
//
// Parse may be called more than once; every call starts from scratch.
func (p *Parser) Parse() (*ast.Node, error) {
	p.current = 0
	p.root = ast.NewScore()
	p.section, p.bar = p.root, nil
	p.frames = arraystack.New()
	T().Infof("building score tree from %d tokens", len(p.tokens))
	for !p.atEnd() {
		pos := p.current
		node, err := p.statement()
		if err != nil {
			T().Errorf("parser: %v", err)
			return nil, err
		}
		if node == nil {
			p.skip(pos)
			continue
		}
		T().Debugf("added node %v", node)
		p.group(node)
	}
	p.flush()
	T().Infof("score tree complete")
	return p.root, nil
}

// group attaches a top-level node according to the grouping rules.
func (p *Parser) group(node *ast.Node) {
	switch node.Kind() {
	case ast.BAR:
		p.closeBar()
		p.bar = node
	case ast.NOTE, ast.REST:
		p.addToBar(node)
	case ast.DYNAMIC, ast.TEMPO:
		p.flush()
		p.root.AddChild(node)
	case ast.REPEAT:
		p.flush()
		p.root.AddChild(node)
		p.section = node // stays the current section after the repeat is closed
	case ast.COMMAND:
		p.flush()
		p.section.AddChild(node)
	default:
		panic(fmt.Sprintf("parser: unexpected statement node %v", node.Kind()))
	}
}

// --- Statements ------------------------------------------------------------

// statement parses a single statement. It returns nil if no node has been
// produced; the statement may or may not have consumed tokens in this case.
func (p *Parser) statement() (*ast.Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.NOTE:
		p.advance()
		return p.note(tok), nil
	case token.REST:
		p.advance()
		return ast.NewRest(p.duration()), nil
	case token.BAR:
		p.advance()
		return ast.NewBar(), nil
	case token.REPEAT_START:
		start := p.current
		p.advance()
		rep, err := p.repeat(start)
		if err != nil || rep == nil {
			return nil, err
		}
		p.section, p.bar = p.root, nil
		return rep, nil
	case token.DYNAMIC:
		p.advance()
		return ast.NewDynamic(tok.Text), nil
	case token.COMMAND:
		p.advance()
		return p.command(tok)
	case token.DURATION:
		p.advance()
		T().Debugf("skipping standalone duration %q at line %d", tok.Text, tok.Line)
	}
	return nil, nil
}

// note parses the rest of a note, after its pitch token.
//
//    note ::= NOTE [ OCTAVE | OCTAVE_UP | OCTAVE_DOWN ] [ duration ] { SHARP | FLAT }
//
func (p *Parser) note(pitch token.Token) *ast.Node {
	octave := ast.DefaultOctave
	if p.match(token.OCTAVE) {
		octave = p.octave(p.previous())
	} else if p.match(token.OCTAVE_UP) {
		octave++
	} else if p.match(token.OCTAVE_DOWN) {
		octave--
	}
	dur := p.duration()
	var modifiers []string
	for p.match(token.SHARP, token.FLAT) {
		modifiers = append(modifiers, p.previous().Text)
	}
	return ast.NewNote(pitch.Text, octave, dur, modifiers...)
}

func (p *Parser) octave(tok token.Token) int {
	o, err := strconv.Atoi(tok.Text)
	if err != nil {
		T().Errorf("octave %q at line %d out of range, using default", tok.Text, tok.Line)
		return ast.DefaultOctave
	}
	return o
}

// duration parses an optional duration.
//
//    duration ::= DURATION [ DOT ] [ TRIPLET ]
//
// A duration n denotes 1/n of a whole note. A dot multiplies this by 3/2,
// a triplet sign by 2/3. Without a DURATION token, a whole note is returned.
func (p *Parser) duration() *big.Rat {
	if !p.match(token.DURATION) {
		return ast.WholeNote()
	}
	n, ok := new(big.Int).SetString(p.previous().Text, 10)
	if !ok || n.Sign() <= 0 { // the scanner never produces these
		T().Errorf("invalid duration %q at line %d", p.previous().Text, p.previous().Line)
		return ast.WholeNote()
	}
	d := new(big.Rat).SetFrac(big.NewInt(1), n)
	if p.match(token.DOT) {
		d.Mul(d, big.NewRat(3, 2))
	}
	if p.match(token.TRIPLET) {
		d.Mul(d, big.NewRat(2, 3))
	}
	return d
}

// command parses a backslash command, after the COMMAND token.
func (p *Parser) command(cmd token.Token) (*ast.Node, error) {
	if cmd.Text != TempoCommand {
		return ast.NewCommand(cmd.Text), nil
	}
	if p.match(token.DURATION) || (p.lenientTempo && p.match(token.OCTAVE)) {
		num := p.previous()
		bpm, err := strconv.Atoi(num.Text)
		if err != nil {
			return nil, &SyntaxError{Line: num.Line, Err: ErrTempoRange}
		}
		return ast.NewTempo(bpm), nil
	}
	return nil, &SyntaxError{Line: cmd.Line, Err: ErrMissingTempo}
}

// repeat parses the body of a repeat section, up to and including the
// REPEAT_END token. start is the index of the REPEAT_START token.
//
// If the input ends before the section is closed, the token cursor is rewound
// to start, the outer grouping state is restored and repeat returns nil.
func (p *Parser) repeat(start int) (*ast.Node, error) {
	rep := ast.NewRepeat()
	p.frames.Push(frame{section: p.section, bar: p.bar, start: start})
	p.section, p.bar = rep, nil
	for !p.match(token.REPEAT_END) {
		if p.atEnd() {
			outer := p.popFrame()
			T().Infof("repeat section at line %d not closed, re-parsing its content",
				p.tokens[outer.start].Line)
			p.current = outer.start
			p.section, p.bar = outer.section, outer.bar
			return nil, nil
		}
		pos := p.current
		node, err := p.statement()
		if err != nil {
			return nil, err
		}
		if node == nil {
			p.skip(pos)
			continue
		}
		T().Debugf("added node %v to repeat section", node)
		switch node.Kind() {
		case ast.BAR:
			p.closeBar()
			p.bar = node
		case ast.NOTE, ast.REST:
			p.addToBar(node)
		default:
			p.section.AddChild(node)
		}
	}
	p.flush()
	outer := p.popFrame()
	p.section, p.bar = outer.section, outer.bar
	return rep, nil
}

func (p *Parser) popFrame() frame {
	f, ok := p.frames.Pop()
	if !ok {
		panic("parser: repeat frame stack underflow")
	}
	return f.(frame)
}

// --- Grouping --------------------------------------------------------------

// addToBar appends a note or rest to the pending bar, opening one if necessary.
func (p *Parser) addToBar(node *ast.Node) {
	if p.bar == nil {
		p.bar = ast.NewBar()
	}
	p.bar.AddChild(node)
}

// closeBar attaches the pending bar to the current section, even if it is
// empty. A bar line always closes a bar.
func (p *Parser) closeBar() {
	if p.bar != nil {
		p.section.AddChild(p.bar)
		p.bar = nil
	}
}

// flush attaches the pending bar to the current section, unless it is empty.
// An empty pending bar has been opened by a bar line and not received any
// notes; it is dropped.
func (p *Parser) flush() {
	if p.bar != nil && p.bar.Len() > 0 {
		p.section.AddChild(p.bar)
	}
	p.bar = nil
}

// --- Token handling --------------------------------------------------------

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.END
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Kind == kind
}

// match consumes the next token if it is of one of the given kinds.
func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// skip drops a single token if the statement starting at pos did not consume
// anything.
func (p *Parser) skip(pos int) {
	if p.current == pos {
		T().Debugf("dropping %v", p.peek())
		p.advance()
	}
}

// --- Parser options --------------------------------------------------------

// Option configures a parser.
type Option func(p *Parser)

// LenientTempo lets \bpm accept a number classified as an octave (i.e. ending
// in '0', like 120) as its value. Without this option, \bpm 120 is a syntax
// error.
func LenientTempo(b bool) Option {
	return func(p *Parser) {
		p.lenientTempo = b
	}
}
