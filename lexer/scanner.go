package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/gorgo/lr/scanner"
	"github.com/npillmayer/scoretree/token"
)

// Scanner implements the scanner.Tokenizer interface.
// It reads score notation rune by rune and emits a token for every lexeme
// it recognizes.
type Scanner struct {
	input   string      // source text
	start   int         // byte position of the current lexeme
	pos     int         // byte position of the next rune
	line    int         // current line, 1-based
	done    bool        // END has been emitted
	onError func(error) // receives lexical anomalies; may be nil
}

var _ scanner.Tokenizer = (*Scanner)(nil)

// AnomalyError is reported for characters outside of the notation's
// alphabet. Anomalies are never fatal.
type AnomalyError struct {
	Char rune
	Line int
}

func (e *AnomalyError) Error() string {
	return fmt.Sprintf("unexpected character %q at line %d", e.Char, e.Line)
}

// NewScanner creates a scanner for a source text.
//
// Clients may provide zero or more scanner options. A scanner may be re-used
// for another input by calling Init.
func NewScanner(source string, opts ...Option) *Scanner {
	sc := &Scanner{}
	for _, opt := range opts {
		opt(sc)
	}
	sc.Init(source)
	return sc
}

// Init (re-)initializes a scanner with a source text. An error handler set
// with SetErrorHandler or OnAnomaly is kept.
func (sc *Scanner) Init(source string) {
	sc.input = source
	sc.start, sc.pos = 0, 0
	sc.line = 1
	sc.done = false
}

// SetErrorHandler sets an error handler function, which receives a
// *AnomalyError for every character the scanner skips.
// Passing nil will clear the handler.
func (sc *Scanner) SetErrorHandler(h func(error)) {
	sc.onError = h
}

// NextToken returns the next token, as required by the scanner.Tokenizer
// interface. Argument expected is ignored.
//
// The token value is the token kind, the token itself is a token.Token.
// Start position and length are byte offsets into the input. At the end of
// input NextToken returns scanner.EOF, for every subsequent call.
func (sc *Scanner) NextToken(expected []int) (int, interface{}, uint64, uint64) {
	tok := sc.Next()
	if tok.Kind == token.END {
		return scanner.EOF, tok, uint64(sc.pos), 0
	}
	return int(tok.Kind), tok, uint64(sc.start), uint64(sc.pos - sc.start)
}

// Next scans the next token. After the input is exhausted, Next returns an
// END token, for every subsequent call.
func (sc *Scanner) Next() token.Token {
	for !sc.atEnd() {
		sc.start = sc.pos
		if tok, ok := sc.scanToken(); ok {
			T().Debugf("scanned %v", tok)
			return tok
		}
	}
	sc.start = sc.pos
	if !sc.done {
		sc.done = true
		T().Debugf("end of input at line %d", sc.line)
	}
	return token.New(token.END, "", sc.line)
}

// Tokens scans the rest of the input and returns the tokens, including the
// final END token.
func (sc *Scanner) Tokens() []token.Token {
	var tokens []token.Token
	for {
		tok := sc.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.END {
			return tokens
		}
	}
}

// Scan is a convenience function which tokenizes a complete source text.
func Scan(source string, opts ...Option) []token.Token {
	return NewScanner(source, opts...).Tokens()
}

// scanToken consumes at least one rune. It returns false if no token has
// been produced, e.g. for whitespace.
func (sc *Scanner) scanToken() (token.Token, bool) {
	line := sc.line
	r := sc.advance()
	switch {
	case r >= 'a' && r <= 'g':
		return sc.emit(token.NOTE, line)
	case r == 'r':
		return sc.emit(token.REST, line)
	case r == '#':
		return sc.emit(token.SHARP, line)
	case r == 'b': // shadowed by the note range
		return sc.emit(token.FLAT, line)
	case isDigit(r):
		return sc.number(line)
	case r == '+':
		return sc.emit(token.OCTAVE_UP, line)
	case r == '-':
		return sc.emit(token.OCTAVE_DOWN, line)
	case r == '.':
		return sc.emit(token.DOT, line)
	case r == '~':
		return sc.emit(token.TRIPLET, line)
	case r == '|':
		if sc.match(':') {
			return sc.emit(token.REPEAT_START, line)
		}
		return sc.emit(token.BAR, line)
	case r == ':':
		if sc.match('|') {
			return sc.emit(token.REPEAT_END, line)
		}
		T().Debugf("dropping ':' without '|' at line %d", line)
		return token.Token{}, false
	case r == 'p' || r == 'f' || r == 'm': // 'f' is shadowed by the note range
		return sc.dynamic(line)
	case r == '\\':
		return sc.command(line)
	case r == ' ' || r == '\t' || r == '\r':
		return token.Token{}, false
	case r == '\n':
		sc.line++
		return token.Token{}, false
	}
	sc.anomaly(r, line)
	return token.Token{}, false
}

// number scans a run of digits. The run is an octave if its last digit is '0',
// otherwise it is a duration.
func (sc *Scanner) number(line int) (token.Token, bool) {
	for isDigit(sc.peek()) {
		sc.advance()
	}
	if sc.input[sc.pos-1] == '0' {
		return sc.emit(token.OCTAVE, line)
	}
	return sc.emit(token.DURATION, line)
}

func (sc *Scanner) dynamic(line int) (token.Token, bool) {
	for unicode.IsLetter(sc.peek()) {
		sc.advance()
	}
	return sc.emit(token.DYNAMIC, line)
}

// command scans a backslash command. The token text excludes the backslash.
func (sc *Scanner) command(line int) (token.Token, bool) {
	for r := sc.peek(); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'; r = sc.peek() {
		sc.advance()
	}
	text := sc.input[sc.start+1 : sc.pos]
	return token.New(token.COMMAND, text, line), true
}

func (sc *Scanner) anomaly(r rune, line int) {
	err := &AnomalyError{Char: r, Line: line}
	T().Errorf("lexer: %v", err)
	if sc.onError != nil {
		sc.onError(err)
	}
}

func (sc *Scanner) emit(kind token.Kind, line int) (token.Token, bool) {
	return token.New(kind, sc.input[sc.start:sc.pos], line), true
}

// --- Reading runes ---------------------------------------------------------

func (sc *Scanner) atEnd() bool {
	return sc.pos >= len(sc.input)
}

func (sc *Scanner) advance() rune {
	r, sz := utf8.DecodeRuneInString(sc.input[sc.pos:])
	sc.pos += sz
	return r
}

// peek returns the next rune without consuming it, or 0 at the end of input.
func (sc *Scanner) peek() rune {
	if sc.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(sc.input[sc.pos:])
	return r
}

// match consumes the next rune if it equals expected.
func (sc *Scanner) match(expected rune) bool {
	if sc.peek() != expected || sc.atEnd() {
		return false
	}
	sc.advance()
	return true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// --- Scanner options -------------------------------------------------------

// Option configures a scanner.
type Option func(sc *Scanner)

// OnAnomaly sets an error handler for lexical anomalies, see SetErrorHandler.
func OnAnomaly(h func(error)) Option {
	return func(sc *Scanner) {
		sc.onError = h
	}
}
