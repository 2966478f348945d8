package parser

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scoretree/ast"
	"github.com/npillmayer/scoretree/lexer"
	"github.com/npillmayer/scoretree/token"
)

func setupTracing(t *testing.T) func() {
	gtrace.CoreTracer = gotestingadapter.New()
	gtrace.SyntaxTracer = gotestingadapter.New()
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelDebug)
	return gotestingadapter.RedirectTracing(t)
}

func parse(t *testing.T, input string, opts ...Option) *ast.Node {
	t.Helper()
	score, err := New(lexer.Scan(input), opts...).Parse()
	if err != nil {
		t.Fatalf("input %q: unexpected error: %v", input, err)
	}
	if score.Kind() != ast.SCORE {
		t.Fatalf("Expected root to be SCORE, is %v", score.Kind())
	}
	return score
}

// sexpr renders a tree compactly, e.g. "SCORE{BAR{NOTE: c4 (1/4)}}".
func sexpr(n *ast.Node) string {
	s := n.String()
	if n.Len() > 0 {
		parts := make([]string, n.Len())
		for i, ch := range n.Children() {
			parts[i] = sexpr(ch)
		}
		s += "{" + strings.Join(parts, ", ") + "}"
	}
	return s
}

func checkTree(t *testing.T, input string, expected string, opts ...Option) {
	t.Helper()
	if have := sexpr(parse(t, input, opts...)); have != expected {
		t.Errorf("input %q:\nexpected %s\nhave     %s", input, expected, have)
	}
}

func TestBars(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	checkTree(t, "c4 4 | d4 4 |",
		"SCORE{BAR{NOTE: c4 (1/4)}, BAR{NOTE: d4 (1/4)}}")
	checkTree(t, "c | d e | f",
		"SCORE{BAR{NOTE: c4 (1)}, BAR{NOTE: d4 (1), NOTE: e4 (1)}, BAR{NOTE: f4 (1)}}")
	checkTree(t, "| c | d",
		"SCORE{BAR{NOTE: c4 (1)}, BAR{NOTE: d4 (1)}}")
	checkTree(t, "| | | |", "SCORE{BAR, BAR, BAR}")
	checkTree(t, "", "SCORE")
}

func TestNoteDefaults(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	score := parse(t, "a b c d e f g")
	if score.Len() != 1 || score.Child(0).Len() != 7 {
		t.Fatalf("Expected a single bar with 7 notes, have %s", sexpr(score))
	}
	for i, n := range score.Child(0).Children() {
		note, ok := n.Note()
		if !ok {
			t.Fatalf("Expected NOTE, have %v", n)
		}
		if note.Pitch != string(rune('a'+i)) {
			t.Errorf("Expected pitch %c, have %s", 'a'+i, note.Pitch)
		}
		if note.Octave != 4 || note.Duration.Cmp(big.NewRat(1, 1)) != 0 || len(note.Modifiers) != 0 {
			t.Errorf("Expected defaults for %v", n)
		}
	}
}

func TestDurations(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tests := []struct {
		input string
		dur   *big.Rat
	}{
		{"c4", big.NewRat(1, 4)},
		{"c16", big.NewRat(1, 16)},
		{"c8.", big.NewRat(3, 16)},   // dotted
		{"c4~", big.NewRat(1, 6)},    // triplet
		{"c4.~", big.NewRat(1, 4)},   // both cancel out
		{"c4~.", big.NewRat(1, 6)},   // dot after triplet is not part of the note
		{"r2.", big.NewRat(3, 4)},    // rests follow the same rule
		{"r", big.NewRat(1, 1)},      // whole rest
		{"c+3", big.NewRat(1, 3)},    // octave marker first
		{"c05", big.NewRat(1, 5)},    // leading zero
		{"c 10 8", big.NewRat(1, 8)}, // octave 10, then duration
	}
	for _, test := range tests {
		score := parse(t, test.input)
		n := score.Child(0).Child(0)
		d, ok := n.Duration()
		if !ok || d.Cmp(test.dur) != 0 {
			t.Errorf("input %q: expected duration %s, have %v", test.input, test.dur.RatString(), n)
		}
	}
}

func TestOctaves(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tests := []struct {
		input  string
		octave int
	}{
		{"c", 4},
		{"c+", 5},
		{"c-", 3},
		{"c0", 0},
		{"c10", 10},
		{"c+-", 5}, // at most one octave marker per note
	}
	for _, test := range tests {
		score := parse(t, test.input)
		note, _ := score.Child(0).Child(0).Note()
		if note.Octave != test.octave {
			t.Errorf("input %q: expected octave %d, have %d", test.input, test.octave, note.Octave)
		}
	}
}

func TestModifiers(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	checkTree(t, "c4## d", "SCORE{BAR{NOTE: c4 (1/4) ##, NOTE: d4 (1)}}")
	// modifiers follow the duration; a duration after a sharp is dropped
	checkTree(t, "c#4", "SCORE{BAR{NOTE: c4 (1) #}}")
	// 'b' is always a pitch
	checkTree(t, "eb", "SCORE{BAR{NOTE: e4 (1), NOTE: b4 (1)}}")
	// parser accepts flats, even though the scanner never produces them
	toks := []token.Token{
		token.New(token.NOTE, "e", 1),
		token.New(token.FLAT, "b", 1),
		token.New(token.SHARP, "#", 1),
	}
	score, err := New(toks).Parse()
	if err != nil {
		t.Fatal(err)
	}
	if note, _ := score.Child(0).Child(0).Note(); strings.Join(note.Modifiers, "") != "b#" {
		t.Errorf("Expected modifiers in input order, have %v", note.Modifiers)
	}
}

func TestStrayTokens(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	checkTree(t, "# . ~ + - 4 10 c :| 8", "SCORE{BAR{NOTE: c4 (1)}}")
}

func TestDynamics(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	checkTree(t, "mf c | d p e",
		"SCORE{DYNAMIC: mf, BAR{NOTE: c4 (1)}, BAR{NOTE: d4 (1)}, DYNAMIC: p, BAR{NOTE: e4 (1)}}")
	checkTree(t, "c | ppp", "SCORE{BAR{NOTE: c4 (1)}, DYNAMIC: ppp}")
}

func TestCommands(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	checkTree(t, `c \fermata d`,
		"SCORE{BAR{NOTE: c4 (1)}, COMMAND: fermata, BAR{NOTE: d4 (1)}}")
}

func TestTempo(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	checkTree(t, "\\bpm 96\nc4", "SCORE{TEMPO: 96 BPM, BAR{NOTE: c4 (1/4)}}")
	score := parse(t, `\bpm 96`)
	if tempo, ok := score.Child(0).Tempo(); !ok || tempo.BPM != 96 {
		t.Errorf("Expected tempo 96, have %v", score.Child(0))
	}
	// 120 ends in '0' and therefore is an octave token
	checkTree(t, `\bpm 120`, "SCORE{TEMPO: 120 BPM}", LenientTempo(true))
}

func TestTempoErrors(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	tests := []struct {
		input string
		err   error
		line  int
	}{
		{"c\n\\bpm 120", ErrMissingTempo, 2}, // 120 is an octave token
		{`\bpm`, ErrMissingTempo, 1},
		{`\bpm c`, ErrMissingTempo, 1},
		{"\\bpm\n99999999999999999999999", ErrTempoRange, 2},
	}
	for _, test := range tests {
		score, err := New(lexer.Scan(test.input)).Parse()
		if score != nil {
			t.Errorf("input %q: expected no tree in case of an error", test.input)
		}
		if !errors.Is(err, test.err) {
			t.Errorf("input %q: expected error %v, have %v", test.input, test.err, err)
			continue
		}
		var serr *SyntaxError
		if !errors.As(err, &serr) || serr.Line != test.line {
			t.Errorf("input %q: expected syntax error at line %d, have %v", test.input, test.line, err)
		}
	}
}

func TestRepeat(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	checkTree(t, "|: c4 4 :|", "SCORE{REPEAT: 2x{BAR{NOTE: c4 (1/4)}}}")
	checkTree(t, "|: c | d :|", "SCORE{REPEAT: 2x{BAR{NOTE: c4 (1)}, BAR{NOTE: d4 (1)}}}")
	checkTree(t, "a | |: c :|", "SCORE{BAR{NOTE: a4 (1)}, REPEAT: 2x{BAR{NOTE: c4 (1)}}}")
	checkTree(t, "|::|", "SCORE{REPEAT: 2x}")
}

func TestRepeatContent(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	// non-bar statements inside a repeat are appended directly to the repeat node
	checkTree(t, `|: p c \bpm 96 \segno :|`,
		"SCORE{REPEAT: 2x{DYNAMIC: p, TEMPO: 96 BPM, COMMAND: segno, BAR{NOTE: c4 (1)}}}")
}

func TestUnterminatedRepeat(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	checkTree(t, "|: c4 4", "SCORE{BAR{NOTE: c4 (1/4)}}")
	checkTree(t, "a |: c | d", "SCORE{BAR{NOTE: a4 (1)}, BAR{NOTE: c4 (1)}, BAR{NOTE: d4 (1)}}")
	checkTree(t, "a |: c", "SCORE{BAR{NOTE: a4 (1), NOTE: c4 (1)}}")
}

func TestRepeatStaysCurrentSection(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	// after a repeat, bars go into the closed repeat, dynamics and tempo to the root
	checkTree(t, `|: c :| d | mf e \bpm 96`,
		"SCORE{REPEAT: 2x{BAR{NOTE: c4 (1)}, BAR{NOTE: d4 (1)}, BAR{NOTE: e4 (1)}}, DYNAMIC: mf, TEMPO: 96 BPM}")
}

func TestPendingBarBeforeRepeat(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	// a bar not closed by a bar line before a repeat is lost
	checkTree(t, "c |: d :|", "SCORE{REPEAT: 2x{BAR{NOTE: d4 (1)}}}")
}

func TestNestedRepeat(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	// the inner repeat resets the grouping state to the root
	checkTree(t, "|: a |: b :| c :|",
		"SCORE{REPEAT: 2x{BAR{NOTE: b4 (1)}}, BAR{NOTE: c4 (1)}, REPEAT: 2x}")
}

func TestNewFromTokenizer(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	input := "\\bpm 96\n|: c8. d16 :| e4"
	p := NewFromTokenizer(lexer.NewScanner(input))
	score, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	expected := sexpr(parse(t, input))
	if sexpr(score) != expected {
		t.Errorf("Expected tokenizer and token slice to give the same tree, have %s", sexpr(score))
	}
}

func TestParseTwice(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()
	//
	p := New([]token.Token{token.New(token.NOTE, "c", 1)}) // no END token
	first, err1 := p.Parse()
	second, err2 := p.Parse()
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors %v, %v", err1, err2)
	}
	if first == second || sexpr(first) != sexpr(second) || sexpr(first) != "SCORE{BAR{NOTE: c4 (1)}}" {
		t.Errorf("Expected two identical but distinct trees, have %s and %s", sexpr(first), sexpr(second))
	}
}

func ExampleParser() {
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	gtrace.SyntaxTracer = gologadapter.New()
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelError)
	score, _ := New(lexer.Scan(`\bpm 96 mf c4 4 | |: g8 a8 :|`)).Parse()
	ast.Walk(score, func(n *ast.Node, depth int) bool {
		fmt.Printf("%s%v\n", strings.Repeat("  ", depth), n)
		return true
	})
	// Output:
	// SCORE
	//   TEMPO: 96 BPM
	//   DYNAMIC: mf
	//   BAR
	//     NOTE: c4 (1/4)
	//   REPEAT: 2x
	//     BAR
	//       NOTE: g4 (1/8)
	//       NOTE: a4 (1/8)
}
