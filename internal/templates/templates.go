// Package templates holds canned score notation sources and the notation help
// text of the command line tool.
package templates

import (
	"strconv"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
)

// Template is a named score notation source.
type Template struct {
	Name   string // short name, used for lookup
	Title  string
	Source string
}

// Templates in menu order.
var registry = arraylist.New()

// All the templates set a tempo of 100 or 120 BPM, which needs a lenient
// parser.
func init() {
	registry.Add(
		Template{
			Name:  "scale",
			Title: "C Major Scale",
			Source: `\bpm 120
mf
c4 4 | d4 4 | e4 4 | f4 4 |
g4 4 | a4 4 | b4 4 | c5 4 |
c5 4 | b4 4 | a4 4 | g4 4 |
f4 4 | e4 4 | d4 4 | c4 4 |`,
		},
		Template{
			Name:  "melody",
			Title: "Simple Melody",
			Source: `\bpm 100
mf
c4 4 | e4 4 | g4 4 | c5 4 |
e5 4 | c5 4 | g4 4 | e4 4 |
c4 4 | r4 4 | c4 4 | r4 4 |`,
		},
		Template{
			Name:  "tree",
			Title: "Tree Example",
			Source: `\bpm 120
mf
c4 4 | d4 4 | e4 4 | f4 4 |
|: g4 4 | a4 4 | b4 4 | c5 4 :|
p
c5 4 | b4 4 | a4 4 | g4 4 |`,
		},
		Template{
			Name:  "empty",
			Title: "Empty Template",
			Source: `\bpm 120
mf
| | | |`,
		},
	)
}

// Names returns the names of all templates, in menu order.
func Names() []string {
	names := make([]string, 0, registry.Size())
	registry.Each(func(_ int, value interface{}) {
		names = append(names, value.(Template).Name)
	})
	return names
}

// Lookup finds a template by name or title, ignoring case, or by its
// 1-based menu position.
func Lookup(name string) (Template, bool) {
	if n, err := strconv.Atoi(name); err == nil {
		if t, ok := registry.Get(n - 1); ok {
			return t.(Template), true
		}
		return Template{}, false
	}
	_, t := registry.Find(func(_ int, value interface{}) bool {
		tmpl := value.(Template)
		return strings.EqualFold(tmpl.Name, name) || strings.EqualFold(tmpl.Title, name)
	})
	if t == nil {
		return Template{}, false
	}
	return t.(Template), true
}

// Help explains the score notation.
const Help = `Notes        a b c d e f g
Octave       a number ending in 0 (10 = octave 10), + (one up), - (one down)
             without a marker, notes are in octave 4
Duration     any other number n, for 1/n of a whole note: 4 = quarter, 8 = eighth
             without a duration, notes and rests are whole notes
Modifiers    # sharp (after the duration)
             . dotted (1.5 x duration), ~ triplet (2/3 x duration)
Rests        r, followed by an optional duration
Structure    | bar line, |: ... :| repeat section
Dynamics     p, pp, mp, mf, ... (letter runs starting with p or m)
Commands     \bpm 96 sets the tempo, any other \name is kept as a command

Example
  \bpm 96
  mf
  c4 4 | d4 4 | e4 4 | f4 4 |
  |: g4 4 | a4 4 | b4 4 | c+ 4 :|
  p
  c+ 4 | b4 4 | a4 4 | g4 4 |
`
