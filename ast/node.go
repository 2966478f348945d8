package ast

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Kind is the variant tag of a node.
type Kind int

// Node kinds. The set is closed.
const (
	SCORE   Kind = iota // root of a tree
	BAR                 // group of notes and rests between bar lines
	REPEAT              // section to be performed twice
	NOTE                // pitched note
	REST                // rest
	DYNAMIC             // loudness marking
	TEMPO               // tempo marking
	COMMAND             // any other backslash command
)

var kindNames = [...]string{"SCORE", "BAR", "REPEAT", "NOTE", "REST", "DYNAMIC", "TEMPO", "COMMAND"}

func (k Kind) String() string {
	if k < SCORE || k > COMMAND {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Payload is kind-specific node data. It is implemented by Note, Rest, Repeat,
// Dynamic, Tempo and Command only.
type Payload interface {
	payload()
}

// Note is the payload of a NOTE node.
type Note struct {
	Pitch     string   // one of a … g
	Octave    int      // unconstrained, defaults to 4
	Duration  *big.Rat // fraction of a whole note; must not be modified
	Modifiers []string // sharps and flats, in input order
}

// Rest is the payload of a REST node.
type Rest struct {
	Duration *big.Rat // fraction of a whole note; must not be modified
}

// Repeat is the payload of a REPEAT node.
type Repeat struct {
	Count int
}

// Dynamic is the payload of a DYNAMIC node.
type Dynamic struct {
	Marking string
}

// Tempo is the payload of a TEMPO node.
type Tempo struct {
	BPM int
}

// Command is the payload of a COMMAND node.
type Command struct {
	Text string
}

func (Note) payload()    {}
func (Rest) payload()    {}
func (Repeat) payload()  {}
func (Dynamic) payload() {}
func (Tempo) payload()   {}
func (Command) payload() {}

// Node is a node of a score tree.
type Node struct {
	kind     Kind
	value    string
	hasValue bool
	payload  Payload
	children []*Node
	parent   *Node // non-owning, used for IsLastChild only
}

// RepeatCount is the number of times a repeat section is performed.
const RepeatCount = 2

// DefaultOctave is the octave of notes without an octave marker.
const DefaultOctave = 4

// WholeNote returns the default duration of notes and rests.
func WholeNote() *big.Rat {
	return big.NewRat(1, 1)
}

// NewScore creates a root node.
func NewScore() *Node {
	return &Node{kind: SCORE}
}

// NewBar creates an empty bar.
func NewBar() *Node {
	return &Node{kind: BAR}
}

// NewRepeat creates an empty repeat section.
func NewRepeat() *Node {
	return withValue(&Node{kind: REPEAT, payload: Repeat{Count: RepeatCount}},
		strconv.Itoa(RepeatCount)+"x")
}

// NewNote creates a note. The display value has the form
// "<pitch><octave> (<duration>)", followed by the modifiers, if any.
// If dur is nil, a whole note is assumed.
func NewNote(pitch string, octave int, dur *big.Rat, modifiers ...string) *Node {
	if dur == nil {
		dur = WholeNote()
	}
	note := Note{
		Pitch:     pitch,
		Octave:    octave,
		Duration:  dur,
		Modifiers: modifiers,
	}
	v := fmt.Sprintf("%s%d (%s)", pitch, octave, dur.RatString())
	if len(modifiers) > 0 {
		v += " " + strings.Join(modifiers, "")
	}
	return withValue(&Node{kind: NOTE, payload: note}, v)
}

// NewRest creates a rest. If dur is nil, a whole rest is assumed.
func NewRest(dur *big.Rat) *Node {
	if dur == nil {
		dur = WholeNote()
	}
	return withValue(&Node{kind: REST, payload: Rest{Duration: dur}}, dur.RatString())
}

// NewDynamic creates a dynamic marking, e.g. "mf".
func NewDynamic(marking string) *Node {
	return withValue(&Node{kind: DYNAMIC, payload: Dynamic{Marking: marking}}, marking)
}

// NewTempo creates a tempo marking. Its display value is "<bpm> BPM".
func NewTempo(bpm int) *Node {
	return withValue(&Node{kind: TEMPO, payload: Tempo{BPM: bpm}}, strconv.Itoa(bpm)+" BPM")
}

// NewCommand creates a generic command node, carrying the command text.
func NewCommand(text string) *Node {
	return withValue(&Node{kind: COMMAND, payload: Command{Text: text}}, text)
}

func withValue(n *Node, v string) *Node {
	n.value = v
	n.hasValue = true
	return n
}

// AddChild appends child to n's children and makes n the parent of child.
//
// AddChild panics if child already has a parent, if child is a SCORE, or if
// n is a bar and child is neither a note nor a rest. These are programming
// errors; the parser never triggers them.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("ast: cannot add nil child")
	}
	if child.parent != nil || child.kind == SCORE {
		panic(fmt.Sprintf("ast: %v cannot be attached to %v", child.kind, n.kind))
	}
	if n.kind == BAR && child.kind != NOTE && child.kind != REST {
		panic(fmt.Sprintf("ast: bar cannot hold %v", child.kind))
	}
	n.children = append(n.children, child)
	child.parent = n
	T().Debugf("attached %v to %v", child, n.kind)
}

// Kind returns the variant tag of n.
func (n *Node) Kind() Kind {
	return n.kind
}

// Value returns n's display value. Nodes of kind SCORE and BAR have none.
func (n *Node) Value() string {
	return n.value
}

// HasValue is true if n carries a display value.
func (n *Node) HasValue() bool {
	return n.hasValue
}

// Children returns n's children in performance order. Clients must not modify
// the slice.
func (n *Node) Children() []*Node {
	return n.children
}

// Len returns the number of children of n.
func (n *Node) Len() int {
	return len(n.children)
}

// Child returns the i-th child of n, or nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// IsLastChild is true if n is the last child of its parent, or if n has no
// parent.
func (n *Node) IsLastChild() bool {
	if n.parent == nil {
		return true
	}
	siblings := n.parent.children
	return siblings[len(siblings)-1] == n
}

// Payload returns the kind-specific data of n, or nil for SCORE and BAR nodes.
func (n *Node) Payload() Payload {
	return n.payload
}

// Note returns the note payload of a NOTE node.
func (n *Node) Note() (Note, bool) {
	p, ok := n.payload.(Note)
	return p, ok
}

// Rest returns the rest payload of a REST node.
func (n *Node) Rest() (Rest, bool) {
	p, ok := n.payload.(Rest)
	return p, ok
}

// Repeat returns the payload of a REPEAT node.
func (n *Node) Repeat() (Repeat, bool) {
	p, ok := n.payload.(Repeat)
	return p, ok
}

// Dynamic returns the payload of a DYNAMIC node.
func (n *Node) Dynamic() (Dynamic, bool) {
	p, ok := n.payload.(Dynamic)
	return p, ok
}

// Tempo returns the payload of a TEMPO node.
func (n *Node) Tempo() (Tempo, bool) {
	p, ok := n.payload.(Tempo)
	return p, ok
}

// Command returns the payload of a COMMAND node.
func (n *Node) Command() (Command, bool) {
	p, ok := n.payload.(Command)
	return p, ok
}

// Duration returns the duration of a NOTE or REST node.
func (n *Node) Duration() (*big.Rat, bool) {
	switch p := n.payload.(type) {
	case Note:
		return p.Duration, true
	case Rest:
		return p.Duration, true
	}
	return nil, false
}

// String returns "KIND" or "KIND: value".
func (n *Node) String() string {
	if n == nil {
		return "<nil node>"
	}
	if !n.hasValue {
		return n.kind.String()
	}
	return n.kind.String() + ": " + n.value
}

// Walk traverses the tree rooted at n depth-first, calling f for every node
// before its children. If f returns false, the children of that node are
// skipped.
func Walk(n *Node, f func(node *Node, depth int) bool) {
	walk(n, 0, f)
}

func walk(n *Node, depth int, f func(*Node, int) bool) {
	if n == nil || !f(n, depth) {
		return
	}
	for _, ch := range n.children {
		walk(ch, depth+1, f)
	}
}
