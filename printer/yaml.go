package printer

import (
	"io"

	"github.com/npillmayer/scoretree/ast"
	"gopkg.in/yaml.v3"
)

// yamlNode is the exported form of a node. Payload fields are present for
// the node kinds carrying them only.
type yamlNode struct {
	Kind      string      `yaml:"kind"`
	Value     string      `yaml:"value,omitempty"`
	Pitch     string      `yaml:"pitch,omitempty"`
	Octave    *int        `yaml:"octave,omitempty"`
	Duration  string      `yaml:"duration,omitempty"`
	Modifiers []string    `yaml:"modifiers,omitempty,flow"`
	Count     int         `yaml:"count,omitempty"`
	Marking   string      `yaml:"marking,omitempty"`
	BPM       int         `yaml:"bpm,omitempty"`
	Command   *string     `yaml:"command,omitempty"`
	Children  []*yamlNode `yaml:"children,omitempty"`
}

// FprintYAML writes the tree rooted at n to w as a YAML document.
// Durations are written as fractions, e.g. "3/8".
func FprintYAML(w io.Writer, n *ast.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(n)); err != nil {
		return err
	}
	return enc.Close()
}

func toYAML(n *ast.Node) *yamlNode {
	if n == nil {
		return nil
	}
	y := &yamlNode{Kind: n.Kind().String(), Value: n.Value()}
	switch p := n.Payload().(type) {
	case ast.Note:
		octave := p.Octave
		y.Pitch, y.Octave = p.Pitch, &octave
		y.Duration = p.Duration.RatString()
		y.Modifiers = p.Modifiers
	case ast.Rest:
		y.Duration = p.Duration.RatString()
	case ast.Repeat:
		y.Count = p.Count
	case ast.Dynamic:
		y.Marking = p.Marking
	case ast.Tempo:
		y.BPM = p.BPM
	case ast.Command:
		text := p.Text
		y.Command = &text
	}
	for _, ch := range n.Children() {
		y.Children = append(y.Children, toYAML(ch))
	}
	return y
}
