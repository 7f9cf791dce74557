package runtime

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// RegExpData is the internal slot populated on ClassRegExp objects. Per
// SPEC_FULL.md §7/§4, the engine does not implement its own ECMAScript
// regex matching algorithm — regexp2 backs the Exec/Test call shape only
// far enough to make literal patterns observably correct, not a from-scratch
// compiler (Non-goals retained verbatim from spec.md §1).
type RegExpData struct {
	Source string
	Flags  string

	Global     bool
	IgnoreCase bool
	Multiline  bool
	Sticky     bool
	Unicode    bool
	DotAll     bool

	LastIndex int

	compiled *regexp2.Regexp
}

// CompileRegExp builds the regexp2.Regexp backing a RegExp literal/object,
// translating the handful of ECMAScript flags regexp2 models directly.
func CompileRegExp(source, flags string) (*RegExpData, error) {
	opts := regexp2.None
	d := &RegExpData{Source: source, Flags: flags}
	for _, f := range flags {
		switch f {
		case 'g':
			d.Global = true
		case 'i':
			d.IgnoreCase = true
			opts |= regexp2.IgnoreCase
		case 'm':
			d.Multiline = true
			opts |= regexp2.Multiline
		case 'y':
			d.Sticky = true
		case 'u':
			d.Unicode = true
		case 's':
			d.DotAll = true
			opts |= regexp2.Singleline
		}
	}
	re, err := regexp2.Compile(source, opts)
	if err != nil {
		return nil, err
	}
	d.compiled = re
	return d, nil
}

// MatchResult is the shape Exec hands back to the evaluator to build the
// JS match-array-with-named-groups result object.
type MatchResult struct {
	Matched bool
	Index   int
	Text    string
	Groups  []string // Groups[0] is the whole match
	Named   map[string]string
}

// Exec runs the regex against input starting at d.LastIndex when Global or
// Sticky is set (per RegExp.prototype.exec's lastIndex protocol), advancing
// LastIndex on a global/sticky match and resetting it to 0 on failure.
func (d *RegExpData) Exec(input string) (*MatchResult, error) {
	start := 0
	if d.Global || d.Sticky {
		start = d.LastIndex
	}
	if start > len(input) {
		d.LastIndex = 0
		return &MatchResult{Matched: false}, nil
	}

	m, err := d.compiled.FindStringMatchStartingAt(input, start)
	if err != nil {
		return nil, err
	}
	if m == nil {
		if d.Global || d.Sticky {
			d.LastIndex = 0
		}
		return &MatchResult{Matched: false}, nil
	}
	if d.Sticky && m.Index != start {
		d.LastIndex = 0
		return &MatchResult{Matched: false}, nil
	}

	groups := m.Groups()
	res := &MatchResult{
		Matched: true,
		Index:   m.Index,
		Text:    m.String(),
		Named:   make(map[string]string),
	}
	for _, g := range groups {
		res.Groups = append(res.Groups, g.String())
		if !isNumericGroupName(g.Name) {
			res.Named[g.Name] = g.String()
		}
	}
	if d.Global || d.Sticky {
		d.LastIndex = m.Index + m.Length
		if m.Length == 0 {
			d.LastIndex++
		}
	}
	return res, nil
}

// Test is a lighter-weight Exec that discards match details, per
// RegExp.prototype.test's call shape.
func (d *RegExpData) Test(input string) (bool, error) {
	res, err := d.Exec(input)
	if err != nil {
		return false, err
	}
	return res.Matched, nil
}

func isNumericGroupName(name string) bool {
	if name == "" {
		return true
	}
	return strings.IndexFunc(name, func(r rune) bool { return r < '0' || r > '9' }) == -1
}

// NewRegExpObject allocates a RegExp-classed object bound to a compiled
// RegExpData.
func NewRegExpObject(proto *Object, data *RegExpData) *Object {
	o := NewObject(proto)
	o.Class = ClassRegExp
	o.Regexp = data
	return o
}
