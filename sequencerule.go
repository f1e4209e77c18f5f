package jsgf

import "fmt"

// fragKind distinguishes a SequenceRule fragment that still carries grammar
// structure from one that stands in for a Dictation slot.
type fragKind int

const (
	fragNormal fragKind = iota
	fragDictation
)

// fragment is one dictation-free slice a SequenceRule's original expansion
// was split into, or a dictation marker with no compiled representation.
type fragment struct {
	kind      fragKind
	expansion *Expansion // nil when kind == fragDictation
}

// SequenceRule is derived from a rule whose expansion contains Dictation: it
// splits that expansion into an ordered list of fragments and drives
// stepwise matching/compilation across them, per spec.md §4.5.
type SequenceRule struct {
	name      string
	visible   bool
	original  *Expansion
	fragments []fragment
	index     int
}

// NewSequenceRule validates dictation placement in expansion and splits it
// into fragments. It fails with a GrammarError if a Dictation node appears
// somewhere the transformer cannot split around (inside AlternativeSet,
// OptionalGrouping, or KleeneStar, or nested inside a Repeat other than the
// bare Repeat(Dictation) whole-rule form).
func NewSequenceRule(name string, visible bool, expansion Child) (*SequenceRule, error) {
	if name == "" {
		return nil, grammarErr("", "", "rule name cannot be empty")
	}
	e, err := asExpansion(expansion)
	if err != nil {
		return nil, err
	}
	root := e.Clone()
	if err := validateDictationPlacement(root); err != nil {
		return nil, grammarErr("", name, "%s", err)
	}
	return &SequenceRule{
		name:      name,
		visible:   visible,
		original:  root,
		fragments: splitFragments(root),
		index:     0,
	}, nil
}

// NewPublicSequenceRule builds a public SequenceRule.
func NewPublicSequenceRule(name string, expansion Child) (*SequenceRule, error) {
	return NewSequenceRule(name, true, expansion)
}

// NewHiddenSequenceRule builds a hidden SequenceRule.
func NewHiddenSequenceRule(name string, expansion Child) (*SequenceRule, error) {
	return NewSequenceRule(name, false, expansion)
}

// NewSequenceRuleFromRule derives a SequenceRule from an existing rule's
// name, visibility, and expansion.
func NewSequenceRuleFromRule(r *Rule) (*SequenceRule, error) {
	return NewSequenceRule(r.name, r.visible, r.expansion.Clone())
}

// validateDictationPlacement enforces spec.md §4.5 point 1. The `top`
// distinction exists solely for the Repeat(Dictation) exception: that form
// is accepted only when it is the expansion's entire top level, not when it
// occurs nested inside a larger structure.
func validateDictationPlacement(e *Expansion) error {
	return validateDictationNode(e, true)
}

func validateDictationNode(e *Expansion, top bool) error {
	switch e.kind {
	case KindDictation:
		return nil
	case KindSequence, KindRequiredGrouping:
		for _, c := range e.children {
			if err := validateDictationNode(c, false); err != nil {
				return err
			}
		}
		return nil
	case KindRepeat:
		if top && len(e.children) == 1 && e.children[0].kind == KindDictation {
			return nil
		}
		if e.containsDictation() {
			return fmt.Errorf("dictation is not allowed inside Repeat")
		}
		return nil
	case KindOptionalGrouping:
		if e.containsDictation() {
			return fmt.Errorf("dictation is not allowed inside OptionalGrouping")
		}
		return nil
	case KindAlternativeSet:
		if e.containsDictation() {
			return fmt.Errorf("dictation is not allowed inside AlternativeSet")
		}
		return nil
	case KindKleeneStar:
		if e.containsDictation() {
			return fmt.Errorf("dictation is not allowed inside KleeneStar")
		}
		return nil
	default:
		return nil
	}
}

// isPureDictation reports the three whole-rule forms spec.md §4.5 calls out
// as degenerating to a single empty-compile fragment: bare Dictation, a
// Sequence wrapping exactly one Dictation, and Repeat wrapping a Dictation.
func isPureDictation(e *Expansion) bool {
	switch e.kind {
	case KindDictation:
		return true
	case KindSequence:
		return len(e.children) == 1 && e.children[0].kind == KindDictation
	case KindRepeat:
		return len(e.children) == 1 && e.children[0].kind == KindDictation
	default:
		return false
	}
}

// splitFragments implements spec.md §4.5's split algorithm: no dictation
// means one fragment holding the whole expansion; a pure-dictation whole
// rule degenerates to one dictation fragment; otherwise e's direct children
// (e must be a Sequence/RequiredGrouping, enforced by validation) are walked
// left to right, descending into any Sequence/RequiredGrouping child that
// holds Dictation, each maximal run of non-dictation children becoming one
// merged fragment and each Dictation becoming its own singleton dictation
// fragment.
func splitFragments(e *Expansion) []fragment {
	if !e.containsDictation() {
		return []fragment{{kind: fragNormal, expansion: e}}
	}
	if isPureDictation(e) {
		return []fragment{{kind: fragDictation}}
	}

	var frags []fragment
	var run []*Expansion

	flushRun := func() {
		if len(run) == 0 {
			return
		}
		children := make([]Child, len(run))
		for i, c := range run {
			children[i] = c
		}
		seq, _ := NewSequence(children...) // run elements are already valid expansions
		frags = append(frags, fragment{kind: fragNormal, expansion: seq})
		run = nil
	}

	// A Sequence/RequiredGrouping child that itself holds Dictation is walked
	// as part of the same flat sequence, so no fragment keeps a Dictation.
	var walk func(children []*Expansion)
	walk = func(children []*Expansion) {
		for _, c := range children {
			switch {
			case c.kind == KindDictation:
				flushRun()
				frags = append(frags, fragment{kind: fragDictation})
			case (c.kind == KindSequence || c.kind == KindRequiredGrouping) && c.containsDictation():
				walk(c.children)
			default:
				run = append(run, c)
			}
		}
	}
	walk(e.children)
	flushRun()

	return frags
}

// Name returns the sequence rule's base name; compiled fragment rules are
// named "<name>_<index>".
func (s *SequenceRule) Name() string { return s.name }

// Visible reports whether compiled fragments carry the "public " prefix.
func (s *SequenceRule) Visible() bool { return s.visible }

// FragmentCount returns the total number of fragments.
func (s *SequenceRule) FragmentCount() int { return len(s.fragments) }

// CurrentIndex returns the index of the current fragment.
func (s *SequenceRule) CurrentIndex() int { return s.index }

// HasNextExpansion reports whether a fragment remains after the current
// one.
func (s *SequenceRule) HasNextExpansion() bool {
	return s.index < len(s.fragments)-1
}

// SetNext advances to the next fragment (or, from the last fragment, to the
// terminal DONE state). Calling SetNext again once DONE returns an error
// wrapping ErrOutOfRange.
func (s *SequenceRule) SetNext() error {
	if s.index >= len(s.fragments) {
		return &OutOfRangeError{Rule: s.name, Index: s.index, Len: len(s.fragments)}
	}
	s.index++
	return nil
}

// CurrentIsDictationOnly reports whether the current fragment is a
// Dictation marker (true) or still carries fixed grammar structure (false).
// False once the rule is past its last fragment.
func (s *SequenceRule) CurrentIsDictationOnly() bool {
	if s.index < 0 || s.index >= len(s.fragments) {
		return false
	}
	return s.fragments[s.index].kind == fragDictation
}

// Matches reports whether speech fully matches the current fragment: the
// entire step chunk for a dictation fragment (non-empty), or an exact
// consumption match against the fragment's expansion otherwise. Always
// false once the rule is past its last fragment.
func (s *SequenceRule) Matches(speech string) bool {
	if s.index < 0 || s.index >= len(s.fragments) {
		return false
	}
	f := s.fragments[s.index]
	tokens := Tokenize(speech)
	if f.kind == fragDictation {
		return len(tokens) >= 1
	}
	n, ok := match(f.expansion, tokens, modeStep)
	return ok && n == len(tokens)
}

// Compile renders the current fragment as a JSGF rule line named
// "<name>_<index>", or the empty string for a dictation fragment or once
// past the last fragment.
func (s *SequenceRule) Compile() string {
	if s.index < 0 || s.index >= len(s.fragments) {
		return ""
	}
	f := s.fragments[s.index]
	if f.kind == fragDictation {
		return ""
	}
	prefix := ""
	if s.visible {
		prefix = "public "
	}
	return fmt.Sprintf("%s<%s_%d> = %s;", prefix, s.name, s.index, compile(f.expansion))
}
