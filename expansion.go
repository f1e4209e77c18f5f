// Package jsgf builds, compiles, and matches JSGF-style speech grammars.
//
// A grammar is a tree of Expansion nodes rooted at each Rule's expansion.
// The tree is walked by two independent engines: the Matcher (see match.go),
// which recognises whether a tokenised speech string is producible by an
// expansion, and the SequenceRule transformer (see sequencerule.go), which
// splits an expansion containing Dictation slots into an ordered list of
// dictation-free fragments for stepwise recognition.
package jsgf

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lowerCase renders Literal word text in its canonical stored (lowercase)
// form; foldCase (match.go) is used for the actual case-insensitive
// comparison during matching, since Unicode case folding and simple
// lowercasing are not always the same transform.
var lowerCase = cases.Lower(language.Und)

// rxSpaces collapses any run of whitespace to a single space, the same
// normalisation the teacher grammar package applies to raw rule text before
// parsing it, adapted here for Literal word sequences instead of regexp
// source.
var rxSpaces = regexp.MustCompile(`\s+`)

// Kind discriminates the ~10 Expansion variants. Dispatch on Kind rather
// than on a type switch over concrete types keeps compile/match/equality as
// a single exhaustive function per operation, per the flat-sum-type design
// favoured over one-method-per-variant.
type Kind int

const (
	KindLiteral Kind = iota
	KindSequence
	KindAlternativeSet
	KindRequiredGrouping
	KindOptionalGrouping
	KindRepeat
	KindKleeneStar
	KindRuleRef
	KindDictation
	KindNamedRuleRef
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindSequence:
		return "Sequence"
	case KindAlternativeSet:
		return "AlternativeSet"
	case KindRequiredGrouping:
		return "RequiredGrouping"
	case KindOptionalGrouping:
		return "OptionalGrouping"
	case KindRepeat:
		return "Repeat"
	case KindKleeneStar:
		return "KleeneStar"
	case KindRuleRef:
		return "RuleRef"
	case KindDictation:
		return "Dictation"
	case KindNamedRuleRef:
		return "NamedRuleRef"
	default:
		return "Unknown"
	}
}

// Span is the derived current_match of an Expansion. Start is always 0 and
// End is the number of tokens the node consumed, counted from the position
// at which it was tried; the absolute offset within the whole input is not
// recorded.
type Span struct {
	Start, End int
	Matched    bool
}

// Expansion is a node in an expansion tree. Every field except the tagged
// kind-specific ones (words, ruleRef, name) is common to all variants.
type Expansion struct {
	kind     Kind
	children []*Expansion
	tag      string
	parent   *Expansion // weak: relation only, never owning, cleared on detach

	words []string // KindLiteral

	ruleRef *Rule  // KindRuleRef: resolved target
	name    string // KindNamedRuleRef: unresolved target name

	match Span
}

// Child is anything a variadic expansion constructor accepts: a bare string
// (promoted to a Literal) or an already-built *Expansion.
type Child any

func asExpansion(c Child) (*Expansion, error) {
	switch v := c.(type) {
	case *Expansion:
		return v, nil
	case string:
		return NewLiteral(v)
	case Expansion:
		cp := v
		return &cp, nil
	default:
		return nil, grammarErr("", "", "unsupported expansion child of type %T", c)
	}
}

func asExpansions(cs []Child) ([]*Expansion, error) {
	out := make([]*Expansion, 0, len(cs))
	for _, c := range cs {
		e, err := asExpansion(c)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func attach(parent *Expansion, children []*Expansion) {
	for _, c := range children {
		c.parent = parent
	}
	parent.children = children
}

// detach clears e's parent back-reference, for an expansion pulled out of a
// tree, so it does not keep pointing at a tree it no longer belongs to.
// Nothing in the package calls it: the SequenceRule transformer instead
// re-parents the children it moves to the fragment Sequence it builds.
func (e *Expansion) detach() {
	e.parent = nil
}

// Parent returns the weak back-reference set on attachment, or nil for a
// root expansion or a detached one.
func (e *Expansion) Parent() *Expansion { return e.parent }

// Kind reports the expansion's variant.
func (e *Expansion) Kind() Kind { return e.kind }

// Children returns the expansion's ordered child list. Callers must not
// mutate the returned slice.
func (e *Expansion) Children() []*Expansion { return e.children }

// Tag returns the optional JSGF tag string attached to this expansion.
func (e *Expansion) Tag() string { return e.tag }

// SetTag attaches a tag string. The tag takes part in Equal and is copied by
// Clone; compile does not emit it, and the package does not interpret JSGF
// tag semantics.
func (e *Expansion) SetTag(tag string) { e.tag = tag }

// Match returns the span recorded by the most recent match attempt on this
// expansion, or a zero Span with Matched==false if it has never been tried
// or its own most recent attempt failed.
func (e *Expansion) Match() Span { return e.match }

// Words returns the normalised token sequence of a Literal expansion, or nil
// for any other kind.
func (e *Expansion) Words() []string {
	if e.kind != KindLiteral {
		return nil
	}
	out := make([]string, len(e.words))
	copy(out, e.words)
	return out
}

// RuleRefTarget returns the referenced rule of a resolved KindRuleRef
// expansion, or nil otherwise.
func (e *Expansion) RuleRefTarget() *Rule {
	if e.kind != KindRuleRef {
		return nil
	}
	return e.ruleRef
}

// Name returns the referenced rule name of a KindNamedRuleRef expansion, or
// the target rule's name for a resolved KindRuleRef, or "" otherwise.
func (e *Expansion) Name() string {
	switch e.kind {
	case KindNamedRuleRef:
		return e.name
	case KindRuleRef:
		if e.ruleRef != nil {
			return e.ruleRef.name
		}
	}
	return ""
}

func normalizeWords(s string) ([]string, error) {
	s = strings.TrimSpace(rxSpaces.ReplaceAllString(s, " "))
	s = lowerCase.String(s)
	if s == "" {
		return nil, grammarErr("", "", "literal expansion cannot be empty")
	}
	return strings.Split(s, " "), nil
}

// NewLiteral builds a Literal expansion from words. Whitespace is collapsed
// to single spaces, the text is folded to lowercase, and an empty literal is
// rejected.
func NewLiteral(words string) (*Expansion, error) {
	w, err := normalizeWords(words)
	if err != nil {
		return nil, err
	}
	return &Expansion{kind: KindLiteral, words: w}, nil
}

// MustLiteral is NewLiteral but panics on error, for tests and package-level
// var initialisation where the literal text is a compile-time constant.
func MustLiteral(words string) *Expansion {
	e, err := NewLiteral(words)
	if err != nil {
		panic(err)
	}
	return e
}

func newParent(kind Kind, children []Child) (*Expansion, error) {
	kids, err := asExpansions(children)
	if err != nil {
		return nil, err
	}
	e := &Expansion{kind: kind}
	attach(e, kids)
	return e, nil
}

// NewSequence matches each child in order, left to right, the input split
// greedily between them.
func NewSequence(children ...Child) (*Expansion, error) {
	return newParent(KindSequence, children)
}

// NewAlternativeSet matches if any child matches; on success the first
// matching child (in declaration order) wins.
func NewAlternativeSet(children ...Child) (*Expansion, error) {
	return newParent(KindAlternativeSet, children)
}

// NewRequiredGrouping is structurally identical to Sequence for matching,
// but is compiled wrapped in parentheses.
func NewRequiredGrouping(children ...Child) (*Expansion, error) {
	return newParent(KindRequiredGrouping, children)
}

// NewOptionalGrouping matches its child or the empty string.
func NewOptionalGrouping(child Child) (*Expansion, error) {
	return newParent(KindOptionalGrouping, []Child{child})
}

// NewRepeat matches one or more repetitions of its child.
func NewRepeat(child Child) (*Expansion, error) {
	return newParent(KindRepeat, []Child{child})
}

// NewKleeneStar matches zero or more repetitions of its child.
func NewKleeneStar(child Child) (*Expansion, error) {
	return newParent(KindKleeneStar, []Child{child})
}

// NewRuleRef builds a resolved reference to another rule by identity. Rule
// cycles are not detected at the expansion level; Grammar.AddRule(s) rejects
// them at insertion time (see grammar.go).
func NewRuleRef(r *Rule) (*Expansion, error) {
	if r == nil {
		return nil, grammarErr("", "", "rule reference cannot be nil")
	}
	return &Expansion{kind: KindRuleRef, ruleRef: r}, nil
}

// NewNamedRuleRef builds an unresolved reference by rule name, resolved to a
// KindRuleRef automatically when the owning rule is added to a Grammar.
func NewNamedRuleRef(name string) (*Expansion, error) {
	if name == "" {
		return nil, grammarErr("", "", "named rule reference cannot be empty")
	}
	return &Expansion{kind: KindNamedRuleRef, name: name}, nil
}

// NewDictation builds a placeholder slot matching any non-empty
// whitespace-separated word sequence, delegated to an external recogniser.
func NewDictation() *Expansion {
	return &Expansion{kind: KindDictation}
}

// Clone returns a structural deep copy: fresh nodes, fresh parent pointers,
// everything else (tag, words, ruleRef/name, matched span reset) preserved.
// RuleRef targets are copied by reference, not recursively cloned — they are
// not owned by this tree.
func (e *Expansion) Clone() *Expansion {
	if e == nil {
		return nil
	}
	cp := &Expansion{
		kind:    e.kind,
		tag:     e.tag,
		name:    e.name,
		ruleRef: e.ruleRef,
	}
	if e.words != nil {
		cp.words = append([]string(nil), e.words...)
	}
	if e.children != nil {
		kids := make([]*Expansion, len(e.children))
		for i, c := range e.children {
			kids[i] = c.Clone()
		}
		attach(cp, kids)
	}
	return cp
}

// Equal reports whether e and o are structurally equal: same kind, same
// tag, same words/rule-reference, and recursively equal children.
func (e *Expansion) Equal(o *Expansion) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.kind != o.kind || e.tag != o.tag {
		return false
	}
	switch e.kind {
	case KindLiteral:
		if len(e.words) != len(o.words) {
			return false
		}
		for i := range e.words {
			if e.words[i] != o.words[i] {
				return false
			}
		}
	case KindRuleRef:
		eName, oName := "", ""
		if e.ruleRef != nil {
			eName = e.ruleRef.name
		}
		if o.ruleRef != nil {
			oName = o.ruleRef.name
		}
		if eName != oName {
			return false
		}
	case KindNamedRuleRef:
		if e.name != o.name {
			return false
		}
	}
	if len(e.children) != len(o.children) {
		return false
	}
	for i := range e.children {
		if !e.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// WalkFunc is called for each node during a Walk. In WalkPreOrder, returning
// false skips that node's children; it never stops sibling subtrees.
// WalkPostOrder ignores the return value.
type WalkFunc func(e *Expansion) bool

// WalkPreOrder visits e and its descendants root-first.
func (e *Expansion) WalkPreOrder(fn WalkFunc) {
	if e == nil {
		return
	}
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.WalkPreOrder(fn)
	}
}

// WalkPostOrder visits e and its descendants children-first.
func (e *Expansion) WalkPostOrder(fn WalkFunc) {
	if e == nil {
		return
	}
	for _, c := range e.children {
		c.WalkPostOrder(fn)
	}
	fn(e)
}

// FindFirst returns the first node (pre-order) for which pred returns true,
// or nil if none matches.
func (e *Expansion) FindFirst(pred func(*Expansion) bool) *Expansion {
	var found *Expansion
	e.WalkPreOrder(func(n *Expansion) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// CollectKind returns every node of the given kind, in pre-order.
func (e *Expansion) CollectKind(k Kind) []*Expansion {
	var out []*Expansion
	e.WalkPreOrder(func(n *Expansion) bool {
		if n.kind == k {
			out = append(out, n)
		}
		return true
	})
	return out
}

// containsDictation reports whether e or any descendant is a Dictation node.
func (e *Expansion) containsDictation() bool {
	return e.FindFirst(func(n *Expansion) bool { return n.kind == KindDictation }) != nil
}
