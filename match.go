package jsgf

import (
	"strings"

	"golang.org/x/text/cases"
)

// foldCase implements the case-insensitive comparison spec.md §4.3 and §8
// require of every non-Dictation expansion: matches(E, s) == matches(E,
// s.swapcase()). strings.EqualFold is ASCII/simple-case-folding only; Fold()
// additionally handles the Unicode special-casing strings.EqualFold misses
// (Turkish dotless i and the like are explicitly out of scope for "en"
// grammars, but nothing stops a Literal or speech string from containing
// non-ASCII words).
var foldCase = cases.Fold()

func foldEqual(a, b string) bool {
	return foldCase.String(a) == foldCase.String(b)
}

// matchMode selects how a Dictation node behaves, per spec.md's design note
// 9: "model the mode explicitly... rather than implicitly via caller
// context."
type matchMode int

const (
	// modeWhole matches a complete rule expansion in one shot: Dictation
	// nodes greedily claim tokens but reserve enough for any following
	// fixed siblings in the same Sequence.
	modeWhole matchMode = iota
	// modeStep matches a single SequenceRule fragment against one step's
	// input chunk: a Dictation node (always the fragment's sole content,
	// possibly repeated) claims the entire chunk.
	modeStep
)

// Tokenize normalises a speech string per spec.md §4.3: case-folded (for
// comparison purposes the caller may still want the original casing back,
// so Tokenize itself only trims and collapses whitespace — case folding
// happens per-token at comparison time in matchLiteral) and split on
// whitespace runs.
func Tokenize(speech string) []string {
	collapsed := rxSpaces.ReplaceAllString(strings.TrimSpace(speech), " ")
	if collapsed == "" {
		return nil
	}
	return strings.Split(collapsed, " ")
}

// minWidth returns the minimum number of tokens e must consume to match,
// used by Sequence/RequiredGrouping to compute how much room a preceding
// Dictation must leave for the siblings that follow it.
func minWidth(e *Expansion) int {
	switch e.kind {
	case KindLiteral:
		return len(e.words)
	case KindSequence, KindRequiredGrouping:
		total := 0
		for _, c := range e.children {
			total += minWidth(c)
		}
		return total
	case KindAlternativeSet:
		if len(e.children) == 0 {
			return 0
		}
		min := minWidth(e.children[0])
		for _, c := range e.children[1:] {
			if w := minWidth(c); w < min {
				min = w
			}
		}
		return min
	case KindOptionalGrouping, KindKleeneStar:
		return 0
	case KindRepeat:
		return minWidth(e.children[0])
	case KindRuleRef:
		if e.ruleRef == nil {
			return 0
		}
		return minWidth(e.ruleRef.expansion)
	case KindNamedRuleRef:
		return 0
	case KindDictation:
		return 1
	default:
		return 0
	}
}

func minWidthOf(children []*Expansion) int {
	total := 0
	for _, c := range children {
		total += minWidth(c)
	}
	return total
}

// match is the single recursive dispatch for all variants, returning how
// many leading tokens of the supplied slice were consumed and whether the
// attempt succeeded. It never requires full consumption of tokens itself;
// the top-level caller (Rule.Matches, SequenceRule.Matches) decides whether
// a partial match is acceptable.
func match(e *Expansion, tokens []string, mode matchMode) (consumed int, ok bool) {
	switch e.kind {
	case KindLiteral:
		consumed, ok = matchLiteral(e, tokens)
	case KindSequence, KindRequiredGrouping:
		consumed, ok = matchSequence(e, tokens, mode)
	case KindAlternativeSet:
		consumed, ok = matchAlternativeSet(e, tokens, mode)
	case KindOptionalGrouping:
		consumed, ok = matchOptional(e, tokens, mode)
	case KindRepeat:
		consumed, ok = matchRepeat(e.children[0], tokens, mode, true)
	case KindKleeneStar:
		consumed, ok = matchRepeat(e.children[0], tokens, mode, false)
	case KindRuleRef:
		consumed, ok = matchRuleRef(e, tokens, mode)
	case KindDictation:
		consumed, ok = matchDictation(tokens)
	case KindNamedRuleRef:
		consumed, ok = 0, false
	default:
		consumed, ok = 0, false
	}
	e.match = Span{Start: 0, End: consumed, Matched: ok}
	return consumed, ok
}

func matchLiteral(e *Expansion, tokens []string) (int, bool) {
	if len(tokens) < len(e.words) {
		return 0, false
	}
	for i, w := range e.words {
		if !foldEqual(tokens[i], w) {
			return 0, false
		}
	}
	return len(e.words), true
}

func matchDictation(tokens []string) (int, bool) {
	if len(tokens) == 0 {
		return 0, false
	}
	return len(tokens), true
}

func matchSequence(e *Expansion, tokens []string, mode matchMode) (int, bool) {
	pos := tokens
	for i, child := range e.children {
		if mode == modeWhole && child.kind == KindDictation {
			budget := len(pos) - minWidthOf(e.children[i+1:])
			if budget < 1 {
				return 0, false
			}
			child.match = Span{Start: 0, End: budget, Matched: true}
			pos = pos[budget:]
			continue
		}
		n, ok := match(child, pos, mode)
		if !ok {
			return 0, false
		}
		pos = pos[n:]
	}
	return len(tokens) - len(pos), true
}

func matchAlternativeSet(e *Expansion, tokens []string, mode matchMode) (int, bool) {
	for _, child := range e.children {
		if n, ok := match(child, tokens, mode); ok {
			return n, true
		}
	}
	return 0, false
}

func matchOptional(e *Expansion, tokens []string, mode matchMode) (int, bool) {
	if n, ok := match(e.children[0], tokens, mode); ok {
		return n, true
	}
	return 0, true
}

func matchRepeat(child *Expansion, tokens []string, mode matchMode, requireOne bool) (int, bool) {
	pos := tokens
	count := 0
	for {
		n, ok := match(child, pos, mode)
		if !ok || n == 0 {
			break
		}
		pos = pos[n:]
		count++
	}
	if requireOne && count == 0 {
		return 0, false
	}
	return len(tokens) - len(pos), true
}

func matchRuleRef(e *Expansion, tokens []string, mode matchMode) (int, bool) {
	if e.ruleRef == nil || !e.ruleRef.active {
		return 0, false
	}
	return match(e.ruleRef.expansion, tokens, mode)
}
