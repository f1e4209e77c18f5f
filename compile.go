package jsgf

import "strings"

// compile serialises an expansion tree to canonical JSGF text, per the
// per-variant templates in spec.md §4.2.
func compile(e *Expansion) string {
	switch e.kind {
	case KindLiteral:
		return strings.Join(e.words, " ")
	case KindSequence:
		return compileJoined(e.children, " ")
	case KindRequiredGrouping:
		return "(" + compileJoined(e.children, " ") + ")"
	case KindAlternativeSet:
		return "(" + compileJoined(e.children, "|") + ")"
	case KindOptionalGrouping:
		return "[" + compile(e.children[0]) + "]"
	case KindRepeat:
		return compile(e.children[0]) + "+"
	case KindKleeneStar:
		return compile(e.children[0]) + "*"
	case KindRuleRef:
		if e.ruleRef == nil {
			return ""
		}
		return "<" + e.ruleRef.name + ">"
	case KindNamedRuleRef:
		return "<" + e.name + ">"
	case KindDictation:
		return ""
	default:
		return ""
	}
}

func compileJoined(children []*Expansion, sep string) string {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		if s := compile(c); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}
