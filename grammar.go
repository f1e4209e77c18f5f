package jsgf

import "fmt"

// Grammar is an ordered, name-indexed container of rules plus the JSGF
// header fields. Rule names are unique within a grammar; rules reference
// each other by name, and removing a rule some other live rule depends on
// fails.
type Grammar struct {
	name         string
	jsgfVersion  string
	charsetName  string
	languageName string

	order []*Rule
	index map[string]*Rule
}

// NewGrammar builds an empty grammar with JSGF header defaults
// (version 1.0, UTF-8, en).
func NewGrammar(name string) *Grammar {
	return &Grammar{
		name:         name,
		jsgfVersion:  "1.0",
		charsetName:  "UTF-8",
		languageName: "en",
		index:        make(map[string]*Rule),
	}
}

// Name returns the grammar's name.
func (g *Grammar) Name() string { return g.name }

// SetHeader overrides the JSGF header fields (defaults: "1.0", "UTF-8",
// "en"). Empty arguments leave the corresponding field unchanged.
func (g *Grammar) SetHeader(jsgfVersion, charsetName, languageName string) {
	if jsgfVersion != "" {
		g.jsgfVersion = jsgfVersion
	}
	if charsetName != "" {
		g.charsetName = charsetName
	}
	if languageName != "" {
		g.languageName = languageName
	}
}

// Rules returns all rules in insertion order. Callers must not mutate the
// returned slice.
func (g *Grammar) Rules() []*Rule { return g.order }

// RuleNames returns the names of all rules in insertion order.
func (g *Grammar) RuleNames() []string {
	names := make([]string, len(g.order))
	for i, r := range g.order {
		names[i] = r.name
	}
	return names
}

// VisibleRules returns all public rules in insertion order.
func (g *Grammar) VisibleRules() []*Rule {
	var out []*Rule
	for _, r := range g.order {
		if r.visible {
			out = append(out, r)
		}
	}
	return out
}

// AddRule appends a single rule, rejecting a duplicate name regardless of
// visibility or structural equality, and resolving any NamedRuleRef nodes in
// its expansion against the rules already present.
func (g *Grammar) AddRule(r *Rule) error {
	return g.addRules([]*Rule{r})
}

// AddRules adds several rules atomically: either every rule passes
// name-uniqueness and dependency-cycle checks and all are added, or none
// are.
func (g *Grammar) AddRules(rules ...*Rule) error {
	return g.addRules(rules)
}

func (g *Grammar) addRules(rules []*Rule) error {
	seen := make(map[string]bool, len(rules))
	pending := make(map[string]*Rule, len(rules))
	for _, r := range rules {
		if _, exists := g.index[r.name]; exists {
			return grammarErr(g.name, r.name, "a rule with this name already exists")
		}
		if seen[r.name] {
			return grammarErr(g.name, r.name, "duplicate rule name within the same batch")
		}
		seen[r.name] = true
		pending[r.name] = r
	}

	for _, r := range rules {
		if err := resolveNamedRefs(r.expansion, g, pending); err != nil {
			return grammarErr(g.name, r.name, "%s", err)
		}
	}

	graph := g.dependencyGraph(pending)
	if _, err := toposort(graph); err != nil {
		return grammarErr(g.name, "", "adding %v would introduce a cyclic rule dependency", ruleNames(rules))
	}

	for _, r := range rules {
		g.index[r.name] = r
		g.order = append(g.order, r)
	}
	return nil
}

func ruleNames(rules []*Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

// dependencyGraph builds the full name->deps map over existing rules plus a
// pending batch, for cycle checking before committing an insert. A
// RuleRef's target does not have to belong to this grammar at all (spec.md
// §3 allows a bare weak reference to any rule); dependencies pointing
// outside this grammar's own node set are dropped rather than treated as
// missing, since this grammar cannot detect cycles through rules it cannot
// see (spec.md §4.3: "follows references without cycle detection — the
// grammar forbids cycles by construction" refers only to its own rules).
func (g *Grammar) dependencyGraph(pending map[string]*Rule) map[string][]string {
	all := make(map[string]*Rule, len(g.index)+len(pending))
	for name, r := range g.index {
		all[name] = r
	}
	for name, r := range pending {
		all[name] = r
	}

	graph := make(map[string][]string, len(all))
	for name, r := range all {
		var deps []string
		for d := range r.Dependencies() {
			if _, ok := all[d]; ok {
				deps = append(deps, d)
			}
		}
		graph[name] = deps
	}
	return graph
}

// resolveNamedRefs walks an expansion tree converting KindNamedRuleRef nodes
// into resolved KindRuleRef nodes, looking the target up first among rules
// already in the grammar and then among the rules in the same pending
// batch.
func resolveNamedRefs(e *Expansion, g *Grammar, pending map[string]*Rule) error {
	var walkErr error
	e.WalkPreOrder(func(n *Expansion) bool {
		if walkErr != nil {
			return false
		}
		if n.kind != KindNamedRuleRef {
			return true
		}
		target, ok := g.index[n.name]
		if !ok {
			target, ok = pending[n.name]
		}
		if !ok {
			walkErr = fmt.Errorf("references unknown rule %q", n.name)
			return false
		}
		n.kind = KindRuleRef
		n.ruleRef = target
		n.name = ""
		return true
	})
	return walkErr
}

// RemoveRule removes a rule by name or value, failing if the rule does not
// exist or if any other live rule's dependencies include it.
func (g *Grammar) RemoveRule(ref RuleIdentifier) error {
	name := ref.ruleRefName()
	target, ok := g.index[name]
	if !ok {
		return grammarErr(g.name, name, "no such rule")
	}

	for _, r := range g.order {
		if r.name == name {
			continue
		}
		if r.Dependencies()[name] {
			return grammarErr(g.name, name, "rule %q depends on it", r.name)
		}
	}

	delete(g.index, name)
	for i, r := range g.order {
		if r == target {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return nil
}

// EnableRule enables a rule, looked up by name or value. If ref is a *Rule,
// its own Active flag is also flipped, so state stays consistent whether
// accessed via the grammar or the caller's own reference (spec.md §4.6).
func (g *Grammar) EnableRule(ref RuleIdentifier) error { return g.setActive(ref, true) }

// DisableRule disables a rule; see EnableRule for lookup/aliasing rules.
func (g *Grammar) DisableRule(ref RuleIdentifier) error { return g.setActive(ref, false) }

func (g *Grammar) setActive(ref RuleIdentifier, active bool) error {
	name := ref.ruleRefName()
	stored, ok := g.index[name]
	if !ok {
		return grammarErr(g.name, name, "no such rule")
	}
	stored.active = active
	if r, ok := ref.(*Rule); ok {
		r.active = active
	}
	return nil
}

// FindMatchingRules returns all enabled public rules whose Matches(speech)
// succeeds, preserving insertion order.
func (g *Grammar) FindMatchingRules(speech string) []*Rule {
	var out []*Rule
	for _, r := range g.order {
		if r.visible && r.active && r.Matches(speech) {
			out = append(out, r)
		}
	}
	return out
}

// CompileGrammar renders the full JSGF document: header, "grammar NAME;",
// then each enabled rule's line (disabled rules emit an empty line).
func (g *Grammar) CompileGrammar() (string, error) {
	return g.compileRules(g.order)
}

func (g *Grammar) compileRules(rules []*Rule) (string, error) {
	var b []byte
	b = append(b, fmt.Sprintf("#JSGF V%s %s %s;\n", g.jsgfVersion, g.charsetName, g.languageName)...)
	b = append(b, fmt.Sprintf("grammar %s;\n", g.name)...)
	for _, r := range rules {
		b = append(b, r.Compile()...)
		b = append(b, '\n')
	}
	return string(b), nil
}
