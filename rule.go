package jsgf

// Rule is a named, typed expansion holder: public rules are exported entry
// points, hidden rules are only reachable through RuleRef from other rules.
// Disabled rules are suppressed from compile output and match lookups but
// stay in the grammar for reference.
type Rule struct {
	name      string
	visible   bool
	expansion *Expansion
	active    bool
}

// NewPublicRule builds an exported rule.
func NewPublicRule(name string, expansion Child) (*Rule, error) {
	return newRule(name, true, expansion)
}

// NewHiddenRule builds a rule only reachable via RuleRef.
func NewHiddenRule(name string, expansion Child) (*Rule, error) {
	return newRule(name, false, expansion)
}

func newRule(name string, visible bool, expansion Child) (*Rule, error) {
	if name == "" {
		return nil, grammarErr("", "", "rule name cannot be empty")
	}
	e, err := asExpansion(expansion)
	if err != nil {
		return nil, err
	}
	return &Rule{name: name, visible: visible, expansion: e, active: true}, nil
}

// Name returns the rule's identifier.
func (r *Rule) Name() string { return r.name }

// Visible reports whether the rule is public (an exported entry point).
func (r *Rule) Visible() bool { return r.visible }

// Active reports whether the rule is enabled.
func (r *Rule) Active() bool { return r.active }

// Expansion returns the rule's owned expansion tree.
func (r *Rule) Expansion() *Expansion { return r.expansion }

// Enable flips the rule's active flag on. Idempotent.
func (r *Rule) Enable() { r.active = true }

// Disable flips the rule's active flag off. Idempotent.
func (r *Rule) Disable() { r.active = false }

// Equal reports whether two rules have the same name, visibility, and
// structurally equal expansion trees.
func (r *Rule) Equal(o *Rule) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.name == o.name && r.visible == o.visible && r.expansion.Equal(o.expansion)
}

// Matches reports whether speech is wholly producible by this rule's
// expansion. The comparison is case-insensitive per spec.md §8.
func (r *Rule) Matches(speech string) bool {
	if !r.active {
		return false
	}
	tokens := Tokenize(speech)
	n, ok := match(r.expansion, tokens, modeWhole)
	return ok && n == len(tokens)
}

// Compile renders the rule as a single JSGF rule line, e.g.
// "public <greet> = (<greetWord> <name>);", with no trailing newline (the
// grammar adds one per line). A disabled rule compiles to an
// empty line, preserving the document's line count while contributing no
// grammar content.
func (r *Rule) Compile() string {
	if !r.active {
		return ""
	}
	prefix := ""
	if r.visible {
		prefix = "public "
	}
	return prefix + "<" + r.name + "> = " + compile(r.expansion) + ";"
}

// Dependencies returns the set of rule names this rule's expansion
// references, transitively, via RuleRef/NamedRuleRef.
func (r *Rule) Dependencies() map[string]bool {
	deps := make(map[string]bool)
	collectDependencies(r.expansion, deps)
	return deps
}

func collectDependencies(e *Expansion, deps map[string]bool) {
	e.WalkPreOrder(func(n *Expansion) bool {
		switch n.kind {
		case KindRuleRef:
			if n.ruleRef != nil && !deps[n.ruleRef.name] {
				deps[n.ruleRef.name] = true
				collectDependencies(n.ruleRef.expansion, deps)
			}
		case KindNamedRuleRef:
			deps[n.name] = true
		}
		return true
	})
}

// ruleRefName implements RuleIdentifier, letting Grammar methods take either a
// rule name or a rule value through the same parameter.
func (r *Rule) ruleRefName() string { return r.name }
