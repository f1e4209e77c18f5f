package jsgf

// rootRuleName is reserved: RootGrammar synthesises its own public rule
// under this name, so no caller rule may use it.
const rootRuleName = "root"

// RootGrammar wraps a Grammar so every exported document has exactly one
// public entry point: compiling synthesises "public <root> = (<pub1>|
// <pub2>|...);" over the caller's enabled public rules and downgrades those
// rules to hidden in the emitted document only — the caller's own Rule
// values keep whatever Visible() they were constructed with.
type RootGrammar struct {
	*Grammar
}

// NewRootGrammar builds an empty RootGrammar.
func NewRootGrammar(name string) *RootGrammar {
	return &RootGrammar{Grammar: NewGrammar(name)}
}

// NewRootGrammarWithRules builds a RootGrammar and adds rules to it
// atomically, like Grammar.AddRules.
func NewRootGrammarWithRules(name string, rules ...*Rule) (*RootGrammar, error) {
	rg := NewRootGrammar(name)
	if err := rg.AddRules(rules...); err != nil {
		return nil, err
	}
	return rg, nil
}

// AddRule rejects the reserved name "root" in addition to Grammar's normal
// duplicate-name and cycle checks.
func (rg *RootGrammar) AddRule(r *Rule) error {
	return rg.AddRules(r)
}

// AddRules rejects a batch containing the reserved name "root" in addition
// to Grammar's normal checks, atomically.
func (rg *RootGrammar) AddRules(rules ...*Rule) error {
	for _, r := range rules {
		if r.name == rootRuleName {
			return grammarErr(rg.name, r.name, "rule name %q is reserved by RootGrammar", rootRuleName)
		}
	}
	return rg.Grammar.AddRules(rules...)
}

// RemoveRule forbids removing the synthetic root rule itself, by name or by
// a rule value whose name is "root".
func (rg *RootGrammar) RemoveRule(ref RuleIdentifier) error {
	if ref.ruleRefName() == rootRuleName {
		return grammarErr(rg.name, rootRuleName, "the synthetic root rule cannot be removed")
	}
	return rg.Grammar.RemoveRule(ref)
}

// CompileGrammar emits the header, the synthetic root rule, then the
// caller's rules with every public rule downgraded to hidden in the
// rendered text. Fails if there is no enabled public rule to list in root.
func (rg *RootGrammar) CompileGrammar() (string, error) {
	pubs := rg.enabledPublicRules()
	if len(pubs) == 0 {
		return "", grammarErr(rg.name, "", "no enabled public rule to build the root rule from")
	}

	rootExpansion, err := alternationOf(pubs)
	if err != nil {
		return "", err
	}
	rootRule, err := NewPublicRule(rootRuleName, rootExpansion)
	if err != nil {
		return "", err
	}

	rendered := make([]*Rule, 0, len(rg.order)+1)
	rendered = append(rendered, rootRule)
	for _, r := range rg.order {
		rendered = append(rendered, hideForCompile(r))
	}

	return rg.compileRules(rendered)
}

func (rg *RootGrammar) enabledPublicRules() []*Rule {
	var out []*Rule
	for _, r := range rg.order {
		if r.visible && r.active {
			out = append(out, r)
		}
	}
	return out
}

func alternationOf(rules []*Rule) (*Expansion, error) {
	children := make([]Child, len(rules))
	for i, r := range rules {
		ref, err := NewRuleRef(r)
		if err != nil {
			return nil, err
		}
		children[i] = ref
	}
	return NewAlternativeSet(children...)
}

// hideForCompile returns a shallow copy of r with Visible forced false, used
// only to render the compiled document — it shares the same expansion tree
// and does not mutate the caller's rule.
func hideForCompile(r *Rule) *Rule {
	if !r.visible {
		return r
	}
	cp := *r
	cp.visible = false
	return &cp
}

// FindMatchingRules returns matches against the caller's original public
// rules, not the synthetic root rule (which never appears in rg.order).
func (rg *RootGrammar) FindMatchingRules(speech string) []*Rule {
	return rg.Grammar.FindMatchingRules(speech)
}
