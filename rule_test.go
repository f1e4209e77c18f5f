package jsgf

import "testing"

func TestRuleCompilePublicAndHidden(t *testing.T) {
	t.Parallel()
	pub, err := NewPublicRule("greet", MustLiteral("hello"))
	checkErr(t, err)
	if got, want := pub.Compile(), "public <greet> = hello;"; got != want {
		t.Errorf("Compile() = %q, want %q", got, want)
	}

	hid, err := NewHiddenRule("greetWord", MustLiteral("hello"))
	checkErr(t, err)
	if got, want := hid.Compile(), "<greetWord> = hello;"; got != want {
		t.Errorf("Compile() = %q, want %q", got, want)
	}
}

func TestRuleCompileDisabledIsEmpty(t *testing.T) {
	t.Parallel()
	r, err := NewPublicRule("greet", MustLiteral("hello"))
	checkErr(t, err)
	r.Disable()
	if got := r.Compile(); got != "" {
		t.Errorf("Compile() on disabled rule = %q, want empty", got)
	}
	if r.Active() {
		t.Error("Active() should be false after Disable()")
	}
	r.Enable()
	if !r.Active() {
		t.Error("Active() should be true after Enable()")
	}
}

func TestRuleRejectsEmptyName(t *testing.T) {
	t.Parallel()
	if _, err := NewPublicRule("", MustLiteral("hi")); err == nil {
		t.Error("want error for empty rule name")
	}
}

func TestRuleDependenciesTransitive(t *testing.T) {
	t.Parallel()
	name, err := NewHiddenRule("name", MustLiteral("peter"))
	checkErr(t, err)
	nameRef, err := NewRuleRef(name)
	checkErr(t, err)
	greetWord, err := NewHiddenRule("greetWord", MustLiteral("hello"))
	checkErr(t, err)
	greetWordRef, err := NewRuleRef(greetWord)
	checkErr(t, err)

	seq, err := NewSequence(greetWordRef, nameRef)
	checkErr(t, err)
	greet, err := NewPublicRule("greet", seq)
	checkErr(t, err)

	deps := greet.Dependencies()
	if !deps["greetWord"] || !deps["name"] {
		t.Errorf("Dependencies() = %v, want both greetWord and name", deps)
	}
	if len(deps) != 2 {
		t.Errorf("Dependencies() has %d entries, want 2", len(deps))
	}
}

func TestRuleDependenciesIgnoresUnrelatedLiterals(t *testing.T) {
	t.Parallel()
	r, err := NewPublicRule("greet", MustLiteral("hello world"))
	checkErr(t, err)
	if deps := r.Dependencies(); len(deps) != 0 {
		t.Errorf("Dependencies() = %v, want empty", deps)
	}
}

func TestRuleEqual(t *testing.T) {
	t.Parallel()
	a, err := NewPublicRule("greet", MustLiteral("hello"))
	checkErr(t, err)
	b, err := NewPublicRule("greet", MustLiteral("hello"))
	checkErr(t, err)
	c, err := NewHiddenRule("greet", MustLiteral("hello"))
	checkErr(t, err)
	d, err := NewPublicRule("greet", MustLiteral("hi"))
	checkErr(t, err)

	if !a.Equal(b) {
		t.Error("rules with same name/visibility/expansion should be Equal")
	}
	if a.Equal(c) {
		t.Error("rules differing in visibility should not be Equal")
	}
	if a.Equal(d) {
		t.Error("rules differing in expansion should not be Equal")
	}
}

func TestRuleMatchesRespectsActiveFlag(t *testing.T) {
	t.Parallel()
	r, err := NewPublicRule("greet", MustLiteral("hello"))
	checkErr(t, err)
	if !r.Matches("hello") {
		t.Error("an active rule should match")
	}
	r.Disable()
	if r.Matches("hello") {
		t.Error("a disabled rule should never match")
	}
}
