package jsgf

import "testing"

func TestCompileLiteral(t *testing.T) {
	t.Parallel()
	e, err := NewLiteral("Hello World")
	checkErr(t, err)
	if got, want := compile(e), "hello world"; got != want {
		t.Errorf("compile(Literal) = %q, want %q", got, want)
	}
}

func TestCompileSequence(t *testing.T) {
	t.Parallel()
	e, err := NewSequence("hello", "world")
	checkErr(t, err)
	if got, want := compile(e), "hello world"; got != want {
		t.Errorf("compile(Sequence) = %q, want %q", got, want)
	}
}

func TestCompileRequiredGrouping(t *testing.T) {
	t.Parallel()
	e, err := NewRequiredGrouping("hello", "world")
	checkErr(t, err)
	if got, want := compile(e), "(hello world)"; got != want {
		t.Errorf("compile(RequiredGrouping) = %q, want %q", got, want)
	}
}

func TestCompileAlternativeSet(t *testing.T) {
	t.Parallel()
	e, err := NewAlternativeSet("hello", "hi")
	checkErr(t, err)
	if got, want := compile(e), "(hello|hi)"; got != want {
		t.Errorf("compile(AlternativeSet) = %q, want %q", got, want)
	}
}

func TestCompileOptionalGrouping(t *testing.T) {
	t.Parallel()
	lit, err := NewLiteral("please")
	checkErr(t, err)
	e, err := NewOptionalGrouping(lit)
	checkErr(t, err)
	if got, want := compile(e), "[please]"; got != want {
		t.Errorf("compile(OptionalGrouping) = %q, want %q", got, want)
	}
}

func TestCompileRepeatAndKleeneStar(t *testing.T) {
	t.Parallel()
	lit, err := NewLiteral("again")
	checkErr(t, err)
	rep, err := NewRepeat(lit)
	checkErr(t, err)
	if got, want := compile(rep), "again+"; got != want {
		t.Errorf("compile(Repeat) = %q, want %q", got, want)
	}

	lit2, err := NewLiteral("again")
	checkErr(t, err)
	star, err := NewKleeneStar(lit2)
	checkErr(t, err)
	if got, want := compile(star), "again*"; got != want {
		t.Errorf("compile(KleeneStar) = %q, want %q", got, want)
	}
}

func TestCompileRuleRefAndNamedRuleRef(t *testing.T) {
	t.Parallel()
	target, err := NewHiddenRule("name", MustLiteral("peter"))
	checkErr(t, err)
	ref, err := NewRuleRef(target)
	checkErr(t, err)
	if got, want := compile(ref), "<name>"; got != want {
		t.Errorf("compile(RuleRef) = %q, want %q", got, want)
	}

	named, err := NewNamedRuleRef("name")
	checkErr(t, err)
	if got, want := compile(named), "<name>"; got != want {
		t.Errorf("compile(NamedRuleRef) = %q, want %q", got, want)
	}
}

func TestCompileDictationIsEmpty(t *testing.T) {
	t.Parallel()
	if got := compile(NewDictation()); got != "" {
		t.Errorf("compile(Dictation) = %q, want empty", got)
	}
}

func TestCompileJoinedSkipsEmptyChildren(t *testing.T) {
	t.Parallel()
	e, err := NewSequence(NewDictation(), "world")
	checkErr(t, err)
	if got, want := compile(e), "world"; got != want {
		t.Errorf("compile(Sequence with Dictation) = %q, want %q", got, want)
	}
}
