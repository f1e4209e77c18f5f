package jsgf_test

import (
	"fmt"
	"log"

	"github.com/speechgrammar/jsgf"
)

func ExampleRootGrammar_CompileGrammar() {
	greetWord, err := jsgf.NewAlternativeSet("hello", "hi")
	if err != nil {
		log.Fatal(err)
	}
	greetWordRule, err := jsgf.NewHiddenRule("greetWord", greetWord)
	if err != nil {
		log.Fatal(err)
	}

	greetWordRef, err := jsgf.NewRuleRef(greetWordRule)
	if err != nil {
		log.Fatal(err)
	}
	greet, err := jsgf.NewSequence(greetWordRef, "world")
	if err != nil {
		log.Fatal(err)
	}
	greetRule, err := jsgf.NewPublicRule("greet", greet)
	if err != nil {
		log.Fatal(err)
	}

	g, err := jsgf.NewRootGrammarWithRules("example", greetWordRule, greetRule)
	if err != nil {
		log.Fatal(err)
	}

	out, err := g.CompileGrammar()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)

	// Output:
	// #JSGF V1.0 UTF-8 en;
	// grammar example;
	// public <root> = (<greet>);
	// <greetWord> = (hello|hi);
	// <greet> = <greetWord> world;
}

func ExampleRule_Matches() {
	name, err := jsgf.NewAlternativeSet("peter", "john")
	if err != nil {
		log.Fatal(err)
	}
	rule, err := jsgf.NewPublicRule("name", name)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(rule.Matches("PETER"))
	fmt.Println(rule.Matches("anna"))

	// Output:
	// true
	// false
}

func ExampleSequenceRule() {
	seq, err := jsgf.NewSequence("send", jsgf.NewDictation(), "now")
	if err != nil {
		log.Fatal(err)
	}
	sr, err := jsgf.NewHiddenSequenceRule("email", seq)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(sr.Matches("send"))
	if err := sr.SetNext(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(sr.Matches("let's meet at noon tomorrow"))
	if err := sr.SetNext(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(sr.Matches("now"))

	// Output:
	// true
	// true
	// true
}
