/*
Package dsl provides a Go DSL (Domain Specific Language) for declaring Parley menus.

It is the code counterpart of YAML menus: nodes are declared with a fluent
builder and compiled into a registry through pkg/static, so they get the same
validators, interpolation and declared edges.

Example usage:

	b := dsl.New()

	b.Add("ask_name").
		Text("What is your name?").
		Ask("name", static.Validation{Kind: static.KindAlpha, Min: 3, Max: 20}, "confirm")

	b.Add("confirm").
		Text("You are {{name}}?").
		End("y", "Yes").Alias("yes").
		Go("n", "No", "ask_name")

	reg, err := b.Registry()
	if err != nil {
		log.Fatal(err)
	}
	eng, err := parley.New(reg, parley.WithEntryNode("ask_name"))
*/
package dsl
