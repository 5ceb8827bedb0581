/*
Package static builds menu nodes from declarations instead of Go code.

A declaration lists the node text, optional help and its options. Each option
either jumps to another node (goto), ends the menu (end) or validates free text
before moving on:

	start: ask_name
	nodes:
	  - id: ask_name
	    text: What is your name?
	    options:
	      - key: _default
	        validate: {kind: alpha, min: 3, max: 20}
	        save_to: name
	        goto: confirm
	  - id: confirm
	    text: "You are {{name}}?"
	    options:
	      - {key: y, label: Yes, end: true}
	      - {key: n, label: No, goto: ask_name}

Declarations come from YAML (LoadYAML), from a loam directory of markdown files
(see pkg/adapters/loam) or from the dsl builder. Compile registers them as
ordinary render functions, with their edges declared so the registry can
validate the graph.
*/
package static
