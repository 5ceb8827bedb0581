/*
Package domain contains the core domain models of the Parley menu engine.

It defines the fundamental entities of an interactive menu: Sessions, Frames,
Options and Transitions. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Session: one user's live traversal of the node graph (current node, transient values, history).
  - Frame: what a node renders for one turn (display text plus an ordered list of options).
  - Option: one selectable choice, matched by key, aliases or as the wildcard.
  - Transition: the outcome of a choice, either Goto(node) or End().
  - Output: the presentable result of a turn, handed to the presentation channel.
*/
package domain
