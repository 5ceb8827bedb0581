/*
Package parley is a menu session engine for building interactive text menus,
character creation wizards and NPC conversations.

A menu is a graph of nodes. Each node is a render function that returns the
text to show and the options the user may pick. The engine keeps one session
per user, resolves each line of input against the current node's options and
moves the session along the graph until it reaches a terminal node or the end
sentinel.

# Concept

Nodes are registered by ID in a registry. Options carry a key, optional aliases,
a display label and a target: either a fixed transition (domain.To, domain.Exit)
or a callable that inspects the input and the session before deciding where to go.
The special key "_default" matches any free text, which makes validated prompts
("What is your name?") simple to write.

Session values are transient. They live only while the menu is open and are
destroyed when it ends; hosts that need durable results read them from the
OnSessionEnd hook.

# Usage

	reg := registry.New()
	reg.MustRegister("start", func(ctx context.Context, s *domain.Session, input string) (domain.Frame, error) {
		return domain.Frame{
			Text: "Where to?",
			Options: []domain.Option{
				{Label: "North", Target: domain.To("north")},
				{Key: "q", Label: "Quit", Target: domain.Exit()},
			},
		}, nil
	})
	reg.MustRegister("north", func(ctx context.Context, s *domain.Session, input string) (domain.Frame, error) {
		return domain.Frame{Text: "Cold wind. The end."}, nil
	})

	eng, err := parley.New(reg)
	if err != nil {
		log.Fatal(err)
	}

	sess, out, err := eng.Launch(ctx, "player-1", "")
	fmt.Println(out.Body)
	out, err = eng.SubmitInput(ctx, sess, "1")

Hosts that address sessions by ID (HTTP, MCP) use Open, Submit, View, Close and
Reap instead, which keep sessions in a ports.SessionStore between turns.
*/
package parley
