/*
Package runner drives a menu session over a line-oriented stream.

It is the bridge between the engine and a terminal or a piped process: it
launches a session, prints every output through an IOHandler and feeds each line
read back as input until the session terminates, the input ends or the process
is interrupted.

# Key Components

  - Runner: the loop.
  - IOHandler: decouples how outputs are shown and inputs are read.
  - TextHandler: interactive terminal usage.
  - JSONHandler: newline-delimited JSON for scripts and other programs.

# Usage

	r := runner.NewRunner(
		runner.WithEngine(engine),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}

With WithSessionID the runner resumes a session kept in the engine's session
store instead of launching a private one, so a conversation can continue across
processes when the store is shared (e.g. Redis).
*/
package runner
