package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/parley/internal/testutils"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	tmpDir, repo := testutils.SetupTestRepo(t, loam.WithVersioning(false))
	testutils.WriteFiles(t, tmpDir, files)
	return New(loam.NewTypedRepository[NodeMetadata](repo))
}

var characterMenu = map[string]string{
	"ask_name.md": `---
id: ask_name
start: true
help: Letters only.
options:
  - key: _default
    validate:
      kind: alpha
      min: 3
      max: 20
    save_to: name
    goto: confirm
---
What is your name?
`,
	"confirm.md": `---
options:
  - key: "y"
    label: "Yes"
    end: true
  - key: "n"
    label: "No"
    goto: ask_name
---
You are {{name}}?
`,
}

func TestLoader_Load(t *testing.T) {
	loader := newLoader(t, characterMenu)

	menu, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ask_name", menu.Start)
	require.Len(t, menu.Nodes, 2)

	byID := make(map[string]int)
	for i, n := range menu.Nodes {
		byID[n.ID] = i
	}
	ask := menu.Nodes[byID["ask_name"]]
	assert.Equal(t, "What is your name?", ask.Text)
	assert.Equal(t, "Letters only.", ask.Help)
	require.Len(t, ask.Options, 1)
	require.NotNil(t, ask.Options[0].Validate)
	assert.Equal(t, 3, ask.Options[0].Validate.Min, "numbers decode to ints")
	assert.Equal(t, 20, ask.Options[0].Validate.Max)

	confirm := menu.Nodes[byID["confirm"]]
	assert.Equal(t, "confirm.md", confirm.Source)
	assert.True(t, confirm.Options[0].End)
}

func TestLoader_RegisterAndRun(t *testing.T) {
	ctx := context.Background()
	loader := newLoader(t, characterMenu)
	reg := registry.New()

	start, err := loader.Register(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, "ask_name", start)
	require.NoError(t, reg.Validate())

	fn, err := reg.Resolve("confirm")
	require.NoError(t, err)

	s := domain.NewSession("s1", "", "confirm")
	s.Set("name", "Aldric")
	frame, err := fn(ctx, s, "")
	require.NoError(t, err)
	assert.Equal(t, "You are Aldric?", frame.Text)
}

func TestLoader_ListNodes_NormalizesIDs(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"start.md": `---
id: start.md
---
Hello`,
		"choice.json": `{
  "id": "choice.json"
}`,
		"implicit.md": `---
help: none
---
ID is implied from filename`,
	})

	ids, err := loader.ListNodes(context.Background())
	require.NoError(t, err)

	assert.Contains(t, ids, "start", "start.md should become start")
	assert.Contains(t, ids, "choice", "choice.json should become choice")
	assert.Contains(t, ids, "implicit", "implicit.md should become implicit")
	assert.Len(t, ids, 3)
}

func TestLoader_ListNodes_DetectsCollisions(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"foo.md": `---
id: foo
---
Explicit ID`,
		"foo.json": `{
  "id": "foo"
}`,
	})

	_, err := loader.ListNodes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoader_InvalidOptions(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"bad.md": `---
options:
  - key: "1"
    colour: red
---
Bad`,
	})

	_, err := loader.Load(context.Background())
	assert.ErrorContains(t, err, `node "bad"`)
}

func TestLoader_GetNode(t *testing.T) {
	loader := newLoader(t, characterMenu)

	node, err := loader.GetNode(context.Background(), "confirm")
	require.NoError(t, err)
	assert.Equal(t, "confirm", node.ID)
	assert.Len(t, node.Options, 2)

	_, err = loader.GetNode(context.Background(), "missing")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, characterMenu)

	loader, err := Open(dir)
	require.NoError(t, err)

	ids, err := loader.ListNodes(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ask_name", "confirm"}, ids)
}
