package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/parley/internal/demo"
	loamAdapter "github.com/aretw0/parley/pkg/adapters/loam"
	"github.com/aretw0/parley/pkg/registry"
	"github.com/aretw0/parley/pkg/static"
)

// DemoMenu names the built-in character creation menu.
const DemoMenu = "demo"

// Menu is a loaded menu ready to be served.
type Menu struct {
	Registry *registry.Registry
	// Start is the entry node declared by the source, if any.
	Start  string
	Source string
}

// LoadMenu loads a menu from source: the built-in demo (empty or "demo"), a
// YAML file, or a directory of markdown nodes.
func LoadMenu(ctx context.Context, source string) (Menu, error) {
	if source == "" || source == DemoMenu {
		reg, err := demo.Registry()
		if err != nil {
			return Menu{}, err
		}
		return Menu{Registry: reg, Start: "start", Source: DemoMenu}, nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return Menu{}, fmt.Errorf("menu source: %w", err)
	}

	reg := registry.New()
	if info.IsDir() {
		loader, err := loamAdapter.Open(source)
		if err != nil {
			return Menu{}, err
		}
		start, err := loader.Register(ctx, reg)
		if err != nil {
			return Menu{}, err
		}
		if start == "" {
			start = determineEntryPoint(source, reg)
		}
		return Menu{Registry: reg, Start: start, Source: source}, nil
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		menu, err := static.LoadYAML(source)
		if err != nil {
			return Menu{}, err
		}
		if err := menu.Register(reg); err != nil {
			return Menu{}, err
		}
		return Menu{Registry: reg, Start: menu.Start, Source: source}, nil
	default:
		return Menu{}, fmt.Errorf("unsupported menu source %q: want a .yaml file or a directory", source)
	}
}

// determineEntryPoint picks the entry node of a directory menu that declares none:
// start, main, index, then the directory's own name.
func determineEntryPoint(dir string, reg *registry.Registry) string {
	candidates := []string{"start", "main", "index", filepath.Base(filepath.Clean(dir))}
	for _, id := range candidates {
		if reg.Has(id) {
			return id
		}
	}
	return "start"
}
