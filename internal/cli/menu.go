package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// MenuMaxSteps is the budget of runs started from the menu.
const MenuMaxSteps = 200

// DefaultMenuDirs are scanned when no directory is given.
var DefaultMenuDirs = []string{"MT1", "MT2"}

// DiscoverSpecs lists the mt_*.txt files of each directory, sorted within a directory.
// Missing directories are skipped.
func DiscoverSpecs(dirs []string) ([]string, error) {
	var out []string
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "mt_*.txt"))
		if err != nil {
			return nil, fmt.Errorf("invalid directory %q: %w", dir, err)
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

// MenuOutputs returns the trace and DOT paths written beside spec:
// MT1/mt_acepta.txt gives MT1/salida_acepta.txt and MT1/mt_acepta.dot.
func MenuOutputs(spec string) (trace, dot string) {
	dir := filepath.Dir(spec)
	name := strings.TrimSuffix(filepath.Base(spec), filepath.Ext(spec))
	trace = filepath.Join(dir, "salida_"+strings.Replace(name, "mt_", "", 1)+".txt")
	dot = filepath.Join(dir, name+".dot")
	return trace, dot
}

// RunMenuEntry simulates spec with the menu budget and writes its trace and DOT files.
func RunMenuEntry(ctx context.Context, spec string) (string, error) {
	eng, err := turing.Load(spec, turing.WithMaxSteps(MenuMaxSteps))
	if err != nil {
		return "", err
	}
	res, err := eng.Run(ctx)
	if err != nil {
		return "", err
	}

	tracePath, dotPath := MenuOutputs(spec)
	f, err := os.Create(tracePath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	if _, err := turing.NewRunner(f).Write(res); err != nil {
		return "", err
	}
	if err := writeFile(dotPath, eng.DOT()); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s in %d steps\n[OK] Trace saved to: %s\n[OK] Diagram saved to: %s",
		outcomeLabel(res.Outcome), res.Steps(), tracePath, dotPath), nil
}

// RunMenu starts the interactive picker over dirs (DefaultMenuDirs when empty).
func RunMenu(ctx context.Context, dirs []string) error {
	if len(dirs) == 0 {
		dirs = DefaultMenuDirs
	}
	specs, err := DiscoverSpecs(dirs)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return fmt.Errorf("no Turing machines found in %s", strings.Join(dirs, " or "))
	}

	menu := tui.NewMenu(specs, func(path string) (string, error) {
		return RunMenuEntry(ctx, path)
	})
	if _, err := tea.NewProgram(menu, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("menu failed: %w", err)
	}
	return nil
}
