package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctxtree/ctxtree/pkg/config"
	"github.com/ctxtree/ctxtree/pkg/content"
	"github.com/ctxtree/ctxtree/pkg/engine"
	"github.com/ctxtree/ctxtree/pkg/selection"
	"github.com/ctxtree/ctxtree/pkg/watch"
	"github.com/ctxtree/ctxtree/pkg/workspace"
)

// newEngine assembles the engine for the current working directory plus
// any extra roots, loading config and the persisted selection.
func newEngine(extraRoots []string) (*engine.Engine, config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("resolving working directory: %w", err)
	}

	roots, err := workspace.NewRoots(append([]string{cwd}, extraRoots...)...)
	if err != nil {
		return nil, config.Config{}, err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, cfg, err
	}

	stateDir := cfg.StateDir
	if !filepath.IsAbs(stateDir) {
		stateDir = filepath.Join(cwd, stateDir)
	}

	persister := selection.NewPersister(stateDir, log)
	store := selection.NewStore(roots, persister, log)
	if err := persister.LoadInto(store); err != nil {
		return nil, cfg, err
	}

	selector, err := content.NewSelector(cfg.InclusionRegex, cfg.ExclusionRegex, log)
	if err != nil {
		return nil, cfg, err
	}

	eng := engine.New(engine.Options{
		Roots:     roots,
		Store:     store,
		Selector:  selector,
		Debouncer: watch.NewDebouncer(cfg.DebounceWindow()),
		SkipNames: []string{filepath.Base(cfg.StateDir)},
		Log:       log,
	})
	return eng, cfg, nil
}

// resourceKind classifies a path that must exist on disk.
func resourceKind(path string) (selection.ResourceKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return selection.KindFile, fmt.Errorf("inspecting %s: %w", path, err)
	}
	if info.IsDir() {
		return selection.KindFolder, nil
	}
	return selection.KindFile, nil
}
