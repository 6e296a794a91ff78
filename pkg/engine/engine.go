// Package engine wires the selection store, tree builder, debouncer and
// content selector together and owns the published tree snapshot. All
// mutations enter through the store; every other component reads the
// latest stable snapshot.
package engine

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ctxtree/ctxtree/pkg/content"
	"github.com/ctxtree/ctxtree/pkg/selection"
	"github.com/ctxtree/ctxtree/pkg/tree"
	"github.com/ctxtree/ctxtree/pkg/watch"
	"github.com/ctxtree/ctxtree/pkg/workspace"
)

// Engine owns the inclusion tree lifecycle for one workspace.
type Engine struct {
	roots     *workspace.Roots
	store     *selection.Store
	builder   *tree.Builder
	selector  *content.Selector
	debouncer *watch.Debouncer
	symbols   tree.SymbolSource
	log       *logrus.Entry

	mu         sync.RWMutex
	snapshot   *tree.Tree
	buildCount int
	listeners  []func()
}

// Options carries the engine's collaborators. Store, Roots and Selector
// are required; Debouncer and Symbols fall back to defaults.
type Options struct {
	Roots     *workspace.Roots
	Store     *selection.Store
	Selector  *content.Selector
	Debouncer *watch.Debouncer
	Symbols   tree.SymbolSource
	SkipNames []string
	Log       *logrus.Entry
}

// New assembles an engine, performs the initial build, and subscribes to
// store changes so every mutation schedules a debounced rebuild.
func New(opts Options) *Engine {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	debouncer := opts.Debouncer
	if debouncer == nil {
		debouncer = watch.NewDebouncer(watch.DefaultQuietWindow)
	}
	symbols := opts.Symbols
	if symbols == nil {
		symbols = tree.RegexSymbolSource{}
	}

	e := &Engine{
		roots:     opts.Roots,
		store:     opts.Store,
		builder:   tree.NewBuilder(opts.Roots, opts.Store, opts.SkipNames, log),
		selector:  opts.Selector,
		debouncer: debouncer,
		symbols:   symbols,
		log:       log.WithField("component", "engine"),
	}

	e.store.OnChange(func() {
		e.debouncer.Trigger(e.Refresh)
	})

	e.Refresh()
	return e
}

// Roots lists the workspace roots the engine was built over.
func (e *Engine) Roots() []string {
	return e.roots.List()
}

// Store returns the mutation entry point.
func (e *Engine) Store() *selection.Store {
	return e.store
}

// OnChange registers a listener invoked after every completed rebuild.
func (e *Engine) OnChange(fn func()) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

// Refresh rebuilds the tree from the explicit selection and a live
// filesystem read, then swaps the published snapshot in one step. The old
// snapshot stays valid for readers that already hold it; a rebuild
// failure keeps the previous snapshot and is logged, not surfaced.
func (e *Engine) Refresh() {
	t, err := e.builder.Build()
	if err != nil {
		e.log.WithError(err).Error("Tree rebuild failed, keeping previous snapshot")
		return
	}

	e.mu.Lock()
	e.snapshot = t
	e.buildCount++
	listeners := make([]func(), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// FlushPending forces a scheduled rebuild to run now instead of waiting
// for the quiet window. Used by one-shot CLI commands before reading.
func (e *Engine) FlushPending() {
	e.debouncer.Flush()
}

// Snapshot returns the latest stable tree. Callers must treat it as
// read-only.
func (e *Engine) Snapshot() *tree.Tree {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// BuildCount reports how many rebuilds have completed.
func (e *Engine) BuildCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buildCount
}

// FindNodeByPath resolves a node in the current snapshot.
func (e *Engine) FindNodeByPath(path string, includeIntermediary bool) (*tree.Node, bool) {
	return e.Snapshot().FindNodeByPath(path, includeIntermediary)
}

// PopulateSymbols lazily attaches symbol children to a file node in the
// current snapshot, on demand.
func (e *Engine) PopulateSymbols(node *tree.Node) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return tree.PopulateSymbols(e.snapshot, node, e.symbols)
}

// SetInclusion applies an explicit toggle to the current snapshot for
// immediate feedback (cascade down, bubble up) and records the matching
// store mutation, which schedules the authoritative rebuild.
func (e *Engine) SetInclusion(path string, kind selection.ResourceKind, included bool) error {
	e.mu.Lock()
	if node, ok := e.snapshot.FindNodeByPath(path, true); ok {
		state := tree.NotIncluded
		if included {
			state = tree.Included
		}
		tree.Cascade(node, state)
		tree.BubbleUp(e.snapshot, node)
	}
	e.mu.Unlock()

	if included {
		return e.store.Add(path, kind)
	}
	return e.store.Remove(path)
}

// RenderTree serializes the current snapshot.
func (e *Engine) RenderTree(mode tree.RenderMode) string {
	return tree.Render(e.Snapshot(), mode)
}

// ContextForPrompt runs the content selector over the explicit selection
// and assembles the prompt payload.
func (e *Engine) ContextForPrompt() (string, content.Stats) {
	files := e.selector.SelectFiles(e.store.Files(), e.store.Folders())
	return e.selector.Assemble(files)
}

// ExplicitFiles exposes the explicit file set for UI decoration.
func (e *Engine) ExplicitFiles() []string {
	return e.store.Files()
}

// ExplicitFolders exposes the explicit folder set for UI decoration.
func (e *Engine) ExplicitFolders() []string {
	return e.store.Folders()
}
