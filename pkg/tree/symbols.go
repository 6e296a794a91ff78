package tree

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Symbol is one top-level declaration found in a file.
type Symbol struct {
	Name   string
	Line   int
	Column int
}

// SymbolSource answers symbol queries for a file. Symbol extraction is
// deliberately line/regex based: the tree does not attempt AST-level
// understanding of file content.
type SymbolSource interface {
	Symbols(path string) ([]Symbol, error)
}

// declPatterns maps file extensions to declaration-line patterns with the
// symbol name in the first capture group.
var declPatterns = map[string][]*regexp.Regexp{
	".go": {
		regexp.MustCompile(`^func\s+(?:\([^)]*\)\s*)?([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`^type\s+([A-Za-z_][A-Za-z0-9_]*)`),
	},
	".ts": {
		regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s+([A-Za-z_$][A-Za-z0-9_$]*)`),
		regexp.MustCompile(`^\s*(?:export\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][A-Za-z0-9_$]*)`),
		regexp.MustCompile(`^\s*(?:export\s+)?interface\s+([A-Za-z_$][A-Za-z0-9_$]*)`),
	},
	".js": {
		regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s+([A-Za-z_$][A-Za-z0-9_$]*)`),
		regexp.MustCompile(`^\s*(?:export\s+)?class\s+([A-Za-z_$][A-Za-z0-9_$]*)`),
	},
	".py": {
		regexp.MustCompile(`^def\s+([A-Za-z_][A-Za-z0-9_]*)`),
		regexp.MustCompile(`^class\s+([A-Za-z_][A-Za-z0-9_]*)`),
	},
}

// RegexSymbolSource scans files line by line for top-level declarations.
type RegexSymbolSource struct{}

// Symbols returns the declarations found in path. Unknown extensions
// yield no symbols, which callers treat the same as a leaf file.
func (RegexSymbolSource) Symbols(path string) ([]Symbol, error) {
	patterns, ok := declPatterns[filepath.Ext(path)]
	if !ok {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s for symbols: %w", path, err)
	}
	defer f.Close()

	var symbols []Symbol
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		for _, re := range patterns {
			if m := re.FindStringSubmatchIndex(text); m != nil {
				symbols = append(symbols, Symbol{
					Name:   text[m[2]:m[3]],
					Line:   line,
					Column: m[2] + 1,
				})
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s for symbols: %w", path, err)
	}
	return symbols, nil
}

// PopulateSymbols lazily attaches symbol children to a file node on first
// expansion. Symbol children mirror the file's inclusion state and never
// influence folder derivation. Repeat calls are no-ops once children
// exist.
func PopulateSymbols(t *Tree, node *Node, source SymbolSource) error {
	if node.Kind != KindFile || len(node.Children) > 0 || source == nil {
		return nil
	}
	symbols, err := source.Symbols(node.Path)
	if err != nil {
		return err
	}
	base := filepath.Base(node.Path)
	for _, sym := range symbols {
		child := &Node{
			Path:  node.Path + "::" + sym.Name,
			Label: base + "::" + sym.Name,
			Kind:  KindSymbol,
			Locator: &Locator{
				Line:   sym.Line,
				Column: sym.Column,
			},
		}
		child.SetInclusion(node.Inclusion)
		t.register(child)
		node.Children = append(node.Children, child)
	}
	return nil
}
