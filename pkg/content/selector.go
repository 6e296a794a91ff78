// Package content decides which explicitly selected files' bytes are
// embedded into the outgoing prompt, and assembles them into the payload
// text. The regex stage here is independent of the tree's visual state:
// the tree shows what the user toggled on, this filter is a uniform
// gate applied on top of it before anything reaches the payload.
package content

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultInclusionPattern matches every path.
const DefaultInclusionPattern = ".*"

// Selector filters the explicit file set by path regex.
type Selector struct {
	inclusion *regexp.Regexp
	exclusion *regexp.Regexp
	log       *logrus.Entry
}

// NewSelector compiles the configured patterns. An empty inclusion
// pattern falls back to match-all; an empty exclusion pattern disables
// exclusion.
func NewSelector(inclusionPattern, exclusionPattern string, log *logrus.Entry) (*Selector, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if inclusionPattern == "" {
		inclusionPattern = DefaultInclusionPattern
	}
	inclusion, err := regexp.Compile(inclusionPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling inclusion regex %q: %w", inclusionPattern, err)
	}
	var exclusion *regexp.Regexp
	if exclusionPattern != "" {
		exclusion, err = regexp.Compile(exclusionPattern)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion regex %q: %w", exclusionPattern, err)
		}
	}
	return &Selector{
		inclusion: inclusion,
		exclusion: exclusion,
		log:       log.WithField("component", "content"),
	}, nil
}

// SelectFiles resolves the final file list from the explicit selection:
// explicit folders are walked first (their current files join the
// candidate set), then every candidate must match the inclusion regex and
// must not match the exclusion regex. The result is sorted and
// deduplicated.
func (s *Selector) SelectFiles(files, folders []string) []string {
	candidates := make(map[string]bool, len(files))
	for _, f := range files {
		candidates[f] = true
	}
	for _, folder := range folders {
		err := filepath.WalkDir(folder, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				s.log.WithError(err).WithField("path", p).Warn("Skipping unreadable entry in folder walk")
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() {
				candidates[p] = true
			}
			return nil
		})
		if err != nil {
			s.log.WithError(err).WithField("folder", folder).Warn("Folder walk ended early")
		}
	}

	var selected []string
	for path := range candidates {
		if !s.matches(path) {
			continue
		}
		selected = append(selected, path)
	}
	sort.Strings(selected)
	return selected
}

// matches applies the inclusion/exclusion pair to one path.
func (s *Selector) matches(path string) bool {
	if !s.inclusion.MatchString(path) {
		return false
	}
	if s.exclusion != nil && s.exclusion.MatchString(path) {
		return false
	}
	return true
}

// Stats summarizes one assembled payload.
type Stats struct {
	Files   int
	Skipped int
	Lines   int
	Bytes   int
	Tokens  int
}

// Assemble reads every selected file and concatenates the contents with
// path-header delimiters. A file that cannot be read, or that looks
// binary, is logged and skipped; one bad file never aborts the batch.
func (s *Selector) Assemble(files []string) (string, Stats) {
	var sb strings.Builder
	var stats Stats

	for _, file := range files {
		if isBinaryFile(file) {
			s.log.WithField("file", file).Debug("Skipping binary file")
			stats.Skipped++
			continue
		}
		data, err := os.ReadFile(file)
		if err != nil {
			s.log.WithError(err).WithField("file", file).Warn("Skipping unreadable file")
			stats.Skipped++
			continue
		}

		lines := strings.Count(string(data), "\n")
		if len(data) > 0 && data[len(data)-1] != '\n' {
			lines++
		}

		fmt.Fprintf(&sb, "=== FILE: %s ===\n", file)
		sb.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "=== END FILE: %s ===\n\n", file)

		stats.Files++
		stats.Lines += lines
		stats.Bytes += len(data)

		s.log.WithFields(logrus.Fields{
			"file":  file,
			"lines": lines,
		}).Debug("Embedded file content")
	}

	// Rough estimate: four bytes per token.
	stats.Tokens = stats.Bytes / 4
	return sb.String(), stats
}
