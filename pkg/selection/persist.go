package selection

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// SnapshotFileName is the selection snapshot file inside the state
// directory.
const SnapshotFileName = "selection.json"

// snapshot is the persisted layout: two string-array fields, rewritten
// after every mutating operation.
type snapshot struct {
	ExplicitFiles   []string `json:"explicitFiles"`
	ExplicitFolders []string `json:"explicitFolders"`
}

// Persister reads and writes the selection snapshot for one workspace.
type Persister struct {
	stateDir string
	log      *logrus.Entry
}

// NewPersister creates a persister writing under stateDir (created on
// first save).
func NewPersister(stateDir string, log *logrus.Entry) *Persister {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Persister{
		stateDir: stateDir,
		log:      log.WithField("component", "selection"),
	}
}

// Path returns the snapshot file path.
func (p *Persister) Path() string {
	return filepath.Join(p.stateDir, SnapshotFileName)
}

// Save writes the snapshot atomically (temp file + rename).
func (p *Persister) Save(files, folders []string) error {
	if err := os.MkdirAll(p.stateDir, 0755); err != nil {
		return fmt.Errorf("creating state directory %s: %w", p.stateDir, err)
	}
	data, err := json.MarshalIndent(snapshot{
		ExplicitFiles:   files,
		ExplicitFolders: folders,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding selection snapshot: %w", err)
	}
	tmp := p.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing selection snapshot: %w", err)
	}
	if err := os.Rename(tmp, p.Path()); err != nil {
		return fmt.Errorf("replacing selection snapshot: %w", err)
	}
	return nil
}

// Load reads the last snapshot and prunes entries whose paths no longer
// exist on disk. A missing snapshot file is not an error; it simply means
// an empty selection. Pruned entries are logged, never surfaced: files
// deleted while the tool was not running are expected.
func (p *Persister) Load() (files, folders []string, err error) {
	data, err := os.ReadFile(p.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading selection snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("decoding selection snapshot %s: %w", p.Path(), err)
	}

	pruned := 0
	for _, f := range snap.ExplicitFiles {
		if statExists(f) {
			files = append(files, f)
		} else {
			pruned++
		}
	}
	for _, f := range snap.ExplicitFolders {
		if statExists(f) {
			folders = append(folders, f)
		} else {
			pruned++
		}
	}
	if pruned > 0 {
		p.log.WithField("pruned", pruned).Debug("Dropped selection entries missing from disk")
	}
	return files, folders, nil
}

// LoadInto restores a store from the persisted snapshot.
func (p *Persister) LoadInto(store *Store) error {
	files, folders, err := p.Load()
	if err != nil {
		return err
	}
	store.Restore(files, folders)
	return nil
}
