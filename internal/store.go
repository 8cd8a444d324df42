package internal

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

/* ===================== STORE ===================== */

// Store is the repository over the two JSON collections. Every
// read-modify-write cycle runs under a single mutex so concurrent requests
// cannot silently overwrite each other's changes.
type Store struct {
	mu        sync.Mutex
	codesPath string
	teamsPath string
}

// Data is one loaded snapshot of both collections, bound to the store so a
// handler can persist whichever collection it touched.
type Data struct {
	Codes []*Clue
	Teams map[string]*Team

	store *Store
}

func MustStore(dataDir string) *Store {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("failed to create data dir: %v", err)
	}

	s := &Store{
		codesPath: filepath.Join(dataDir, "codes.json"),
		teamsPath: filepath.Join(dataDir, "teams.json"),
	}
	if err := seedFile(s.codesPath, []byte("[]")); err != nil {
		log.Fatalf("failed to init codes file: %v", err)
	}
	if err := seedFile(s.teamsPath, []byte("{}")); err != nil {
		log.Fatalf("failed to init teams file: %v", err)
	}

	// A leftover directory from a file-backed session store; sessions live
	// in memory now and must not survive a restart.
	_ = os.RemoveAll(filepath.Join(dataDir, "sessions"))

	return s
}

func seedFile(path string, initial []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, initial, 0o644)
}

// Do loads both collections fresh and runs fn under the store lock. A load
// failure is returned before fn runs; fn decides what, if anything, to save.
func (s *Store) Do(fn func(d *Data)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.load()
	if err != nil {
		return err
	}
	fn(d)
	return nil
}

func (s *Store) load() (*Data, error) {
	d := &Data{Teams: map[string]*Team{}, store: s}

	raw, err := os.ReadFile(s.codesPath)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &d.Codes); err != nil {
		return nil, err
	}

	raw, err = os.ReadFile(s.teamsPath)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &d.Teams); err != nil {
		return nil, err
	}

	for _, cl := range d.Codes {
		cl.normalize()
	}
	for _, t := range d.Teams {
		t.normalize()
	}
	return d, nil
}

// Clue returns the clue with the given code, or nil.
func (d *Data) Clue(code string) *Clue {
	for _, cl := range d.Codes {
		if cl.Code == code {
			return cl
		}
	}
	return nil
}

func (d *Data) SaveTeams() error {
	return writeJSON(d.store.teamsPath, d.Teams)
}

func (d *Data) SaveCodes() error {
	return writeJSON(d.store.codesPath, d.Codes)
}

// SaveBoth writes teams first, then codes. There is no rollback: a codes
// failure leaves the teams write in place.
func (d *Data) SaveBoth() error {
	if err := d.SaveTeams(); err != nil {
		return err
	}
	return d.SaveCodes()
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
