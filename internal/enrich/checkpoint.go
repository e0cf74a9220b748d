package enrich

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ma3u/ai-bookawards/pkg/models"
)

// Destination selects which snapshot a save targets: the rolling
// mid-batch checkpoint or the final result of a completed run.
type Destination int

const (
	DestinationPartial Destination = iota
	DestinationFinal
)

// Store persists award snapshots. Save is a pure overwrite: after it
// returns, the destination reflects the complete record list passed in,
// never a torn write.
type Store interface {
	Save(awards []models.Award, dest Destination) error
	Discard(dest Destination) error
}

// FileStore writes snapshots as indented JSON arrays, first to a temp
// file in the same directory and then renamed over the target, so a
// crash mid-write never corrupts the previous checkpoint.
type FileStore struct {
	PartialPath string
	FinalPath   string
}

func NewFileStore(finalPath string) *FileStore {
	ext := filepath.Ext(finalPath)
	return &FileStore{
		PartialPath: finalPath[:len(finalPath)-len(ext)] + "_partial" + ext,
		FinalPath:   finalPath,
	}
}

func (s *FileStore) path(dest Destination) string {
	if dest == DestinationFinal {
		return s.FinalPath
	}
	return s.PartialPath
}

func (s *FileStore) Save(awards []models.Award, dest Destination) error {
	path := s.path(dest)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("checkpoint dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(awards, "", "  ")
	if err != nil {
		return fmt.Errorf("checkpoint marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".checkpoint-*")
	if err != nil {
		return fmt.Errorf("checkpoint temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint write: %w", err)
	}
	// CreateTemp defaults to 0600; snapshots should match the other
	// JSON artifacts this pipeline writes.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("checkpoint rename: %w", err)
	}
	return nil
}

func (s *FileStore) Discard(dest Destination) error {
	if err := os.Remove(s.path(dest)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
