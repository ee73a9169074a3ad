package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"svw.info/patrol/internal/domain"
)

// FS stores one JSON file per report under dir.
type FS struct {
	fs  afero.Fs
	dir string
}

func NewFS(fs afero.Fs, dir string) *FS { return &FS{fs: fs, dir: dir} }

// NewOS stores reports on the real filesystem.
func NewOS(dir string) *FS { return NewFS(afero.NewOsFs(), dir) }

func (s *FS) pathFor(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("%w %q", domain.ErrInvalidReportID, id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func (s *FS) Save(ctx context.Context, r *domain.Report) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("%w: missing id", domain.ErrInvalidReportID)
	}
	target, err := s.pathFor(r.ID)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	f, err := s.fs.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Report, error) {
	target, err := s.pathFor(id)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("report %s: %w", id, os.ErrNotExist)
		}
		return nil, err
	}
	var out domain.Report
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FS) List(ctx context.Context) ([]domain.ReportMeta, error) {
	type m struct {
		ID           string `json:"id"`
		Name         string `json:"name,omitempty"`
		Visited      int    `json:"visited"`
		Obstructions int    `json:"obstructions"`
		CreatedAt    int64  `json:"createdAt"`
	}

	ents, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []domain.ReportMeta
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var mm m
		if err := json.Unmarshal(data, &mm); err != nil || mm.ID == "" {
			continue
		}
		out = append(out, domain.ReportMeta{
			ID:           mm.ID,
			Name:         mm.Name,
			Visited:      mm.Visited,
			Obstructions: mm.Obstructions,
			CreatedAt:    mm.CreatedAt,
		})
	}
	return out, nil
}
