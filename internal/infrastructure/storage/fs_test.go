package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/patrol/internal/domain"
)

func TestSaveLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewFS(fs, "/data")
	ctx := context.Background()

	r := &domain.Report{
		ID:           "r1",
		Name:         "example",
		Grid:         "^.\n..\n",
		Width:        2,
		Height:       2,
		Start:        domain.GuardState{Pos: domain.Position{X: 0, Y: 0}, Dir: domain.Up},
		Visited:      1,
		Obstructions: 0,
		CreatedAt:    123,
	}
	require.NoError(t, s.Save(ctx, r))

	exists, err := afero.Exists(fs, "/data/r1.json")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := s.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestLoadMissing(t *testing.T) {
	s := NewFS(afero.NewMemMapFs(), "/data")
	_, err := s.Load(context.Background(), "nope")
	assert.True(t, errors.Is(err, os.ErrNotExist), "err = %v", err)
}

func TestRejectsBadIDs(t *testing.T) {
	s := NewFS(afero.NewMemMapFs(), "/data")
	ctx := context.Background()
	assert.ErrorIs(t, s.Save(ctx, &domain.Report{}), domain.ErrInvalidReportID)
	assert.ErrorIs(t, s.Save(ctx, &domain.Report{ID: "../escape"}), domain.ErrInvalidReportID)
	_, err := s.Load(ctx, "..")
	assert.ErrorIs(t, err, domain.ErrInvalidReportID)
}

func TestList(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewFS(fs, "/data")
	ctx := context.Background()

	metas, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, metas)

	require.NoError(t, s.Save(ctx, &domain.Report{ID: "a", Name: "first", Visited: 41, Obstructions: 6}))
	require.NoError(t, s.Save(ctx, &domain.Report{ID: "b", Visited: 1}))
	require.NoError(t, afero.WriteFile(fs, "/data/junk.json", []byte("{"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/data/notes.txt", []byte("x"), 0o644))

	metas, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ReportMeta{
		{ID: "a", Name: "first", Visited: 41, Obstructions: 6},
		{ID: "b", Visited: 1},
	}, metas)
}
