package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdalog/lambdalog/internal/blog"
	"github.com/lambdalog/lambdalog/internal/store"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "recent", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestInit_CreatesDatabase(t *testing.T) {
	t.Setenv("LAMBDALOG_DB", filepath.Join(t.TempDir(), "blog.db"))

	out, _, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "database ready")
}

func TestRecent_EmptyDatabase(t *testing.T) {
	t.Setenv("LAMBDALOG_DB", filepath.Join(t.TempDir(), "blog.db"))

	out, _, err := execute(t, "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "no entries yet")
}

func TestRecent_JSONFormat(t *testing.T) {
	t.Setenv("LAMBDALOG_DB", filepath.Join(t.TempDir(), "blog.db"))

	out, _, err := execute(t, "recent", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestDelete_RemovesEntry(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "blog.db")
	t.Setenv("LAMBDALOG_DB", dbPath)

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	at := time.Date(2020, time.January, 5, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.UpsertEntry(context.Background(), &blog.Entry{
		Slug: "gone", Title: "Gone", Body: "<p>x</p>", PostedAt: &at,
	}))
	require.NoError(t, s.Close())

	out, _, err := execute(t, "delete", "gone")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted gone")

	out, _, err = execute(t, "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "no entries yet")
}

func TestDelete_UnknownSlugFails(t *testing.T) {
	t.Setenv("LAMBDALOG_DB", filepath.Join(t.TempDir(), "blog.db"))

	_, _, err := execute(t, "delete", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entry with slug")
}

func TestImport_MissingDirFails(t *testing.T) {
	t.Setenv("LAMBDALOG_DB", filepath.Join(t.TempDir(), "blog.db"))

	_, _, err := execute(t, "import", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
