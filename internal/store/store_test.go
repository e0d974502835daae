package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igapanovich/biver/internal/repodata"
	"github.com/igapanovich/biver/internal/repopath"
	"github.com/igapanovich/biver/internal/versionid"
)

func newValidData(t *testing.T) *repodata.RepositoryData {
	t.Helper()
	root := versionid.MustNew()
	return &repodata.RepositoryData{
		Head:     repodata.BranchHead("main"),
		Branches: map[string]versionid.ID{"main": root},
		Versions: []repodata.Version{{
			ID:           root,
			CreationTime: time.Now().UTC(),
			Nickname:     "able-ace",
			ContentBlob:  repodata.FullBlob(root.ToFileName() + "_content"),
		}},
	}
}

func TestReadDataNotInitialized(t *testing.T) {
	dir := t.TempDir()
	paths := repopath.For(filepath.Join(dir, "pic.psd"))
	s := New(paths, nil)

	_, initialized, err := s.ReadData()
	require.NoError(t, err)
	assert.False(t, initialized)
}

func TestWriteThenReadDataRoundTrips(t *testing.T) {
	dir := t.TempDir()
	paths := repopath.For(filepath.Join(dir, "pic.psd"))
	s := New(paths, nil)

	data := newValidData(t)
	require.NoError(t, s.WriteData(data))

	read, initialized, err := s.ReadData()
	require.NoError(t, err)
	require.True(t, initialized)
	assert.Equal(t, data.Head, read.Head)
	assert.Equal(t, len(data.Versions), len(read.Versions))
}

func TestWriteDataPanicsOnInvalidData(t *testing.T) {
	dir := t.TempDir()
	paths := repopath.For(filepath.Join(dir, "pic.psd"))
	s := New(paths, nil)

	invalid := &repodata.RepositoryData{
		Head:     repodata.BranchHead("main"),
		Branches: map[string]versionid.ID{},
		Versions: nil,
	}

	assert.Panics(t, func() {
		_ = s.WriteData(invalid)
	})
}

func TestRotateBackupCopiesWhenNextAbsent(t *testing.T) {
	dir := t.TempDir()
	paths := repopath.For(filepath.Join(dir, "pic.psd"))
	require.NoError(t, os.MkdirAll(paths.RepositoryDir, 0o755))
	s := New(paths, nil)

	previous := paths.File("data_backup3.json")
	require.NoError(t, os.WriteFile(previous, []byte("hello"), 0o644))

	next := paths.File("data_backup4.json")
	require.NoError(t, s.rotateBackup(previous, next, time.Hour))

	content, err := os.ReadFile(next)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestRotateBackupSkipsWhenNextIsYoungerThanMinAge(t *testing.T) {
	dir := t.TempDir()
	paths := repopath.For(filepath.Join(dir, "pic.psd"))
	require.NoError(t, os.MkdirAll(paths.RepositoryDir, 0o755))
	s := New(paths, nil)

	previous := paths.File("data_backup1.json")
	require.NoError(t, os.WriteFile(previous, []byte("new content"), 0o644))

	next := paths.File("data_backup2.json")
	require.NoError(t, os.WriteFile(next, []byte("old content"), 0o644))

	require.NoError(t, s.rotateBackup(previous, next, time.Hour))

	content, err := os.ReadFile(next)
	require.NoError(t, err)
	assert.Equal(t, "old content", string(content), "freshly written next file is younger than minAge, rotation should skip")
}

func TestRotateBackupNoOpWhenPreviousAbsent(t *testing.T) {
	dir := t.TempDir()
	paths := repopath.For(filepath.Join(dir, "pic.psd"))
	require.NoError(t, os.MkdirAll(paths.RepositoryDir, 0o755))
	s := New(paths, nil)

	err := s.rotateBackup(paths.File("data_backup1.json"), paths.File("data_backup2.json"), time.Hour)
	assert.NoError(t, err)
}

func TestCopyBlobInThenOutRoundTrips(t *testing.T) {
	dir := t.TempDir()
	paths := repopath.For(filepath.Join(dir, "pic.psd"))
	require.NoError(t, os.MkdirAll(paths.RepositoryDir, 0o755))
	s := New(paths, nil)

	source := filepath.Join(dir, "source.bin")
	require.NoError(t, os.WriteFile(source, []byte("binary content"), 0o644))

	require.NoError(t, s.CopyBlobIn(source, "blob_content"))

	dest := filepath.Join(dir, "restored.bin")
	require.NoError(t, s.CopyBlobOut("blob_content", dest))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "binary content", string(content))
}

func TestWriteDataRotatesBackup1FromDataFile(t *testing.T) {
	dir := t.TempDir()
	paths := repopath.For(filepath.Join(dir, "pic.psd"))
	s := New(paths, nil)

	first := newValidData(t)
	require.NoError(t, s.WriteData(first))

	// Age data.json by a minute; backup1 does not exist yet, so the next
	// write copies data.json into it.
	old := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(paths.DataFile, old, old))

	second := newValidData(t)
	require.NoError(t, s.WriteData(second))

	_, err := os.Stat(paths.File("data_backup1.json"))
	assert.NoError(t, err, "data_backup1.json should exist after a second write")
}
