// Package repopath derives the repository directory and canonical file
// names from the versioned file's path, exactly as
// original_source/src/repository_paths.rs does.
package repopath

import (
	"path/filepath"
	"strings"
)

// Paths is the set of well-known filesystem locations for one versioned
// file F: F itself, F's repository directory (F + ".biver"), and the
// metadata document inside it.
type Paths struct {
	VersionedFile string
	RepositoryDir string
	DataFile      string
}

// For derives Paths from a versioned file path. "foo.psd" -> "foo.psd.biver",
// "foo" (no extension) -> "foo.biver".
func For(versionedFilePath string) Paths {
	ext := filepath.Ext(versionedFilePath)
	base := strings.TrimSuffix(versionedFilePath, ext)

	var repoDir string
	if ext == "" {
		repoDir = base + ".biver"
	} else {
		repoDir = base + ext + ".biver"
	}

	return Paths{
		VersionedFile: versionedFilePath,
		RepositoryDir: repoDir,
		DataFile:      filepath.Join(repoDir, "data.json"),
	}
}

// File resolves a blob or backup file name relative to the repository
// directory's flat namespace.
func (p Paths) File(name string) string {
	return filepath.Join(p.RepositoryDir, name)
}

// ContentBlobFileName is the canonical content blob name for a version's
// file-name form.
func ContentBlobFileName(versionFileName string) string {
	return versionFileName + "_content"
}

// PreviewBlobFileName is the canonical preview blob name for a version's
// file-name form.
func PreviewBlobFileName(versionFileName string) string {
	return versionFileName + "_preview"
}
