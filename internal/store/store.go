// Package store is the on-disk persistence layer: reads and writes the
// repository metadata document with a five-generation rolling backup
// cascade, and copies blob files in and out of the repository directory.
// The backup cascade is a direct translation of
// original_source/src/repository_io.rs's write_data/rotate_backup
// (igapanovich/biver-rs): same five fixed MIN_AGE thresholds, same
// oldest-generation-first rotation order, same copy-not-rename semantics.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"

	"github.com/igapanovich/biver/internal/repodata"
	"github.com/igapanovich/biver/internal/repopath"
)

// ErrBusy is returned by WriteData when the advisory lock file is held by
// another process. Spec.md §5 explicitly leaves locking optional; when we
// do add it, contention becomes a new, narrow failure mode rather than a
// change to any documented operation's success path (see DESIGN.md).
var ErrBusy = errors.New("store: repository is locked by another process")

// lockTimeout bounds how long WriteData waits for the advisory lock before
// giving up and returning ErrBusy; this is a single-user tool, so a brief
// wait absorbs the common case of a second command starting just after the
// first one finished, without risking an indefinite hang.
const lockTimeout = 2 * time.Second

// backupGeneration describes one rung of the rolling backup cascade.
type backupGeneration struct {
	fileName string
	minAge   time.Duration
}

// backupCascade lists the five generations, NEWEST first. Rotation runs
// oldest generation first, i.e. backup5<-backup4 before backup1<-data.json,
// so rotateBackups walks this slice in reverse.
var backupCascade = []backupGeneration{
	{fileName: "data_backup1.json", minAge: 10 * time.Second},
	{fileName: "data_backup2.json", minAge: 5 * time.Minute},
	{fileName: "data_backup3.json", minAge: time.Hour},
	{fileName: "data_backup4.json", minAge: 5 * time.Hour},
	{fileName: "data_backup5.json", minAge: 24 * time.Hour},
}

// Store persists RepositoryData for one repository directory.
type Store struct {
	Paths  repopath.Paths
	Logger *logrus.Logger
}

// New builds a Store for the given path layout.
func New(paths repopath.Paths, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{Paths: paths, Logger: logger}
}

// EnsureRepositoryDir creates the repository directory if missing. Callers
// storing blobs before the metadata document (spec.md §5's ordering
// guarantee) must call this first, since WriteData's own MkdirAll runs too
// late for that sequence.
func (s *Store) EnsureRepositoryDir() error {
	if err := os.MkdirAll(s.Paths.RepositoryDir, 0o755); err != nil {
		return fmt.Errorf("store: creating repository directory: %w", err)
	}
	return nil
}

// ReadData reads and parses the metadata document. The second return value
// is false if no data.json exists yet (repository not initialized).
func (s *Store) ReadData() (*repodata.RepositoryData, bool, error) {
	if _, err := os.Stat(s.Paths.DataFile); err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store: checking %s: %w", s.Paths.DataFile, err)
	}

	content, err := os.ReadFile(s.Paths.DataFile)
	if err != nil {
		return nil, false, fmt.Errorf("store: reading %s: %w", s.Paths.DataFile, err)
	}

	var data repodata.RepositoryData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, false, fmt.Errorf("store: parsing %s: %w", s.Paths.DataFile, err)
	}

	return &data, true, nil
}

// WriteData validates data against the seven invariants of spec.md §3,
// rotates the backup cascade, then overwrites data.json. An invalid
// document is a programmer bug, not a recoverable error (spec.md §7.3): it
// panics with a diagnostic dump rather than being written.
func (s *Store) WriteData(data *repodata.RepositoryData) error {
	if !data.Valid() {
		panic(fmt.Sprintf("store: repository data is not valid, refusing to persist: %+v", data))
	}

	if err := os.MkdirAll(s.Paths.RepositoryDir, 0o755); err != nil {
		return fmt.Errorf("store: creating repository directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	lock := flock.New(s.Paths.DataFile + ".lock")
	locked, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrBusy
	}
	if err != nil {
		return fmt.Errorf("store: acquiring lock: %w", err)
	}
	if !locked {
		return ErrBusy
	}
	defer lock.Unlock()

	if err := s.rotateBackups(); err != nil {
		return err
	}

	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshalling metadata: %w", err)
	}

	if err := os.WriteFile(s.Paths.DataFile, content, 0o644); err != nil {
		return fmt.Errorf("store: writing %s: %w", s.Paths.DataFile, err)
	}

	return nil
}

// rotateBackups walks the cascade oldest generation first, so a single
// write never skips a generation: backup5<-backup4, then backup4<-backup3,
// ..., then backup1<-data.json.
func (s *Store) rotateBackups() error {
	// Walk in reverse (oldest generation first): backup4->backup5,
	// backup3->backup4, backup2->backup3, backup1->backup2,
	// data.json->backup1.
	for i := len(backupCascade) - 1; i >= 0; i-- {
		gen := backupCascade[i]
		var prevPath string
		if i == 0 {
			prevPath = s.Paths.DataFile
		} else {
			prevPath = s.Paths.File(backupCascade[i-1].fileName)
		}
		nextPath := s.Paths.File(gen.fileName)

		if err := s.rotateBackup(prevPath, nextPath, gen.minAge); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) rotateBackup(previous, next string, minAge time.Duration) error {
	if _, err := os.Stat(previous); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("store: checking %s: %w", previous, err)
	}

	if info, err := os.Stat(next); err == nil {
		if time.Since(info.ModTime()) < minAge {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("store: checking %s: %w", next, err)
	}

	if err := copyFile(previous, next); err != nil {
		return fmt.Errorf("store: rotating backup %s -> %s: %w", previous, next, err)
	}
	s.Logger.WithField("backup", next).Debug("store: rotated metadata backup")
	return nil
}

// CopyBlobIn copies an external file (the versioned file at commit time)
// into the repository directory as a Full content blob.
func (s *Store) CopyBlobIn(sourcePath, blobFileName string) error {
	if err := copyFile(sourcePath, s.Paths.File(blobFileName)); err != nil {
		return fmt.Errorf("store: storing blob %s: %w", blobFileName, err)
	}
	return nil
}

// CopyBlobOut copies a Full content blob out to an external destination
// path (reconstructing the versioned file).
func (s *Store) CopyBlobOut(blobFileName, destPath string) error {
	if err := copyFile(s.Paths.File(blobFileName), destPath); err != nil {
		return fmt.Errorf("store: restoring blob %s: %w", blobFileName, err)
	}
	return nil
}

// BlobPath resolves a blob's file name to its path inside the repository
// directory.
func (s *Store) BlobPath(blobFileName string) string {
	return s.Paths.File(blobFileName)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}

	return out.Sync()
}
