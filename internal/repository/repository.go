// Package repository is the heart of biver: it wires Store, the
// BinaryDelta and PreviewMaker adapters, TargetResolver and the repodata
// model together into the operations of spec.md §4.1. Grounded on
// original_source/src/repository_operations.rs (igapanovich/biver-rs), with
// the patch-chain policy, commit/amend/reword/reset/checkout/restore and
// branch rename/delete semantics carried over unchanged in meaning.
package repository

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/igapanovich/biver/internal/config"
	"github.com/igapanovich/biver/internal/delta"
	"github.com/igapanovich/biver/internal/hash"
	"github.com/igapanovich/biver/internal/nickname"
	"github.com/igapanovich/biver/internal/preview"
	"github.com/igapanovich/biver/internal/repodata"
	"github.com/igapanovich/biver/internal/repopath"
	"github.com/igapanovich/biver/internal/store"
	"github.com/igapanovich/biver/internal/target"
	"github.com/igapanovich/biver/internal/versionid"
)

// deltaTool is the subset of delta.Tool that the patch-chain policy
// depends on. It exists so tests can substitute a fake that is always
// Ready, exercising planContentBlob without a real xdelta3 binary.
type deltaTool interface {
	Ready() bool
	CreatePatch(base, new_, outPatch string) error
	ApplyPatch(base, patch, outNew string) error
}

// Repository operates on exactly one versioned file and its repository
// directory.
type Repository struct {
	Paths   repopath.Paths
	Store   *store.Store
	Delta   deltaTool
	Preview preview.Tool
	Config  *config.Config
	Logger  *logrus.Logger
}

// Open builds a Repository for a versioned file, wiring the adapters from
// cfg (or config.Default() if cfg is nil).
func Open(versionedFilePath string, cfg *config.Config, logger *logrus.Logger) *Repository {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	paths := repopath.For(versionedFilePath)
	return &Repository{
		Paths:   paths,
		Store:   store.New(paths, logger),
		Delta:   delta.Tool{Command: cfg.XDelta3Command, Logger: logger},
		Preview: preview.Tool{Command: cfg.ImageMagickCommand, MaxDimension: cfg.PreviewMaxDimension, Logger: logger},
		Config:  cfg,
		Logger:  logger,
	}
}

// maxConsecutivePatches resolves the configured patch-chain bound,
// defaulting when Config is nil (e.g. a Repository built by hand in tests).
func (r *Repository) maxConsecutivePatches() int {
	if r.Config == nil {
		return config.DefaultMaxConsecutivePatches
	}
	return r.Config.MaxConsecutivePatches
}

// readInitializedData loads data.json, treating "not initialized" as an
// error: every operation except commit_initial_version requires an
// existing repository.
func (r *Repository) readInitializedData() (*repodata.RepositoryData, error) {
	data, initialized, err := r.Store.ReadData()
	if err != nil {
		return nil, err
	}
	if !initialized {
		return nil, fmt.Errorf("repository: %s is not initialized", r.Paths.RepositoryDir)
	}
	return data, nil
}

// hashVersionedFile streams the current versioned file's length and
// XXH3-128 digest.
func (r *Repository) hashVersionedFile() (uint64, hash.Sum128, error) {
	f, err := os.Open(r.Paths.VersionedFile)
	if err != nil {
		return 0, hash.Sum128{}, fmt.Errorf("repository: opening %s: %w", r.Paths.VersionedFile, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, hash.Sum128{}, fmt.Errorf("repository: statting %s: %w", r.Paths.VersionedFile, err)
	}

	sum, err := hash.XXH3_128(f)
	if err != nil {
		return 0, hash.Sum128{}, err
	}
	return uint64(info.Size()), sum, nil
}

// hasUncommittedChangesAgainst implements the fast-path-then-hash
// comparison of spec.md §4.1 "has_uncommitted_changes" against an
// arbitrary reference version (callers needing the public HasUncommittedChanges
// operation go through it instead, which always compares against head).
func (r *Repository) hasUncommittedChangesAgainst(v *repodata.Version) (bool, error) {
	length, sum, err := r.hashVersionedFile()
	if err != nil {
		return false, err
	}
	if length != v.VersionedFileLength {
		return true, nil
	}
	return !sum.Equal(v.VersionedFileXXH3128), nil
}

// planContentBlob decides whether the new child of parent should store a
// Full or Patch blob, per spec.md §4.1's patch-chain policy.
func (r *Repository) planContentBlob(data *repodata.RepositoryData, parentID versionid.ID) (useFull bool, baseBlobFileName string) {
	if !r.Delta.Ready() {
		return true, ""
	}

	chain := data.IterVersionAndAncestors(parentID)
	for k, v := range chain {
		if !v.ContentBlob.IsPatch() {
			// k is the Go-range index of the nearest Full ancestor, i.e. the
			// count of Patch versions already between it and parent
			// (parent included). One more Patch child would make k+1
			// consecutive patches, so the bound is k+1 >= max.
			if k+1 >= r.maxConsecutivePatches() {
				return true, ""
			}
			return false, v.ContentBlob.FullBlobFileName
		}
	}
	return true, ""
}

// writeContentBlob stores the versioned file's current content as the new
// version's content blob, choosing Full or Patch per the plan from
// planContentBlob.
func (r *Repository) writeContentBlob(id versionid.ID, useFull bool, baseBlobFileName string) (repodata.ContentBlob, error) {
	contentFileName := repopath.ContentBlobFileName(id.ToFileName())

	if useFull {
		if err := r.Store.CopyBlobIn(r.Paths.VersionedFile, contentFileName); err != nil {
			return repodata.ContentBlob{}, err
		}
		return repodata.FullBlob(contentFileName), nil
	}

	basePath := r.Store.BlobPath(baseBlobFileName)
	outPath := r.Store.BlobPath(contentFileName)
	if err := r.Delta.CreatePatch(basePath, r.Paths.VersionedFile, outPath); err != nil {
		return repodata.ContentBlob{}, err
	}
	return repodata.PatchBlob(baseBlobFileName, contentFileName), nil
}

// writePreviewBlob stores a preview blob for id if the versioned file is
// preview-eligible and the preview tool is ready; otherwise it returns
// (nil, nil), meaning "no preview".
func (r *Repository) writePreviewBlob(id versionid.ID) (*string, error) {
	if !preview.IsEligible(r.Paths.VersionedFile) || !r.Preview.Ready() {
		return nil, nil
	}

	previewFileName := repopath.PreviewBlobFileName(id.ToFileName())
	outPath := r.Store.BlobPath(previewFileName)
	if err := r.Preview.CreatePreview(r.Paths.VersionedFile, outPath); err != nil {
		r.Logger.WithError(err).Warn("repository: preview generation failed, continuing without one")
		return nil, nil
	}
	return &previewFileName, nil
}

// reconstructContent materialises version id's content to outPath: a
// verbatim copy for a Full blob, or a BinaryDelta apply_patch for a Patch
// blob (whose base is always a Full blob per invariant 7).
func (r *Repository) reconstructContent(data *repodata.RepositoryData, id versionid.ID, outPath string) error {
	v, ok := data.Version(id)
	if !ok {
		return fmt.Errorf("repository: version %s does not exist", id)
	}

	if !v.ContentBlob.IsPatch() {
		return r.Store.CopyBlobOut(v.ContentBlob.FullBlobFileName, outPath)
	}

	basePath := r.Store.BlobPath(v.ContentBlob.BaseBlobFileName)
	patchPath := r.Store.BlobPath(v.ContentBlob.PatchBlobFileName)
	return r.Delta.ApplyPatch(basePath, patchPath, outPath)
}

// mintNickname derives a version's nickname from its content hash, per
// spec.md §4.5.
func mintNickname(sum hash.Sum128) string {
	hi, lo := sum.NicknameSeed()
	return nickname.New(hi, lo)
}

// resolveTarget resolves a user-supplied target string against data,
// using the full (non-strict) grammar.
func resolveTarget(data *repodata.RepositoryData, input string) (versionid.ID, bool) {
	result := target.Resolve(data, input)
	switch result.Kind {
	case target.Version:
		return result.VersionID, true
	case target.Branch:
		tip, ok := data.Branches[result.BranchName]
		return tip, ok
	default:
		return versionid.ID{}, false
	}
}
