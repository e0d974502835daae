package repository

import (
	"github.com/igapanovich/biver/internal/repodata"
	"github.com/igapanovich/biver/internal/target"
	"github.com/igapanovich/biver/internal/versionid"
)

// HasUncommittedChanges reports whether the versioned file differs from
// the current head version, per spec.md §4.1's fast-path-then-hash rule.
func (r *Repository) HasUncommittedChanges() (bool, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return false, err
	}
	return r.hasUncommittedChangesAgainst(data.HeadVersion())
}

// Discard overwrites the versioned file with the head version's content.
func (r *Repository) Discard() (Outcome, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return Outcome{}, err
	}
	head := data.HeadVersion()
	if err := r.reconstructContent(data, head.ID, r.Paths.VersionedFile); err != nil {
		return Outcome{}, err
	}
	return Ok(), nil
}

// Reset is the plain reset of spec.md §4.1: it moves the head branch's tip
// to target and erases the now-unreachable versions between the old head
// and target, but never touches the versioned file.
func (r *Repository) Reset(targetVersionID string) (Outcome, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return Outcome{}, err
	}

	branch, ok := data.Head.BranchName()
	if !ok {
		return Refuse(RefusalHeadMustBeBranch), nil
	}

	targetID, ok := target.ResolveStrict(data, targetVersionID)
	if !ok {
		return Refuse(RefusalInvalidTarget), nil
	}

	headChain := data.IterHeadAndAncestors()
	erasedIdx := -1
	for i, v := range headChain {
		if v.ID == targetID {
			erasedIdx = i
			break
		}
	}
	if erasedIdx < 0 {
		return Refuse(RefusalInvalidTarget), nil
	}
	erased := headChain[:erasedIdx]

	erasedSet := make(map[versionid.ID]bool, len(erased))
	for _, v := range erased {
		erasedSet[v.ID] = true
		if v.Parent == nil {
			// The root is always the last element of an ancestor chain;
			// if it shows up inside the erased prefix, target lies past
			// the root, which spec.md §4.1 forbids explicitly.
			return Refuse(RefusalInvalidTarget), nil
		}
	}

	for _, v := range erased {
		for _, child := range data.IterChildren(v.ID) {
			if !erasedSet[child.ID] {
				return Refuse(RefusalCannotLeaveOrphans), nil
			}
		}
	}
	headVersion := data.HeadVersion()
	if len(data.IterChildren(headVersion.ID)) > 0 {
		return Refuse(RefusalCannotLeaveOrphans), nil
	}

	var kept []repodata.Version
	for _, v := range data.Versions {
		if !erasedSet[v.ID] {
			kept = append(kept, v)
		}
	}
	data.Versions = kept
	data.Branches[branch] = targetID

	if err := r.Store.WriteData(data); err != nil {
		return Outcome{}, err
	}
	return Ok(), nil
}

// HardReset performs Reset followed by Discard, as spec.md §4.1 describes
// ("the core also supports a hard reset by additionally calling discard
// afterwards, delegated to caller").
func (r *Repository) HardReset(targetVersionID string) (Outcome, error) {
	outcome, err := r.Reset(targetVersionID)
	if err != nil || !outcome.IsOk() {
		return outcome, err
	}
	return r.Discard()
}

// CheckOut moves head to target and reconstructs target's content to the
// versioned file, refusing if there are uncommitted changes.
func (r *Repository) CheckOut(input string) (Outcome, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return Outcome{}, err
	}

	dirty, err := r.hasUncommittedChangesAgainst(data.HeadVersion())
	if err != nil {
		return Outcome{}, err
	}
	if dirty {
		return Refuse(RefusalBlockedByUncommittedChanges), nil
	}

	result := target.Resolve(data, input)
	var newHead repodata.Head
	var targetVersionID versionid.ID
	switch result.Kind {
	case target.Branch:
		newHead = repodata.BranchHead(result.BranchName)
		tip, ok := data.Branches[result.BranchName]
		if !ok {
			return Refuse(RefusalInvalidTarget), nil
		}
		targetVersionID = tip
	case target.Version:
		newHead = repodata.VersionHead(result.VersionID)
		targetVersionID = result.VersionID
	default:
		return Refuse(RefusalInvalidTarget), nil
	}

	data.Head = newHead
	if err := r.Store.WriteData(data); err != nil {
		return Outcome{}, err
	}
	if err := r.reconstructContent(data, targetVersionID, r.Paths.VersionedFile); err != nil {
		return Outcome{}, err
	}
	return Ok(), nil
}

// Restore reconstructs target's content to outputPath (the versioned file
// itself if outputPath is empty) without altering metadata.
func (r *Repository) Restore(input string, outputPath string) (Outcome, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return Outcome{}, err
	}

	dirty, err := r.hasUncommittedChangesAgainst(data.HeadVersion())
	if err != nil {
		return Outcome{}, err
	}
	if dirty {
		return Refuse(RefusalBlockedByUncommittedChanges), nil
	}

	id, ok := resolveTarget(data, input)
	if !ok {
		return Refuse(RefusalInvalidTarget), nil
	}

	dest := outputPath
	if dest == "" {
		dest = r.Paths.VersionedFile
	}
	if err := r.reconstructContent(data, id, dest); err != nil {
		return Outcome{}, err
	}
	return Ok(), nil
}
