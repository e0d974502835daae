package repository

import (
	"fmt"
	"os"
	"time"

	"github.com/igapanovich/biver/internal/repodata"
	"github.com/igapanovich/biver/internal/target"
	"github.com/igapanovich/biver/internal/versionid"
)

// CommitInitialVersion creates a brand-new repository for the versioned
// file, per spec.md §4.1. It is an error (not a refusal) if data.json
// already exists or the versioned file is missing.
func (r *Repository) CommitInitialVersion(newBranch *string, description string) (Outcome, error) {
	_, initialized, err := r.Store.ReadData()
	if err != nil {
		return Outcome{}, err
	}
	if initialized {
		return Outcome{}, fmt.Errorf("repository: %s is already initialized", r.Paths.DataFile)
	}

	if _, err := os.Stat(r.Paths.VersionedFile); err != nil {
		return Outcome{}, fmt.Errorf("repository: versioned file %s: %w", r.Paths.VersionedFile, err)
	}

	if err := r.Store.EnsureRepositoryDir(); err != nil {
		return Outcome{}, err
	}

	length, sum, err := r.hashVersionedFile()
	if err != nil {
		return Outcome{}, err
	}

	branch := "main"
	if newBranch != nil && *newBranch != "" {
		branch = *newBranch
	}

	id := versionid.MustNew()
	contentBlob, err := r.writeContentBlob(id, true, "")
	if err != nil {
		return Outcome{}, err
	}
	previewBlob, err := r.writePreviewBlob(id)
	if err != nil {
		return Outcome{}, err
	}

	version := repodata.Version{
		ID:                   id,
		CreationTime:         time.Now().UTC(),
		Nickname:             mintNickname(sum),
		VersionedFileLength:  length,
		VersionedFileXXH3128: sum,
		Description:          description,
		Parent:               nil,
		ContentBlob:          contentBlob,
		PreviewBlobFileName:  previewBlob,
	}

	data := &repodata.RepositoryData{
		Head:     repodata.BranchHead(branch),
		Branches: map[string]versionid.ID{branch: id},
		Versions: []repodata.Version{version},
	}

	if err := r.Store.WriteData(data); err != nil {
		return Outcome{}, err
	}
	return Ok(), nil
}

// CommitVersion appends a new version on top of the current head, per
// spec.md §4.1.
func (r *Repository) CommitVersion(newBranch *string, description string) (Outcome, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return Outcome{}, err
	}

	head := data.HeadVersion()
	length, sum, err := r.hashVersionedFile()
	if err != nil {
		return Outcome{}, err
	}
	if sum.Equal(head.VersionedFileXXH3128) && length == head.VersionedFileLength {
		return Refuse(RefusalNothingToCommit), nil
	}

	var effectiveBranch string
	if newBranch != nil && *newBranch != "" {
		if _, exists := data.Branches[*newBranch]; exists {
			return Refuse(RefusalBranchAlreadyExists), nil
		}
		effectiveBranch = *newBranch
	} else if name, ok := data.Head.BranchName(); ok {
		effectiveBranch = name
	} else {
		return Refuse(RefusalBranchRequired), nil
	}

	useFull, baseBlobFileName := r.planContentBlob(data, head.ID)

	id := versionid.MustNew()
	contentBlob, err := r.writeContentBlob(id, useFull, baseBlobFileName)
	if err != nil {
		return Outcome{}, err
	}
	previewBlob, err := r.writePreviewBlob(id)
	if err != nil {
		return Outcome{}, err
	}

	parentID := head.ID
	version := repodata.Version{
		ID:                   id,
		CreationTime:         time.Now().UTC(),
		Nickname:             mintNickname(sum),
		VersionedFileLength:  length,
		VersionedFileXXH3128: sum,
		Description:          description,
		Parent:               &parentID,
		ContentBlob:          contentBlob,
		PreviewBlobFileName:  previewBlob,
	}

	data.Versions = append(data.Versions, version)
	data.Branches[effectiveBranch] = id
	data.Head = repodata.BranchHead(effectiveBranch)

	if err := r.Store.WriteData(data); err != nil {
		return Outcome{}, err
	}
	return Ok(), nil
}

// AmendHead replaces the current head version in place, per spec.md §4.1.
func (r *Repository) AmendHead(description *string) (Outcome, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return Outcome{}, err
	}

	head := data.HeadVersion()
	length, sum, err := r.hashVersionedFile()
	if err != nil {
		return Outcome{}, err
	}
	if sum.Equal(head.VersionedFileXXH3128) && length == head.VersionedFileLength {
		return Refuse(RefusalNoUncommittedChanges), nil
	}

	if _, ok := data.Head.BranchName(); !ok {
		return Refuse(RefusalHeadMustBeBranch), nil
	}

	if len(data.IterChildren(head.ID)) > 0 {
		return Refuse(RefusalCannotAmendParent), nil
	}

	if head.Parent != nil {
		if parent, ok := data.Version(*head.Parent); ok && parent.VersionedFileXXH3128.Equal(sum) && parent.VersionedFileLength == length {
			return Refuse(RefusalHeadEqualsParent), nil
		}
	}

	var useFull bool
	var baseBlobFileName string
	if head.Parent != nil {
		useFull, baseBlobFileName = r.planContentBlob(data, *head.Parent)
	} else {
		useFull = true
	}

	newID := versionid.MustNew()
	contentBlob, err := r.writeContentBlob(newID, useFull, baseBlobFileName)
	if err != nil {
		return Outcome{}, err
	}
	previewBlob, err := r.writePreviewBlob(newID)
	if err != nil {
		return Outcome{}, err
	}

	desc := head.Description
	if description != nil {
		desc = *description
	}

	branch, _ := data.Head.BranchName()
	replacement := repodata.Version{
		ID:                   newID,
		CreationTime:         time.Now().UTC(),
		Nickname:             mintNickname(sum),
		VersionedFileLength:  length,
		VersionedFileXXH3128: sum,
		Description:          desc,
		Parent:               head.Parent,
		ContentBlob:          contentBlob,
		PreviewBlobFileName:  previewBlob,
	}

	for i := range data.Versions {
		if data.Versions[i].ID == head.ID {
			data.Versions[i] = replacement
			break
		}
	}
	data.Branches[branch] = newID

	if err := r.Store.WriteData(data); err != nil {
		return Outcome{}, err
	}
	return Ok(), nil
}

// Reword mutates only a version's description. target must resolve
// strictly to a version id (spec.md §4.1's reword precondition).
func (r *Repository) Reword(targetVersionID string, newDescription string) (Outcome, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return Outcome{}, err
	}

	id, ok := target.ResolveStrict(data, targetVersionID)
	if !ok {
		return Refuse(RefusalInvalidTarget), nil
	}

	for i := range data.Versions {
		if data.Versions[i].ID == id {
			data.Versions[i].Description = newDescription
			if err := r.Store.WriteData(data); err != nil {
				return Outcome{}, err
			}
			return Ok(), nil
		}
	}
	return Refuse(RefusalInvalidTarget), nil
}
