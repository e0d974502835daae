// Package repodata is the in-memory shape of the repository's metadata
// document: RepositoryData, Version, Head and ContentBlob, together with
// the seven validity invariants of spec.md §3. It is a direct translation
// of original_source/src/repository_data.rs (igapanovich/biver-rs) into Go:
// explicit slices and helper methods replace Rust's iterator adaptors, and
// the two "sum types" (Head, ContentBlob) get hand-written JSON
// (un)marshalling so the persisted schema matches spec.md §6 exactly.
package repodata

import (
	"time"

	"github.com/igapanovich/biver/internal/hash"
	"github.com/igapanovich/biver/internal/versionid"
)

// RepositoryData is the root document persisted as data.json.
type RepositoryData struct {
	Head     Head                    `json:"head"`
	Branches map[string]versionid.ID `json:"branches"`
	Versions []Version               `json:"versions"`
}

// Version is one immutable-by-contract snapshot of the versioned file.
type Version struct {
	ID                   versionid.ID  `json:"id"`
	CreationTime         time.Time     `json:"creation_time"`
	Nickname             string        `json:"nickname"`
	VersionedFileLength  uint64        `json:"versioned_file_length"`
	VersionedFileXXH3128 hash.Sum128   `json:"versioned_file_xxh3_128"`
	Description          string        `json:"description"`
	Parent               *versionid.ID `json:"parent"`
	ContentBlob          ContentBlob   `json:"content_blob"`
	PreviewBlobFileName  *string       `json:"preview_blob_file_name"`
}

// Version looks up a stored version by id. A VersionId held by a caller is
// always a weak reference: RepositoryData exclusively owns the Versions.
func (d *RepositoryData) Version(id versionid.ID) (*Version, bool) {
	for i := range d.Versions {
		if d.Versions[i].ID == id {
			return &d.Versions[i], true
		}
	}
	return nil, false
}

// HeadVersion resolves the current Head to its Version. It panics if the
// document is not valid - the head branch or head version must always
// exist once the document has passed Valid().
func (d *RepositoryData) HeadVersion() *Version {
	var id versionid.ID
	switch d.Head.Kind {
	case HeadKindBranch:
		branchID, ok := d.Branches[d.Head.Branch]
		if !ok {
			panic("repodata: head references an unknown branch: " + d.Head.Branch)
		}
		id = branchID
	case HeadKindVersion:
		id = d.Head.Version
	}
	v, ok := d.Version(id)
	if !ok {
		panic("repodata: head version does not exist")
	}
	return v
}

// BranchOnVersion returns the name of a branch whose tip is version id, if
// any. At most one can exist (invariant 5).
func (d *RepositoryData) BranchOnVersion(id versionid.ID) (string, bool) {
	for name, tip := range d.Branches {
		if tip == id {
			return name, true
		}
	}
	return "", false
}

// BranchLeaf returns the tip Version of a named branch.
func (d *RepositoryData) BranchLeaf(branch string) (*Version, bool) {
	tip, ok := d.Branches[branch]
	if !ok {
		return nil, false
	}
	return d.Version(tip)
}

// IterAncestors returns the ancestor chain of id, NOT including id itself,
// closest first.
func (d *RepositoryData) IterAncestors(id versionid.ID) []*Version {
	v, ok := d.Version(id)
	if !ok || v.Parent == nil {
		return nil
	}
	return d.IterVersionAndAncestors(*v.Parent)
}

// IterVersionAndAncestors returns id and its ancestor chain, id first,
// closest ancestor next, root last. An unknown id yields an empty slice.
func (d *RepositoryData) IterVersionAndAncestors(id versionid.ID) []*Version {
	var chain []*Version
	current, ok := d.Version(id)
	for ok {
		chain = append(chain, current)
		if current.Parent == nil {
			break
		}
		current, ok = d.Version(*current.Parent)
	}
	return chain
}

// IterHeadAndAncestors returns the head version and its ancestor chain.
func (d *RepositoryData) IterHeadAndAncestors() []*Version {
	return d.IterVersionAndAncestors(d.HeadVersion().ID)
}

// IterChildren returns the versions whose parent is id.
func (d *RepositoryData) IterChildren(id versionid.ID) []*Version {
	var children []*Version
	for i := range d.Versions {
		if d.Versions[i].Parent != nil && *d.Versions[i].Parent == id {
			children = append(children, &d.Versions[i])
		}
	}
	return children
}

