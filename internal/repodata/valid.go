package repodata

import "github.com/igapanovich/biver/internal/versionid"

// Valid checks the seven invariants of spec.md §3 that MUST hold before a
// RepositoryData is persisted. It never mutates; Store.Write panics with a
// diagnostic dump if this returns false (spec.md §7.3: an invariant
// violation is a programmer bug, not a recoverable error).
func (d *RepositoryData) Valid() bool {
	return d.exactlyOneRoot() &&
		d.everyParentExists() &&
		d.headReferencesKnownTarget() &&
		d.everyBranchTipExists() &&
		d.noTwoBranchesShareATip() &&
		d.everyVersionIsAnAncestorOfABranchTip() &&
		d.everyPatchBaseBelongsToAFullAncestor()
}

// 1. Exactly one version has no parent (the single root).
func (d *RepositoryData) exactlyOneRoot() bool {
	roots := 0
	for _, v := range d.Versions {
		if v.Parent == nil {
			roots++
		}
	}
	return roots == 1
}

// 2. Every referenced parent exists.
func (d *RepositoryData) everyParentExists() bool {
	for _, v := range d.Versions {
		if v.Parent == nil {
			continue
		}
		if _, ok := d.Version(*v.Parent); !ok {
			return false
		}
	}
	return true
}

// 3. The head references a known branch or a known version.
func (d *RepositoryData) headReferencesKnownTarget() bool {
	switch d.Head.Kind {
	case HeadKindBranch:
		_, ok := d.Branches[d.Head.Branch]
		return ok
	case HeadKindVersion:
		_, ok := d.Version(d.Head.Version)
		return ok
	default:
		return false
	}
}

// 4. Every branch's tip references a known version.
func (d *RepositoryData) everyBranchTipExists() bool {
	for _, tip := range d.Branches {
		if _, ok := d.Version(tip); !ok {
			return false
		}
	}
	return true
}

// 5. No two branches share the same tip.
func (d *RepositoryData) noTwoBranchesShareATip() bool {
	seen := make(map[versionid.ID]bool, len(d.Branches))
	for _, tip := range d.Branches {
		if seen[tip] {
			return false
		}
		seen[tip] = true
	}
	return true
}

// 6. Every version is an ancestor (reflexive) of at least one branch tip.
func (d *RepositoryData) everyVersionIsAnAncestorOfABranchTip() bool {
	reachable := make(map[versionid.ID]bool, len(d.Versions))
	for _, tip := range d.Branches {
		for _, v := range d.IterVersionAndAncestors(tip) {
			reachable[v.ID] = true
		}
	}
	return len(reachable) == len(d.Versions)
}

// 7. For any Patch blob, the referenced base blob name belongs to an
// ancestor of this version whose content_blob is Full.
func (d *RepositoryData) everyPatchBaseBelongsToAFullAncestor() bool {
	for _, v := range d.Versions {
		if !v.ContentBlob.IsPatch() {
			continue
		}
		if v.Parent == nil {
			return false
		}
		found := false
		for _, ancestor := range d.IterVersionAndAncestors(*v.Parent) {
			if ancestor.ContentBlob.Kind == ContentBlobKindFull && ancestor.ContentBlob.FullBlobFileName == v.ContentBlob.BaseBlobFileName {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
