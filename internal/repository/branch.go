package repository

import "github.com/igapanovich/biver/internal/repodata"

// RenameBranch renames a branch, per spec.md §4.1.
func (r *Repository) RenameBranch(old, newName string) (Outcome, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return Outcome{}, err
	}

	if old == newName {
		return Ok(), nil
	}

	if _, exists := data.Branches[newName]; exists {
		return Refuse(RefusalAnotherBranchExistsWithSameName), nil
	}

	tip, exists := data.Branches[old]
	if !exists {
		return Refuse(RefusalBranchDoesNotExist), nil
	}

	data.Branches[newName] = tip
	delete(data.Branches, old)
	if name, ok := data.Head.BranchName(); ok && name == old {
		data.Head = repodata.BranchHead(newName)
	}

	if err := r.Store.WriteData(data); err != nil {
		return Outcome{}, err
	}
	return Ok(), nil
}

// DeleteBranch removes a branch and every version reachable only through
// it, per spec.md §4.1: walk name's tip toward the root, stopping at the
// first version also reachable from any OTHER branch's tip.
func (r *Repository) DeleteBranch(name string) (Outcome, error) {
	data, err := r.readInitializedData()
	if err != nil {
		return Outcome{}, err
	}

	tip, exists := data.Branches[name]
	if !exists {
		return Refuse(RefusalBranchDoesNotExist), nil
	}

	reachableFromOthers := map[[16]byte]bool{}
	for branch, branchTip := range data.Branches {
		if branch == name {
			continue
		}
		for _, v := range data.IterVersionAndAncestors(branchTip) {
			reachableFromOthers[v.ID] = true
		}
	}

	chain := data.IterVersionAndAncestors(tip)
	headID := data.HeadVersion().ID
	erasedSet := map[[16]byte]bool{}
	cannotDeleteHead := false
	for _, v := range chain {
		if reachableFromOthers[v.ID] {
			break
		}
		if v.ID == headID {
			cannotDeleteHead = true
		}
		erasedSet[v.ID] = true
	}

	if cannotDeleteHead {
		return Refuse(RefusalCannotDeleteHead), nil
	}

	var kept []repodata.Version
	for _, v := range data.Versions {
		if !erasedSet[v.ID] {
			kept = append(kept, v)
		}
	}
	data.Versions = kept
	delete(data.Branches, name)

	if err := r.Store.WriteData(data); err != nil {
		return Outcome{}, err
	}
	return Ok(), nil
}
