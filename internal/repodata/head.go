package repodata

import (
	"encoding/json"
	"fmt"

	"github.com/igapanovich/biver/internal/versionid"
)

// HeadKind discriminates the Head sum type: exactly one of Branch(name) or
// Version(id) holds at a time (spec.md §3, Design Notes "Head as sum type
// ... do not encode a sentinel branch name").
type HeadKind int

const (
	HeadKindBranch HeadKind = iota
	HeadKindVersion
)

// Head is either a named branch (the usual case) or a detached version.
type Head struct {
	Kind    HeadKind
	Branch  string
	Version versionid.ID
}

// BranchHead builds a Head pointing at a branch name.
func BranchHead(name string) Head {
	return Head{Kind: HeadKindBranch, Branch: name}
}

// VersionHead builds a detached Head pointing at an explicit version.
func VersionHead(id versionid.ID) Head {
	return Head{Kind: HeadKindVersion, Version: id}
}

// BranchName returns (name, true) if this is a branch head.
func (h Head) BranchName() (string, bool) {
	if h.Kind == HeadKindBranch {
		return h.Branch, true
	}
	return "", false
}

type headWireBranch struct {
	Branch string `json:"Branch"`
}

type headWireVersion struct {
	Version versionid.ID `json:"Version"`
}

// MarshalJSON renders the {"Branch": "name"} | {"Version": "<id>"} shape
// spec.md §6 fixes as part of the data.json contract.
func (h Head) MarshalJSON() ([]byte, error) {
	switch h.Kind {
	case HeadKindBranch:
		return json.Marshal(headWireBranch{Branch: h.Branch})
	case HeadKindVersion:
		return json.Marshal(headWireVersion{Version: h.Version})
	default:
		return nil, fmt.Errorf("repodata: unknown head kind %d", h.Kind)
	}
}

// UnmarshalJSON accepts either wire shape.
func (h *Head) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("repodata: head is not an object: %w", err)
	}

	if raw, ok := probe["Branch"]; ok {
		var branch string
		if err := json.Unmarshal(raw, &branch); err != nil {
			return fmt.Errorf("repodata: head.Branch: %w", err)
		}
		*h = BranchHead(branch)
		return nil
	}

	if raw, ok := probe["Version"]; ok {
		var id versionid.ID
		if err := json.Unmarshal(raw, &id); err != nil {
			return fmt.Errorf("repodata: head.Version: %w", err)
		}
		*h = VersionHead(id)
		return nil
	}

	return fmt.Errorf("repodata: head has neither Branch nor Version key")
}
