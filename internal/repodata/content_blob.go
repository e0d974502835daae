package repodata

import (
	"encoding/json"
	"fmt"
)

// ContentBlobKind discriminates the ContentBlob sum type (spec.md §3,
// Design Notes "Patch vs. Full as sum type ... a Patch record always
// carries its base-blob identifier and cannot exist without one").
type ContentBlobKind int

const (
	ContentBlobKindFull ContentBlobKind = iota
	ContentBlobKindPatch
)

// ContentBlob is either a verbatim copy of the file (Full) or a binary
// delta to be applied on top of a named Full blob belonging to an
// ancestor (Patch).
type ContentBlob struct {
	Kind ContentBlobKind

	// Full
	FullBlobFileName string

	// Patch
	BaseBlobFileName  string
	PatchBlobFileName string
}

// FullBlob builds a Full content blob record.
func FullBlob(fileName string) ContentBlob {
	return ContentBlob{Kind: ContentBlobKindFull, FullBlobFileName: fileName}
}

// PatchBlob builds a Patch content blob record. base must name a Full blob
// belonging to an ancestor version (spec.md §3 invariant 7).
func PatchBlob(base, patch string) ContentBlob {
	return ContentBlob{Kind: ContentBlobKindPatch, BaseBlobFileName: base, PatchBlobFileName: patch}
}

// IsPatch reports whether this blob is a Patch record.
func (b ContentBlob) IsPatch() bool {
	return b.Kind == ContentBlobKindPatch
}

type contentBlobWireFull struct {
	Full struct {
		FullBlobFileName string `json:"full_blob_file_name"`
	} `json:"Full"`
}

type contentBlobWirePatch struct {
	Patch struct {
		BaseBlobFileName  string `json:"base_blob_file_name"`
		PatchBlobFileName string `json:"patch_blob_file_name"`
	} `json:"Patch"`
}

// MarshalJSON renders the
// {"Full":{"full_blob_file_name":"..."}} |
// {"Patch":{"base_blob_file_name":"...","patch_blob_file_name":"..."}}
// shape spec.md §6 fixes.
func (b ContentBlob) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case ContentBlobKindFull:
		wire := contentBlobWireFull{}
		wire.Full.FullBlobFileName = b.FullBlobFileName
		return json.Marshal(wire)
	case ContentBlobKindPatch:
		wire := contentBlobWirePatch{}
		wire.Patch.BaseBlobFileName = b.BaseBlobFileName
		wire.Patch.PatchBlobFileName = b.PatchBlobFileName
		return json.Marshal(wire)
	default:
		return nil, fmt.Errorf("repodata: unknown content blob kind %d", b.Kind)
	}
}

// UnmarshalJSON accepts either wire shape.
func (b *ContentBlob) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("repodata: content_blob is not an object: %w", err)
	}

	if raw, ok := probe["Full"]; ok {
		var full struct {
			FullBlobFileName string `json:"full_blob_file_name"`
		}
		if err := json.Unmarshal(raw, &full); err != nil {
			return fmt.Errorf("repodata: content_blob.Full: %w", err)
		}
		*b = FullBlob(full.FullBlobFileName)
		return nil
	}

	if raw, ok := probe["Patch"]; ok {
		var patch struct {
			BaseBlobFileName  string `json:"base_blob_file_name"`
			PatchBlobFileName string `json:"patch_blob_file_name"`
		}
		if err := json.Unmarshal(raw, &patch); err != nil {
			return fmt.Errorf("repodata: content_blob.Patch: %w", err)
		}
		*b = PatchBlob(patch.BaseBlobFileName, patch.PatchBlobFileName)
		return nil
	}

	return fmt.Errorf("repodata: content_blob has neither Full nor Patch key")
}
