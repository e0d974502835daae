package repodata

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/igapanovich/biver/internal/hash"
	"github.com/igapanovich/biver/internal/versionid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVersion(id versionid.ID, parent *versionid.ID, blob ContentBlob) Version {
	return Version{
		ID:                   id,
		CreationTime:         time.Now().UTC(),
		Nickname:             "able-ace",
		VersionedFileLength:  10,
		VersionedFileXXH3128: hash.Sum128{Hi: 1, Lo: 2},
		Description:          "test",
		Parent:               parent,
		ContentBlob:          blob,
	}
}

func singleRootData(t *testing.T) (*RepositoryData, versionid.ID) {
	t.Helper()
	root := versionid.MustNew()
	data := &RepositoryData{
		Head:     BranchHead("main"),
		Branches: map[string]versionid.ID{"main": root},
		Versions: []Version{newTestVersion(root, nil, FullBlob(root.ToFileName()+"_content"))},
	}
	require.True(t, data.Valid())
	return data, root
}

func TestValidAcceptsSingleRootRepository(t *testing.T) {
	data, root := singleRootData(t)
	assert.Equal(t, root, data.HeadVersion().ID)
}

func TestValidRejectsTwoRoots(t *testing.T) {
	data, _ := singleRootData(t)
	extraRoot := versionid.MustNew()
	data.Versions = append(data.Versions, newTestVersion(extraRoot, nil, FullBlob("x")))
	assert.False(t, data.Valid())
}

func TestValidRejectsDanglingParent(t *testing.T) {
	data, root := singleRootData(t)
	child := versionid.MustNew()
	missingParent := versionid.MustNew()
	data.Versions = append(data.Versions, newTestVersion(child, &missingParent, FullBlob("x")))
	data.Branches["main"] = child
	_ = root
	assert.False(t, data.Valid())
}

func TestValidRejectsUnreachableVersion(t *testing.T) {
	data, root := singleRootData(t)
	orphan := versionid.MustNew()
	data.Versions = append(data.Versions, newTestVersion(orphan, &root, FullBlob("x")))
	// orphan is not any branch tip and not an ancestor of one -> invariant 6 fails.
	assert.False(t, data.Valid())
}

func TestValidRejectsTwoBranchesSharingATip(t *testing.T) {
	data, root := singleRootData(t)
	data.Branches["other"] = root
	assert.False(t, data.Valid())
}

func TestValidRejectsPatchWithoutFullAncestor(t *testing.T) {
	data, root := singleRootData(t)
	child := versionid.MustNew()
	data.Versions = append(data.Versions, newTestVersion(child, &root, PatchBlob("nonexistent-blob", "patch-blob")))
	data.Branches["main"] = child
	assert.False(t, data.Valid())
}

func TestValidAcceptsPatchChainedToFullAncestor(t *testing.T) {
	data, root := singleRootData(t)
	child := versionid.MustNew()
	rootBlobName := data.Versions[0].ContentBlob.FullBlobFileName
	data.Versions = append(data.Versions, newTestVersion(child, &root, PatchBlob(rootBlobName, "patch-blob")))
	data.Branches["main"] = child
	assert.True(t, data.Valid())
}

func TestHeadJSONRoundTrip(t *testing.T) {
	branchHead := BranchHead("main")
	data, err := json.Marshal(branchHead)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Branch":"main"}`, string(data))

	var decoded Head
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, branchHead, decoded)

	id := versionid.MustNew()
	versionHead := VersionHead(id)
	data, err = json.Marshal(versionHead)
	require.NoError(t, err)

	var decodedVersion Head
	require.NoError(t, json.Unmarshal(data, &decodedVersion))
	assert.Equal(t, versionHead, decodedVersion)
}

func TestContentBlobJSONRoundTrip(t *testing.T) {
	full := FullBlob("abc_content")
	data, err := json.Marshal(full)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Full":{"full_blob_file_name":"abc_content"}}`, string(data))

	var decodedFull ContentBlob
	require.NoError(t, json.Unmarshal(data, &decodedFull))
	assert.Equal(t, full, decodedFull)

	patch := PatchBlob("base_content", "patch_content")
	data, err = json.Marshal(patch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Patch":{"base_blob_file_name":"base_content","patch_blob_file_name":"patch_content"}}`, string(data))

	var decodedPatch ContentBlob
	require.NoError(t, json.Unmarshal(data, &decodedPatch))
	assert.Equal(t, patch, decodedPatch)
}

func TestIterVersionAndAncestorsOrdering(t *testing.T) {
	data, root := singleRootData(t)
	mid := versionid.MustNew()
	data.Versions = append(data.Versions, newTestVersion(mid, &root, FullBlob("mid")))
	tip := versionid.MustNew()
	data.Versions = append(data.Versions, newTestVersion(tip, &mid, FullBlob("tip")))
	data.Branches["main"] = tip
	require.True(t, data.Valid())

	chain := data.IterVersionAndAncestors(tip)
	require.Len(t, chain, 3)
	assert.Equal(t, tip, chain[0].ID)
	assert.Equal(t, mid, chain[1].ID)
	assert.Equal(t, root, chain[2].ID)
}

func TestIterChildren(t *testing.T) {
	data, root := singleRootData(t)
	childA := versionid.MustNew()
	childB := versionid.MustNew()
	data.Versions = append(data.Versions,
		newTestVersion(childA, &root, FullBlob("a")),
		newTestVersion(childB, &root, FullBlob("b")),
	)
	children := data.IterChildren(root)
	assert.Len(t, children, 2)
}
