package target

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igapanovich/biver/internal/repodata"
	"github.com/igapanovich/biver/internal/versionid"
)

func buildChain(t *testing.T, nicknames ...string) (*repodata.RepositoryData, []versionid.ID) {
	t.Helper()
	data := &repodata.RepositoryData{
		Branches: map[string]versionid.ID{},
		Versions: []repodata.Version{},
	}
	var ids []versionid.ID
	var parent *versionid.ID
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, nick := range nicknames {
		id := versionid.MustNew()
		ids = append(ids, id)
		data.Versions = append(data.Versions, repodata.Version{
			ID:           id,
			CreationTime: base.Add(time.Duration(i) * time.Hour),
			Nickname:     nick,
			Parent:       parent,
			ContentBlob:  repodata.FullBlob(id.ToFileName() + "_content"),
		})
		idCopy := id
		parent = &idCopy
	}
	data.Branches["main"] = ids[len(ids)-1]
	data.Head = repodata.BranchHead("main")
	return data, ids
}

func TestResolveBranchName(t *testing.T) {
	data, _ := buildChain(t, "able-ace")
	result := Resolve(data, "main")
	assert.Equal(t, Branch, result.Kind)
	assert.Equal(t, "main", result.BranchName)
}

func TestResolveBase58VersionID(t *testing.T) {
	data, ids := buildChain(t, "able-ace")
	result := Resolve(data, ids[0].String())
	require.Equal(t, Version, result.Kind)
	assert.Equal(t, ids[0], result.VersionID)
}

func TestResolveOffsetZeroIsHead(t *testing.T) {
	data, ids := buildChain(t, "able-ace", "brave-bear")
	result := Resolve(data, "~")
	require.Equal(t, Version, result.Kind)
	assert.Equal(t, ids[1], result.VersionID)
}

func TestResolveOffsetN(t *testing.T) {
	data, ids := buildChain(t, "able-ace", "brave-bear", "calm-cat")
	result := Resolve(data, "~2")
	require.Equal(t, Version, result.Kind)
	assert.Equal(t, ids[0], result.VersionID)
}

func TestResolveOffsetOutOfRangeIsInvalid(t *testing.T) {
	data, _ := buildChain(t, "able-ace")
	result := Resolve(data, "~5")
	assert.Equal(t, Invalid, result.Kind)
}

func TestResolveNicknameExactCaseInsensitive(t *testing.T) {
	data, ids := buildChain(t, "able-ace")
	result := Resolve(data, "ABLE-ACE")
	require.Equal(t, Version, result.Kind)
	assert.Equal(t, ids[0], result.VersionID)
}

func TestResolveNicknameDashStrippedMatch(t *testing.T) {
	data, ids := buildChain(t, "able-ace")
	result := Resolve(data, "ableace")
	require.Equal(t, Version, result.Kind)
	assert.Equal(t, ids[0], result.VersionID)
}

func TestResolveNicknameInitialsMatch(t *testing.T) {
	data, ids := buildChain(t, "able-ace")
	result := Resolve(data, "aa")
	require.Equal(t, Version, result.Kind)
	assert.Equal(t, ids[0], result.VersionID)
}

func TestResolveNicknameMostRecentWins(t *testing.T) {
	data, ids := buildChain(t, "able-ace", "able-ace")
	result := Resolve(data, "aa")
	require.Equal(t, Version, result.Kind)
	assert.Equal(t, ids[1], result.VersionID)
}

func TestResolveUnknownStringIsInvalid(t *testing.T) {
	data, _ := buildChain(t, "able-ace")
	result := Resolve(data, "nonexistent-thing")
	assert.Equal(t, Invalid, result.Kind)
}

func TestResolveEmptyStringIsInvalid(t *testing.T) {
	data, _ := buildChain(t, "able-ace")
	result := Resolve(data, "")
	assert.Equal(t, Invalid, result.Kind)
}

func TestResolveStrictAcceptsOnlyBase58(t *testing.T) {
	data, ids := buildChain(t, "able-ace")

	id, ok := ResolveStrict(data, ids[0].String())
	require.True(t, ok)
	assert.Equal(t, ids[0], id)

	_, ok = ResolveStrict(data, "main")
	assert.False(t, ok)

	_, ok = ResolveStrict(data, "aa")
	assert.False(t, ok)

	_, ok = ResolveStrict(data, "~")
	assert.False(t, ok)
}

func TestInitialsMatchRejectsWrongLength(t *testing.T) {
	assert.False(t, initialsMatch("able-ace", "a"))
	assert.False(t, initialsMatch("able-ace", "aaa"))
}

func TestDashStrippedPrefixMatchAcceptsShortPrefix(t *testing.T) {
	assert.True(t, dashStrippedPrefixMatches("able-ace", "able"))
	assert.True(t, dashStrippedPrefixMatches("able-ace", "ab"))
	assert.True(t, dashStrippedPrefixMatches("able-ace", "ABLEace"))
}

func TestDashStrippedPrefixMatchRejectsLongerInput(t *testing.T) {
	assert.False(t, dashStrippedPrefixMatches("able-ace", "ableacex"))
}
