// Package target implements the TargetResolver grammar: mapping a
// user-supplied string to a branch or a specific version. The matching
// rules - branch name first, then Base58 id, then ~N ancestor offset, then
// nickname (exact / dash-stripped / initials) - are carried over from
// original_source/src/repository_operations.rs's resolve_target and
// nickname_matches (igapanovich/biver-rs).
package target

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/igapanovich/biver/internal/repodata"
	"github.com/igapanovich/biver/internal/versionid"
)

// Kind discriminates what a successful Resolve call found.
type Kind int

const (
	// Invalid means no rule matched.
	Invalid Kind = iota
	// Branch means the input named a branch exactly.
	Branch
	// Version means the input resolved to a specific version.
	Version
)

// Result is the outcome of resolving a target string.
type Result struct {
	Kind       Kind
	BranchName string
	VersionID  versionid.ID
}

// Resolve applies the full grammar (spec.md §4.1 "Target resolution
// grammar"): branch name, then Base58 id, then ~N offset, then nickname.
// Empty input is always Invalid.
func Resolve(data *repodata.RepositoryData, input string) Result {
	if input == "" {
		return Result{Kind: Invalid}
	}

	if _, ok := data.Branches[input]; ok {
		return Result{Kind: Branch, BranchName: input}
	}

	if id, ok := versionid.FromBase58(input); ok {
		if _, ok := data.Version(id); ok {
			return Result{Kind: Version, VersionID: id}
		}
	}

	if offset, ok := parseOffset(input); ok {
		if id, ok := resolveOffset(data, offset); ok {
			return Result{Kind: Version, VersionID: id}
		}
		return Result{Kind: Invalid}
	}

	if id, ok := resolveNickname(data, input); ok {
		return Result{Kind: Version, VersionID: id}
	}

	return Result{Kind: Invalid}
}

// ResolveStrict implements strict resolution (spec.md: "used by reword,
// reset") which accepts ONLY a Base58 version id - no branch, offset, or
// nickname.
func ResolveStrict(data *repodata.RepositoryData, input string) (versionid.ID, bool) {
	id, ok := versionid.FromBase58(input)
	if !ok {
		return versionid.ID{}, false
	}
	if _, ok := data.Version(id); !ok {
		return versionid.ID{}, false
	}
	return id, true
}

// parseOffset recognises "~" (meaning offset 0, the head) and "~N" for an
// unsigned integer N.
func parseOffset(input string) (int, bool) {
	if !strings.HasPrefix(input, "~") {
		return 0, false
	}
	rest := input[1:]
	if rest == "" {
		return 0, true
	}
	for _, r := range rest {
		if !unicode.IsDigit(r) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// resolveOffset walks N parent links from head (0 = head itself). It fails
// if N exceeds the chain length.
func resolveOffset(data *repodata.RepositoryData, n int) (versionid.ID, bool) {
	chain := data.IterHeadAndAncestors()
	if n < 0 || n >= len(chain) {
		return versionid.ID{}, false
	}
	return chain[n].ID, true
}

// resolveNickname finds the most-recently-created version whose nickname
// matches input, trying exact/dash-stripped/initials in that priority
// order per version (ties on creation_time resolved by iterating versions
// newest-first, as the original does).
func resolveNickname(data *repodata.RepositoryData, input string) (versionid.ID, bool) {
	versions := make([]*repodata.Version, len(data.Versions))
	for i := range data.Versions {
		versions[i] = &data.Versions[i]
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].CreationTime.After(versions[j].CreationTime)
	})

	for _, v := range versions {
		if nicknameMatches(v.Nickname, input) {
			return v.ID, true
		}
	}
	return versionid.ID{}, false
}

// nicknameMatches mirrors nickname_matches/nickname_matches_initials
// exactly: case-insensitive exact equality, OR input is a case-insensitive
// prefix of the dash-stripped nickname (so "ab" matches "ab-cd..."), OR the
// 2-character initials form.
func nicknameMatches(nickname, input string) bool {
	if strings.EqualFold(nickname, input) {
		return true
	}

	if dashStrippedPrefixMatches(nickname, input) {
		return true
	}

	return initialsMatch(nickname, input)
}

// dashStrippedPrefixMatches pairs each rune of input with the corresponding
// rune of the dash-stripped nickname, case-insensitively, and requires every
// pair to match - i.e. input is a case-insensitive prefix of the dashless
// nickname (e.g. "ab" matches "ab-cd..."). input longer than the dashless
// nickname can never be a prefix of it.
func dashStrippedPrefixMatches(nickname, input string) bool {
	dashless := []rune(strings.ReplaceAll(nickname, "-", ""))
	in := []rune(input)

	if len(in) > len(dashless) {
		return false
	}

	for i := range in {
		if !runeEqualFold(dashless[i], in[i]) {
			return false
		}
	}
	return true
}

func initialsMatch(nickname, input string) bool {
	in := []rune(input)
	if len(in) != 2 {
		return false
	}

	dashIndex := strings.IndexByte(nickname, '-')
	if dashIndex < 0 {
		return false
	}
	nick := []rune(nickname)
	dashRuneIndex := len([]rune(nickname[:dashIndex]))
	if dashRuneIndex+1 >= len(nick) {
		return false
	}

	adjectiveInitial := nick[0]
	nounInitial := nick[dashRuneIndex+1]

	return runeEqualFold(in[0], adjectiveInitial) && runeEqualFold(in[1], nounInitial)
}

func runeEqualFold(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}
