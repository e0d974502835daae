// Package versionid mints and encodes the 128-bit identifiers that name a
// Version. It plays the role the teacher's node package plays for git blobs:
// a small, dependency-light value type with no behaviour beyond encode and
// decode.
package versionid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// ID is an opaque 128-bit version identifier. The zero value is never
// produced by New and should be treated as invalid.
type ID [16]byte

// New mints a fresh identifier from a cryptographically-strong random
// source. Callers rely only on the negligible collision probability of a
// full 128-bit draw; there is no coordination between repositories.
func New() (ID, error) {
	var id ID
	if _, err := rand.Read(id[:]); err != nil {
		return ID{}, fmt.Errorf("versionid: reading random bytes: %w", err)
	}
	return id, nil
}

// MustNew is New with a panic on the (practically unreachable) failure of
// the system random source.
func MustNew() ID {
	id, err := New()
	if err != nil {
		panic(err)
	}
	return id
}

// String is the Base58 display form, suitable for typing at a prompt and
// for the "id" field of the persisted data.json schema.
func (id ID) String() string {
	return base58.Encode(id[:])
}

// FromBase58 decodes a Base58 string back into an ID. It reports false if s
// does not decode to exactly 16 bytes.
func FromBase58(s string) (ID, bool) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return ID{}, false
	}
	return bytesToID(decoded)
}

// fileNameEncoding is the lowercase, unpadded variant of RFC 4648 base32.
// Unlike Base58, base32's alphabet never reuses a letter across case, so
// lower-casing it cannot collide two distinct identifiers - important
// because blob file names must stay distinct on case-insensitive
// filesystems (spec.md's "distinct VersionIds must produce distinct
// file-name forms" invariant).
var fileNameEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// ToFileName renders the filesystem-safe short form used to name blob
// files on disk: <form>_content, <form>_preview.
func (id ID) ToFileName() string {
	return strings.ToLower(fileNameEncoding.EncodeToString(id[:]))
}

// FromFileName decodes a file-name-form string back into an ID.
func FromFileName(s string) (ID, bool) {
	decoded, err := fileNameEncoding.DecodeString(strings.ToUpper(s))
	if err != nil {
		return ID{}, false
	}
	return bytesToID(decoded)
}

func bytesToID(b []byte) (ID, bool) {
	if len(b) != 16 {
		return ID{}, false
	}
	var id ID
	copy(id[:], b)
	return id, true
}

// MarshalText implements encoding.TextMarshaler so an ID can be used
// directly as a map key or struct field in JSON, rendered in Base58.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	decoded, ok := FromBase58(string(text))
	if !ok {
		return fmt.Errorf("versionid: invalid base58 identifier %q", text)
	}
	*id = decoded
	return nil
}
