// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keyring.
//
// go-keyring is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package names implements the key name policy: a name is valid iff it is
// non-empty and byte-equal to the filesystem-sanitized form of its
// whitespace-trimmed self. Valid names map bijectively to datastore keys by
// prepending a slash.
package names

import (
	"regexp"
	"strings"
)

// illegalRunes are characters stripped by Sanitize: path separators and the
// characters rejected by common filesystems.
const illegalRunes = `/\?<>:*|"`

// reservedNameRegex matches Windows reserved device names, optionally with
// an extension, case-insensitively.
var reservedNameRegex = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[1-9]|lpt[1-9])(\..*)?$`)

// Sanitize returns the filesystem-safe form of name: control characters and
// illegal filesystem characters are stripped, trailing dots and spaces are
// trimmed, and reserved device names collapse to the empty string.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			continue
		}
		if strings.ContainsRune(illegalRunes, r) {
			continue
		}
		b.WriteRune(r)
	}

	out := strings.TrimRight(b.String(), ". ")
	if reservedNameRegex.MatchString(out) {
		return ""
	}
	return out
}

// Validate reports whether name is a valid key name: non-empty and
// byte-equal to the sanitized form of its whitespace-trimmed self. Names
// containing path separators, control characters, surrounding whitespace, or
// reserved device names are rejected.
func Validate(name string) bool {
	if name == "" {
		return false
	}
	return name == Sanitize(strings.TrimSpace(name))
}

// ToDsKey translates a validated key name to its datastore key.
func ToDsKey(name string) string {
	return "/" + name
}

// FromDsKey translates a datastore key back to its key name.
func FromDsKey(key string) string {
	return strings.TrimPrefix(key, "/")
}
