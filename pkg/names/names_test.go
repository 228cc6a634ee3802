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

package names

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "rsa-key", true},
		{"alphanumeric", "key123", true},
		{"underscores", "my_key", true},
		{"dots inside", "my.key", true},
		{"null literal is a normal string", "null", true},
		{"undefined literal is a normal string", "undefined", true},
		{"empty", "", false},
		{"whitespace only", "    ", false},
		{"leading space", " key", false},
		{"trailing space", "key ", false},
		{"path traversal", "../../nasty", false},
		{"forward slash", "a/b", false},
		{"backslash", `a\b`, false},
		{"colon", "a:b", false},
		{"pipe", "a|b", false},
		{"question mark", "a?b", false},
		{"angle brackets", "a<b>", false},
		{"double quote", `a"b`, false},
		{"control char", "a\x01b", false},
		{"newline", "a\nb", false},
		{"trailing dot", "key.", false},
		{"reserved device name", "CON", false},
		{"reserved device name lowercase", "nul", false},
		{"reserved with extension", "com1.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.input); got != tt.valid {
				t.Errorf("Validate(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean name unchanged", "rsa-key", "rsa-key"},
		{"slashes stripped", "../../nasty", "....nasty"},
		{"control chars stripped", "a\x00b\x1fc", "abc"},
		{"trailing dots trimmed", "name...", "name"},
		{"trailing spaces trimmed", "name  ", "name"},
		{"reserved collapses", "NUL", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDsKeyRoundTrip(t *testing.T) {
	names := []string{"rsa-key", "a", "my_key.v2"}
	for _, name := range names {
		key := ToDsKey(name)
		if key != "/"+name {
			t.Errorf("ToDsKey(%q) = %q, want %q", name, key, "/"+name)
		}
		if got := FromDsKey(key); got != name {
			t.Errorf("FromDsKey(%q) = %q, want %q", key, got, name)
		}
	}
}
