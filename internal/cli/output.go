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

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jeremyhahn/go-keyring/pkg/keyring"
)

// printKeyInfo renders a single KeyInfo in the selected output format.
func printKeyInfo(info *keyring.KeyInfo) {
	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(info)
		return
	}

	fmt.Printf("Name: %s\n", info.Name)
	fmt.Printf("ID:   %s\n", info.ID)
	if info.Path != "" {
		fmt.Printf("Path: %s\n", info.Path)
	}
}

// printKeyInfos renders a list of KeyInfos in the selected output format.
func printKeyInfos(infos []*keyring.KeyInfo) {
	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(infos)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\n", info.Name, info.ID)
	}
	_ = w.Flush()
}

// printMessage renders a plain status message.
func printMessage(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
