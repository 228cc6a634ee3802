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
	"context"
	"encoding/base64"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-keyring/pkg/logging"
)

var (
	keySize      int
	keyType      string
	exportPass   string
	importPass   string
	importFile   string
	base64Output bool
)

// keyCmd groups the key lifecycle subcommands
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage keychain keys",
	Long:  `Create, list, rename, remove, export, import and use keychain keys.`,
}

var keyCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kc, ds, err := openKeychain()
		if err != nil {
			handleError(err)
		}
		defer ds.Close()
		defer kc.Close()

		info, err := kc.CreateKey(opContext(), args[0], keyType, keySize)
		if err != nil {
			handleError(err)
		}
		printKeyInfo(info)
	},
}

var keyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all keys",
	Run: func(cmd *cobra.Command, args []string) {
		kc, ds, err := openKeychain()
		if err != nil {
			handleError(err)
		}
		defer ds.Close()
		defer kc.Close()

		infos, err := kc.ListKeys(opContext())
		if err != nil {
			handleError(err)
		}
		printKeyInfos(infos)
	},
}

var keyRenameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a key",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kc, ds, err := openKeychain()
		if err != nil {
			handleError(err)
		}
		defer ds.Close()
		defer kc.Close()

		info, err := kc.RenameKey(opContext(), args[0], args[1])
		if err != nil {
			handleError(err)
		}
		printKeyInfo(info)
	},
}

var keyRemoveCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a key",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kc, ds, err := openKeychain()
		if err != nil {
			handleError(err)
		}
		defer ds.Close()
		defer kc.Close()

		if err := kc.RemoveKey(opContext(), args[0]); err != nil {
			handleError(err)
		}
		printMessage("Key '%s' removed", args[0])
	},
}

var keyExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a key as password-protected PKCS#8 PEM",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kc, ds, err := openKeychain()
		if err != nil {
			handleError(err)
		}
		defer ds.Close()
		defer kc.Close()

		pem, err := kc.ExportKey(opContext(), args[0], exportPass)
		if err != nil {
			handleError(err)
		}
		cmd.OutOrStdout().Write([]byte(pem))
	},
}

var keyImportCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Import a password-protected PKCS#8 PEM",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pemData, err := os.ReadFile(importFile)
		if err != nil {
			handleError(err)
		}

		kc, ds, err := openKeychain()
		if err != nil {
			handleError(err)
		}
		defer ds.Close()
		defer kc.Close()

		info, err := kc.ImportKey(opContext(), args[0], string(pemData), importPass)
		if err != nil {
			handleError(err)
		}
		printKeyInfo(info)
	},
}

var keyEncryptCmd = &cobra.Command{
	Use:   "encrypt <name> <file>",
	Short: "Encrypt a small payload to the named keypair",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[1])
		if err != nil {
			handleError(err)
		}

		kc, ds, err := openKeychain()
		if err != nil {
			handleError(err)
		}
		defer ds.Close()
		defer kc.Close()

		result, err := kc.Encrypt(opContext(), args[0], data)
		if err != nil {
			handleError(err)
		}
		if base64Output {
			printMessage("%s", base64.StdEncoding.EncodeToString(result.CipherData))
			return
		}
		cmd.OutOrStdout().Write(result.CipherData)
	},
}

var keyDecryptCmd = &cobra.Command{
	Use:   "decrypt <name> <file>",
	Short: "Decrypt a payload with the named private key",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[1])
		if err != nil {
			handleError(err)
		}

		kc, ds, err := openKeychain()
		if err != nil {
			handleError(err)
		}
		defer ds.Close()
		defer kc.Close()

		plaintext, err := kc.Decrypt(opContext(), args[0], data)
		if err != nil {
			handleError(err)
		}
		cmd.OutOrStdout().Write(plaintext)
	},
}

func init() {
	keyCreateCmd.Flags().StringVar(&keyType, "type", "rsa", "key type")
	keyCreateCmd.Flags().IntVar(&keySize, "size", 2048, "RSA key size in bits")

	keyExportCmd.Flags().StringVar(&exportPass, "password", "", "export password (required)")
	_ = keyExportCmd.MarkFlagRequired("password")

	keyImportCmd.Flags().StringVar(&importFile, "file", "", "PEM file to import (required)")
	keyImportCmd.Flags().StringVar(&importPass, "password", "", "password protecting the PEM (required)")
	_ = keyImportCmd.MarkFlagRequired("file")
	_ = keyImportCmd.MarkFlagRequired("password")

	keyEncryptCmd.Flags().BoolVar(&base64Output, "base64", false, "base64-encode the ciphertext")

	keyCmd.AddCommand(keyCreateCmd)
	keyCmd.AddCommand(keyListCmd)
	keyCmd.AddCommand(keyRenameCmd)
	keyCmd.AddCommand(keyRemoveCmd)
	keyCmd.AddCommand(keyExportCmd)
	keyCmd.AddCommand(keyImportCmd)
	keyCmd.AddCommand(keyEncryptCmd)
	keyCmd.AddCommand(keyDecryptCmd)
}

// opContext returns the base context for a CLI operation with a fresh
// operation ID attached.
func opContext() context.Context {
	return logging.BeginOperation(context.Background())
}
