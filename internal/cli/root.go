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

// Package cli implements the keyring command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	storePath    string
	outputFormat string
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "keyring",
	Short: "keyring - passphrase-protected key management",
	Long: `keyring manages a local keychain of RSA private keys protected by a
passphrase. Keys are stored as PKCS#8 encrypted PEM blobs on a pluggable
datastore and can be created, listed, renamed, removed, exported and
imported, and used for RSA encryption and decryption of small payloads.

The keychain passphrase is read from the KEYRING_PASSPHRASE environment
variable and must be at least 20 characters.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (built-in defaults when unset)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store-path", "",
		"directory for key storage (file backend)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")

	_ = viper.BindPFlag("store_path", rootCmd.PersistentFlags().Lookup("store-path"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(keyCmd)
}

// initViper wires environment overrides for the values read through viper:
// KEYRING_PASSPHRASE and KEYRING_STORE_PATH.
func initViper() {
	viper.SetEnvPrefix("KEYRING")
	viper.AutomaticEnv()
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// printVerbose prints a message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] "+format+"\n", args...)
	}
}
