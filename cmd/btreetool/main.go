// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command btreetool is a small introspection tool for internal/btree,
// mirroring the role cmd/pebble plays for the on-disk engine: build a tree,
// dump its node structure, tabulate its shape, and verify its invariants.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "btreetool [command] (flags)",
	Short: "internal/btree introspection tool",
	Long:  ``,
}

func main() {
	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(buildCmd, scriptCmd)

	buildCmd.Flags().IntVar(&buildN, "n", 100, "number of random unique int keys to insert")
	buildCmd.Flags().Int64Var(&buildSeed, "seed", 1, "random seed")
	buildCmd.Flags().IntVar(&buildTargetNodeSize, "target-node-size", 0,
		"node byte-size budget (0 selects the default)")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
