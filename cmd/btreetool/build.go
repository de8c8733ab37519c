// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/arborist-go/obtree/internal/btree"
)

var (
	buildN              int
	buildSeed           int64
	buildTargetNodeSize int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "build a tree from random unique keys and report its shape",
	RunE:  runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	rng := rand.New(rand.NewSource(buildSeed))
	tr := btree.New[int, int](btree.CompareOrdered[int](), btree.KindFor(0), buildTargetNodeSize, nil)
	for _, k := range rng.Perm(buildN) {
		tr.InsertUnique(k, func() int { return k })
	}

	fmt.Println(tr.String())
	fmt.Println()
	printStats(tr)

	if err := tr.Verify(); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	fmt.Println("verify: ok")
	return nil
}

func printStats(tr *btree.Tree[int, int]) {
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"metric", "value"})
	tbl.Append([]string{"len", strconv.Itoa(tr.Len())})
	tbl.Append([]string{"height", strconv.Itoa(tr.Height())})
	tbl.Append([]string{"leaf_nodes", strconv.Itoa(tr.LeafNodes())})
	tbl.Append([]string{"internal_nodes", strconv.Itoa(tr.InternalNodes())})
	tbl.Append([]string{"nodes", strconv.Itoa(tr.Nodes())})
	tbl.Append([]string{"bytes_used", strconv.FormatInt(tr.BytesUsed(), 10)})
	tbl.Append([]string{"fullness", strconv.FormatFloat(tr.Fullness(), 'f', 3, 64)})
	tbl.Append([]string{"overhead", strconv.FormatInt(tr.Overhead(), 10)})
	tbl.Render()
}
