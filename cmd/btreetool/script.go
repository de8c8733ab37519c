// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arborist-go/obtree/internal/btree"
)

var scriptCmd = &cobra.Command{
	Use:   "script <file>",
	Short: "run a sequence of insert/erase/dump/stats/verify commands against one tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

// runScript reads newline-delimited commands from args[0] and applies them
// in order to a single int-keyed tree: "insert K", "erase K", "dump",
// "stats" and "verify" print their result to stdout as encountered.
func runScript(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	tr := btree.New[int, int](btree.CompareOrdered[int](), btree.KindFor(0), 0, nil)
	scan := bufio.NewScanner(f)
	for lineNo := 1; scan.Scan(); lineNo++ {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "insert":
			k, err := strconv.Atoi(fields[1])
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			tr.InsertUnique(k, func() int { return k })
		case "erase":
			k, err := strconv.Atoi(fields[1])
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			tr.EraseKeyUnique(k)
		case "dump":
			fmt.Println(tr.String())
		case "stats":
			printStats(tr)
		case "verify":
			if err := tr.Verify(); err != nil {
				fmt.Println("verify: " + err.Error())
			} else {
				fmt.Println("verify: ok")
			}
		default:
			return fmt.Errorf("line %d: unknown command %q", lineNo, fields[0])
		}
	}
	return scan.Err()
}
