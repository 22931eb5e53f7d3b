// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tanghyd/spiir-io/pkg/ligolw"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] input_file",
	Short: "Print the element structure of a LIGO_LW document.",
	Long: `Print the containers, tables, params and array blocks of a
	LIGO_LW document, with row and dimension counts, without decoding
	any series.  Useful for working out which schema generation a file
	was written with.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		// Report file size up front
		if info, err := os.Stat(args[0]); err == nil {
			fmt.Printf("%s (%s)\n", args[0], humanize.Bytes(uint64(info.Size())))
		}
		//
		doc := readDocumentFile(cmd, args[0])
		//
		width := 80
		if w, _, err := term.GetSize(0); err == nil {
			width = w
		}
		//
		for _, child := range doc.Children {
			printNode(child, 0, width)
		}
	},
}

// printNode writes one line per element, truncated to the terminal width.
func printNode(node ligolw.Node, depth int, width int) {
	var line string
	//
	switch n := node.(type) {
	case *ligolw.Container:
		line = fmt.Sprintf("LIGO_LW %s", n.Name)
	case *ligolw.Table:
		names := make([]string, len(n.Columns))
		for i, col := range n.Columns {
			names[i] = col.BareName()
		}
		//
		line = fmt.Sprintf("Table %s (%d rows): %s", n.Name, len(n.Rows), strings.Join(names, ", "))
	case *ligolw.Param:
		line = fmt.Sprintf("Param %s = %v", n.Name, n.Value)
	case *ligolw.Array:
		dims := make([]string, len(n.Dims))
		for i, dim := range n.Dims {
			dims[i] = fmt.Sprintf("%d", dim.N)
		}
		//
		line = fmt.Sprintf("Array %s [%s] %s", n.Name, strings.Join(dims, "x"), n.Type)
	case *ligolw.Time:
		line = fmt.Sprintf("Time %s = %s", n.Name, n.Value)
	default:
		line = node.Tag()
	}
	//
	line = strings.Repeat("  ", depth) + line
	//
	if len(line) > width {
		line = line[:width]
	}
	//
	fmt.Println(line)
	//
	if container, ok := node.(*ligolw.Container); ok {
		for _, child := range container.Children {
			printNode(child, depth+1, width)
		}
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
