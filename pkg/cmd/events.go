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
	"encoding/csv"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tanghyd/spiir-io/pkg/ligolw"
	"github.com/tanghyd/spiir-io/pkg/ligolw/postcoh"
)

var eventsCmd = &cobra.Command{
	Use:   "events [flags] input_file(s)",
	Short: "Extract postcoh event rows across one or more documents.",
	Long: `Load the postcoh table from each given document into a single
	columnar event table and print it.  Legacy documents are normalized
	on the way in, so both schema generations land in one table.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		columns := GetStringArray(cmd, "columns")
		asCsv := GetFlag(cmd, "csv")
		// Assemble load options
		var opts []postcoh.LoadOption
		//
		if len(columns) > 0 {
			opts = append(opts, postcoh.WithColumns(columns...))
		}
		//
		if GetFlag(cmd, "legacy") {
			opts = append(opts, postcoh.WithLegacySchema())
		}
		// Load everything
		events, err := postcoh.Load(args, opts...)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		if asCsv {
			printEventsCsv(events)
		} else {
			printEventsTable(events)
		}
	},
}

func printEventsTable(events *postcoh.EventTable) {
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader(eventHeader(events))
	//
	for i := 0; i < events.Len(); i++ {
		tbl.Append(eventRecord(events, i))
	}
	//
	tbl.Render()
}

func printEventsCsv(events *postcoh.EventTable) {
	out := csv.NewWriter(os.Stdout)
	// Error check deferred to Flush
	_ = out.Write(eventHeader(events))
	//
	for i := 0; i < events.Len(); i++ {
		_ = out.Write(eventRecord(events, i))
	}
	//
	out.Flush()
	//
	if err := out.Error(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

func eventHeader(events *postcoh.EventTable) []string {
	header := make([]string, len(events.Columns))
	for i, col := range events.Columns {
		header[i] = col.Name
	}
	//
	return header
}

// eventRecord renders row i using the declared column types, with empty
// strings for unpopulated cells.
func eventRecord(events *postcoh.EventTable, i int) []string {
	record := make([]string, len(events.Columns))
	//
	for j, col := range events.Columns {
		cells, _ := events.Column(col.Name)
		//
		if cells[i] == nil {
			continue
		}
		//
		text, err := ligolw.EncodeValue(col.Type, cells[i])
		if err != nil {
			text = fmt.Sprintf("%v", cells[i])
		}
		//
		record[j] = text
	}
	//
	return record
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().StringArray("columns", nil, "restrict output to the given columns")
	eventsCmd.Flags().Bool("csv", false, "write comma separated values instead of a table")
}
