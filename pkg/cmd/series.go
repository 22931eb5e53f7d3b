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
	"math/cmplx"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tanghyd/spiir-io/pkg/ligolw"
)

var seriesCmd = &cobra.Command{
	Use:   "series [flags] input_file",
	Short: "Summarise SNR time series joined against sngl_inspiral rows.",
	Long: `Extract every per-detector complex SNR time series block from a
	LIGO_LW document, join each against its sngl_inspiral row by event
	identifier, and print a per-event summary.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		epoch := GetFlag(cmd, "epoch")
		// Parse
		doc := readDocumentFile(cmd, args[0])
		// Join series blocks against the authority table
		series, err := ligolw.ExtractSNRSeries(doc, epoch)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		printSeriesSummary(series)
	},
}

// printSeriesSummary renders one row per event, ordered by event id.
func printSeriesSummary(series map[int64]ligolw.Series) {
	ids := make([]int64, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	//
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	//
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"event_id", "name", "samples", "start", "peak |snr|", "peak time"})
	//
	for _, id := range ids {
		s := series[id]
		peak, at := peakSNR(s)
		start := 0.0
		//
		if len(s.Times) > 0 {
			start = s.Times[0]
		}
		//
		tbl.Append([]string{
			fmt.Sprintf("%d", id),
			s.Name,
			fmt.Sprintf("%d", len(s.Values)),
			fmt.Sprintf("%g", start),
			fmt.Sprintf("%.4f", peak),
			fmt.Sprintf("%g", at),
		})
	}
	//
	tbl.Render()
}

// peakSNR locates the sample with the largest complex magnitude.
func peakSNR(s ligolw.Series) (float64, float64) {
	var (
		peak float64
		at   float64
	)
	//
	for i, v := range s.Values {
		if m := cmplx.Abs(v); m > peak {
			peak, at = m, s.Times[i]
		}
	}
	//
	return peak, at
}

func init() {
	rootCmd.AddCommand(seriesCmd)
	seriesCmd.Flags().Bool("epoch", false, "offset sample times by the block epoch")
}
