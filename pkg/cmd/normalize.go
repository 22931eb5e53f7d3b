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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tanghyd/spiir-io/pkg/ligolw"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [flags] input_file output_file",
	Short: "Rewrite legacy ilwd:char identifiers as integers.",
	Long: `Read a LIGO_LW document, rewrite every legacy ilwd:char
	identifier column and param to its integer form, and write the
	result back out.  Gzipped input and output are detected by file
	extension.  Already-modern documents pass through unchanged.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		// Parse and normalize
		doc := readDocumentFile(cmd, args[0])
		// Normalize explicitly in case compatibility was disabled
		if err := ligolw.NormalizeIdentifiers(doc, newRegistry(cmd)); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		// Write out
		if err := ligolw.SaveDocument(args[1], doc); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.Debugf("wrote normalized document to %s", args[1])
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
