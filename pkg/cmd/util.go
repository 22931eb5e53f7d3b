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
	"github.com/tanghyd/spiir-io/pkg/ligolw/lsctables"
	"github.com/tanghyd/spiir-io/pkg/ligolw/postcoh"
)

// GetFlag gets an expected boolean flag, or panics if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string flag, or panics if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetStringArray gets an expected string array flag, or panics if an error
// arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// configureLogging applies the persistent verbosity flag.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// newRegistry builds the registry used by every command: the standard LSC
// tables plus whichever postcoh schema generation was requested.
func newRegistry(cmd *cobra.Command) *ligolw.Registry {
	reg := lsctables.NewRegistry()
	//
	if GetFlag(cmd, "legacy") {
		postcoh.RegisterLegacy(reg)
	} else {
		postcoh.Register(reg)
	}
	//
	return reg
}

// readDocumentFile parses one document honouring the global flags, exiting
// with a diagnostic on failure.
func readDocumentFile(cmd *cobra.Command, path string) *ligolw.Document {
	opts := []ligolw.ReadOption{ligolw.WithRegistry(newRegistry(cmd))}
	//
	if !GetFlag(cmd, "no-compat") {
		opts = append(opts, ligolw.WithILWDCharCompat())
	}
	//
	doc, err := ligolw.LoadDocument(path, opts...)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return doc
}
