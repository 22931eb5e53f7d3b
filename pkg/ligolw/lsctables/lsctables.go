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

// Package lsctables defines the schemas of the standard LSC event tables
// this pipeline consumes, in their modern (integer identifier) form.  The
// definitions drive the reader's table dispatch and the column-name
// reconciliation step of identifier normalization; downstream readers key
// off these column names, so they must not drift.
package lsctables

import "github.com/tanghyd/spiir-io/pkg/ligolw"

// SnglInspiralTableName is the canonical name of the single-detector
// inspiral event table.
const SnglInspiralTableName = "sngl_inspiral"

// SnglInspiralSchema returns the schema of the sngl_inspiral table, one row
// per candidate event per detector.
func SnglInspiralSchema() *ligolw.TableSchema {
	return ligolw.NewTableSchema(SnglInspiralTableName, "PRIMARY KEY (event_id)",
		ligolw.ColumnDef{Name: "process_id", Type: ligolw.TypeInt8S},
		ligolw.ColumnDef{Name: "ifo", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "search", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "channel", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "end_time", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_ns", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_gmst", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "impulse_time", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "impulse_time_ns", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "template_duration", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "event_duration", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "amplitude", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "eff_distance", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "coa_phase", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "mass1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "mass2", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "mchirp", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "mtotal", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "eta", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "kappa", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "chi", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "tau0", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "tau2", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "tau3", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "tau4", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "tau5", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "ttotal", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "psi0", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "psi3", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "alpha", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "alpha1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "alpha2", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "alpha3", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "alpha4", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "alpha5", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "alpha6", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "beta", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "f_final", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "snr", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "chisq", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "chisq_dof", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "bank_chisq", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "bank_chisq_dof", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "cont_chisq", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "cont_chisq_dof", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "sigmasq", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "rsqveto_duration", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "Gamma0", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "Gamma1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "Gamma2", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "Gamma3", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "Gamma4", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "Gamma5", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "Gamma6", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "Gamma7", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "Gamma8", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "Gamma9", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin1x", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin1y", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin1z", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin2x", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin2y", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin2z", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "event_id", Type: ligolw.TypeInt8S},
	)
}

// SnglInspiralLegacySchema returns the older generation of the
// sngl_inspiral schema, whose identifiers are string-encoded.
func SnglInspiralLegacySchema() *ligolw.TableSchema {
	s := SnglInspiralSchema()
	//
	columns := make([]ligolw.ColumnDef, len(s.Columns))
	copy(columns, s.Columns)
	//
	for i, c := range columns {
		if c.Name == "process_id" || c.Name == "event_id" {
			columns[i].Type = ligolw.TypeILWDChar
		}
	}
	//
	return ligolw.NewTableSchema(s.Name, s.Constraint, columns...)
}

// ProcessSchema returns the schema of the process provenance table.
func ProcessSchema() *ligolw.TableSchema {
	return ligolw.NewTableSchema("process", "PRIMARY KEY (process_id)",
		ligolw.ColumnDef{Name: "program", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "version", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "cvs_repository", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "cvs_entry_time", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "comment", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "is_online", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "node", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "username", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "unix_procid", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "start_time", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "jobid", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "domain", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "ifos", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "process_id", Type: ligolw.TypeInt8S},
	)
}

// ProcessParamsSchema returns the schema of the process_params table.
func ProcessParamsSchema() *ligolw.TableSchema {
	return ligolw.NewTableSchema("process_params", "",
		ligolw.ColumnDef{Name: "program", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "process_id", Type: ligolw.TypeInt8S},
		ligolw.ColumnDef{Name: "param", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "type", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "value", Type: ligolw.TypeLString},
	)
}

// SearchSummarySchema returns the schema of the search_summary table.
func SearchSummarySchema() *ligolw.TableSchema {
	return ligolw.NewTableSchema("search_summary", "",
		ligolw.ColumnDef{Name: "process_id", Type: ligolw.TypeInt8S},
		ligolw.ColumnDef{Name: "shared_object", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "lalwrapper_cvs_tag", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "lal_cvs_tag", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "comment", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "ifos", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "in_start_time", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "in_start_time_ns", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "in_end_time", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "in_end_time_ns", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "out_start_time", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "out_start_time_ns", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "out_end_time", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "out_end_time_ns", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "nevents", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "nnodes", Type: ligolw.TypeInt4S},
	)
}

// NewRegistry returns a registry preloaded with the standard table schemas.
// Callers extend it with pipeline-specific tables (e.g. postcoh) before
// parsing begins.
func NewRegistry() *ligolw.Registry {
	reg := ligolw.NewRegistry()
	//
	reg.Register(SnglInspiralSchema())
	reg.Register(ProcessSchema())
	reg.Register(ProcessParamsSchema())
	reg.Register(SearchSummarySchema())
	//
	return reg
}

// NewEmptySnglInspiral constructs a single-row sngl_inspiral table whose
// every cell is populated with its type's null value.  This avoids errors
// when building tables containing columns the caller does not care about but
// which still need populating; note the process and event identifiers are
// zero and should normally be overwritten.
func NewEmptySnglInspiral(legacy bool) (*ligolw.Table, *ligolw.Row, error) {
	schema := SnglInspiralSchema()
	if legacy {
		schema = SnglInspiralLegacySchema()
	}
	//
	table := schema.NewTable()
	//
	row, err := ligolw.NewEmptyRow(table)
	if err != nil {
		return nil, nil, err
	}
	//
	table.AppendRow(row)
	//
	return table, row, nil
}
