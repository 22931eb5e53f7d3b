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

// Package postcoh defines the pipeline's coherent post-processing event
// table, which ships with neither generation of the standard table library
// and therefore has to be registered before parsing.  Two historical
// variants of the schema exist, differing in whether per-detector columns
// carry a full detector tag ("_H1") or the older bare form ("_H"); both are
// supported as alternative registrations and never merged.  Downstream
// readers key off these exact column names.
package postcoh

import "github.com/tanghyd/spiir-io/pkg/ligolw"

// TableName is the canonical name of the postcoh event table.
const TableName = "postcoh"

// Constraint is the table's uniqueness constraint.
const Constraint = "PRIMARY KEY (event_id)"

// Schema returns the modern postcoh schema: integer identifiers and
// detector-tagged per-detector columns.
func Schema() *ligolw.TableSchema {
	return ligolw.NewTableSchema(TableName, Constraint,
		ligolw.ColumnDef{Name: "process_id", Type: ligolw.TypeInt8S},
		ligolw.ColumnDef{Name: "event_id", Type: ligolw.TypeInt8S},
		ligolw.ColumnDef{Name: "end_time", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_ns", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_sngl_H1", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_ns_sngl_H1", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_sngl_L1", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_ns_sngl_L1", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_sngl_V1", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_ns_sngl_V1", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "snglsnr_H1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "snglsnr_L1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "snglsnr_V1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "coaphase_L1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "coaphase_H1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "coaphase_V1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "chisq_H1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "chisq_L1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "chisq_V1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "is_background", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "livetime", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "ifos", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "pivotal_ifo", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "tmplt_idx", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "bankid", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "pix_idx", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "cohsnr", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "nullsnr", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "cmbchisq", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spearman_pval", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "fap", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_sngl_H1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_sngl_L1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_sngl_V1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_1w_sngl_H1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_1w_sngl_L1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_1w_sngl_V1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_1d_sngl_H1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_1d_sngl_L1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_1d_sngl_V1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_2h_sngl_H1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_2h_sngl_L1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_2h_sngl_V1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_2h", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_1d", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_1w", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "skymap_fname", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "template_duration", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "mass1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "mass2", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "mchirp", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "mtotal", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin1x", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin1y", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin1z", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin2x", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin2y", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin2z", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "eta", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "f_final", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "ra", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "dec", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "deff_H1", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "deff_L1", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "deff_V1", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "rank", Type: ligolw.TypeReal8},
	)
}

// LegacySchema returns the older generation of the postcoh schema:
// string-encoded identifiers and bare per-detector suffixes.
func LegacySchema() *ligolw.TableSchema {
	return ligolw.NewTableSchema(TableName, Constraint,
		ligolw.ColumnDef{Name: "process_id", Type: ligolw.TypeILWDChar},
		ligolw.ColumnDef{Name: "event_id", Type: ligolw.TypeILWDChar},
		ligolw.ColumnDef{Name: "end_time", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_ns", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_L", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_ns_L", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_H", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_ns_H", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_V", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "end_time_ns_V", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "snglsnr_L", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "snglsnr_H", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "snglsnr_V", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "coaphase_L", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "coaphase_H", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "coaphase_V", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "chisq_L", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "chisq_H", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "chisq_V", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "is_background", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "livetime", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "ifos", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "pivotal_ifo", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "tmplt_idx", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "bankid", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "pix_idx", Type: ligolw.TypeInt4S},
		ligolw.ColumnDef{Name: "cohsnr", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "nullsnr", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "cmbchisq", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spearman_pval", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "fap", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_h", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_l", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_v", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_h_1w", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_l_1w", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_v_1w", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_h_1d", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_l_1d", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_v_1d", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_h_2h", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_l_2h", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_v_2h", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_2h", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_1d", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "far_1w", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "skymap_fname", Type: ligolw.TypeLString},
		ligolw.ColumnDef{Name: "template_duration", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "mass1", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "mass2", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "mchirp", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "mtotal", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin1x", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin1y", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin1z", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin2x", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin2y", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "spin2z", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "eta", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "f_final", Type: ligolw.TypeReal4},
		ligolw.ColumnDef{Name: "ra", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "dec", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "deff_L", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "deff_H", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "deff_V", Type: ligolw.TypeReal8},
		ligolw.ColumnDef{Name: "rank", Type: ligolw.TypeReal8},
	)
}

// Register adds the modern postcoh schema to the given registry.
// Registration overwrites any previous entry, so repeated registration from
// independent call sites converges on the same effective schema.
func Register(reg *ligolw.Registry) {
	reg.Register(Schema())
}

// RegisterLegacy adds the legacy postcoh schema to the given registry, for
// documents written by the older pipeline generation.
func RegisterLegacy(reg *ligolw.Registry) {
	reg.Register(LegacySchema())
}

// End returns the coalescence time of a postcoh row as a GPS timestamp
// assembled from the end_time / end_time_ns column pair, or false when
// either half is unpopulated.
func End(row *ligolw.Row) (ligolw.GPSTime, bool) {
	sec, okSec := row.Int64("end_time")
	ns, okNS := row.Int64("end_time_ns")
	//
	if !okSec && !okNS {
		return ligolw.GPSTime{}, false
	}
	//
	return ligolw.GPSTime{Seconds: sec, Nanoseconds: ns}, true
}

// SetEnd stores a coalescence time into the end_time / end_time_ns column
// pair; a nil timestamp depopulates both halves.
func SetEnd(row *ligolw.Row, t *ligolw.GPSTime) error {
	if t == nil {
		if err := row.SetValue("end_time", nil); err != nil {
			return err
		}
		//
		return row.SetValue("end_time_ns", nil)
	}
	//
	if err := row.SetValue("end_time", int32(t.Seconds)); err != nil {
		return err
	}
	//
	return row.SetValue("end_time_ns", int32(t.Nanoseconds))
}
