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
package ligolw

import (
	"fmt"
	"strconv"
	"strings"
)

// GPSTime is an absolute GPS timestamp split into integer seconds and
// nanoseconds, as used by Time elements and by the coarse/fine timestamp
// column pairs of event tables.
type GPSTime struct {
	Seconds     int64
	Nanoseconds int64
}

// ParseGPSTime parses a decimal GPS timestamp such as "1187008882.42" without
// losing sub-second precision to a float round trip.
func ParseGPSTime(s string) (GPSTime, error) {
	var (
		t    GPSTime
		err  error
		neg  bool
		text = strings.TrimSpace(s)
	)
	//
	if strings.HasPrefix(text, "-") {
		neg = true
		text = text[1:]
	}
	//
	sec, frac, _ := strings.Cut(text, ".")
	//
	if t.Seconds, err = strconv.ParseInt(sec, 10, 64); err != nil {
		return GPSTime{}, &FormatError{Element: "Time", Msg: fmt.Sprintf("invalid GPS time %q", s)}
	}
	//
	if frac != "" {
		// Normalise the fractional part to exactly nine digits.
		if len(frac) > 9 {
			frac = frac[:9]
		} else {
			frac += strings.Repeat("0", 9-len(frac))
		}
		//
		if t.Nanoseconds, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return GPSTime{}, &FormatError{Element: "Time", Msg: fmt.Sprintf("invalid GPS time %q", s)}
		}
	}
	//
	if neg {
		t.Seconds = -t.Seconds
		t.Nanoseconds = -t.Nanoseconds
	}
	//
	return t, nil
}

// Float converts the timestamp to floating-point seconds.  Precision below a
// few hundred nanoseconds is lost, which is acceptable for constructing
// series time indices.
func (t GPSTime) Float() float64 {
	return float64(t.Seconds) + float64(t.Nanoseconds)*1e-9
}

// String renders the timestamp in the decimal form used by Time elements.
func (t GPSTime) String() string {
	if t.Nanoseconds == 0 {
		return strconv.FormatInt(t.Seconds, 10)
	}
	//
	ns := t.Nanoseconds
	if ns < 0 {
		ns = -ns
	}
	//
	return fmt.Sprintf("%d.%s", t.Seconds, strings.TrimRight(fmt.Sprintf("%09d", ns), "0"))
}
