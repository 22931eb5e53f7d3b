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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

const xmlHeader = `<?xml version='1.0' encoding='utf-8'?>
<!DOCTYPE LIGO_LW SYSTEM "http://ldas-sw.ligo.caltech.edu/doc/ligolwAPI/html/ligolw_dtd.txt">
`

// WriteDocument serializes a document tree back to LIGO_LW XML.  Only the
// modern representation is emitted; writing legacy-format documents is not
// supported.
func WriteDocument(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	//
	if _, err := bw.WriteString(xmlHeader); err != nil {
		return errors.Wrap(err, "writing document header")
	}
	//
	for _, n := range doc.Children {
		if err := writeNode(bw, n, 0); err != nil {
			return err
		}
	}
	//
	return errors.Wrap(bw.Flush(), "flushing document")
}

// SaveDocument serializes a document to a file, gzip-compressing when the
// path carries a ".gz" suffix.
func SaveDocument(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	//
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		//
		if err := WriteDocument(gz, doc); err != nil {
			return err
		}
		//
		return errors.Wrapf(gz.Close(), "closing gzip stream %s", path)
	}
	//
	return WriteDocument(f, doc)
}

func writeNode(w *bufio.Writer, n Node, depth int) error {
	switch e := n.(type) {
	case *Container:
		return writeContainer(w, e, depth)
	case *Table:
		return writeTable(w, e, depth)
	case *Param:
		return writeParam(w, e, depth)
	case *Array:
		return writeArray(w, e, depth)
	case *Time:
		indent(w, depth)
		fmt.Fprintf(w, "<Time Type=\"GPS\" Name=\"%s\">%s</Time>\n", escape(e.Name), e.Value)
		return nil
	}
	//
	return &FormatError{Msg: fmt.Sprintf("cannot serialize node %T", n)}
}

func writeContainer(w *bufio.Writer, c *Container, depth int) error {
	indent(w, depth)
	//
	if c.Name != "" {
		fmt.Fprintf(w, "<LIGO_LW Name=\"%s\">\n", escape(c.Name))
	} else {
		w.WriteString("<LIGO_LW>\n")
	}
	//
	for _, n := range c.Children {
		if err := writeNode(w, n, depth+1); err != nil {
			return err
		}
	}
	//
	indent(w, depth)
	w.WriteString("</LIGO_LW>\n")
	//
	return nil
}

func writeTable(w *bufio.Writer, t *Table, depth int) error {
	indent(w, depth)
	fmt.Fprintf(w, "<Table Name=\"%s:table\">\n", escape(t.Name))
	//
	for _, c := range t.Columns {
		indent(w, depth+1)
		//
		if c.Unit != "" {
			fmt.Fprintf(w, "<Column Name=\"%s\" Type=\"%s\" Unit=\"%s\"/>\n", escape(c.Name), c.Type, escape(c.Unit))
		} else {
			fmt.Fprintf(w, "<Column Name=\"%s\" Type=\"%s\"/>\n", escape(c.Name), c.Type)
		}
	}
	//
	indent(w, depth+1)
	fmt.Fprintf(w, "<Stream Name=\"%s:table\" Type=\"Local\" Delimiter=\",\">\n", escape(t.Name))
	//
	for _, row := range t.Rows {
		indent(w, depth+2)
		//
		for _, col := range t.Columns {
			text, err := encodeCell(col, row)
			if err != nil {
				return err
			}
			// Every cell is delimiter-terminated, so unpopulated
			// trailing cells survive the round trip.
			w.WriteString(text)
			w.WriteByte(',')
		}
		//
		w.WriteByte('\n')
	}
	//
	indent(w, depth+1)
	w.WriteString("</Stream>\n")
	indent(w, depth)
	w.WriteString("</Table>\n")
	//
	return nil
}

// encodeCell renders one row cell for the table stream, quoting string
// types and leaving unpopulated cells empty.
func encodeCell(col *Column, row *Row) (string, error) {
	name := col.BareName()
	//
	if !row.Has(name) {
		return "", nil
	}
	//
	text, err := EncodeValue(col.Type, row.Value(name))
	if err != nil {
		return "", err
	}
	//
	switch col.Type {
	case TypeLString, TypeILWDChar:
		return quoteCell(text), nil
	}
	//
	return text, nil
}

func quoteCell(s string) string {
	var sb strings.Builder
	//
	sb.WriteByte('"')
	//
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		//
		sb.WriteRune(r)
	}
	//
	sb.WriteByte('"')
	//
	return escapeText(sb.String())
}

func writeParam(w *bufio.Writer, p *Param, depth int) error {
	indent(w, depth)
	//
	unit := ""
	if p.Unit != "" {
		unit = fmt.Sprintf(" Unit=\"%s\"", escape(p.Unit))
	}
	//
	if p.Value == nil {
		fmt.Fprintf(w, "<Param Name=\"%s\" Type=\"%s\"%s/>\n", escape(p.Name), p.Type, unit)
		return nil
	}
	//
	text, err := EncodeValue(p.Type, p.Value)
	if err != nil {
		return err
	}
	//
	fmt.Fprintf(w, "<Param Name=\"%s\" Type=\"%s\"%s>%s</Param>\n", escape(p.Name), p.Type, unit, escapeText(text))
	//
	return nil
}

func writeArray(w *bufio.Writer, a *Array, depth int) error {
	indent(w, depth)
	fmt.Fprintf(w, "<Array Name=\"%s\" Type=\"%s\" Unit=\"%s\">\n", escape(a.Name), a.Type, escape(a.Unit))
	//
	for _, d := range a.Dims {
		indent(w, depth+1)
		w.WriteString("<Dim")
		//
		if d.Name != "" {
			fmt.Fprintf(w, " Name=\"%s\"", escape(d.Name))
		}
		//
		if d.Unit != "" {
			fmt.Fprintf(w, " Unit=\"%s\"", escape(d.Unit))
		}
		//
		if d.HasStart {
			fmt.Fprintf(w, " Start=\"%s\"", formatFloat(d.Start))
		}
		//
		if d.HasScale {
			fmt.Fprintf(w, " Scale=\"%s\"", formatFloat(d.Scale))
		}
		//
		fmt.Fprintf(w, ">%d</Dim>\n", d.N)
	}
	//
	indent(w, depth+1)
	w.WriteString("<Stream Type=\"Local\" Delimiter=\" \">\n")
	// One sample per line.
	stride := a.NumComponents()
	//
	for i := 0; i < len(a.Flat); i += stride {
		indent(w, depth+2)
		//
		for j := 0; j < stride && i+j < len(a.Flat); j++ {
			if j > 0 {
				w.WriteByte(' ')
			}
			//
			w.WriteString(formatFloat(a.Flat[i+j]))
		}
		//
		w.WriteByte('\n')
	}
	//
	indent(w, depth+1)
	w.WriteString("</Stream>\n")
	indent(w, depth)
	w.WriteString("</Array>\n")
	//
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func indent(w *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteByte('\t')
	}
}

// escape substitutes the XML character entities for attribute values, which
// are emitted inside double quotes.
func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// escapeText substitutes the XML character entities for character data,
// where literal double quotes are legal (and conventional for delimited
// streams).
func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
