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
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ReadOption configures document parsing.
type ReadOption func(*readConfig)

type readConfig struct {
	registry   *Registry
	ilwdCompat bool
}

// WithRegistry supplies the schema registry consulted on every table start
// element.  Tables whose name is registered are parsed carrying their
// schema; unregistered tables take the generic path.
func WithRegistry(reg *Registry) ReadOption {
	return func(c *readConfig) { c.registry = reg }
}

// WithILWDCharCompat enables legacy-identifier compatibility: immediately
// after parsing, the document is normalized in place so that callers only
// ever observe integer identifiers.
func WithILWDCharCompat() ReadOption {
	return func(c *readConfig) { c.ilwdCompat = true }
}

// LoadDocument reads a LIGO_LW document from a file, transparently
// decompressing gzipped input (as produced by pipeline archival).
func LoadDocument(path string, opts ...ReadOption) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	//
	doc, err := ReadDocument(f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	//
	return doc, nil
}

// ReadDocument parses a LIGO_LW document from the given reader, applying any
// configured registry dispatch and compatibility normalization.  Gzipped
// input is detected by its magic bytes and unwrapped.
func ReadDocument(r io.Reader, opts ...ReadOption) (*Document, error) {
	var cfg readConfig
	//
	for _, opt := range opts {
		opt(&cfg)
	}
	// Sniff for gzip-compressed input.
	br := bufio.NewReader(r)
	//
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "opening gzip stream")
		}
		defer gz.Close()
		//
		return readDocument(gz, &cfg)
	}
	//
	return readDocument(br, &cfg)
}

func readDocument(r io.Reader, cfg *readConfig) (*Document, error) {
	p := &parser{decoder: xml.NewDecoder(r), registry: cfg.registry}
	//
	doc, err := p.parse()
	if err != nil {
		return nil, err
	}
	//
	if cfg.ilwdCompat {
		if err := NormalizeIdentifiers(doc, cfg.registry); err != nil {
			return nil, err
		}
	}
	//
	return doc, nil
}

// parser holds the state of one tokenizing pass over a document.
type parser struct {
	decoder  *xml.Decoder
	registry *Registry
}

func (p *parser) parse() (*Document, error) {
	doc := &Document{}
	//
	for {
		tok, err := p.decoder.Token()
		if err == io.EOF {
			return doc, nil
		} else if err != nil {
			return nil, errors.Wrap(err, "tokenizing document")
		}
		//
		start, ok := tok.(xml.StartElement)
		if !ok {
			// Directives, comments and whitespace outside elements.
			continue
		}
		//
		node, err := p.parseElement(start)
		if err != nil {
			return nil, err
		}
		//
		if node != nil {
			doc.Children = append(doc.Children, node)
		}
	}
}

// parseElement dispatches on the element tag, returning nil (with the
// subtree consumed) for tags this model does not represent.
func (p *parser) parseElement(start xml.StartElement) (Node, error) {
	switch start.Name.Local {
	case "LIGO_LW":
		return p.parseContainer(start)
	case "Table":
		return p.parseTable(start)
	case "Param":
		return p.parseParam(start)
	case "Array":
		return p.parseArray(start)
	case "Time":
		return p.parseTime(start)
	}
	// Unknown element kinds (Comment, IGWDFrame, ...) are skipped whole.
	log.Debugf("skipping unsupported element %s", start.Name.Local)
	//
	return nil, p.decoder.Skip()
}

func (p *parser) parseContainer(start xml.StartElement) (Node, error) {
	c := &Container{Name: attr(start, "Name")}
	//
	for {
		tok, err := p.decoder.Token()
		if err != nil {
			return nil, errors.Wrap(err, "tokenizing LIGO_LW element")
		}
		//
		switch t := tok.(type) {
		case xml.StartElement:
			node, err := p.parseElement(t)
			if err != nil {
				return nil, err
			}
			//
			if node != nil {
				c.Children = append(c.Children, node)
			}
		case xml.EndElement:
			return c, nil
		}
	}
}

func (p *parser) parseTable(start xml.StartElement) (Node, error) {
	name := StripTableName(attr(start, "Name"))
	t := NewTable(name)
	// Table-dispatch hook: a registered name attaches its schema in place
	// of the generic fallback.
	if p.registry != nil {
		if schema, ok := p.registry.Lookup(name); ok {
			log.Debugf("table %s matched registered schema", name)
			t.Schema = schema
		}
	}
	//
	for {
		tok, err := p.decoder.Token()
		if err != nil {
			return nil, errors.Wrapf(err, "tokenizing table %s", name)
		}
		//
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "Column":
				col, err := parseColumn(el)
				if err != nil {
					return nil, err
				}
				//
				t.AppendColumn(col)
				//
				if err := p.decoder.Skip(); err != nil {
					return nil, errors.Wrap(err, "closing Column element")
				}
			case "Stream":
				text, err := p.elementText()
				if err != nil {
					return nil, err
				}
				//
				if err := decodeTableStream(t, el, text); err != nil {
					return nil, err
				}
			default:
				if err := p.decoder.Skip(); err != nil {
					return nil, errors.Wrap(err, "skipping element")
				}
			}
		case xml.EndElement:
			return t, nil
		}
	}
}

func parseColumn(start xml.StartElement) (*Column, error) {
	typ, err := ParseType(attr(start, "Type"))
	if err != nil {
		return nil, err
	}
	//
	return &Column{Name: attr(start, "Name"), Type: typ, Unit: attr(start, "Unit")}, nil
}

func (p *parser) parseParam(start xml.StartElement) (Node, error) {
	typ, err := ParseType(attr(start, "Type"))
	if err != nil {
		return nil, err
	}
	//
	param := &Param{Name: attr(start, "Name"), Type: typ, Unit: attr(start, "Unit")}
	//
	text, err := p.elementText()
	if err != nil {
		return nil, err
	}
	//
	if text = strings.TrimSpace(text); text != "" {
		if param.Value, err = DecodeValue(typ, text); err != nil {
			return nil, &FormatError{Element: "Param", Msg: err.Error()}
		}
	}
	//
	return param, nil
}

func (p *parser) parseArray(start xml.StartElement) (Node, error) {
	typ, err := ParseType(attr(start, "Type"))
	if err != nil {
		return nil, err
	}
	//
	a := &Array{Name: attr(start, "Name"), Type: typ, Unit: attr(start, "Unit")}
	//
	for {
		tok, err := p.decoder.Token()
		if err != nil {
			return nil, errors.Wrapf(err, "tokenizing array %s", a.Name)
		}
		//
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "Dim":
				dim, err := p.parseDim(el)
				if err != nil {
					return nil, err
				}
				//
				a.Dims = append(a.Dims, dim)
			case "Stream":
				text, err := p.elementText()
				if err != nil {
					return nil, err
				}
				//
				if err := decodeArrayStream(a, el, text); err != nil {
					return nil, err
				}
			default:
				if err := p.decoder.Skip(); err != nil {
					return nil, errors.Wrap(err, "skipping element")
				}
			}
		case xml.EndElement:
			return a, nil
		}
	}
}

func (p *parser) parseDim(start xml.StartElement) (Dim, error) {
	dim := Dim{Name: attr(start, "Name"), Unit: attr(start, "Unit")}
	//
	var err error
	//
	if s := attr(start, "Start"); s != "" {
		if dim.Start, err = strconv.ParseFloat(s, 64); err != nil {
			return Dim{}, &FormatError{Element: "Dim", Msg: "invalid Start attribute " + s}
		}
		//
		dim.HasStart = true
	}
	//
	if s := attr(start, "Scale"); s != "" {
		if dim.Scale, err = strconv.ParseFloat(s, 64); err != nil {
			return Dim{}, &FormatError{Element: "Dim", Msg: "invalid Scale attribute " + s}
		}
		//
		dim.HasScale = true
	}
	//
	text, err := p.elementText()
	if err != nil {
		return Dim{}, err
	}
	//
	if dim.N, err = strconv.Atoi(strings.TrimSpace(text)); err != nil {
		return Dim{}, &FormatError{Element: "Dim", Msg: "invalid extent " + text}
	}
	//
	return dim, nil
}

func (p *parser) parseTime(start xml.StartElement) (Node, error) {
	text, err := p.elementText()
	if err != nil {
		return nil, err
	}
	//
	value, err := ParseGPSTime(text)
	if err != nil {
		return nil, err
	}
	//
	return &Time{Name: attr(start, "Name"), Value: value}, nil
}

// elementText consumes the current element to its end tag, returning the
// concatenated character data.
func (p *parser) elementText() (string, error) {
	var (
		sb    strings.Builder
		depth = 1
	)
	//
	for depth > 0 {
		tok, err := p.decoder.Token()
		if err != nil {
			return "", errors.Wrap(err, "tokenizing element text")
		}
		//
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	//
	return sb.String(), nil
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	//
	return ""
}

// decodeTableStream decodes the delimited cell stream of a table body into
// rows.  The cell sequence must tile the declared column set exactly.
func decodeTableStream(t *Table, start xml.StartElement, text string) error {
	delim := streamDelimiter(start)
	//
	cells := splitCells(text, delim)
	//
	if len(t.Columns) == 0 {
		if len(cells) > 0 {
			return &FormatError{Element: "Stream", Msg: "row data without declared columns"}
		}
		//
		return nil
	}
	//
	if len(cells)%len(t.Columns) != 0 {
		return &FormatError{
			Element: "Stream",
			Msg: "cell count " + strconv.Itoa(len(cells)) +
				" does not tile " + strconv.Itoa(len(t.Columns)) + " columns",
		}
	}
	//
	for i := 0; i < len(cells); i += len(t.Columns) {
		row := t.NewRow()
		//
		for j, col := range t.Columns {
			cell := cells[i+j]
			// An empty unquoted cell is an unpopulated value.
			if cell.text == "" && !cell.quoted {
				continue
			}
			//
			value, err := DecodeValue(col.Type, cell.text)
			if err != nil {
				return &FormatError{Element: "Stream", Msg: err.Error()}
			}
			//
			if err := row.SetValue(col.BareName(), value); err != nil {
				return err
			}
		}
		//
		t.AppendRow(row)
	}
	//
	return nil
}

// decodeArrayStream decodes the numeric stream of an array, checking the
// cell count against the declared dimensions.
func decodeArrayStream(a *Array, start xml.StartElement, text string) error {
	var (
		delim  = streamDelimiter(start)
		fields []string
	)
	// Space-delimited streams are simply whitespace separated.
	if delim == ' ' {
		fields = strings.Fields(text)
	} else {
		for _, cell := range splitCells(text, delim) {
			if cell.text != "" || cell.quoted {
				fields = append(fields, cell.text)
			}
		}
	}
	//
	expected := a.NumSamples() * a.NumComponents()
	if len(fields) != expected {
		return &FormatError{
			Element: "Stream",
			Msg: "array has " + strconv.Itoa(len(fields)) +
				" cells, dimensions declare " + strconv.Itoa(expected),
		}
	}
	//
	a.Flat = make([]float64, len(fields))
	//
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return &FormatError{Element: "Stream", Msg: "invalid array cell " + f}
		}
		//
		a.Flat[i] = v
	}
	//
	return nil
}

func streamDelimiter(start xml.StartElement) rune {
	if d := attr(start, "Delimiter"); d != "" {
		return rune(d[0])
	}
	// The format's default delimiter.
	return ','
}

// cell is one token of a delimited stream.  Quoting distinguishes an empty
// string value from an unpopulated cell.
type cell struct {
	text   string
	quoted bool
}

// splitCells tokenizes a delimited stream, honouring double-quoted strings
// with backslash escapes.  A token is emitted for every delimiter, plus one
// for any trailing content, so streams written with or without a trailing
// delimiter both round-trip.
func splitCells(text string, delim rune) []cell {
	var (
		cells   []cell
		sb      strings.Builder
		cur     cell
		inQuote bool
		escaped bool
	)
	//
	flush := func() {
		cur.text = sb.String()
		cells = append(cells, cur)
		sb.Reset()
		cur = cell{}
	}
	//
	for _, r := range text {
		if inQuote {
			switch {
			case escaped:
				sb.WriteRune(r)
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inQuote = false
			default:
				sb.WriteRune(r)
			}
			//
			continue
		}
		//
		switch {
		case r == '"':
			inQuote = true
			cur.quoted = true
		case r == delim:
			flush()
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			// Whitespace between cells is insignificant.
		default:
			sb.WriteRune(r)
		}
	}
	// Trailing content (a stream not terminated by a delimiter).
	if sb.Len() > 0 || cur.quoted {
		flush()
	}
	//
	return cells
}
