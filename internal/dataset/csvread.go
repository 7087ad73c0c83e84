// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// csvReader reads comma-separated records as written by csv.Writer.
// Unlike csv.Reader it keeps a carriage return that precedes a newline
// inside a quoted field, so multi-line CRLF text reads back unchanged.
// Outside quotes both LF and CRLF end a record.
type csvReader struct {
	r    *bufio.Reader
	line int
}

func newCSVReader(r io.Reader) *csvReader {
	return &csvReader{r: bufio.NewReader(r), line: 1}
}

// Read returns the next record, skipping blank lines. It returns io.EOF
// when the input is exhausted.
func (c *csvReader) Read() ([]string, error) {
	for {
		rec, blank, err := c.readRecord()
		if err != nil {
			return nil, err
		}
		if !blank {
			return rec, nil
		}
	}
}

func (c *csvReader) readRecord() (rec []string, blank bool, err error) {
	var (
		field    strings.Builder
		quoted   bool // inside a quoted section
		wasQuote bool // current field opened with a quote
		consumed bool
		start    = c.line
	)
	endField := func() {
		rec = append(rec, field.String())
		field.Reset()
		wasQuote = false
	}

	for {
		b, err := c.r.ReadByte()
		if err == io.EOF {
			if quoted {
				return nil, false, fmt.Errorf("line %d: unterminated quoted field", start)
			}
			if !consumed {
				return nil, false, io.EOF
			}
			endField()
			return rec, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		consumed = true

		if quoted {
			switch b {
			case '"':
				if next, err := c.r.Peek(1); err == nil && next[0] == '"' {
					c.r.ReadByte()
					field.WriteByte('"')
					continue
				}
				quoted = false
			case '\n':
				c.line++
				field.WriteByte(b)
			default:
				field.WriteByte(b)
			}
			continue
		}

		switch b {
		case '"':
			if field.Len() > 0 || wasQuote {
				return nil, false, fmt.Errorf("line %d: bare quote in field", c.line)
			}
			quoted, wasQuote = true, true
		case ',':
			endField()
		case '\r':
			if next, err := c.r.Peek(1); err == nil && next[0] == '\n' {
				continue
			}
			field.WriteByte(b)
		case '\n':
			c.line++
			blank = len(rec) == 0 && field.Len() == 0 && !wasQuote
			endField()
			return rec, blank, nil
		default:
			field.WriteByte(b)
		}
	}
}
