// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset holds extracted rows as an Arrow record of string
// columns that can be summarized, previewed, serialized to Parquet, and
// handed to a hub client.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Dataset is an immutable table of named string columns of equal length.
type Dataset struct {
	rec   arrow.Record
	cols  []*array.String
	index map[string]int
}

// Builder accumulates rows for a Dataset.
type Builder struct {
	schema *arrow.Schema
	rb     *array.RecordBuilder
}

// NewBuilder returns a builder for a dataset with the given column names.
// Column names must be unique and non-empty.
func NewBuilder(columns []string) (*Builder, error) {
	if len(columns) == 0 {
		return nil, errors.New("dataset needs at least one column")
	}
	seen := make(map[string]bool, len(columns))
	fields := make([]arrow.Field, len(columns))
	for i, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String}
	}

	schema := arrow.NewSchema(fields, nil)
	return &Builder{
		schema: schema,
		rb:     array.NewRecordBuilder(memory.DefaultAllocator, schema),
	}, nil
}

// Append adds one record. values must be given in column order.
func (b *Builder) Append(values ...string) error {
	if want := b.schema.NumFields(); len(values) != want {
		return fmt.Errorf("record has %d fields, want %d", len(values), want)
	}
	for i, v := range values {
		b.rb.Field(i).(*array.StringBuilder).Append(v)
	}
	return nil
}

// Build returns the appended records as a dataset and resets the builder.
func (b *Builder) Build() *Dataset {
	return wrap(b.rb.NewRecord())
}

// Release frees the builder's buffers.
func (b *Builder) Release() {
	b.rb.Release()
}

func wrap(rec arrow.Record) *Dataset {
	d := &Dataset{
		rec:   rec,
		cols:  make([]*array.String, rec.NumCols()),
		index: make(map[string]int, rec.NumCols()),
	}
	for i, f := range rec.Schema().Fields() {
		d.index[f.Name] = i
		d.cols[i] = rec.Column(i).(*array.String)
	}
	return d
}

// Release frees the underlying Arrow buffers. d must not be used after.
func (d *Dataset) Release() {
	d.rec.Release()
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	fields := d.rec.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// NumRows returns the number of records.
func (d *Dataset) NumRows() int {
	return int(d.rec.NumRows())
}

// Column returns the values of the named column.
func (d *Dataset) Column(name string) ([]string, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	col := d.cols[i]
	values := make([]string, col.Len())
	for r := range values {
		values[r] = strings.Clone(col.Value(r))
	}
	return values, true
}

// Row returns record i as values in column order.
func (d *Dataset) Row(i int) []string {
	row := make([]string, len(d.cols))
	for c, col := range d.cols {
		row[c] = strings.Clone(col.Value(i))
	}
	return row
}

// Record returns record i keyed by column name.
func (d *Dataset) Record(i int) map[string]string {
	rec := make(map[string]string, len(d.cols))
	for name, c := range d.index {
		rec[name] = strings.Clone(d.cols[c].Value(i))
	}
	return rec
}

// Records returns every record keyed by column name.
func (d *Dataset) Records() []map[string]string {
	out := make([]map[string]string, d.NumRows())
	for i := range out {
		out[i] = d.Record(i)
	}
	return out
}

// String renders a short summary of the dataset's features and size.
func (d *Dataset) String() string {
	columns := d.Columns()
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = "'" + c + "'"
	}
	return fmt.Sprintf("Dataset({\n    features: [%s],\n    num_rows: %d\n})",
		strings.Join(quoted, ", "), d.NumRows())
}

// LoadCSV reads the CSV file at path into a dataset.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV %s: %w", path, err)
	}
	defer f.Close()

	d, err := FromCSV(f)
	if err != nil {
		return nil, fmt.Errorf("loading CSV %s: %w", path, err)
	}
	return d, nil
}

// FromCSV reads CSV from r. The first record names the columns; every
// following record must have the same number of fields. Field bytes are
// kept as written, carriage returns inside quoted fields included.
func FromCSV(r io.Reader) (*Dataset, error) {
	cr := newCSVReader(r)
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("CSV has no header row")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	// A UTF-8 BOM would otherwise end up in the first column name.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	b, err := NewBuilder(header)
	if err != nil {
		return nil, err
	}
	defer b.Release()

	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}
		if err := b.Append(rec...); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
	}
	return b.Build(), nil
}
