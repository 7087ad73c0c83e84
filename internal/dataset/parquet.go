// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// rowGroupSize caps the rows per Parquet row group.
const rowGroupSize = 64 * 1024

// WriteParquet writes d to w as a single Snappy-compressed Parquet file.
func (d *Dataset) WriteParquet(w io.Writer) error {
	tbl := array.NewTableFromRecords(d.rec.Schema(), []arrow.Record{d.rec})
	defer tbl.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	if err := pqarrow.WriteTable(tbl, w, rowGroupSize, props, pqarrow.DefaultWriterProps()); err != nil {
		return fmt.Errorf("writing parquet: %w", err)
	}
	return nil
}
