// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `url,output,instruction
http://a.com,正文一,"
命令: x

话题: 一

输出文字:
"
http://b.com,"body, with comma",plain
`

func sample(t *testing.T) *Dataset {
	t.Helper()
	d, err := FromCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	return d
}

func TestFromCSV(t *testing.T) {
	d := sample(t)

	assert.Equal(t, []string{"url", "output", "instruction"}, d.Columns())
	require.Equal(t, 2, d.NumRows())

	assert.Equal(t, map[string]string{
		"url":         "http://a.com",
		"output":      "正文一",
		"instruction": "\n命令: x\n\n话题: 一\n\n输出文字:\n",
	}, d.Record(0))
	assert.Equal(t, []string{"http://b.com", "body, with comma", "plain"}, d.Row(1))

	urls, ok := d.Column("url")
	require.True(t, ok)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, urls)

	_, ok = d.Column("topic")
	assert.False(t, ok)
}

func TestFromCSVRecordCountMatchesRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("url,output,instruction\n")
	const n = 25
	for i := 0; i < n; i++ {
		b.WriteString("u,o,i\n")
	}

	d, err := FromCSV(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, n, d.NumRows())
	records := d.Records()
	require.Len(t, records, n)
	for _, rec := range records {
		assert.Equal(t, map[string]string{"url": "u", "output": "o", "instruction": "i"}, rec)
	}
}

func TestFromCSVHeaderOnly(t *testing.T) {
	d, err := FromCSV(strings.NewReader("url,output,instruction\n"))
	require.NoError(t, err)
	assert.Zero(t, d.NumRows())
	assert.Empty(t, d.Records())
}

func TestFromCSVStripsBOM(t *testing.T) {
	d, err := FromCSV(strings.NewReader("\ufeffurl,output\nu,o\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"url", "output"}, d.Columns())
}

func TestFromCSVKeepsCarriageReturnsInQuotes(t *testing.T) {
	input := "url,output,instruction\r\n" +
		"http://a.com,\"line1\r\nline2\",\"a\rb\"\r\n" +
		"\r\n" +
		"http://b.com,\"say \"\"hi\"\"\",\n"
	d, err := FromCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"url", "output", "instruction"}, d.Columns())
	require.Equal(t, 2, d.NumRows())
	assert.Equal(t, []string{"http://a.com", "line1\r\nline2", "a\rb"}, d.Row(0))
	assert.Equal(t, []string{"http://b.com", `say "hi"`, ""}, d.Row(1))
}

func TestFromCSVReadsCSVWriterOutput(t *testing.T) {
	rows := [][]string{
		{"url", "output", "instruction"},
		{"http://a.com", "第一行\r\n第二行", "\n命令: x\r\n"},
		{"http://b.com", "comma, \"quote\"", ""},
		{"http://c.com", "trailing\r", "lone\rcr"},
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.WriteAll(rows))

	d, err := FromCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, len(rows)-1, d.NumRows())
	for i, want := range rows[1:] {
		assert.Equal(t, want, d.Row(i), "row %d", i)
	}
}

func TestFromCSVErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"empty input", "", "no header row"},
		{"ragged row", "url,output,instruction\nu,o\n", "row 1"},
		{"duplicate column", "url,url\nu,v\n", "duplicate column"},
		{"empty column name", "url,,instruction\nu,o,i\n", "empty name"},
		{"unterminated quote", "url,output\nu,\"open\n", "row 1"},
		{"bare quote", "url,output\nu,a\"b\n", "bare quote"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	d, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, d.NumRows())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuilder(t *testing.T) {
	b, err := NewBuilder([]string{"a", "b"})
	require.NoError(t, err)
	defer b.Release()

	require.NoError(t, b.Append("1", "2"))
	require.Error(t, b.Append("only-one"))
	require.NoError(t, b.Append("3", "4"))

	d := b.Build()
	defer d.Release()
	assert.Equal(t, []string{"a", "b"}, d.Columns())
	assert.Equal(t, 2, d.NumRows())
	assert.Equal(t, []string{"3", "4"}, d.Row(1))

	empty := b.Build()
	assert.Zero(t, empty.NumRows(), "Build resets the builder")

	_, err = NewBuilder(nil)
	require.Error(t, err)
}

func TestString(t *testing.T) {
	d := sample(t)
	want := "Dataset({\n    features: ['url', 'output', 'instruction'],\n    num_rows: 2\n})"
	assert.Equal(t, want, d.String())
}

func TestWriteParquet(t *testing.T) {
	d := sample(t)

	var buf bytes.Buffer
	require.NoError(t, d.WriteParquet(&buf))

	tbl, err := pqarrow.ReadTable(context.Background(), bytes.NewReader(buf.Bytes()),
		parquet.NewReaderProperties(memory.DefaultAllocator), pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	require.NoError(t, err)
	defer tbl.Release()

	require.EqualValues(t, d.NumRows(), tbl.NumRows())
	for c, name := range d.Columns() {
		field := tbl.Schema().Field(c)
		assert.Equal(t, name, field.Name)
		assert.Equal(t, arrow.STRING, field.Type.ID())

		var got []string
		for _, chunk := range tbl.Column(c).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				got = append(got, chunk.ValueStr(i))
			}
		}
		want, _ := d.Column(name)
		assert.Equal(t, want, got, "column %s", name)
	}
}

func TestWriteParquetEmpty(t *testing.T) {
	d, err := FromCSV(strings.NewReader("url,output,instruction\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.WriteParquet(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PAR1")))
}

func TestCardRoundTrip(t *testing.T) {
	d := sample(t)

	card, err := d.Card("DavideTHU/chinese_news_dataset")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(card, []byte("---\n")))
	assert.Contains(t, string(card), "# chinese_news_dataset")

	meta, err := ParseCard(card)
	require.NoError(t, err)
	assert.Equal(t, d.Metadata("DavideTHU/chinese_news_dataset"), meta)
	assert.Equal(t, []Split{{Name: TrainSplit, NumExamples: 2}}, meta.DatasetInfo.Splits)
	assert.Equal(t, []Feature{
		{Name: "url", Dtype: "string"},
		{Name: "output", Dtype: "string"},
		{Name: "instruction", Dtype: "string"},
	}, meta.DatasetInfo.Features)
}

func TestParseCardErrors(t *testing.T) {
	_, err := ParseCard([]byte("# no front matter"))
	require.Error(t, err)

	_, err = ParseCard([]byte("---\nlicense: mit\n"))
	require.Error(t, err)
}

func TestPreview(t *testing.T) {
	d := sample(t)

	var buf bytes.Buffer
	require.NoError(t, d.Preview(&buf, 5, 12))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4, "header, separator, and two rows")
	assert.True(t, strings.HasPrefix(lines[0], "| url"))
	assert.True(t, strings.HasPrefix(lines[1], "| ---"))

	width := runewidth.StringWidth(lines[0])
	for _, line := range lines[1:] {
		assert.Equal(t, width, runewidth.StringWidth(line), "line %q", line)
		assert.NotContains(t, line, "\n")
	}
}

func TestPreviewNegativeCount(t *testing.T) {
	d := sample(t)

	var buf bytes.Buffer
	require.NoError(t, d.Preview(&buf, -5, 40))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"), "header and separator only")
}

func TestPreviewLimitsRows(t *testing.T) {
	d := sample(t)

	var buf bytes.Buffer
	require.NoError(t, d.Preview(&buf, 1, 40))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}
