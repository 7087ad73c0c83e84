// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Article is one source record describing a news article. Fields are
// pointers so a key that is absent (or null) can be told apart from a key
// holding an empty string.
type Article struct {
	// URL may carry trailing whitespace-separated tokens; only the first is kept.
	URL *string `json:"url" yaml:"url"`

	// QueryMessage is the article body and becomes the row's output column.
	QueryMessage *string `json:"query_message" yaml:"query_message"`

	// ArticleTitle is the topic interpolated into the instruction.
	ArticleTitle *string `json:"article_title" yaml:"article_title"`
}

// Required JSON keys of an Article, in reporting order.
const (
	KeyURL          = "url"
	KeyQueryMessage = "query_message"
	KeyArticleTitle = "article_title"
)

// MissingKeys returns the required keys that are absent from the record.
func (a Article) MissingKeys() []string {
	var missing []string
	if a.URL == nil {
		missing = append(missing, KeyURL)
	}
	if a.QueryMessage == nil {
		missing = append(missing, KeyQueryMessage)
	}
	if a.ArticleTitle == nil {
		missing = append(missing, KeyArticleTitle)
	}
	return missing
}

// Column names of the extracted table.
const (
	ColumnURL         = "url"
	ColumnOutput      = "output"
	ColumnInstruction = "instruction"
)

// Header is the CSV header row written before any data row.
var Header = []string{ColumnURL, ColumnOutput, ColumnInstruction}

// Row is one line of the extracted table.
type Row struct {
	URL         string `json:"url" yaml:"url"`
	Output      string `json:"output" yaml:"output"`
	Instruction string `json:"instruction" yaml:"instruction"`
}

// Fields returns the row values in Header order.
func (r Row) Fields() []string {
	return []string{r.URL, r.Output, r.Instruction}
}
