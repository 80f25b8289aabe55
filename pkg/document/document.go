// Package document holds the document model shared by the ingestion and scoring
// stages, and the cleaner used for header/body text files.
package document

// Source values recorded on a Document.
const (
	SourceCSV    = "csv"
	SourceFolder = "folder"
	SourceURL    = "url"
)

// Document is one unit of text to be scored.
type Document struct {
	ID      string // Row index, file name or URL
	Text    string // Raw text (csv, url) or cleaned body (folder)
	Date    string // Best-effort date taken from the header, may be empty
	Cleaned bool   // True when a header/body marker was found
	Source  string
}
