package domain

import "time"

// FileKind identifies a supported corpus file format.
type FileKind string

// Supported corpus file kinds.
const (
	// KindText is a plain text file (.txt).
	KindText FileKind = "text"

	// KindMarkdown is a Markdown file (.md, .markdown).
	KindMarkdown FileKind = "markdown"

	// KindDocx is a Word document (.docx).
	KindDocx FileKind = "docx"
)

// IsValid returns true if the file kind is recognised.
func (k FileKind) IsValid() bool {
	switch k {
	case KindText, KindMarkdown, KindDocx:
		return true
	default:
		return false
	}
}

// Document is a corpus file after text extraction and normalisation.
// It is immutable once created and owned by the index for its lifetime.
type Document struct {
	// Name is the source file name. It doubles as the citation key
	// attached to retrieved passages.
	Name string

	// Kind is the detected file format.
	Kind FileKind

	// Content is the full text after whitespace normalisation.
	Content string

	// IngestedAt is when the document was read from disk.
	IngestedAt time.Time
}

// Chunk is a bounded contiguous span of a Document's text, the unit of
// retrieval. Consecutive chunks from the same document may overlap.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentName links to the owning Document (the citation key).
	DocumentName string

	// Position is the ordinal position within the document.
	Position int

	// Content is the text span.
	Content string

	// Overlap is the number of leading characters shared with the
	// previous chunk of the same document. Zero for the first chunk.
	// Removing this prefix from every non-first chunk and concatenating
	// reconstructs the document's normalised text.
	Overlap int
}

// Length returns the chunk length in characters.
func (c Chunk) Length() int {
	return len(c.Content)
}

// RawFile is an enumerated corpus file before normalisation.
type RawFile struct {
	// Path is the absolute path on disk.
	Path string

	// Name is the base file name (the future Document.Name).
	Name string

	// Kind is the format inferred from the extension.
	Kind FileKind

	// Content is the raw bytes.
	Content []byte
}
