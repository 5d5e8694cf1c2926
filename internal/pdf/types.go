package pdf

// Word is a positioned text token extracted from a PDF page. Top is the
// vertical offset measured from the top edge of the page, X the horizontal
// offset of the word's left edge. Words are immutable once produced.
type Word struct {
	Text string
	X    float64
	Top  float64
}

// PageWords holds the words of one page in reading order.
type PageWords struct {
	Page  int
	Words []Word
}

// ExtractWordsRequest describes a word extraction run over a page range.
type ExtractWordsRequest struct {
	Path      string
	FirstPage int     // 1-indexed, inclusive
	LastPage  int     // 1-indexed, inclusive
	CropTop   float64 // words above this offset are dropped (page header)
}

// ExtractWordsResult carries the per-page words in ascending page order.
type ExtractWordsResult struct {
	Path         string
	Pages        []PageWords
	TotalPages   int
	SkippedPages []int
}

// DocumentInfoResult describes a PDF document without extracting content.
type DocumentInfoResult struct {
	Path      string
	PageCount int
	Size      int64
}

// ValidateFileResult reports whether a file is a readable PDF.
type ValidateFileResult struct {
	Path    string
	Valid   bool
	Message string
}
