package pdf

import (
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// defaultPageHeight is used when a page carries no usable MediaBox.
	defaultPageHeight = 792.0

	// defaultFontSize approximates glyph metrics for fragments that carry
	// no font size of their own.
	defaultFontSize = 12.0

	// wordGapScale is the fraction of the font size an X gap must exceed
	// before two fragments are considered separate words.
	wordGapScale = 0.3

	// rowTolerance is the Y jitter within which fragments belong to the
	// same horizontal band during word assembly.
	rowTolerance = 2.0
)

// Reader extracts positioned words from PDF files.
type Reader struct {
	maxFileSize int64
}

// NewReader creates a new PDF word reader with the specified constraints.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
	}
}

// ExtractWords extracts positioned words for every page in the requested
// range. Pages beyond the document's page count are skipped with a
// diagnostic, never an error. The file handle is held for the whole run and
// released before returning.
func (r *Reader) ExtractWords(req ExtractWordsRequest) (*ExtractWordsResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	if req.FirstPage < 1 || req.LastPage < req.FirstPage {
		return nil, fmt.Errorf("invalid page range %d-%d", req.FirstPage, req.LastPage)
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validatePDFFile(req.Path, fileInfo); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	result := &ExtractWordsResult{
		Path:       req.Path,
		TotalPages: pdfReader.NumPage(),
	}

	for pageNum := req.FirstPage; pageNum <= req.LastPage; pageNum++ {
		if pageNum > result.TotalPages {
			log.Printf("page %d is outside the document (%d pages), skipping", pageNum, result.TotalPages)
			result.SkippedPages = append(result.SkippedPages, pageNum)
			continue
		}

		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			result.SkippedPages = append(result.SkippedPages, pageNum)
			continue
		}

		words := extractPageWords(page, req.CropTop)
		result.Pages = append(result.Pages, PageWords{Page: pageNum, Words: words})
	}

	return result, nil
}

// validatePDFFile performs basic validation on a PDF file.
func (r *Reader) validatePDFFile(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	return nil
}

// extractPageWords converts a page's text fragments into cropped, ordered
// words. Fragments are measured from the bottom of the page by the PDF
// layer; Top converts them to a from-the-top offset.
func extractPageWords(page pdf.Page, cropTop float64) []Word {
	content := page.Content()
	height := pageHeight(page)

	words := assembleWords(content.Text, height)

	if cropTop > 0 {
		kept := words[:0]
		for _, w := range words {
			if w.Top >= cropTop {
				kept = append(kept, w)
			}
		}
		words = kept
	}

	sortReadingOrder(words)
	return words
}

// assembleWords merges consecutive text fragments into words. A fragment
// starts a new word when it jumps to a different horizontal band or leaves a
// gap wider than a fraction of the font size since the previous fragment.
func assembleWords(texts []pdf.Text, height float64) []Word {
	var words []Word

	var (
		builder  strings.Builder
		wordX    float64
		wordY    float64
		lastEnd  float64
		building bool
	)

	flush := func() {
		if !building {
			return
		}
		text := builder.String()
		if strings.TrimSpace(text) != "" {
			words = append(words, Word{
				Text: text,
				X:    wordX,
				Top:  height - wordY,
			})
		}
		builder.Reset()
		building = false
	}

	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			flush()
			continue
		}

		fontSize := t.FontSize
		if fontSize == 0 {
			fontSize = defaultFontSize
		}

		if building {
			sameBand := math.Abs(t.Y-wordY) <= rowTolerance
			gap := t.X - lastEnd
			if !sameBand || gap > fontSize*wordGapScale || gap < -fontSize {
				flush()
			}
		}

		if !building {
			wordX = t.X
			wordY = t.Y
			building = true
		}
		builder.WriteString(t.S)
		lastEnd = t.X + t.W
	}
	flush()

	return words
}

// sortReadingOrder orders words top-to-bottom, then left-to-right within the
// same horizontal band.
func sortReadingOrder(words []Word) {
	sort.SliceStable(words, func(i, j int) bool {
		if math.Abs(words[i].Top-words[j].Top) > rowTolerance {
			return words[i].Top < words[j].Top
		}
		return words[i].X < words[j].X
	})
}

// pageHeight reads the page height from the MediaBox, falling back to US
// Letter when the box is missing or malformed.
func pageHeight(page pdf.Page) (h float64) {
	h = defaultPageHeight
	defer func() {
		// MediaBox access can panic on damaged documents.
		if recover() != nil {
			h = defaultPageHeight
		}
	}()

	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return h
	}

	lower := box.Index(1).Float64()
	upper := box.Index(3).Float64()
	if upper > lower {
		h = upper - lower
	}
	return h
}
