// Package extract ties the extraction pipeline together: document access,
// line reconstruction, and section parsing run as one sequential pass.
package extract

import (
	"fmt"
	"log"

	"github.com/mskaar/ordrecsv/internal/layout"
	"github.com/mskaar/ordrecsv/internal/order"
	"github.com/mskaar/ordrecsv/internal/pdf"
)

// Options selects the page range and layout heuristics for one run.
type Options struct {
	FirstPage     int     // 1-indexed, inclusive
	LastPage      int     // inclusive; 0 means page count minus TrailingPages
	CropTop       float64 // page header crop offset
	LineThreshold float64 // vertical line-grouping threshold
	TrailingPages int     // boilerplate terms pages assumed at the end
}

// Summary describes what a run processed and produced.
type Summary struct {
	Path           string
	TotalPages     int
	FirstPage      int
	LastPage       int
	PagesProcessed int
	PagesSkipped   []int
	SectionCount   int
	RowCount       int
}

// Extractor runs the document-to-sections pipeline. It holds no per-run
// state; each Run is an independent single-threaded pass.
type Extractor struct {
	pdfService *pdf.Service
}

// NewExtractor creates an extractor on top of the given PDF service.
func NewExtractor(pdfService *pdf.Service) *Extractor {
	return &Extractor{
		pdfService: pdfService,
	}
}

// Run extracts the sections of one order confirmation document. Zero
// sections is a valid outcome, not an error.
func (e *Extractor) Run(path string, opts Options) ([]order.Section, *Summary, error) {
	validation, err := e.pdfService.ValidateFile(path)
	if err != nil {
		return nil, nil, err
	}
	if !validation.Valid {
		return nil, nil, fmt.Errorf("cannot process %s: %s", path, validation.Message)
	}

	info, err := e.pdfService.DocumentInfo(path)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("PDF has %d pages", info.PageCount)

	firstPage, lastPage := resolvePageRange(opts, info.PageCount)
	summary := &Summary{
		Path:       path,
		TotalPages: info.PageCount,
		FirstPage:  firstPage,
		LastPage:   lastPage,
	}

	if lastPage < firstPage {
		// The document is all cover sheet and terms; nothing to scan.
		return nil, summary, nil
	}

	words, err := e.pdfService.ExtractWords(pdf.ExtractWordsRequest{
		Path:      path,
		FirstPage: firstPage,
		LastPage:  lastPage,
		CropTop:   opts.CropTop,
	})
	if err != nil {
		return nil, nil, err
	}

	pages := layout.BuildPageLines(words.Pages, opts.LineThreshold)
	sections := order.NewParser().Parse(pages)

	summary.PagesProcessed = len(words.Pages)
	summary.PagesSkipped = words.SkippedPages
	summary.SectionCount = len(sections)
	for i := range sections {
		summary.RowCount += sections[i].RowCount()
	}

	return sections, summary, nil
}

// resolvePageRange applies the default range policy: scan from the first
// requested page to the requested last page, or to the page count minus the
// trailing-terms margin when no last page is given.
func resolvePageRange(opts Options, pageCount int) (int, int) {
	firstPage := opts.FirstPage
	if firstPage < 1 {
		firstPage = 1
	}

	// An explicit last page is passed through untouched; the reader skips
	// pages past the end of the document with a diagnostic.
	lastPage := opts.LastPage
	if lastPage == 0 {
		lastPage = pageCount - opts.TrailingPages
	}

	return firstPage, lastPage
}

// String renders the summary the way the CLI logs it.
func (s *Summary) String() string {
	return fmt.Sprintf("pages %d-%d of %d: %d processed, %d skipped, %d sections, %d rows",
		s.FirstPage, s.LastPage, s.TotalPages, s.PagesProcessed, len(s.PagesSkipped), s.SectionCount, s.RowCount)
}
