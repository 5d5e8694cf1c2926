package pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Service handles PDF document operations by orchestrating the reader and
// validator components.
type Service struct {
	maxFileSize int64
	reader      *Reader
	validator   *Validator
}

// NewService creates a new PDF service with all components.
func NewService(maxFileSize int64) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		reader:      NewReader(maxFileSize),
		validator:   NewValidator(maxFileSize),
	}
}

// ExtractWords extracts positioned words over a page range.
func (s *Service) ExtractWords(req ExtractWordsRequest) (*ExtractWordsResult, error) {
	return s.reader.ExtractWords(req)
}

// ValidateFile performs validation on a PDF file.
func (s *Service) ValidateFile(path string) (*ValidateFileResult, error) {
	return s.validator.ValidateFile(path)
}

// IsValidPDF performs a quick validation check on a file.
func (s *Service) IsValidPDF(filePath string) bool {
	return s.validator.IsValidPDF(filePath)
}

// DocumentInfo returns the page count and size of a PDF without extracting
// any content.
func (s *Service) DocumentInfo(path string) (*DocumentInfoResult, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page count: %w", err)
	}

	return &DocumentInfoResult{
		Path:      path,
		PageCount: pageCount,
		Size:      fileInfo.Size(),
	}, nil
}

// GetMaxFileSize returns the maximum file size limit.
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}
