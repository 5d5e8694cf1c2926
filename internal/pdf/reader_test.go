package pdf

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestNewReader(t *testing.T) {
	r := NewReader(1024)
	if r.maxFileSize != 1024 {
		t.Errorf("NewReader() maxFileSize = %d, want 1024", r.maxFileSize)
	}
}

func TestReaderExtractWordsErrors(t *testing.T) {
	tempDir := t.TempDir()

	txtPath := filepath.Join(tempDir, "not_a_pdf.txt")
	if err := os.WriteFile(txtPath, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	dirPath := filepath.Join(tempDir, "somedir")
	if err := os.Mkdir(dirPath, 0o755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	largePath := filepath.Join(tempDir, "large.pdf")
	if err := os.WriteFile(largePath, make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("failed to create large test file: %v", err)
	}

	r := NewReader(1024)

	tests := []struct {
		name    string
		req     ExtractWordsRequest
		wantErr string
	}{
		{
			name:    "empty path",
			req:     ExtractWordsRequest{FirstPage: 1, LastPage: 1},
			wantErr: "path cannot be empty",
		},
		{
			name:    "invalid range",
			req:     ExtractWordsRequest{Path: txtPath, FirstPage: 3, LastPage: 2},
			wantErr: "invalid page range",
		},
		{
			name:    "zero first page",
			req:     ExtractWordsRequest{Path: txtPath, FirstPage: 0, LastPage: 2},
			wantErr: "invalid page range",
		},
		{
			name:    "missing file",
			req:     ExtractWordsRequest{Path: filepath.Join(tempDir, "missing.pdf"), FirstPage: 1, LastPage: 1},
			wantErr: "does not exist",
		},
		{
			name:    "not a pdf",
			req:     ExtractWordsRequest{Path: txtPath, FirstPage: 1, LastPage: 1},
			wantErr: "not a PDF",
		},
		{
			name:    "directory",
			req:     ExtractWordsRequest{Path: dirPath, FirstPage: 1, LastPage: 1},
			wantErr: "directory",
		},
		{
			name:    "too large",
			req:     ExtractWordsRequest{Path: largePath, FirstPage: 1, LastPage: 1},
			wantErr: "file too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ExtractWords(tt.req)
			if err == nil {
				t.Fatal("ExtractWords() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ExtractWords() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestAssembleWords(t *testing.T) {
	const height = 800.0

	tests := []struct {
		name  string
		texts []pdf.Text
		want  []Word
	}{
		{
			name:  "empty",
			texts: nil,
			want:  nil,
		},
		{
			name: "contiguous fragments form one word",
			texts: []pdf.Text{
				{S: "C", X: 10, Y: 700, W: 5, FontSize: 12},
				{S: "a", X: 15, Y: 700, W: 5, FontSize: 12},
				{S: "ble", X: 20, Y: 700, W: 15, FontSize: 12},
			},
			want: []Word{{Text: "Cable", X: 10, Top: 100}},
		},
		{
			name: "wide gap splits words",
			texts: []pdf.Text{
				{S: "Jobb", X: 10, Y: 700, W: 20, FontSize: 12},
				{S: "navn:", X: 40, Y: 700, W: 25, FontSize: 12},
			},
			want: []Word{
				{Text: "Jobb", X: 10, Top: 100},
				{Text: "navn:", X: 40, Top: 100},
			},
		},
		{
			name: "whitespace fragment splits words",
			texts: []pdf.Text{
				{S: "Jobb", X: 10, Y: 700, W: 20, FontSize: 12},
				{S: " ", X: 30, Y: 700, W: 3, FontSize: 12},
				{S: "navn:", X: 33, Y: 700, W: 25, FontSize: 12},
			},
			want: []Word{
				{Text: "Jobb", X: 10, Top: 100},
				{Text: "navn:", X: 33, Top: 100},
			},
		},
		{
			name: "band change splits words",
			texts: []pdf.Text{
				{S: "Pos", X: 10, Y: 700, W: 15, FontSize: 12},
				{S: "1", X: 10, Y: 680, W: 5, FontSize: 12},
			},
			want: []Word{
				{Text: "Pos", X: 10, Top: 100},
				{Text: "1", X: 10, Top: 120},
			},
		},
		{
			name: "zero font size falls back to default metrics",
			texts: []pdf.Text{
				{S: "a", X: 10, Y: 700, W: 5},
				{S: "b", X: 16, Y: 700, W: 5},
			},
			want: []Word{{Text: "ab", X: 10, Top: 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assembleWords(tt.texts, height)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("assembleWords() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortReadingOrder(t *testing.T) {
	words := []Word{
		{Text: "second", X: 10, Top: 200},
		{Text: "line", X: 60, Top: 100.5},
		{Text: "first", X: 10, Top: 100},
	}

	sortReadingOrder(words)

	got := make([]string, len(words))
	for i, w := range words {
		got[i] = w.Text
	}
	want := []string{"first", "line", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sortReadingOrder() order = %v, want %v", got, want)
	}
}
