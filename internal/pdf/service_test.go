package pdf

import (
	"path/filepath"
	"testing"
)

func TestNewService(t *testing.T) {
	svc := NewService(1024)
	if svc.reader == nil || svc.validator == nil {
		t.Fatal("NewService() left components unset")
	}
	if svc.GetMaxFileSize() != 1024 {
		t.Errorf("GetMaxFileSize() = %d, want 1024", svc.GetMaxFileSize())
	}
}

func TestServiceDocumentInfoErrors(t *testing.T) {
	svc := NewService(1024)

	if _, err := svc.DocumentInfo(""); err == nil {
		t.Error("DocumentInfo(\"\") expected error, got nil")
	}
	if _, err := svc.DocumentInfo(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("DocumentInfo() on a missing file expected error, got nil")
	}
}
