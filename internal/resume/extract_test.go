package resume

import (
	"errors"
	"testing"
)

func TestExtractTextDispatch(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErr  error
	}{
		{
			name:     "unsupported extension",
			filename: "resume.txt",
			data:     []byte("plain text"),
			wantErr:  ErrUnsupportedType,
		},
		{
			name:     "no extension",
			filename: "resume",
			data:     []byte("plain text"),
			wantErr:  ErrUnsupportedType,
		},
		{
			name:     "image upload rejected",
			filename: "resume.png",
			data:     []byte{0x89, 0x50, 0x4e, 0x47},
			wantErr:  ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText(tt.filename, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ExtractText(%q) error = %v, want %v", tt.filename, err, tt.wantErr)
			}
		})
	}
}

func TestExtractTextCorruptDocuments(t *testing.T) {
	if _, err := ExtractText("resume.pdf", []byte("not a pdf")); err == nil {
		t.Error("ExtractText() on corrupt PDF: want error, got nil")
	}
	if _, err := ExtractText("Resume.DOCX", []byte("not a docx")); err == nil {
		t.Error("ExtractText() on corrupt DOCX: want error, got nil")
	}
}
