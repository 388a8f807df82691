package chunker

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LoadDocument reads a knowledge-base file. Markdown and text files are read
// as UTF-8, PDF files through their plain-text layer. A missing file yields
// an error wrapping fs.ErrNotExist.
func LoadDocument(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%s is a directory, not a document", path)
	}

	var content string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		content, err = readPDF(path)
	default:
		var raw []byte
		raw, err = os.ReadFile(path)
		content = string(raw)
	}
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	return Document{
		Source:  path,
		Content: strings.ReplaceAll(content, "\r\n", "\n"),
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return buf.String(), nil
}
