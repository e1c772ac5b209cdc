package utils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const DefaultMaxUploadBytes = 10 << 20 // 10 MiB

var (
	ErrMissingFile     = errors.New("file is missing")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
)

// ImageMIMEs and DocumentMIMEs are the allow-lists for the notice upload
// fields. Patterns ending in "/*" match any subtype.
var (
	ImageMIMEs    = []string{"image/*"}
	DocumentMIMEs = []string{
		"application/pdf",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
	PDFMIMEs = []string{"application/pdf"}
)

// UploadRule configures one multipart field: its name, the accepted MIME
// types (nil accepts anything) and the size ceiling (0 means the default).
type UploadRule struct {
	Field        string
	AllowedMIMEs []string
	MaxBytes     int64
}

// SaveUpload reads the named multipart field, checks its sniffed MIME type
// against the rule, and writes it under dir with a collision-resistant name
// (timestamp + random suffix + original extension). Returns the stored
// filename. The MIME type is detected from content, never trusted from the
// client header.
func SaveUpload(r *http.Request, dir string, rule UploadRule) (string, error) {
	file, header, err := r.FormFile(rule.Field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", ErrMissingFile
		}
		return "", err
	}
	defer file.Close()

	maxBytes := rule.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if header.Size > maxBytes {
		return "", ErrFileTooLarge
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", err
	}
	if !mimeAllowed(mtype, rule.AllowedMIMEs) {
		return "", ErrInvalidFileType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(header.Filename)
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return name, nil
}

func mimeAllowed(mtype *mimetype.MIME, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, pattern := range allowed {
		if strings.HasSuffix(pattern, "/*") {
			if strings.HasPrefix(mtype.String(), strings.TrimSuffix(pattern, "*")) {
				return true
			}
		} else if mtype.Is(pattern) {
			return true
		}
	}
	return false
}
