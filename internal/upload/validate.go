package upload

import (
	"fmt"
	"strings"
)

// MaxFileSize is the largest file the backend accepts.
const MaxFileSize int64 = 10 * 1024 * 1024

// DocxType is the OOXML Word document type.
const DocxType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var allowedTypes = map[string]bool{
	"application/pdf":      true,
	"text/plain":           true,
	"text/markdown":        true,
	"text/x-markdown":      true,
	"application/markdown": true,
	"application/msword":   true,
	DocxType:               true,
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
}

// ValidationError is a rejection that happens before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks a file against the accepted types and the size limit.
// A file passes the type check if either its declared type or its extension
// is accepted.
func Validate(name, contentType string, size int64) error {
	return ValidateWithLimit(name, contentType, size, MaxFileSize)
}

func ValidateWithLimit(name, contentType string, size, limit int64) error {
	if !allowedTypes[contentType] && !allowedExtensions[Extension(name)] {
		detected := contentType
		if detected == "" {
			detected = "unknown type"
		}

		return &ValidationError{
			Message: fmt.Sprintf("Please upload a PDF, Word document, Markdown, or text file. Detected: %s", detected),
		}
	}

	if size > limit {
		return &ValidationError{
			Message: fmt.Sprintf("File size must be less than %dMB.", limit/(1024*1024)),
		}
	}

	return nil
}

// Extension returns the lower-cased text from the last dot, or "" if there is none.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}

	return strings.ToLower(name[i:])
}
