package upload

import (
	"bytes"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/MrJamesThe3rd/revrec/internal/api"
)

// OpenFile prepares a local file for upload. The declared content type is
// sniffed from the file's bytes. The caller closes the returned file.
func OpenFile(path string) (api.File, *os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return api.File{}, nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if info.IsDir() {
		return api.File{}, nil, fmt.Errorf("%s is a directory", path)
	}

	contentType, err := DetectType(path)
	if err != nil {
		return api.File{}, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return api.File{}, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return api.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		Body:        f,
	}, f, nil
}

// DetectType sniffs the media type of the file at path, without parameters.
func DetectType(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detecting type of %s: %w", path, err)
	}

	return baseType(m.String()), nil
}

// FromBytes wraps in-memory content as an upload.
func FromBytes(name, contentType string, data []byte) api.File {
	return api.File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	}
}

func baseType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}

	return mediaType
}
