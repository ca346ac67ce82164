// Package filex reads local files the CLI uploads.
package filex

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// MaxImageSize caps avatar uploads.
const MaxImageSize = 5 << 20

var (
	ErrNotImage     = errors.New("file is not an image")
	ErrFileTooLarge = errors.New("file too large")
)

// ReadImage loads an image from path and sniffs its content type.
func ReadImage(path string) ([]byte, string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, "", fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	if fi.Size() > MaxImageSize {
		return nil, "", ErrFileTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", ErrNotImage
	}
	return data, contentType, nil
}
