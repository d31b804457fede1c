package validation

import (
	"errors"
	"strings"
)

// MaxImageBytes is the maximum decoded image size accepted by the classifier.
const MaxImageBytes = 20 * 1024 * 1024

// ErrInvalidImage and ErrInvalidLanguage distinguish the two input failures so
// the client can prompt the user correctly. Neither carries the rejected value.
var (
	ErrInvalidImage    = errors.New("invalid image data")
	ErrInvalidLanguage = errors.New("invalid language selection")
)

// allowedImagePrefixes are the only data-URI prefixes accepted. SVG is
// excluded; it can carry scripts.
var allowedImagePrefixes = []string{
	"data:image/jpeg;base64,",
	"data:image/png;base64,",
	"data:image/gif;base64,",
	"data:image/webp;base64,",
}

// allowedLanguages is English plus the 22 scheduled Indian languages.
var allowedLanguages = map[string]bool{
	"English":   true,
	"Assamese":  true,
	"Bengali":   true,
	"Bodo":      true,
	"Dogri":     true,
	"Gujarati":  true,
	"Hindi":     true,
	"Kannada":   true,
	"Kashmiri":  true,
	"Konkani":   true,
	"Maithili":  true,
	"Malayalam": true,
	"Manipuri":  true,
	"Marathi":   true,
	"Nepali":    true,
	"Odia":      true,
	"Punjabi":   true,
	"Sanskrit":  true,
	"Santali":   true,
	"Sindhi":    true,
	"Tamil":     true,
	"Telugu":    true,
	"Urdu":      true,
}

// ValidateImageData checks that imageData is a JPEG/PNG/GIF/WebP data URI with
// a well-formed base64 payload whose decoded size does not exceed MaxImageBytes.
func ValidateImageData(imageData string) error {
	if imageData == "" {
		return ErrInvalidImage
	}

	matched := false
	for _, prefix := range allowedImagePrefixes {
		if strings.HasPrefix(imageData, prefix) {
			matched = true
			break
		}
	}
	if !matched {
		return ErrInvalidImage
	}

	comma := strings.Index(imageData, ",")
	payload := imageData[comma+1:]
	if payload == "" {
		return ErrInvalidImage
	}

	for i := 0; i < len(payload); i++ {
		if !isBase64Char(payload[i]) {
			return ErrInvalidImage
		}
	}

	// Base64 is ~1.33x the decoded size.
	estimatedSize := len(payload) * 3 / 4
	if estimatedSize > MaxImageBytes {
		return ErrInvalidImage
	}

	return nil
}

// ValidateLanguage checks that language is on the fixed allow-list.
func ValidateLanguage(language string) error {
	if !allowedLanguages[language] {
		return ErrInvalidLanguage
	}
	return nil
}

func isBase64Char(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '+' || c == '/' || c == '=':
		return true
	}
	return false
}
