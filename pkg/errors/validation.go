package errors

import (
	"net/url"
	"strings"
	"unicode"
)

const (
	maxNameLength = 128
	maxPathLength = 4096
)

// ValidateAirfoilName checks a name before it is used as a lookup key.
// Names become catalog file names and URL path segments, so empty names,
// control characters, path separators and ".." are rejected.
func ValidateAirfoilName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return New(ErrCodeInvalidName, "airfoil name cannot be empty")
	case len(name) > maxNameLength:
		return New(ErrCodeInvalidName, "airfoil name too long (max %d characters)", maxNameLength)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidName, "airfoil name contains invalid control characters")
	}
	for _, bad := range []string{"..", "/", "\\"} {
		if strings.Contains(name, bad) {
			return New(ErrCodeInvalidName, "airfoil name contains invalid characters: %q", bad)
		}
	}
	return nil
}

// ValidatePath checks a coordinate file or work directory path.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(path) > maxPathLength:
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	return nil
}

// ValidateURL accepts absolute http and https URLs.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}
