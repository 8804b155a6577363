package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// MaxProjectNameLength bounds project names, which also end up in filenames.
const MaxProjectNameLength = 120

// ValidateProjectName validates a user-supplied project name.
// Empty names are allowed; exports then fall back to a default filename.
//
// Validation rules:
//   - Maximum length of MaxProjectNameLength characters
//   - No control characters or null bytes
func ValidateProjectName(name string) error {
	if len([]rune(name)) > MaxProjectNameLength {
		return New(ErrCodeInvalidProject, "project name too long (max %d characters)", MaxProjectNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProject, "project name contains invalid control characters")
		}
	}

	return nil
}

var filenameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"\x00", "",
	"\"", "",
)

// SanitizeFilename makes name safe to use as a single path component.
// Path separators become dashes and leading dots are stripped so the
// result can never escape the output directory or become a hidden file.
func SanitizeFilename(name string) string {
	s := filenameReplacer.Replace(strings.TrimSpace(name))
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimLeft(s, ".")
	if s == "" || strings.Contains(s, "..") {
		return ""
	}
	return s
}

// ValidateURL checks that rawURL is an absolute http or https URL with a
// host. It guards service endpoints read from configuration.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}
