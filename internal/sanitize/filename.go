// Package sanitize cleans client-supplied filenames before they touch the
// public uploads directory or response headers.
package sanitize

import (
	"path/filepath"
	"strings"
	"unicode"

	"genovault/internal/constants"
)

// illegalFilenameChars contains characters that are forbidden in filenames
// across common filesystems (NTFS, FAT32, ext4 compatibility).
const illegalFilenameChars = `<>:"|?*`

// replacementChar substitutes control and illegal characters.
const replacementChar = "_"

// maxExtensionLength bounds sanitized extensions.
const maxExtensionLength = 16

// Filename sanitizes a raw filename by removing path components, control
// characters, and filesystem-illegal characters. Returns an empty string if
// nothing safe remains (caller decides fallback behavior).
func Filename(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ReplaceAll(raw, "\x00", "")
	if s == "" {
		return ""
	}

	// Normalize backslashes so filepath.Base handles Windows-style paths
	// on all platforms (Linux treats \ as a valid filename char).
	s = strings.ReplaceAll(s, "\\", "/")
	s = filepath.Base(s)
	if s == "." || s == ".." {
		return ""
	}

	// Leading dots would produce hidden files
	s = strings.TrimLeft(s, ".")

	s = replaceControlChars(s)
	s = replaceIllegalChars(s)

	if len(s) > constants.MaxFilenameLength {
		s = s[:constants.MaxFilenameLength]
	}
	return strings.Trim(s, " "+replacementChar)
}

// Extension sanitizes a file extension by lowercasing it and keeping only
// alphanumeric characters. Returns an empty string if nothing remains.
func Extension(raw string) string {
	if raw == "" {
		return ""
	}

	raw = strings.ToLower(raw)
	raw = strings.TrimLeft(raw, ".")

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	result := b.String()
	if len(result) > maxExtensionLength {
		result = result[:maxExtensionLength]
	}
	return result
}

// IsPathTraversal checks whether a string contains path traversal indicators:
// directory separators, parent directory references, null bytes, and common
// percent-encoded bypass variants.
func IsPathTraversal(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, "\x00") {
		return true
	}
	if strings.ContainsAny(s, "/\\") {
		return true
	}
	if strings.Contains(s, "..") {
		return true
	}

	lower := strings.ToLower(s)
	encodedPatterns := []string{
		"%2f", // /
		"%5c", // \
		"%2e", // .
		"%00", // null byte
	}
	for _, p := range encodedPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func replaceControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			b.WriteString(replacementChar)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func replaceIllegalChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(illegalFilenameChars, r) {
			b.WriteString(replacementChar)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
