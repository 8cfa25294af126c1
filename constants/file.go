package constants

import "strings"

// AllowedExtensions holds the file extensions accepted by the local parse command.
var AllowedExtensions = map[string]struct{}{
	"xml": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AllowedExt checks if a file extension is in the allowed set.
func AllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}

// IsHidden checks if a file or directory name is hidden (starts with '.').
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
