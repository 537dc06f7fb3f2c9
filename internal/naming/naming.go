// Package naming derives the standardized attachment filename presented to
// recipients, independent of the resume's actual filename on disk.
package naming

import "strings"

// FormatName converts a free-form requester name to Title Case joined with
// underscores, e.g. "saloni ranka" -> "Saloni_Ranka". A blank name yields
// the literal "Resume".
func FormatName(fullName string) string {
	words := strings.Fields(fullName)
	if len(words) == 0 {
		return "Resume"
	}

	formatted := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ToLower(word)
		formatted = append(formatted, strings.ToUpper(word[:1])+word[1:])
	}
	return strings.Join(formatted, "_")
}

// AttachmentName builds the outbound attachment filename:
// Title_Case_Name + "_" + role + extension of the original file. The
// extension is everything from the last dot; a file without one (or a
// leading-dot name) contributes no extension.
func AttachmentName(fullName, role, originalFileName string) string {
	ext := ""
	if i := strings.LastIndex(originalFileName, "."); i > 0 {
		ext = originalFileName[i:]
	}
	return FormatName(fullName) + "_" + role + ext
}
