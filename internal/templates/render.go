package templates

import (
	"fmt"
	"strings"

	"github.com/saloni/coldreach/internal/types"
)

// Replacement is one placeholder substitution. Replacements are applied in
// slice order so rendering is deterministic.
type Replacement struct {
	Key   string
	Value string
}

// Render applies each replacement as a literal substring substitution over
// the whole template. Placeholders not present in the replacement list are
// left verbatim; that is accepted behavior, not an error.
func Render(templateText string, replacements []Replacement) string {
	result := templateText
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r.Key, r.Value)
	}
	return result
}

// Replacements builds the ordered placeholder list for one contact.
// The current format is {NAME}, {POSITION}, {USER_NAME}, {PHONE},
// {LINKEDIN}; the {{...}} family is kept for templates written against the
// old format.
func Replacements(contact types.Contact, sender types.SenderProfile) []Replacement {
	contactName := strings.TrimSpace(contact.Name)
	fullRole := FullRoleName(contact.Role)

	linkedIn := strings.TrimSpace(sender.LinkedInURL)

	// The legacy LinkedIn placeholder expands to a whole anchor section,
	// or nothing when no URL was given.
	linkedInSection := ""
	if linkedIn != "" {
		linkedInSection = fmt.Sprintf("LinkedIn: <a href=%q>%s</a>", linkedIn, linkedIn)
	}

	return []Replacement{
		{Key: "{NAME}", Value: contactName},
		{Key: "{POSITION}", Value: fullRole},
		{Key: "{USER_NAME}", Value: sender.FullName},
		{Key: "{PHONE}", Value: sender.PhoneNumber},
		{Key: "{LINKEDIN}", Value: linkedIn},
		{Key: "{{CONTACT_NAME}}", Value: contactName},
		{Key: "{{ROLE}}", Value: fullRole},
		{Key: "{{FULL_NAME}}", Value: sender.FullName},
		{Key: "{{PHONE_NUMBER}}", Value: sender.PhoneNumber},
		{Key: "{{LINKEDIN_URL}}", Value: linkedInSection},
	}
}
