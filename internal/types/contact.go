// Package types provides type definitions for structured data shared across the coldreach system.
package types

import "strings"

// Contact is one recipient row extracted from the uploaded spreadsheet.
// Email and Role are mandatory; rows without them never become a Contact.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SenderProfile carries the requester's own details, entered once per run.
// These feed the template placeholders and the standardized attachment name.
type SenderProfile struct {
	FullName    string `json:"fullName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	LinkedInURL string `json:"linkedInUrl,omitempty" validate:"omitempty,url"`
}

// HasLinkedIn reports whether a non-blank LinkedIn URL was provided.
func (p SenderProfile) HasLinkedIn() bool {
	return strings.TrimSpace(p.LinkedInURL) != ""
}
