// Package templates renders role-specific letter templates: placeholder
// substitution, the light markup to HTML pass, and subject generation.
package templates

import "fmt"

// roleNames maps short role codes from the spreadsheet to display names.
var roleNames = map[string]string{
	"FSE":           "Full Stack Engineer",
	"Backend":       "Backend Developer",
	"Frontend":      "Frontend Developer",
	"DevOps":        "DevOps Engineer",
	"QA":            "Quality Assurance Engineer",
	"Mobile":        "Mobile Application Developer",
	"DataScientist": "Data Scientist",
	"ML":            "Machine Learning Engineer",
	"PM":            "Product Manager",
	"TPM":           "Technical Program Manager",
}

// FullRoleName maps a role code to its display name. Unmapped codes pass
// through unchanged.
func FullRoleName(code string) string {
	if full, ok := roleNames[code]; ok {
		return full
	}
	return code
}

// Subject builds the draft subject line for a role and the requester's name.
func Subject(role, fullName string) string {
	return fmt.Sprintf("Application for %s - %s", FullRoleName(role), fullName)
}
