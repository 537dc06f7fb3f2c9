package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saloni/coldreach/internal/types"
)

func testSender() types.SenderProfile {
	return types.SenderProfile{
		FullName:    "Saloni Ranka",
		PhoneNumber: "+1 555 0100",
		LinkedInURL: "https://linkedin.com/in/saloni",
	}
}

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	contact := types.Contact{Name: "Alex Doe", Email: "alex@example.com", Role: "FSE"}
	body := Render(
		"Hi {NAME}, I am applying for {POSITION}. Regards, {USER_NAME} ({PHONE}, {LINKEDIN})",
		Replacements(contact, testSender()),
	)

	assert.Equal(t,
		"Hi Alex Doe, I am applying for Full Stack Engineer. Regards, Saloni Ranka (+1 555 0100, https://linkedin.com/in/saloni)",
		body)
}

func TestRenderLeavesUnknownPlaceholdersVerbatim(t *testing.T) {
	contact := types.Contact{Email: "alex@example.com", Role: "FSE"}
	body := Render("Hello {NAME}, token {UNKNOWN} stays.", Replacements(contact, testSender()))

	assert.Contains(t, body, "{UNKNOWN}")
	assert.NotContains(t, body, "{NAME}")
}

func TestRenderLegacyPlaceholders(t *testing.T) {
	contact := types.Contact{Name: "Alex", Email: "alex@example.com", Role: "Backend"}
	body := Render(
		"Dear {{CONTACT_NAME}}, re {{ROLE}}. {{FULL_NAME}} / {{PHONE_NUMBER}}\n{{LINKEDIN_URL}}",
		Replacements(contact, testSender()),
	)

	assert.Contains(t, body, "Dear Alex, re Backend Developer.")
	assert.Contains(t, body, "Saloni Ranka / +1 555 0100")
	assert.Contains(t, body, `LinkedIn: <a href="https://linkedin.com/in/saloni">https://linkedin.com/in/saloni</a>`)
}

func TestRenderLegacyLinkedInEmptyWhenAbsent(t *testing.T) {
	sender := testSender()
	sender.LinkedInURL = ""
	contact := types.Contact{Email: "a@b.c", Role: "QA"}

	body := Render("before|{{LINKEDIN_URL}}|after", Replacements(contact, sender))
	assert.Equal(t, "before||after", body)
}

func TestRenderBlankContactNameBecomesEmpty(t *testing.T) {
	contact := types.Contact{Name: "   ", Email: "a@b.c", Role: "FSE"}
	body := Render("Hi {NAME}!", Replacements(contact, testSender()))
	assert.Equal(t, "Hi !", body)
}

func TestFullRoleName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"FSE", "Full Stack Engineer"},
		{"Backend", "Backend Developer"},
		{"Frontend", "Frontend Developer"},
		{"DevOps", "DevOps Engineer"},
		{"QA", "Quality Assurance Engineer"},
		{"Mobile", "Mobile Application Developer"},
		{"DataScientist", "Data Scientist"},
		{"ML", "Machine Learning Engineer"},
		{"PM", "Product Manager"},
		{"TPM", "Technical Program Manager"},
		{"SRE", "SRE"}, // unmapped codes pass through
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FullRoleName(tt.code))
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Application for Full Stack Engineer - Saloni Ranka", Subject("FSE", "Saloni Ranka"))
	assert.Equal(t, "Application for Staff Wizard - Saloni Ranka", Subject("Staff Wizard", "Saloni Ranka"))
}
