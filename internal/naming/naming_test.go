package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase two words", "saloni ranka", "Saloni_Ranka"},
		{"already title case", "John Smith", "John_Smith"},
		{"mixed case", "jOHN sMITH", "John_Smith"},
		{"single word", "madonna", "Madonna"},
		{"extra whitespace", "  saloni   ranka  ", "Saloni_Ranka"},
		{"empty", "", "Resume"},
		{"whitespace only", "   ", "Resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatName(tt.input))
		})
	}
}

func TestAttachmentName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		role     string
		original string
		expected string
	}{
		{"pdf resume", "saloni ranka", "FSE", "anything.pdf", "Saloni_Ranka_FSE.pdf"},
		{"docx resume", "john smith", "Backend", "cv_backend_v2.docx", "John_Smith_Backend.docx"},
		{"blank name falls back", "", "FSE", "x.docx", "Resume_FSE.docx"},
		{"no extension", "saloni ranka", "ML", "resume", "Saloni_Ranka_ML"},
		{"leading dot only", "saloni ranka", "QA", ".hidden", "Saloni_Ranka_QA"},
		{"multiple dots keep last", "saloni ranka", "PM", "resume.final.pdf", "Saloni_Ranka_PM.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AttachmentName(tt.fullName, tt.role, tt.original))
		})
	}
}

func TestAttachmentNameIsDeterministic(t *testing.T) {
	first := AttachmentName("saloni ranka", "FSE", "my_fse_resume.pdf")
	for range 5 {
		assert.Equal(t, first, AttachmentName("saloni ranka", "FSE", "my_fse_resume.pdf"))
	}
}
