package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountingInvariant(t *testing.T) {
	r := New()
	r.TotalProcessed = 6

	r.RecordSuccess()
	r.RecordSuccess()
	r.RecordSuccess()
	r.RecordError("Failed to process a@example.com (Alex): boom")
	r.RecordMissingTemplate("ML", "/templates/ml.txt", "create it", "b@example.com")
	r.RecordMissingResume("QA", "a .pdf with 'qa'", "create it", "c@example.com")

	assert.Equal(t, 3, r.SuccessCount)
	assert.Equal(t, 3, r.ErrorCount)
	assert.True(t, r.Consistent())
}

func TestMissingTemplateGrouping(t *testing.T) {
	r := New()
	r.TotalProcessed = 3

	for i := range 3 {
		r.RecordMissingTemplate("Backend", "/templates/backend.txt", "create it",
			fmt.Sprintf("user%d@example.com", i))
	}

	// One group per role, one error line per role, one count per contact.
	require.Len(t, r.MissingTemplates, 1)
	group := r.MissingTemplates[0]
	assert.Equal(t, "Backend", group.Role)
	assert.Equal(t, []string{"user0@example.com", "user1@example.com", "user2@example.com"}, group.AffectedEmails)
	assert.Equal(t, 3, r.ErrorCount)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "Template missing: /templates/backend.txt", r.Errors[0])
	assert.True(t, r.Consistent())
}

func TestMissingResumeGrouping(t *testing.T) {
	r := New()
	r.TotalProcessed = 2

	r.RecordMissingResume("ML", "a .pdf with 'ml'", "create it", "a@example.com")
	r.RecordMissingResume("ML", "a .pdf with 'ml'", "create it", "b@example.com")

	require.Len(t, r.MissingResumes, 1)
	assert.Len(t, r.MissingResumes[0].AffectedEmails, 2)
	assert.Equal(t, 2, r.ErrorCount)
	require.Len(t, r.Errors, 1)
	assert.True(t, r.Consistent())
}

func TestWarningsDoNotAffectCounters(t *testing.T) {
	r := New()
	r.AddWarning("No valid contacts found in the file. Please check the file format.")

	assert.Zero(t, r.ErrorCount)
	assert.Zero(t, r.SuccessCount)
	assert.True(t, r.Consistent())
}

func TestFinalizeHelpVariants(t *testing.T) {
	t.Run("templates and resumes missing", func(t *testing.T) {
		r := New()
		r.RecordMissingTemplate("ML", "p", "s", "a@example.com")
		r.RecordMissingResume("QA", "p", "s", "b@example.com")
		r.FinalizeHelp()
		assert.Contains(t, r.HelpText, "Missing 1 template file(s) and 1 resume file(s) affecting 2 email addresses")
	})

	t.Run("templates only", func(t *testing.T) {
		r := New()
		r.RecordMissingTemplate("ML", "p", "s", "a@example.com")
		r.RecordMissingTemplate("ML", "p", "s", "b@example.com")
		r.FinalizeHelp()
		assert.Contains(t, r.HelpText, "Missing 1 template file(s) affecting 2 email addresses")
		assert.Contains(t, r.HelpText, "{NAME}")
	})

	t.Run("resumes only", func(t *testing.T) {
		r := New()
		r.RecordMissingResume("QA", "p", "s", "a@example.com")
		r.FinalizeHelp()
		assert.Contains(t, r.HelpText, "Missing 1 resume file(s) affecting 1 email addresses")
		assert.Contains(t, r.HelpText, "Full_Name_Role.extension")
	})

	t.Run("generic errors", func(t *testing.T) {
		r := New()
		r.RecordError("something else broke")
		r.FinalizeHelp()
		assert.Contains(t, r.HelpText, "Check the error details above")
	})

	t.Run("clean run", func(t *testing.T) {
		r := New()
		r.RecordSuccess()
		r.FinalizeHelp()
		assert.Empty(t, r.HelpText)
	})
}
