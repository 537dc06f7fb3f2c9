package resolve

import "fmt"

// TemplateNotFoundError reports that no template file matched a role. It
// carries everything the report needs to guide the user: the role, where a
// matching file was expected, and how to fix it.
type TemplateNotFoundError struct {
	Role       string
	Expected   string
	Suggestion string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template not found for role %s (expected %s)", e.Role, e.Expected)
}

// ResumeNotFoundError reports that no resume file matched a role.
type ResumeNotFoundError struct {
	Role       string
	Expected   string
	Suggestion string
}

func (e *ResumeNotFoundError) Error() string {
	return fmt.Sprintf("resume not found for role %s (expected %s)", e.Role, e.Expected)
}
