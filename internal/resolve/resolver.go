package resolve

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/saloni/coldreach/internal/naming"
)

// Template is a resolved email template.
type Template struct {
	Content    string
	SourceName string
}

// Resume is a resolved resume file together with the standardized name it
// should be attached under.
type Resume struct {
	Content        []byte
	SourceName     string
	AttachmentName string
}

// Resolver finds the template and resume for a role inside a Library.
//
// Two matching modes exist. In directory mode the template base name must
// end with the role ("fse.txt", "hello_fse.txt"), which keeps a shared
// templates folder from matching on accident. In fuzzy mode, used for
// uploaded files, a substring match anywhere in the name is enough. Resume
// matching is substring-based in both modes; directory mode additionally
// prefers files that carry the requester's name.
type Resolver struct {
	lib   Library
	fuzzy bool
	log   *zap.Logger
}

// NewDirResolver resolves against a directory on disk using strict
// suffix-based template matching.
func NewDirResolver(dir string, log *zap.Logger) *Resolver {
	return &Resolver{lib: NewDirLibrary(dir), fuzzy: false, log: log}
}

// NewStagedResolver resolves against a directory of files staged from an
// upload, using fuzzy substring matching.
func NewStagedResolver(dir string, log *zap.Logger) *Resolver {
	return &Resolver{lib: NewDirLibrary(dir), fuzzy: true, log: log}
}

// NewUploadResolver resolves against in-memory uploaded files using fuzzy
// substring matching.
func NewUploadResolver(files map[string][]byte, log *zap.Logger) *Resolver {
	return &Resolver{lib: NewMemLibrary(files), fuzzy: true, log: log}
}

// NewMemResolver resolves against in-memory files using strict matching.
// Mostly useful in tests.
func NewMemResolver(files map[string][]byte, log *zap.Logger) *Resolver {
	return &Resolver{lib: NewMemLibrary(files), fuzzy: false, log: log}
}

// FindTemplate returns the template for the given role. Matching is
// case-insensitive on the file base name and only considers .txt files.
// Candidates are tried in lexicographic order and the first match wins.
func (r *Resolver) FindTemplate(role string) (*Template, error) {
	names, err := r.lib.List()
	if err != nil {
		r.log.Warn("could not list template candidates", zap.Error(err))
		return nil, r.templateNotFound(role)
	}

	lowRole := strings.ToLower(role)
	for _, name := range names {
		base, ext := splitName(name)
		if ext != ".txt" {
			continue
		}
		if !r.templateMatches(base, lowRole) {
			continue
		}

		data, err := r.lib.ReadFile(name)
		if err != nil {
			r.log.Warn("could not read template", zap.String("file", name), zap.Error(err))
			continue
		}
		r.log.Debug("resolved template", zap.String("role", role), zap.String("file", name))
		return &Template{Content: string(data), SourceName: name}, nil
	}
	return nil, r.templateNotFound(role)
}

func (r *Resolver) templateMatches(base, lowRole string) bool {
	if r.fuzzy {
		return strings.Contains(base, lowRole)
	}
	return strings.HasSuffix(base, lowRole)
}

// FindResume returns the resume for the given role, preferring files that
// also carry the requester's name when several match. Only .pdf and .docx
// files are considered. The returned AttachmentName is derived from the
// requester's name, the role, and the source file's extension.
func (r *Resolver) FindResume(role, requesterName string) (*Resume, error) {
	names, err := r.lib.List()
	if err != nil {
		r.log.Warn("could not list resume candidates", zap.Error(err))
		return nil, r.resumeNotFound(role)
	}

	lowRole := strings.ToLower(role)
	matched := ""
	if !r.fuzzy && strings.TrimSpace(requesterName) != "" {
		matched = firstMatch(names, func(base string) bool {
			return strings.Contains(base, lowRole) && containsRequester(base, requesterName)
		})
	}
	if matched == "" {
		matched = firstMatch(names, func(base string) bool {
			return strings.Contains(base, lowRole)
		})
	}
	if matched == "" {
		return nil, r.resumeNotFound(role)
	}

	data, err := r.lib.ReadFile(matched)
	if err != nil {
		r.log.Warn("could not read resume", zap.String("file", matched), zap.Error(err))
		return nil, r.resumeNotFound(role)
	}
	r.log.Debug("resolved resume", zap.String("role", role), zap.String("file", matched))
	return &Resume{
		Content:        data,
		SourceName:     matched,
		AttachmentName: naming.AttachmentName(requesterName, role, matched),
	}, nil
}

// firstMatch walks the sorted candidate names and returns the first .pdf or
// .docx whose lowercased base name satisfies the predicate.
func firstMatch(names []string, pred func(base string) bool) string {
	for _, name := range names {
		base, ext := splitName(name)
		if ext != ".pdf" && ext != ".docx" {
			continue
		}
		if pred(base) {
			return name
		}
	}
	return ""
}

// containsRequester reports whether the lowercased base name carries the
// requester's name in any common file-name form: underscored, spaced as-is,
// or with spaces removed.
func containsRequester(base, requesterName string) bool {
	forms := []string{
		strings.ToLower(naming.FormatName(requesterName)),
		strings.ToLower(strings.ReplaceAll(requesterName, " ", "_")),
		strings.ToLower(strings.ReplaceAll(requesterName, " ", "")),
	}
	for _, form := range forms {
		if form != "" && strings.Contains(base, form) {
			return true
		}
	}
	return false
}

// splitName returns the lowercased base name and extension of a file name.
func splitName(name string) (base, ext string) {
	lower := strings.ToLower(name)
	ext = filepath.Ext(lower)
	return strings.TrimSuffix(lower, ext), ext
}

func (r *Resolver) templateNotFound(role string) *TemplateNotFoundError {
	lowRole := strings.ToLower(role)
	if r.fuzzy {
		return &TemplateNotFoundError{
			Role:       role,
			Expected:   fmt.Sprintf("uploaded .txt file containing '%s'", lowRole),
			Suggestion: fmt.Sprintf("Upload a .txt template file with '%s' in the filename (e.g., %s_template.txt)", lowRole, lowRole),
		}
	}
	return &TemplateNotFoundError{
		Role:       role,
		Expected:   filepath.Join(r.lib.Describe(), lowRole+".txt"),
		Suggestion: fmt.Sprintf("Create a template file named '%s.txt' (or ending in '_%s.txt') in %s", lowRole, lowRole, r.lib.Describe()),
	}
}

func (r *Resolver) resumeNotFound(role string) *ResumeNotFoundError {
	lowRole := strings.ToLower(role)
	if r.fuzzy {
		return &ResumeNotFoundError{
			Role:       role,
			Expected:   fmt.Sprintf("uploaded file containing '%s'", lowRole),
			Suggestion: fmt.Sprintf("Upload a .pdf or .docx resume file with '%s' in the filename", lowRole),
		}
	}
	return &ResumeNotFoundError{
		Role:       role,
		Expected:   fmt.Sprintf("a .pdf or .docx file in %s with '%s' in the filename", r.lib.Describe(), lowRole),
		Suggestion: fmt.Sprintf("Create a resume file with '%s' in the filename (e.g., My_%s_Resume.pdf or My_%s_Resume.docx)", lowRole, lowRole, lowRole),
	}
}
