package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/saloni/coldreach/internal/auth"
	"github.com/saloni/coldreach/internal/gmail"
	"github.com/saloni/coldreach/internal/pipeline"
	"github.com/saloni/coldreach/internal/report"
	"github.com/saloni/coldreach/internal/resolve"
	"github.com/saloni/coldreach/internal/types"
)

// maxUploadBytes bounds one multipart request: spreadsheet plus templates
// and resumes.
const maxUploadBytes = 32 << 20

// handleProcess runs a batch against a templates directory on the server's
// filesystem. Form fields: file (spreadsheet), fullName, phoneNumber,
// linkedInUrl (optional), templatesFolderPath.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return
	}

	sender, ok := s.senderFromForm(w, r)
	if !ok {
		return
	}

	templatesDir := strings.TrimSpace(r.FormValue("templatesFolderPath"))
	if templatesDir == "" {
		s.errorResponse(w, http.StatusBadRequest, "templatesFolderPath is required")
		return
	}

	spreadsheet, _, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "spreadsheet file is required")
		return
	}
	defer spreadsheet.Close()

	resolver := resolve.NewDirResolver(templatesDir, s.log)
	s.runBatch(w, r, session, sender, resolver, spreadsheet)
}

// handleProcessWithFiles runs a batch against uploaded template and resume
// files instead of a server-side directory. Form fields: file (spreadsheet),
// fullName, phoneNumber, linkedInUrl (optional), templateFiles, resumeFiles.
func (s *Server) handleProcessWithFiles(w http.ResponseWriter, r *http.Request) {
	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return
	}

	sender, ok := s.senderFromForm(w, r)
	if !ok {
		return
	}

	spreadsheet, _, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "spreadsheet file is required")
		return
	}
	defer spreadsheet.Close()

	uploads, err := collectUploads(r.MultipartForm, "templateFiles", "resumeFiles")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(uploads) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "no template or resume files uploaded")
		return
	}

	staging, err := pipeline.StageUploads(uploads, s.log)
	if err != nil {
		s.log.Error("could not stage uploads", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "could not stage uploaded files")
		return
	}
	defer staging.Cleanup()

	resolver := resolve.NewStagedResolver(staging.Dir, s.log)
	s.runBatch(w, r, session, sender, resolver, spreadsheet)
}

// runBatch wires the Gmail service for the session and executes the
// pipeline, writing the report as the response.
func (s *Server) runBatch(w http.ResponseWriter, r *http.Request, session *auth.Session,
	sender types.SenderProfile, resolver *resolve.Resolver, spreadsheet io.Reader) {

	ctx := r.Context()
	svc, err := gmail.NewService(ctx, s.auth.Client(ctx, session), s.log)
	if err != nil {
		s.log.Error("could not build gmail service", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "could not reach Gmail")
		return
	}

	processor := pipeline.NewProcessor(pipeline.Options{
		Sender:      sender,
		Resolver:    resolver,
		Dispatcher:  svc,
		Identity:    svc,
		History:     s.history(),
		Log:         s.log,
		Concurrency: s.concurrency,
	})

	rep := processor.Process(ctx, spreadsheet)
	s.jsonResponse(w, http.StatusOK, rep)
}

// requireSession resolves the session cookie. On failure it writes a 401
// with an authentication-error report so clients always get the same shape.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (*auth.Session, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		s.jsonResponse(w, http.StatusUnauthorized, authErrorReport("No session found. Please log in first."))
		return nil, false
	}
	session, ok := s.auth.Lookup(cookie.Value)
	if !ok {
		s.jsonResponse(w, http.StatusUnauthorized, authErrorReport("Invalid or expired session. Please log in again."))
		return nil, false
	}
	return session, true
}

// senderFromForm builds and validates the sender profile from form fields.
func (s *Server) senderFromForm(w http.ResponseWriter, r *http.Request) (types.SenderProfile, bool) {
	sender := types.SenderProfile{
		FullName:    strings.TrimSpace(r.FormValue("fullName")),
		PhoneNumber: strings.TrimSpace(r.FormValue("phoneNumber")),
		LinkedInURL: strings.TrimSpace(r.FormValue("linkedInUrl")),
	}
	if err := s.validate.Struct(sender); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid sender profile: "+err.Error())
		return types.SenderProfile{}, false
	}
	return sender, true
}

// collectUploads reads every file under the given multipart field names
// into memory, keyed by base file name.
func collectUploads(form *multipart.Form, fields ...string) (map[string][]byte, error) {
	files := make(map[string][]byte)
	if form == nil {
		return files, nil
	}
	for _, field := range fields {
		for _, header := range form.File[field] {
			f, err := header.Open()
			if err != nil {
				return nil, fmt.Errorf("could not open upload %s: %w", header.Filename, err)
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("could not read upload %s: %w", header.Filename, err)
			}
			files[header.Filename] = content
		}
	}
	return files, nil
}

// authErrorReport is the report shape returned on authentication failures.
func authErrorReport(message string) *report.Report {
	rep := report.New()
	rep.RecordError("Authentication error: " + message)
	rep.HelpText = "Please log in again to continue using the service."
	return rep
}
