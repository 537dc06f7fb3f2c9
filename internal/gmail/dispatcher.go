// Package gmail creates draft emails in the authenticated user's mailbox.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// DraftRequest carries everything needed to build one draft.
type DraftRequest struct {
	To             string
	From           string
	Subject        string
	HTMLBody       string
	AttachmentName string
	Attachment     []byte
}

// Dispatcher creates drafts. The pipeline depends on this interface so tests
// can substitute an in-memory implementation.
type Dispatcher interface {
	CreateDraft(ctx context.Context, req DraftRequest) (string, error)
}

// Identity resolves the authenticated user's email address.
type Identity interface {
	CurrentUserEmail(ctx context.Context) (string, error)
}

// DispatchError reports a failed call to the mail provider.
type DispatchError struct {
	Op    string
	Cause error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("gmail %s failed: %v", e.Op, e.Cause)
}

func (e *DispatchError) Unwrap() error {
	return e.Cause
}

// Service implements Dispatcher and Identity on top of the Gmail API.
type Service struct {
	api *gmailapi.Service
	log *zap.Logger
}

// NewService builds a Service from an OAuth-authenticated HTTP client.
func NewService(ctx context.Context, client *http.Client, log *zap.Logger) (*Service, error) {
	api, err := gmailapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, &DispatchError{Op: "init", Cause: err}
	}
	return &Service{api: api, log: log}, nil
}

// CurrentUserEmail returns the address of the mailbox the client is
// authorized for.
func (s *Service) CurrentUserEmail(ctx context.Context) (string, error) {
	profile, err := s.api.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", &DispatchError{Op: "get profile", Cause: err}
	}
	return profile.EmailAddress, nil
}

// CreateDraft builds the MIME message for the request and saves it as a
// draft in the user's mailbox, returning the draft ID.
func (s *Service) CreateDraft(ctx context.Context, req DraftRequest) (string, error) {
	s.log.Info("creating draft",
		zap.String("to", req.To),
		zap.String("subject", req.Subject),
		zap.String("attachment", req.AttachmentName))

	raw, err := buildMessage(req)
	if err != nil {
		return "", &DispatchError{Op: "build message", Cause: err}
	}

	draft := &gmailapi.Draft{
		Message: &gmailapi.Message{
			Raw: base64.RawURLEncoding.EncodeToString(raw),
		},
	}
	created, err := s.api.Users.Drafts.Create("me", draft).Context(ctx).Do()
	if err != nil {
		return "", &DispatchError{Op: "create draft", Cause: err}
	}

	s.log.Info("draft created", zap.String("draftId", created.Id))
	return created.Id, nil
}
