// Package pipeline drives one batch run: contact extraction, resource
// resolution, rendering, and draft creation, folded into a single report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/saloni/coldreach/internal/excel"
	"github.com/saloni/coldreach/internal/gmail"
	"github.com/saloni/coldreach/internal/report"
	"github.com/saloni/coldreach/internal/resolve"
	"github.com/saloni/coldreach/internal/templates"
	"github.com/saloni/coldreach/internal/types"
)

// History persists run summaries. Persistence failures are logged and never
// affect the report.
type History interface {
	StartRun(ctx context.Context, senderEmail, requesterName string) (int64, error)
	CompleteRun(ctx context.Context, runID int64, rep *report.Report) error
}

// Options configures a Processor.
type Options struct {
	Sender     types.SenderProfile
	Resolver   *resolve.Resolver
	Dispatcher gmail.Dispatcher
	Identity   gmail.Identity
	History    History // optional
	Log        *zap.Logger
	// Concurrency bounds parallel draft creation. Zero or one means
	// sequential processing.
	Concurrency int
}

// Processor runs batches against a fixed sender profile and resource set.
type Processor struct {
	opts Options
}

// NewProcessor returns a Processor for the given options.
func NewProcessor(opts Options) *Processor {
	return &Processor{opts: opts}
}

// Process reads contacts from the spreadsheet and creates one draft per
// contact, returning the aggregate report. Wholesale failures (broken
// authentication, unreadable spreadsheet) produce a report with zero
// processed contacts and a single error.
func (p *Processor) Process(ctx context.Context, spreadsheet io.Reader) *report.Report {
	rep := report.New()

	senderEmail, err := p.opts.Identity.CurrentUserEmail(ctx)
	if err != nil {
		p.opts.Log.Error("could not resolve sender identity", zap.Error(err))
		rep.RecordError(fmt.Sprintf("Authentication error: %v", err))
		rep.HelpText = "Please log in again to continue using the service."
		return rep
	}

	contacts, err := excel.Extract(spreadsheet, p.opts.Log)
	if err != nil {
		p.opts.Log.Error("could not extract contacts", zap.Error(err))
		rep.RecordError(fmt.Sprintf("Failed to read spreadsheet: %v", err))
		rep.HelpText = "Check your Excel file format. Ensure it has 'Name', 'Email Id', and 'Role' columns."
		return rep
	}

	rep.TotalProcessed = len(contacts)
	if len(contacts) == 0 {
		rep.AddWarning("No valid contacts found in the file. Please check the file format.")
		rep.FinalizeHelp()
		return rep
	}

	runID := p.startRun(ctx, senderEmail)

	outcomes := p.processAll(ctx, senderEmail, contacts)
	for _, outcome := range outcomes {
		switch outcome.Kind {
		case OutcomeSuccess:
			rep.RecordSuccess()
		case OutcomeMissingTemplate:
			rep.RecordMissingTemplate(outcome.Contact.Role, outcome.Expected, outcome.Suggestion, outcome.Contact.Email)
		case OutcomeMissingResume:
			rep.RecordMissingResume(outcome.Contact.Role, outcome.Expected, outcome.Suggestion, outcome.Contact.Email)
		case OutcomeError:
			rep.RecordError(outcome.Message)
		}
	}
	rep.FinalizeHelp()

	p.completeRun(ctx, runID, rep)
	p.opts.Log.Info("batch complete",
		zap.Int("total", rep.TotalProcessed),
		zap.Int("success", rep.SuccessCount),
		zap.Int("errors", rep.ErrorCount))
	return rep
}

// processAll produces one outcome per contact, in input order. With
// Concurrency > 1 contacts are processed by a bounded worker group; each
// worker writes only its own slice index, so no synchronization beyond the
// group wait is needed.
func (p *Processor) processAll(ctx context.Context, senderEmail string, contacts []types.Contact) []Outcome {
	outcomes := make([]Outcome, len(contacts))

	if p.opts.Concurrency <= 1 {
		for i, contact := range contacts {
			outcomes[i] = p.processContact(ctx, senderEmail, contact)
		}
		return outcomes
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, contact := range contacts {
		g.Go(func() error {
			outcomes[i] = p.processContact(ctx, senderEmail, contact)
			return nil
		})
	}
	g.Wait()
	return outcomes
}

func (p *Processor) processContact(ctx context.Context, senderEmail string, contact types.Contact) Outcome {
	tpl, err := p.opts.Resolver.FindTemplate(contact.Role)
	if err != nil {
		var notFound *resolve.TemplateNotFoundError
		if errors.As(err, &notFound) {
			return Outcome{
				Kind:       OutcomeMissingTemplate,
				Contact:    contact,
				Expected:   notFound.Expected,
				Suggestion: notFound.Suggestion,
			}
		}
		return Outcome{Kind: OutcomeError, Contact: contact, Message: failureMessage(contact, err)}
	}

	resume, err := p.opts.Resolver.FindResume(contact.Role, p.opts.Sender.FullName)
	if err != nil {
		var notFound *resolve.ResumeNotFoundError
		if errors.As(err, &notFound) {
			return Outcome{
				Kind:       OutcomeMissingResume,
				Contact:    contact,
				Expected:   notFound.Expected,
				Suggestion: notFound.Suggestion,
			}
		}
		return Outcome{Kind: OutcomeError, Contact: contact, Message: failureMessage(contact, err)}
	}

	body := templates.ToHTML(templates.Render(tpl.Content, templates.Replacements(contact, p.opts.Sender)))
	subject := templates.Subject(contact.Role, p.opts.Sender.FullName)

	draftID, err := p.opts.Dispatcher.CreateDraft(ctx, gmail.DraftRequest{
		To:             contact.Email,
		From:           senderEmail,
		Subject:        subject,
		HTMLBody:       body,
		AttachmentName: resume.AttachmentName,
		Attachment:     resume.Content,
	})
	if err != nil {
		return Outcome{Kind: OutcomeError, Contact: contact, Message: failureMessage(contact, err)}
	}
	return Outcome{Kind: OutcomeSuccess, Contact: contact, DraftID: draftID}
}

func failureMessage(contact types.Contact, err error) string {
	return fmt.Sprintf("Failed to process %s (%s): %v", contact.Email, contact.Name, err)
}

func (p *Processor) startRun(ctx context.Context, senderEmail string) int64 {
	if p.opts.History == nil {
		return 0
	}
	runID, err := p.opts.History.StartRun(ctx, senderEmail, p.opts.Sender.FullName)
	if err != nil {
		p.opts.Log.Warn("could not record run start", zap.Error(err))
		return 0
	}
	return runID
}

func (p *Processor) completeRun(ctx context.Context, runID int64, rep *report.Report) {
	if p.opts.History == nil || runID == 0 {
		return
	}
	if err := p.opts.History.CompleteRun(ctx, runID, rep); err != nil {
		p.opts.Log.Warn("could not record run completion", zap.Error(err))
	}
}
