// Package report aggregates per-contact outcomes into the summary returned
// to the caller after a batch run.
package report

// MissingResource groups every contact affected by one missing template or
// resume under the role that failed to resolve.
type MissingResource struct {
	Role           string   `json:"role"`
	ExpectedPath   string   `json:"expectedPath"`
	Suggestion     string   `json:"suggestion"`
	AffectedEmails []string `json:"affectedEmails"`
}

// Report is the aggregate result of one batch run.
//
// The counting invariant holds at every point during aggregation: each
// processed contact contributes to exactly one of SuccessCount or
// ErrorCount, so TotalProcessed == SuccessCount + ErrorCount once all
// outcomes are recorded. Wholesale failures (bad spreadsheet, broken
// authentication) are reported with TotalProcessed zero and a single error.
type Report struct {
	TotalProcessed   int                `json:"totalProcessed"`
	SuccessCount     int                `json:"successCount"`
	ErrorCount       int                `json:"errorCount"`
	Errors           []string           `json:"errors"`
	Warnings         []string           `json:"warnings"`
	MissingTemplates []*MissingResource `json:"missingTemplates"`
	MissingResumes   []*MissingResource `json:"missingResumes"`
	HelpText         string             `json:"helpText,omitempty"`

	templateIndex map[string]*MissingResource
	resumeIndex   map[string]*MissingResource
}

// New returns an empty report ready for aggregation.
func New() *Report {
	return &Report{
		Errors:           []string{},
		Warnings:         []string{},
		MissingTemplates: []*MissingResource{},
		MissingResumes:   []*MissingResource{},
		templateIndex:    map[string]*MissingResource{},
		resumeIndex:      map[string]*MissingResource{},
	}
}

// RecordSuccess counts one contact whose draft was created.
func (r *Report) RecordSuccess() {
	r.SuccessCount++
}

// RecordError counts one failed contact and appends its diagnostic line.
func (r *Report) RecordError(message string) {
	r.ErrorCount++
	r.Errors = append(r.Errors, message)
}

// AddWarning appends a non-fatal note that affects no counter.
func (r *Report) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// RecordMissingTemplate counts one contact that failed because no template
// matched its role. The first occurrence of a role creates the group and a
// single error line; every occurrence adds the affected email and increments
// the error count.
func (r *Report) RecordMissingTemplate(role, expectedPath, suggestion, affectedEmail string) {
	group, seen := r.templateIndex[role]
	if !seen {
		group = &MissingResource{Role: role, ExpectedPath: expectedPath, Suggestion: suggestion}
		r.templateIndex[role] = group
		r.MissingTemplates = append(r.MissingTemplates, group)
		r.Errors = append(r.Errors, "Template missing: "+expectedPath)
	}
	group.AffectedEmails = append(group.AffectedEmails, affectedEmail)
	r.ErrorCount++
}

// RecordMissingResume is the resume counterpart of RecordMissingTemplate.
func (r *Report) RecordMissingResume(role, expectedPath, suggestion, affectedEmail string) {
	group, seen := r.resumeIndex[role]
	if !seen {
		group = &MissingResource{Role: role, ExpectedPath: expectedPath, Suggestion: suggestion}
		r.resumeIndex[role] = group
		r.MissingResumes = append(r.MissingResumes, group)
		r.Errors = append(r.Errors, "Resume missing: "+expectedPath)
	}
	group.AffectedEmails = append(group.AffectedEmails, affectedEmail)
	r.ErrorCount++
}

// Consistent reports whether the counting invariant holds.
func (r *Report) Consistent() bool {
	return r.TotalProcessed == r.SuccessCount+r.ErrorCount
}
