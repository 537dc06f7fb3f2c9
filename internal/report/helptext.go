package report

import "fmt"

// FinalizeHelp fills HelpText with guidance matched to the kinds of errors
// the run produced. Leaves it empty on a fully successful run.
func (r *Report) FinalizeHelp() {
	uniqueTemplates := len(r.MissingTemplates)
	uniqueResumes := len(r.MissingResumes)

	affected := 0
	for _, group := range r.MissingTemplates {
		affected += len(group.AffectedEmails)
	}
	for _, group := range r.MissingResumes {
		affected += len(group.AffectedEmails)
	}

	switch {
	case uniqueTemplates > 0 && uniqueResumes > 0:
		r.HelpText = fmt.Sprintf("Missing %d template file(s) and %d resume file(s) affecting %d email addresses. "+
			"Template files can have flexible names (containing the role), "+
			"and resume files will be attached with standardized names: Full_Name_Role.extension format.",
			uniqueTemplates, uniqueResumes, affected)
	case uniqueTemplates > 0:
		r.HelpText = fmt.Sprintf("Missing %d template file(s) affecting %d email addresses. "+
			"Create .txt files containing the role name (e.g., FSE.txt, backend_template.txt, ml.txt) in your templates folder. "+
			"Templates may use placeholders like {NAME}, {POSITION}, {USER_NAME}.",
			uniqueTemplates, affected)
	case uniqueResumes > 0:
		r.HelpText = fmt.Sprintf("Missing %d resume file(s) affecting %d email addresses. "+
			"Resume files can have flexible names (containing the role), but will be attached to emails using standardized format: "+
			"Full_Name_Role.extension (e.g., John_Smith_FSE.pdf). Ensure resume files contain the role name.",
			uniqueResumes, affected)
	case r.ErrorCount > 0:
		r.HelpText = "Check the error details above. Common issues include invalid email addresses in the spreadsheet or authentication problems."
	}
}
