package teams

import (
	"mime/multipart"
	"net/mail"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Majors offered on the registration form. The list is advisory: the server
// accepts any value within the general string limits.
var Majors = []string{
	"Teknik Komputer dan Jaringan (TKJ)",
	"Rekayasa Perangkat Lunak (RPL)",
	"Multimedia (MM)",
	"Teknik Elektronika Industri (TEI)",
	"Teknik Mekatronika",
	"Teknik Otomasi Industri (TOI)",
	"Sistem Informatika Jaringan dan Aplikasi (SIJA)",
	"Teknik Komputer dan Informatika (TKI)",
}

const (
	maxFieldLen       = 255
	maxPhoneLen       = 20
	minDescriptionLen = 100
	minTeamMembers    = 2
	maxTeamMembers    = 5
	maxDocumentBytes  = 10240 * 1024 // 10 MB
)

var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var allowedDocumentExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// RegistrationInput is the raw submission before validation. Team name
// comparison is exact: no trimming or case folding is applied anywhere.
type RegistrationInput struct {
	TeamName           string
	SchoolOrigin       string
	Major              string
	ProjectTitle       string
	ProjectDescription string
	TeamMembers        []string
	ContactEmail       string
	ContactPhone       string
}

// ValidateRegistration evaluates every rule and accumulates the first
// violated message per field. nameTaken consults existing records; its error
// is an infrastructure failure, not a validation result.
func ValidateRegistration(in *RegistrationInput, doc *multipart.FileHeader, nameTaken func(string) (bool, error)) (ValidationErrors, error) {
	errs := ValidationErrors{}

	switch {
	case in.TeamName == "":
		errs["team_name"] = "Team name is required."
	case utf8.RuneCountInString(in.TeamName) > maxFieldLen:
		errs["team_name"] = "Team name may not exceed 255 characters."
	default:
		taken, err := nameTaken(in.TeamName)
		if err != nil {
			return nil, err
		}
		if taken {
			errs["team_name"] = "This team name is already registered."
		}
	}

	switch {
	case in.SchoolOrigin == "":
		errs["school_origin"] = "School origin is required."
	case utf8.RuneCountInString(in.SchoolOrigin) > maxFieldLen:
		errs["school_origin"] = "School origin may not exceed 255 characters."
	}

	switch {
	case in.Major == "":
		errs["major"] = "Major field is required."
	case utf8.RuneCountInString(in.Major) > maxFieldLen:
		errs["major"] = "Major may not exceed 255 characters."
	}

	switch {
	case in.ProjectTitle == "":
		errs["project_title"] = "Project title is required."
	case utf8.RuneCountInString(in.ProjectTitle) > maxFieldLen:
		errs["project_title"] = "Project title may not exceed 255 characters."
	}

	switch {
	case in.ProjectDescription == "":
		errs["project_description"] = "Project description is required."
	case utf8.RuneCountInString(in.ProjectDescription) < minDescriptionLen:
		errs["project_description"] = "Project description must be at least 100 characters."
	}

	validateMembers(in.TeamMembers, errs)

	switch {
	case in.ContactEmail == "":
		errs["contact_email"] = "Contact email is required."
	case utf8.RuneCountInString(in.ContactEmail) > maxFieldLen || !isValidEmail(in.ContactEmail):
		errs["contact_email"] = "Please provide a valid email address."
	}

	switch {
	case in.ContactPhone == "":
		errs["contact_phone"] = "Contact phone is required."
	case utf8.RuneCountInString(in.ContactPhone) > maxPhoneLen:
		errs["contact_phone"] = "Contact phone may not exceed 20 characters."
	}

	if doc != nil {
		validateDocument(doc, errs)
	}

	return errs, nil
}

func validateMembers(members []string, errs ValidationErrors) {
	switch {
	case len(members) == 0:
		errs["team_members"] = "Team members are required."
		return
	case len(members) < minTeamMembers:
		errs["team_members"] = "At least 2 team members are required."
		return
	case len(members) > maxTeamMembers:
		errs["team_members"] = "Maximum 5 team members allowed."
		return
	}

	for _, m := range members {
		if m == "" {
			errs["team_members"] = "Each team member name is required."
			return
		}
		if utf8.RuneCountInString(m) > maxFieldLen {
			errs["team_members"] = "Each team member name may not exceed 255 characters."
			return
		}
	}
}

func validateDocument(doc *multipart.FileHeader, errs ValidationErrors) {
	if !isAllowedDocument(doc) {
		errs["document"] = "Document must be a PDF, DOC, or DOCX file."
		return
	}
	if doc.Size > maxDocumentBytes {
		errs["document"] = "Document size must not exceed 10MB."
	}
}

func isAllowedDocument(doc *multipart.FileHeader) bool {
	if ct := doc.Header.Get("Content-Type"); ct != "" {
		// Strip any parameters such as "; charset=...".
		if i := strings.Index(ct, ";"); i >= 0 {
			ct = ct[:i]
		}
		if allowedDocumentTypes[strings.TrimSpace(ct)] {
			return true
		}
	}
	return allowedDocumentExts[strings.ToLower(filepath.Ext(doc.Filename))]
}

func isValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
