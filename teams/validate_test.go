package teams_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"iotreg/teams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *teams.RegistrationInput {
	return &teams.RegistrationInput{
		TeamName:           "Team Innovation",
		SchoolOrigin:       "SMK Negeri 1 Jakarta",
		Major:              "Teknik Komputer dan Jaringan (TKJ)",
		ProjectTitle:       "Smart Home Automation",
		ProjectDescription: strings.Repeat("This is a detailed description of our IoT project. ", 10),
		TeamMembers:        []string{"John Doe", "Jane Smith", "Bob Wilson"},
		ContactEmail:       "team@example.com",
		ContactPhone:       "08123456789",
	}
}

func nameFree(string) (bool, error) { return false, nil }

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   h,
	}
}

func TestValidateRegistrationValid(t *testing.T) {
	errs, err := teams.ValidateRegistration(validInput(), nil, nameFree)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateRegistrationMissingFieldsAccumulate(t *testing.T) {
	errs, err := teams.ValidateRegistration(&teams.RegistrationInput{}, nil, nameFree)
	require.NoError(t, err)

	assert.Equal(t, "Team name is required.", errs["team_name"])
	assert.Equal(t, "School origin is required.", errs["school_origin"])
	assert.Equal(t, "Major field is required.", errs["major"])
	assert.Equal(t, "Project title is required.", errs["project_title"])
	assert.Equal(t, "Project description is required.", errs["project_description"])
	assert.Equal(t, "Team members are required.", errs["team_members"])
	assert.Equal(t, "Contact email is required.", errs["contact_email"])
	assert.Equal(t, "Contact phone is required.", errs["contact_phone"])
	assert.Len(t, errs, 8)
}

func TestValidateRegistrationNameTaken(t *testing.T) {
	errs, err := teams.ValidateRegistration(validInput(), nil, func(name string) (bool, error) {
		return name == "Team Innovation", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "This team name is already registered.", errs["team_name"])
}

func TestValidateRegistrationDescriptionBoundary(t *testing.T) {
	in := validInput()

	in.ProjectDescription = strings.Repeat("x", 99)
	errs, err := teams.ValidateRegistration(in, nil, nameFree)
	require.NoError(t, err)
	assert.Equal(t, "Project description must be at least 100 characters.", errs["project_description"])

	in.ProjectDescription = strings.Repeat("x", 100)
	errs, err = teams.ValidateRegistration(in, nil, nameFree)
	require.NoError(t, err)
	assert.NotContains(t, errs, "project_description")
}

func TestValidateRegistrationMemberCountBoundaries(t *testing.T) {
	cases := []struct {
		count   int
		message string
	}{
		{1, "At least 2 team members are required."},
		{2, ""},
		{5, ""},
		{6, "Maximum 5 team members allowed."},
	}

	for _, tc := range cases {
		in := validInput()
		in.TeamMembers = make([]string, tc.count)
		for i := range in.TeamMembers {
			in.TeamMembers[i] = "Member"
		}

		errs, err := teams.ValidateRegistration(in, nil, nameFree)
		require.NoError(t, err)
		if tc.message == "" {
			assert.NotContains(t, errs, "team_members", "count %d", tc.count)
		} else {
			assert.Equal(t, tc.message, errs["team_members"], "count %d", tc.count)
		}
	}
}

func TestValidateRegistrationEmptyMemberName(t *testing.T) {
	in := validInput()
	in.TeamMembers = []string{"John Doe", ""}

	errs, err := teams.ValidateRegistration(in, nil, nameFree)
	require.NoError(t, err)
	assert.Equal(t, "Each team member name is required.", errs["team_members"])
}

func TestValidateRegistrationEmail(t *testing.T) {
	for _, bad := range []string{"not-an-email", "a b@example.com", "@example.com"} {
		in := validInput()
		in.ContactEmail = bad
		errs, err := teams.ValidateRegistration(in, nil, nameFree)
		require.NoError(t, err)
		assert.Equal(t, "Please provide a valid email address.", errs["contact_email"], "email %q", bad)
	}
}

func TestValidateRegistrationPhoneBoundary(t *testing.T) {
	in := validInput()

	in.ContactPhone = strings.Repeat("1", 21)
	errs, err := teams.ValidateRegistration(in, nil, nameFree)
	require.NoError(t, err)
	assert.Equal(t, "Contact phone may not exceed 20 characters.", errs["contact_phone"])

	in.ContactPhone = strings.Repeat("1", 20)
	errs, err = teams.ValidateRegistration(in, nil, nameFree)
	require.NoError(t, err)
	assert.NotContains(t, errs, "contact_phone")
}

func TestValidateRegistrationDocument(t *testing.T) {
	in := validInput()

	errs, err := teams.ValidateRegistration(in, fileHeader("proposal.pdf", "application/pdf", 1024), nameFree)
	require.NoError(t, err)
	assert.Empty(t, errs)

	// Unknown content type but an allowed extension still passes.
	errs, err = teams.ValidateRegistration(in, fileHeader("proposal.docx", "application/octet-stream", 1024), nameFree)
	require.NoError(t, err)
	assert.Empty(t, errs)

	errs, err = teams.ValidateRegistration(in, fileHeader("malware.exe", "application/octet-stream", 1024), nameFree)
	require.NoError(t, err)
	assert.Equal(t, "Document must be a PDF, DOC, or DOCX file.", errs["document"])

	errs, err = teams.ValidateRegistration(in, fileHeader("proposal.pdf", "application/pdf", 10240*1024+1), nameFree)
	require.NoError(t, err)
	assert.Equal(t, "Document size must not exceed 10MB.", errs["document"])

	errs, err = teams.ValidateRegistration(in, fileHeader("proposal.pdf", "application/pdf", 10240*1024), nameFree)
	require.NoError(t, err)
	assert.NotContains(t, errs, "document")
}

func TestValidateRegistrationNoNormalization(t *testing.T) {
	// Comparison is exact: a differently-cased name is a different name.
	errs, err := teams.ValidateRegistration(validInput(), nil, func(name string) (bool, error) {
		return name == "team innovation", nil
	})
	require.NoError(t, err)
	assert.NotContains(t, errs, "team_name")
}
