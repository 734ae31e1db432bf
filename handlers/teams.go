package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"mime/multipart"
	"net/http"
	"time"

	"iotreg/config"
	"iotreg/teams"

	log "github.com/sirupsen/logrus"
)

// maxRegisterFormMemory leaves headroom above the 10 MB document limit so the
// validator, not the multipart reader, rejects oversized uploads.
const maxRegisterFormMemory = 12 << 20

type TeamHandler struct {
	config    *config.Config
	templates map[string]*template.Template
	service   *teams.Service
}

func NewTeamHandler(cfg *config.Config, templates map[string]*template.Template, service *teams.Service) *TeamHandler {
	return &TeamHandler{
		config:    cfg,
		templates: templates,
		service:   service,
	}
}

func (h *TeamHandler) WelcomePage(w http.ResponseWriter, r *http.Request) {
	h.templates["welcome"].ExecuteTemplate(w, "base", nil)
}

func (h *TeamHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *TeamHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, &teams.RegistrationInput{}, nil, "")
}

func (h *TeamHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRegisterFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.renderRegister(w, &teams.RegistrationInput{}, nil, "Invalid form data.")
		return
	}

	in := &teams.RegistrationInput{
		TeamName:           r.FormValue("team_name"),
		SchoolOrigin:       r.FormValue("school_origin"),
		Major:              r.FormValue("major"),
		ProjectTitle:       r.FormValue("project_title"),
		ProjectDescription: r.FormValue("project_description"),
		TeamMembers:        memberValues(r),
		ContactEmail:       r.FormValue("contact_email"),
		ContactPhone:       r.FormValue("contact_phone"),
	}

	var doc *multipart.FileHeader
	if file, header, err := r.FormFile("document"); err == nil {
		file.Close()
		doc = header
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		h.renderRegister(w, in, nil, "Could not read the uploaded document.")
		return
	}

	team, err := h.service.Register(r.Context(), in, doc)
	if err != nil {
		var verrs teams.ValidationErrors
		if errors.As(err, &verrs) {
			h.renderRegister(w, in, verrs, "")
			return
		}

		var serr *teams.StorageError
		if errors.As(err, &serr) {
			log.Errorf("registration document storage failed: %v", serr)
			h.renderRegister(w, in, nil, "Could not store the uploaded document. Please try again.")
			return
		}

		log.Errorf("registration failed: %v", err)
		h.renderRegister(w, in, nil, "Registration failed. Please try again.")
		return
	}

	data := map[string]interface{}{
		"Team":    team,
		"Message": "Registration successful! Your team has been registered for the IoT competition.",
	}
	h.templates["success"].ExecuteTemplate(w, "base", data)
}

func (h *TeamHandler) renderRegister(w http.ResponseWriter, in *teams.RegistrationInput, verrs teams.ValidationErrors, errMsg string) {
	data := map[string]interface{}{
		"Majors": teams.Majors,
		"Values": in,
		"Errors": verrs,
		"Error":  errMsg,
	}
	h.templates["register"].ExecuteTemplate(w, "base", data)
}

// memberValues accepts both repeated "team_members" inputs and the
// PHP-style "team_members[]" key some clients send.
func memberValues(r *http.Request) []string {
	if members, ok := r.Form["team_members"]; ok {
		return members
	}
	return r.Form["team_members[]"]
}
