package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"iotreg/config"
	"iotreg/middleware"
	"iotreg/teams"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

const recentTeamsLimit = 5

type AdminHandler struct {
	config    *config.Config
	templates map[string]*template.Template
	service   *teams.Service
}

func NewAdminHandler(cfg *config.Config, templates map[string]*template.Template, service *teams.Service) *AdminHandler {
	return &AdminHandler{
		config:    cfg,
		templates: templates,
		service:   service,
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Errorf("dashboard stats: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	recent, err := h.service.Recent(r.Context(), recentTeamsLimit)
	if err != nil {
		log.Errorf("dashboard recent teams: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"User":        user,
		"Stats":       stats,
		"RecentTeams": recent,
	}
	h.templates["dashboard"].ExecuteTemplate(w, "base", data)
}

func (h *AdminHandler) TeamsPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	list, total, err := h.service.List(r.Context(), page)
	if err != nil {
		log.Errorf("list teams: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	totalPages := int((total + teams.PageSize - 1) / teams.PageSize)

	data := map[string]interface{}{
		"User":       user,
		"Teams":      list,
		"Total":      total,
		"Page":       page,
		"TotalPages": totalPages,
		"HasPrev":    page > 1,
		"HasNext":    page < totalPages,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
		"Error":      r.URL.Query().Get("error"),
		"Success":    r.URL.Query().Get("success"),
	}
	h.templates["teams"].ExecuteTemplate(w, "base", data)
}

func (h *AdminHandler) TeamDetailPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := teamID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	team, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, teams.ErrTeamNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Errorf("team detail: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"User":    user,
		"Team":    team,
		"Error":   r.URL.Query().Get("error"),
		"Success": r.URL.Query().Get("success"),
	}
	h.templates["team-detail"].ExecuteTemplate(w, "base", data)
}

func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := teamID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/teams?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	if _, err := h.service.UpdateStatus(r.Context(), id, r.FormValue("status")); err != nil {
		switch {
		case errors.Is(err, teams.ErrTeamNotFound):
			http.NotFound(w, r)
		case errors.Is(err, teams.ErrInvalidStatus):
			http.Redirect(w, r, fmt.Sprintf("/admin/teams/%d?error=Invalid+status+value", id), http.StatusSeeOther)
		default:
			log.Errorf("update team status: %v", err)
			http.Redirect(w, r, fmt.Sprintf("/admin/teams/%d?error=Failed+to+update+status", id), http.StatusSeeOther)
		}
		return
	}

	http.Redirect(w, r, "/admin/teams?success=Team+status+updated+successfully", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := teamID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, teams.ErrTeamNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Errorf("delete team: %v", err)
		http.Redirect(w, r, "/admin/teams?error=Failed+to+delete+team", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/teams?success=Team+deleted+successfully", http.StatusSeeOther)
}

func (h *AdminHandler) SendReminder(w http.ResponseWriter, r *http.Request) {
	id, err := teamID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.service.SendReminder(r.Context(), id); err != nil {
		if errors.Is(err, teams.ErrTeamNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Errorf("send reminder: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/admin/teams/%d?error=Failed+to+send+reminder", id), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/admin/teams/%d?success=Reminder+sent", id), http.StatusSeeOther)
}

func (h *AdminHandler) BroadcastPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	data := map[string]interface{}{
		"User":    user,
		"Error":   r.URL.Query().Get("error"),
		"Success": r.URL.Query().Get("success"),
	}
	h.templates["broadcast"].ExecuteTemplate(w, "base", data)
}

func (h *AdminHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/broadcast?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	message := r.FormValue("message")
	if message == "" {
		http.Redirect(w, r, "/admin/broadcast?error=Message+is+required", http.StatusSeeOther)
		return
	}

	count, err := h.service.BroadcastUpdate(r.Context(), message)
	if err != nil {
		log.Errorf("broadcast update: %v", err)
		http.Redirect(w, r, "/admin/broadcast?error=Failed+to+send+update", http.StatusSeeOther)
		return
	}

	success := url.QueryEscape(fmt.Sprintf("Update sent to %d approved teams", count))
	http.Redirect(w, r, "/admin/broadcast?success="+success, http.StatusSeeOther)
}

func teamID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
