package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lukee-d/friendify/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

// Views renders the embedded html/template pages.
type Views struct {
	templates *template.Template
}

// NewViews parses every embedded template.
func NewViews() (*Views, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Views{templates: templates}, nil
}

// Render executes the named template with a 200 status.
func (v *Views) Render(w http.ResponseWriter, name string, data any) error {
	return v.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus executes the named template into a buffer first so a render
// failure can still produce a clean 500.
func (v *Views) RenderStatus(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := v.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// messagePage is the data for the generic message template.
type messagePage struct {
	Title   string
	Message string
	BackURL string
}

// fail maps domain errors to user-facing pages: unknown lobbies get a friendly
// 404, everything else a generic 500 with the detail kept in the logs.
func fail(views *Views, logger *log.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrLobbyNotFound):
		views.RenderStatus(w, http.StatusNotFound, "message.html", messagePage{
			Title:   "Lobby not found",
			Message: "No lobby with that code exists. Check the code and try again.",
			BackURL: "/lobby/join",
		})
	case errors.Is(err, shared.ErrEmptyTrackPool):
		views.RenderStatus(w, http.StatusConflict, "message.html", messagePage{
			Title:   "No tracks yet",
			Message: "No one here has saved tracks yet. Visit the home page to pull in your top tracks first.",
			BackURL: "/",
		})
	default:
		logger.Error("request failed", "error", err)
		views.RenderStatus(w, http.StatusInternalServerError, "message.html", messagePage{
			Title:   "Something went wrong",
			Message: "We couldn't complete that request. Please try again.",
			BackURL: "/",
		})
	}
}
