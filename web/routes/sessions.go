package routes

import (
	"log/slog"
	"net/http"

	cs "github.com/dasdy/monoframe/web/components"
)

// BuildSessionsRenderContext lists the sessions with their frame counts.
func (s *ServerHandler) BuildSessionsRenderContext() (cs.SessionsContext, error) {
	sessions, err := s.Storage.Sessions()
	if err != nil {
		return cs.SessionsContext{}, err
	}

	result := cs.SessionsContext{Sessions: make([]cs.SessionEntry, 0, len(sessions))}

	for _, id := range sessions {
		count, err := s.Storage.Count(id)
		if err != nil {
			return cs.SessionsContext{}, err
		}

		result.Sessions = append(result.Sessions, cs.SessionEntry{ID: id, Frames: count})
	}

	return result, nil
}

// SessionsHandle handles requests to the index page.
func (s *ServerHandler) SessionsHandle(w http.ResponseWriter, _ *http.Request) {
	slog.Info("Handling sessions page request")

	renderContext, err := s.BuildSessionsRenderContext()
	if err != nil {
		slog.Error("Failed to list sessions", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	if err := SafeRenderTemplate(cs.SessionList(&renderContext), w); err != nil {
		slog.Error("Failed to render sessions", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
