// Package web serves a preview of recorded display sessions.
package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dasdy/monoframe/db"
	"github.com/dasdy/monoframe/web/routes"
)

func BuildServer(storage db.Storage) *http.ServeMux {
	mux := http.NewServeMux()

	handler := routes.ServerHandler{Storage: storage}

	mux.Handle("/frame", http.HandlerFunc(handler.FrameHandle))
	mux.Handle("/{$}", http.HandlerFunc(handler.SessionsHandle))

	return mux
}

func StartServer(port int, storage db.Storage) error {
	slog.Info("Running interface", "port", port)

	err := http.ListenAndServe(fmt.Sprintf(":%d", port), BuildServer(storage))
	if err != nil {
		return fmt.Errorf("could not run server: %w", err)
	}

	return nil
}
