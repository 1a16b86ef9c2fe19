package web

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/zeptools/pricequote/responses"
	"github.com/zeptools/pricequote/routing"
	"github.com/zeptools/pricequote/sessions"
)

// SessionWrapper ensures each request carries a session and serializes
// requests of the same session under one mutex, so every operation runs
// against the session state to completion before the next begins.
func (app *App) SessionWrapper() routing.HandlerWrapper {
	return routing.WrapperFunc(func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := app.Manager.SessionIDFromCookie(r)
			if !ok {
				newID, err := sessions.GenerateSessionID()
				if err != nil {
					responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "cannot establish session")
					return
				}
				sessionID = newID
				if err = app.Manager.SetSessionCookie(w, sessionID); err != nil {
					responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "cannot establish session")
					return
				}
			}

			muAny, _ := app.SessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
			mu := muAny.(*sync.Mutex)
			mu.Lock()
			defer mu.Unlock()

			inner.ServeHTTP(w, r.WithContext(sessions.WithSessionID(r.Context(), sessionID)))
		})
	})
}

// record resolves the session record, creating a fresh one for new or
// expired sessions. Callers hold the per-session mutex via SessionWrapper.
func (app *App) record(r *http.Request) (string, *sessions.Record, error) {
	sessionID, ok := sessions.SessionIDFromContext(r.Context())
	if !ok {
		return "", nil, fmt.Errorf("no session id in request context")
	}
	rec, found, err := app.Store.Get(r.Context(), sessionID)
	if err != nil {
		return "", nil, fmt.Errorf("session store get: %w", err)
	}
	if !found {
		rec = sessions.NewRecord(time.Now())
		if err = app.Store.Put(r.Context(), sessionID, rec); err != nil {
			return "", nil, fmt.Errorf("session store put: %w", err)
		}
	}
	return sessionID, rec, nil
}

func (app *App) save(r *http.Request, sessionID string, rec *sessions.Record) error {
	if err := app.Store.Put(r.Context(), sessionID, rec); err != nil {
		return fmt.Errorf("session store put: %w", err)
	}
	return nil
}
