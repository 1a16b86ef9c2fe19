package web

import (
	"sync"

	"github.com/zeptools/pricequote/docs"
	"github.com/zeptools/pricequote/routing"
	"github.com/zeptools/pricequote/sessions"
	"github.com/zeptools/pricequote/throttle"
)

// GenThrottleGroup is the throttle group guarding document generation.
const GenThrottleGroup = "docgen"

// App wires the HTTP handlers to their backing state.
type App struct {
	Manager  *sessions.Manager
	Store    sessions.Store
	Composer *docs.Composer
	Throttle *throttle.Store

	SessionLocks *sync.Map // session id -> *sync.Mutex, serializes requests per session
}

// Routes builds the app router.
func (app *App) Routes() *routing.BaseRouter {
	router := routing.NewBaseRouter()

	router.HandleFunc("GET /healthz", app.handleHealthz,
		routing.WrapperFunc(routing.RecoverWrapper))

	router.Group("/api/quote/", func(q *routing.RouteGroup) {
		q.HandleFunc("GET {$}", app.handleView)
		q.HandleFunc("PUT customer", app.handleSetCustomer)

		q.HandleFunc("POST items", app.handleAddItem)
		q.HandleFunc("DELETE items", app.handleClearItems)
		q.HandleFunc("DELETE items/{index}", app.handleDeleteItem)

		q.HandleFunc("POST items/{index}/edit", app.handleBeginEdit)
		q.HandleFunc("PUT edit", app.handleCommitEdit)
		q.HandleFunc("DELETE edit", app.handleCancelEdit)

		q.HandleFunc("POST document", app.handleGenerateDocument)
		q.HandleFunc("GET document", app.handleDownloadDocument)
		q.HandleFunc("GET share-link", app.handleShareLink)
	}, routing.WrapperFunc(routing.RecoverWrapper), app.SessionWrapper())

	return router
}
