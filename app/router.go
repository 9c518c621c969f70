package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// post repository API
	router.HandlerFunc(http.MethodGet, "/api/posts", app.listPostsHandler)
	router.HandlerFunc(http.MethodPost, "/api/posts", app.createPostHandler)
	router.HandlerFunc(http.MethodPost, "/api/posts/views", app.incrementViewsHandler)

	// pre-rendered pages
	router.HandlerFunc(http.MethodGet, "/blog", app.blogListPageHandler)
	router.HandlerFunc(http.MethodGet, "/blog/:id", app.blogDetailPageHandler)

	return app.recoverPanic(app.logRequest(app.rateLimit(router)))
}
