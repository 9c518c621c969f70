package main

import (
	"errors"
	"net/http"

	"github.com/febriandika/postfolio/internal/common"
	"github.com/febriandika/postfolio/internal/pageservice"
	"github.com/febriandika/postfolio/internal/postservice"
)

func (app *application) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.postService.GetPosts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	var input postservice.CreatePostRequest

	// Parse the request body
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// Call the post service
	post, err := app.postService.CreatePost(r.Context(), &input)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type incrementViewsRequest struct {
	ID int `json:"id"`
}

// incrementViewsHandler adds one view to a post. An unknown id is reported as
// a plain failure: the counter is best-effort and callers only log it.
func (app *application) incrementViewsHandler(w http.ResponseWriter, r *http.Request) {
	var input incrementViewsRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	views, err := app.postService.IncrementViews(r.Context(), input.ID)
	if err != nil {
		app.writeErrorResponse(w, r, http.StatusInternalServerError, "failed to increment view count")
		app.logError(r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"views": views}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) blogListPageHandler(w http.ResponseWriter, r *http.Request) {
	page, err := app.pageService.ListPage(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// The cnull filter serves the cached HTML as-is; anything else re-renders
	// from the cached post set without touching the store.
	html, err := app.pageService.RenderList(page, pageservice.ParseFilter(r.URL.Query()))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeHTML(w, http.StatusOK, html)
}

func (app *application) blogDetailPageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		// A non-numeric id cannot name a post, so it gets the same page an
		// unknown id does.
		html, err := pageservice.RenderNotFound()
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		app.writeHTML(w, http.StatusNotFound, html)
		return
	}

	page, err := app.pageService.DetailPage(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if page.NotFound {
		app.writeHTML(w, http.StatusNotFound, page.HTML)
		return
	}

	app.writeHTML(w, http.StatusOK, page.HTML)
}
