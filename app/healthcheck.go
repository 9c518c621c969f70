package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/febriandika/postfolio/internal/pageservice"
)

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	revalidate := time.Duration(app.config.PageRevalidateSeconds) * time.Second
	if revalidate <= 0 {
		revalidate = pageservice.DefaultRevalidate
	}

	env := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment":     app.config.Environment,
			"version":         app.config.Version,
			"page_revalidate": revalidate.String(),
			"limiter_enabled": strconv.FormatBool(app.config.LimiterEnabled),
		},
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
