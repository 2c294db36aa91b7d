package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"conexaoiris/internal/domain/events"
	"conexaoiris/internal/notifications"
	"conexaoiris/internal/params"
	"conexaoiris/internal/views"
)

// tiny helper to avoid leaking details
type errInvalidRequest string

func (e errInvalidRequest) Error() string { return string(e) }

// adminListEventSuggestionsHandler godoc
//
//	@Summary		List event suggestions (admin)
//	@Description	Admin route. Lists event suggestions by status with pagination, newest first.
//	@Tags			admin
//	@Produce		json
//	@Param			status	query		string	false	"PENDING|APPROVED|REJECTED"
//	@Param			page	query		int		false	"page number (default 1)"
//	@Param			limit	query		int		false	"page size (default 20, max 60)"
//	@Success		200		{object}	[]events.EventSuggestion
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		500		{object}	error
//	@Router			/admin/event-suggestions [get]
func (app *application) adminListEventSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.ParsePagination(q)

	var statusPtr *events.Status
	if s := strings.TrimSpace(q.Get("status")); s != "" {
		st := events.Status(strings.ToUpper(s))
		if !st.Valid() {
			app.badRequestResponse(w, r, errInvalidRequest("invalid status"))
			return
		}
		statusPtr = &st
	}

	out, err := app.store.Events.ListForModeration(r.Context(), events.ModerationFilter{
		Status: statusPtr,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if out == nil {
		out = []events.EventSuggestion{}
	}

	if err := app.jsonResponse(w, http.StatusOK, out); err != nil {
		app.internalServerError(w, r, err)
	}
}

// adminApproveEventSuggestionHandler godoc
//
//	@Summary		Approve an event suggestion (admin)
//	@Description	Moves a PENDING suggestion to APPROVED. Decided suggestions cannot transition again.
//	@Tags			admin
//	@Produce		json
//	@Param			id	path		int64	true	"Event suggestion ID"
//	@Success		200	{object}	events.EventSuggestion
//	@Failure		400	{object}	error
//	@Failure		401	{object}	error
//	@Failure		404	{object}	error
//	@Failure		500	{object}	error
//	@Router			/admin/event-suggestions/{id}/approve [post]
func (app *application) adminApproveEventSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	app.decideEventSuggestion(w, r, events.StatusApproved)
}

// adminRejectEventSuggestionHandler godoc
//
//	@Summary		Reject an event suggestion (admin)
//	@Description	Moves a PENDING suggestion to REJECTED. Decided suggestions cannot transition again.
//	@Tags			admin
//	@Produce		json
//	@Param			id	path		int64	true	"Event suggestion ID"
//	@Success		200	{object}	events.EventSuggestion
//	@Failure		400	{object}	error
//	@Failure		401	{object}	error
//	@Failure		404	{object}	error
//	@Failure		500	{object}	error
//	@Router			/admin/event-suggestions/{id}/reject [post]
func (app *application) adminRejectEventSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	app.decideEventSuggestion(w, r, events.StatusRejected)
}

func (app *application) decideEventSuggestion(w http.ResponseWriter, r *http.Request, decision events.Status) {
	suggestionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || suggestionID <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid event suggestion ID"))
		return
	}

	// one-shot guard: only PENDING suggestions may transition
	current, err := app.store.Events.GetByID(r.Context(), suggestionID)
	if err != nil {
		if err == events.ErrNotFound {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	if current.Status != events.StatusPending {
		app.badRequestResponse(w, r, errInvalidRequest("suggestion is not in pending state"))
		return
	}

	updated, err := app.store.Events.UpdateStatus(r.Context(), suggestionID, decision)
	if err != nil {
		if err == events.ErrNotFound {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if decision == events.StatusApproved {
		app.views.Invalidate(views.PublicEvents, views.SuggestEvent)
	}

	// notify the suggester off the request path; anonymous suggestions have
	// nobody to notify
	if updated.UserID != nil {
		userID := *updated.UserID
		ev := updated
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := notifications.SendModerationDecision(ctx, app.push, app.store, userID, ev); err != nil {
				app.logger.Warnw("error sending moderation decision push",
					"user_id", userID,
					"event_id", ev.ID,
					"error", err,
				)
			}
		}()
	}

	if err := app.jsonResponse(w, http.StatusOK, updated); err != nil {
		app.internalServerError(w, r, err)
	}
}
