package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"conexaoiris/internal/domain/events"
	"conexaoiris/internal/tags"
	"conexaoiris/internal/views"
)

// Suggested dates are calendar days in Brazil, so "today" is decided in the
// community's timezone rather than the server's clock.
var businessTZ = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}()

type createEventPayload struct {
	Title         string   `json:"title" validate:"required,min=3,max=200"`
	CategoryID    int64    `json:"category_id" validate:"required,gt=0"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Date          string   `json:"date" validate:"required"`
	Time          *string  `json:"time,omitempty" validate:"omitempty,hhmm"`
	Location      string   `json:"location" validate:"required,min=3,max=200"`
	Organizer     string   `json:"organizer" validate:"required,min=2,max=100"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gte=0,lt=1000000"`
	LgbtqFriendly *bool    `json:"lgbtq_friendly,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// createEventHandler godoc
//
//	@Summary		Suggest an event
//	@Description	Public route (session optional). Creates an event suggestion with status PENDING; only approved events reach the public agenda.
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		createEventPayload	true	"Event suggestion"
//	@Success		201		{object}	events.EventSuggestion
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Failure		429		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Router			/events [post]
func (app *application) createEventHandler(w http.ResponseWriter, r *http.Request) {
	var payload createEventPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.validationErrorResponse(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "data inválida (use AAAA-MM-DD)")
		return
	}

	// day-granularity comparison: an event today is still valid
	now := time.Now().In(businessTZ)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		writeJSONError(w, http.StatusBadRequest, "a data do evento não pode estar no passado")
		return
	}

	normalized := tags.Normalize(payload.Tags)
	if len(normalized) > tags.MaxTags {
		writeJSONError(w, http.StatusBadRequest, "máximo de 10 tags por sugestão")
		return
	}

	lgbtqFriendly := true
	if payload.LgbtqFriendly != nil {
		lgbtqFriendly = *payload.LgbtqFriendly
	}

	in := &events.CreateEventInput{
		Title:         strings.TrimSpace(payload.Title),
		CategoryID:    payload.CategoryID,
		Description:   payload.Description,
		Date:          date,
		Time:          payload.Time,
		Location:      strings.TrimSpace(payload.Location),
		Organizer:     strings.TrimSpace(payload.Organizer),
		Price:         payload.Price,
		LgbtqFriendly: lgbtqFriendly,
		Tags:          normalized,
	}

	if user := getUserFromContext(r); user != nil {
		in.UserID = &user.ID
	}

	created, err := app.store.Events.Create(r.Context(), in)
	if err != nil {
		switch err {
		case events.ErrCategoryNotFound:
			writeJSONError(w, http.StatusNotFound, "Categoria não encontrada")
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.views.Invalidate(views.SuggestEvent)

	if err := app.jsonResponse(w, http.StatusCreated, created); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listEventsHandler godoc
//
//	@Summary		List approved events
//	@Description	Approved events, soonest first. Filters are conjunctive: category key, lgbtq_friendly flag, comma-separated tags (exact element match, OR across tags).
//	@Tags			events
//	@Produce		json
//	@Param			category		query		string	false	"category key or all"
//	@Param			lgbtq_friendly	query		bool	false	"friendliness flag"
//	@Param			tags			query		string	false	"comma-separated tags"
//	@Success		200				{object}	[]events.EventSuggestion
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Router			/events [get]
func (app *application) listEventsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := events.Filter{
		CategoryKey: strings.TrimSpace(q.Get("category")),
	}

	if raw := strings.TrimSpace(q.Get("lgbtq_friendly")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.LgbtqFriendly = &v
		}
	}

	if raw := strings.TrimSpace(q.Get("tags")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.Tags = append(filter.Tags, t)
			}
		}
	}

	out, err := app.store.Events.ListFiltered(r.Context(), filter)
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

// listMyEventsHandler godoc
//
//	@Summary		List my event suggestions
//	@Description	The authenticated user's own suggestions regardless of status, newest first.
//	@Tags			events
//	@Produce		json
//	@Success		200	{object}	[]events.EventSuggestion
//	@Failure		401	{object}	error
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/events/mine [get]
func (app *application) listMyEventsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	out, err := app.store.Events.ListByUser(r.Context(), user.ID)
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
