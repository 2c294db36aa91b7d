package main

import (
	"net/http"
	"strings"

	"conexaoiris/internal/domain/locations"
	"conexaoiris/internal/tags"
	"conexaoiris/internal/views"
)

type createLocationPayload struct {
	Name          string   `json:"name" validate:"required,min=3,max=200"`
	CategoryID    int64    `json:"category_id" validate:"required,gt=0"`
	Address       string   `json:"address" validate:"required,min=3,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Phone         *string  `json:"phone,omitempty" validate:"omitempty,brphone"`
	Website       *string  `json:"website,omitempty" validate:"omitempty,url"`
	LgbtqOwned    bool     `json:"lgbtq_owned"`
	SafetyRating  string   `json:"safety_rating" validate:"required,oneof=safe neutral unsafe"`
	PublicVisible *bool    `json:"public_visible,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Tags          []string `json:"tags,omitempty"`
}

// createLocationHandler godoc
//
//	@Summary		Suggest a location
//	@Description	Public route (session optional). Creates a community location suggestion; the category must exist.
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		createLocationPayload	true	"Location suggestion"
//	@Success		201		{object}	locations.LocationSuggestion
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Failure		429		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Router			/locations [post]
func (app *application) createLocationHandler(w http.ResponseWriter, r *http.Request) {
	var payload createLocationPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.validationErrorResponse(w, r, err)
		return
	}

	normalized := tags.Normalize(payload.Tags)
	if len(normalized) > tags.MaxTags {
		writeJSONError(w, http.StatusBadRequest, "máximo de 10 tags por sugestão")
		return
	}

	publicVisible := true
	if payload.PublicVisible != nil {
		publicVisible = *payload.PublicVisible
	}

	in := &locations.CreateLocationInput{
		Name:          strings.TrimSpace(payload.Name),
		CategoryID:    payload.CategoryID,
		Address:       strings.TrimSpace(payload.Address),
		Description:   payload.Description,
		Phone:         payload.Phone,
		Website:       payload.Website,
		LgbtqOwned:    payload.LgbtqOwned,
		SafetyRating:  payload.SafetyRating,
		PublicVisible: publicVisible,
		Latitude:      payload.Latitude,
		Longitude:     payload.Longitude,
		Tags:          normalized,
	}

	if user := getUserFromContext(r); user != nil {
		in.UserID = &user.ID
	}

	created, err := app.store.Locations.Create(r.Context(), in)
	if err != nil {
		switch err {
		case locations.ErrCategoryNotFound:
			writeJSONError(w, http.StatusNotFound, "Categoria não encontrada")
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.views.Invalidate(views.PublicMap, views.SuggestPlace)

	if err := app.jsonResponse(w, http.StatusCreated, created); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listLocationsHandler godoc
//
//	@Summary		List locations
//	@Description	Every community location, oldest first. Locations carry no moderation status.
//	@Tags			locations
//	@Produce		json
//	@Success		200	{object}	[]locations.LocationSuggestion
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Router			/locations [get]
func (app *application) listLocationsHandler(w http.ResponseWriter, r *http.Request) {
	out, err := app.store.Locations.ListPublic(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if out == nil {
		out = []locations.LocationSuggestion{}
	}

	if err := app.jsonResponse(w, http.StatusOK, out); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listMyLocationsHandler godoc
//
//	@Summary		List my location suggestions
//	@Description	The authenticated user's own suggestions, newest first.
//	@Tags			locations
//	@Produce		json
//	@Success		200	{object}	[]locations.LocationSuggestion
//	@Failure		401	{object}	error
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/locations/mine [get]
func (app *application) listMyLocationsHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	out, err := app.store.Locations.ListByUser(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if out == nil {
		out = []locations.LocationSuggestion{}
	}

	if err := app.jsonResponse(w, http.StatusOK, out); err != nil {
		app.internalServerError(w, r, err)
	}
}
