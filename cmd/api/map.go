package main

import (
	"net/http"
	"strconv"
	"strings"

	"conexaoiris/internal/domain/locations"
	"conexaoiris/internal/geo"
)

// MapMarker is a plottable location with its precomputed style.
type MapMarker struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	CategoryKey  string          `json:"category_key"`
	Address      string          `json:"address"`
	SafetyRating string          `json:"safety_rating"`
	LgbtqOwned   bool            `json:"lgbtq_owned"`
	Position     geo.Point       `json:"position"`
	Style        geo.MarkerStyle `json:"style"`
}

// MapResponse carries the markers plus the center the client should use and
// whether it should recenter now.
type MapResponse struct {
	Markers  []MapMarker `json:"markers"`
	Center   geo.Point   `json:"center"`
	Recenter bool        `json:"recenter"`
}

// mapMarkersHandler godoc
//
//	@Summary		Map markers
//	@Description	Locations with coordinates, styled by safety rating and ownership. Optional lat/lng (and prev_lat/prev_lng) produce a recenter decision against the 50m threshold; without a fix the center defaults to São Paulo.
//	@Tags			map
//	@Produce		json
//	@Param			category	query		string	false	"category key or all"
//	@Param			lat			query		number	false	"current latitude"
//	@Param			lng			query		number	false	"current longitude"
//	@Param			prev_lat	query		number	false	"previous latitude"
//	@Param			prev_lng	query		number	false	"previous longitude"
//	@Success		200			{object}	MapResponse
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Router			/map/markers [get]
func (app *application) mapMarkersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rows, err := app.store.Locations.ListWithCoordinates(r.Context(), strings.TrimSpace(q.Get("category")))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	markers := make([]MapMarker, 0, len(rows))
	for _, loc := range rows {
		markers = append(markers, toMarker(loc))
	}

	center := geo.DefaultCenter
	recenter := false

	if cur, ok := parsePoint(q.Get("lat"), q.Get("lng")); ok {
		center = cur
		if prev, ok := parsePoint(q.Get("prev_lat"), q.Get("prev_lng")); ok {
			recenter = geo.ShouldRecenter(prev, cur)
		} else {
			// first fix always centers the map
			recenter = true
		}
	}

	resp := MapResponse{
		Markers:  markers,
		Center:   center,
		Recenter: recenter,
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

func toMarker(loc locations.LocationSuggestion) MapMarker {
	m := MapMarker{
		ID:           loc.ID,
		Name:         loc.Name,
		Address:      loc.Address,
		SafetyRating: loc.SafetyRating,
		LgbtqOwned:   loc.LgbtqOwned,
		Style:        geo.StyleFor(loc.SafetyRating, loc.LgbtqOwned),
	}
	if loc.Category != nil {
		m.CategoryKey = loc.Category.Key
	}
	if loc.Latitude != nil && loc.Longitude != nil {
		m.Position = geo.Point{Lat: *loc.Latitude, Lng: *loc.Longitude}
	}
	return m
}

func parsePoint(latStr, lngStr string) (geo.Point, bool) {
	latStr = strings.TrimSpace(latStr)
	lngStr = strings.TrimSpace(lngStr)
	if latStr == "" || lngStr == "" {
		return geo.Point{}, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return geo.Point{}, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: lat, Lng: lng}, true
}
