package main

import (
	"net/http"

	"conexaoiris/internal/domain/categories"
)

// listCategoriesHandler godoc
//
//	@Summary		List categories
//	@Description	Returns every suggestion category, label ascending. A storage failure logs server-side and yields an empty list so pickers never break.
//	@Tags			categories
//	@Produce		json
//	@Success		200	{object}	[]categories.Category
//	@Router			/categories [get]
func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	out, err := app.store.Categories.List(r.Context())
	if err != nil {
		app.logger.Errorw("error listing categories", "error", err)
		out = []categories.Category{}
	}
	if out == nil {
		out = []categories.Category{}
	}

	if err := app.jsonResponse(w, http.StatusOK, out); err != nil {
		app.internalServerError(w, r, err)
	}
}
