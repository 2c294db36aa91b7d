package main

import (
	"fmt"
	"net/http"
	"time"

	"conexaoiris/internal/domain/users"
	"conexaoiris/internal/views"
)

// ProfileResponse is the membership-card view: account data, optional
// profile fields and the printable card code.
type ProfileResponse struct {
	User     *users.User    `json:"user"`
	Profile  *users.Profile `json:"profile,omitempty"`
	CardCode string         `json:"card_code"`
}

// getProfileHandler godoc
//
//	@Summary		Get membership-card profile
//	@Description	Returns the account, the optional profile fields and the membership card code.
//	@Tags			profile
//	@Produce		json
//	@Success		200	{object}	ProfileResponse
//	@Failure		401	{object}	error
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/profile [get]
func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	profile, err := app.store.Users.GetProfile(r.Context(), user.ID)
	if err != nil && err != users.ErrNotFound {
		app.internalServerError(w, r, err)
		return
	}

	cardCode, err := app.cardCodec.Encode(user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := ProfileResponse{
		User:     user,
		Profile:  profile,
		CardCode: cardCode,
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateProfilePayload struct {
	Name              string  `json:"name" validate:"required,min=2,max=100"`
	SexualOrientation *string `json:"sexual_orientation,omitempty" validate:"omitempty,max=100"`
	City              *string `json:"city,omitempty" validate:"omitempty,max=100"`
}

// updateProfileHandler godoc
//
//	@Summary		Update membership-card profile
//	@Description	Updates the display name and upserts the profile fields atomically.
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		UpdateProfilePayload	true	"Profile fields"
//	@Success		200		{object}	ProfileResponse
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		401		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/profile [put]
func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload UpdateProfilePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.validationErrorResponse(w, r, err)
		return
	}

	update := users.ProfileUpdate{
		Name:              payload.Name,
		SexualOrientation: payload.SexualOrientation,
		City:              payload.City,
	}

	if err := app.store.Users.UpdateProfile(r.Context(), user.ID, update); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	fresh, err := app.store.Users.GetByID(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	profile, err := app.store.Users.GetProfile(r.Context(), user.ID)
	if err != nil && err != users.ErrNotFound {
		app.internalServerError(w, r, err)
		return
	}

	cardCode, err := app.cardCodec.Encode(user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.views.Invalidate(views.MemberProfile)

	resp := ProfileResponse{
		User:     fresh,
		Profile:  profile,
		CardCode: cardCode,
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadProfilePictureHandler godoc
//
//	@Summary		Upload profile picture
//	@Description	Accepts a JPEG/PNG up to 2MB, stores it on Cloudinary and saves the URL.
//	@Tags			profile
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file	true	"Profile picture"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		401		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users/profile-picture [post]
func (app *application) uploadProfilePictureHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	// 2MB cap
	if err := r.ParseMultipartForm(2 << 20); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("imagem muito grande (máximo 2MB)"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("arquivo de imagem ausente"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		app.badRequestResponse(w, r, fmt.Errorf("formato inválido, use JPEG ou PNG"))
		return
	}

	publicID := fmt.Sprintf("user_%d_%d", user.ID, time.Now().UnixNano())
	url, err := app.uploadToCloudinaryWithID(file, publicID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.SetImageURL(r.Context(), user.ID, url); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// best-effort cleanup of the replaced picture
	if user.ImageURL != nil {
		old := *user.ImageURL
		go func() {
			if err := app.deletePhotoFromCloudinary(old); err != nil {
				app.logger.Warnw("error deleting old profile picture", "error", err)
			}
		}()
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"image_url": url}); err != nil {
		app.internalServerError(w, r, err)
	}
}
