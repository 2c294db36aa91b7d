package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"conexaoiris/internal/domain/users"
	"conexaoiris/internal/mailer"
)

// ErrorBadRequestResponse represents the standard error format for bad request API responses.
//
//	@name			ErrorBadRequestResponse
//	@description	Standard error response format returned by all bad request API endpoints
type ErrorBadRequestResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"It show error from err.Error()"`
	Status  int    `json:"status" example:"400"`
}

// ErrorInternalServerResponse represents the standard error format for internal server API responses.
//
//	@name			ErrorInternalServerResponse
//	@description	Standard error response format returned by all internal server error API endpoints
type ErrorInternalServerResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Erro interno do servidor"`
	Status  int    `json:"status" example:"500"`
}

type RegisterUserPayload struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// registerUserHandler godoc
//
//	@Summary		Registers a user
//	@Description	Creates an account and sends a welcome email. Duplicate emails are rejected with a dedicated message.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RegisterUserPayload			true	"User credentials"
//	@Success		201		{object}	users.User					"User registered"
//	@Failure		400		{object}	ErrorBadRequestResponse		"Bad request"
//	@Failure		500		{object}	ErrorInternalServerResponse	"Internal Server Error"
//	@Router			/authentication/user [post]
func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload RegisterUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.validationErrorResponse(w, r, err)
		return
	}

	user := &users.User{
		Name:  payload.Name,
		Email: payload.Email,
	}
	// hash the user password.
	if err := user.Password.Set(payload.Password); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	ctx := r.Context()

	err := app.store.Users.Create(ctx, user)
	if err != nil {
		switch err {
		case users.ErrDuplicateEmail:
			writeJSONError(w, http.StatusBadRequest, "Já existe uma conta relacionada a este e-mail.")
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	vars := struct {
		Username    string
		FrontendURL string
	}{
		Username:    user.Name,
		FrontendURL: app.config.frontendURL,
	}

	// send the welcome email off the request path; a mail failure must not
	// undo the registration
	go func() {
		status, err := app.mailer.Send(mailer.UserWelcomeTemplate, user.Name, user.Email, vars)
		if err != nil {
			app.logger.Errorw("error sending welcome email", "error", err)
			return
		}
		app.logger.Infow("welcome email sent", "status code", status)
	}()

	if err := app.jsonResponse(w, http.StatusCreated, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CreateUserTokenPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// TokenResponse represents the structure of the tokens in the response. made for swagger doc success output
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

// Envelope is a wrapper for API responses.made for swagger doc success output
type Envelope struct {
	Data TokenResponse `json:"data"`
}

// createTokenHandler godoc
//
//	@Summary		Login to get Token
//	@Description	Creates a token for a user after signin or login.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateUserTokenPayload	true	"User credentials"
//	@Success		200		{object}	Envelope				"Access and refresh tokens"
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		500		{object}	error
//	@Router			/authentication/token [post]
func (app *application) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.validationErrorResponse(w, r, err)
		return
	}

	user, err := app.store.Users.GetByEmail(r.Context(), payload.Email)
	if err != nil {
		switch err {
		case users.ErrNotFound:
			app.unauthorizedErrorResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := user.Password.Compare(payload.Password); err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	accessToken, refreshToken, err := app.authenticator.GenerateTokens(user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// Save refresh token in the database
	err = app.store.Users.SaveRefreshToken(r.Context(), user.ID, refreshToken)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user_id":       strconv.FormatInt(user.ID, 10),
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// LogoutUser godoc
//
//	@Summary		logout user
//	@Description	logout user which will nullify refresh token
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Success		204	{string}	string	"No Content"
//	@Failure		500	{object}	error	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/users/logout [post]
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	// Delete refresh token from DB
	err := app.store.Users.DeleteRefreshToken(r.Context(), user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type RefreshPayload struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// refreshTokenHandler godoc
//
//	@Summary		Refresh authentication tokens
//	@Description	Validates the provided refresh token and issues new access and refresh tokens.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RefreshPayload	true	"Refresh token payload"
//	@Success		200		{object}	Envelope		"New access and refresh tokens"
//	@Failure		400		{object}	error			"Bad request"
//	@Failure		401		{object}	error			"Unauthorized"
//	@Failure		500		{object}	error			"Internal server error"
//	@Router			/authentication/refresh [post]
func (app *application) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload RefreshPayload

	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token, err := app.authenticator.ValidateRefreshToken(payload.RefreshToken)
	if err != nil || !token.Valid {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("invalid refresh token"))
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("invalid claims"))
		return
	}

	subClaim, ok := claims["sub"].(float64)
	if !ok {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("invalid sub claim"))
		return
	}

	userID := int64(subClaim)

	// Ensure refresh token exists in DB
	savedToken, err := app.store.Users.GetRefreshToken(r.Context(), userID)
	if err != nil || savedToken != payload.RefreshToken {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("refresh token mismatch"))
		return
	}

	// Generate new tokens
	accessToken, newRefreshToken, err := app.authenticator.GenerateTokens(userID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// Update refresh token in DB
	err = app.store.Users.SaveRefreshToken(r.Context(), userID, newRefreshToken)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{
		"access_token":  accessToken,
		"refresh_token": newRefreshToken,
		"user_id":       strconv.FormatInt(userID, 10),
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

type RequestResetPasswordPayload struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// requestResetPasswordHandler godoc
//
//	@Summary		Request password reset
//	@Description	Emails a reset link; the token expires after three hours.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RequestResetPasswordPayload	true	"User email"
//	@Success		200		{object}	map[string]string			"Reset token sent"
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Router			/authentication/reset-password [post]
func (app *application) requestResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var payload RequestResetPasswordPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.validationErrorResponse(w, r, err)
		return
	}

	ctx := r.Context()

	// Generate a reset token; only its sha256 hash is stored
	resetToken := uuid.New().String()
	hash := sha256.Sum256([]byte(resetToken))
	hashToken := hex.EncodeToString(hash[:])

	resetTokenExpires := time.Now().UTC().Add(3 * time.Hour)

	user, err := app.store.Users.GetByEmail(ctx, payload.Email)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	err = app.store.Users.UpdateResetToken(ctx, payload.Email, hashToken, resetTokenExpires)
	if err != nil {
		if err == users.ErrNotFound {
			app.badRequestResponse(w, r, errors.New("email not found"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password/?token=%s", app.config.frontendURL, resetToken)

	vars := struct {
		Username string
		ResetURL string
	}{
		Username: user.Name,
		ResetURL: resetURL,
	}

	status, err := app.mailer.Send(mailer.ResetPasswordTemplate, user.Name, payload.Email, vars)
	if err != nil {
		app.logger.Errorw("error sending reset password email", "error", err)
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("reset password email sent", "status code", status)

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "Reset token sent",
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type ResetPasswordPayload struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// resetPasswordHandler godoc
//
//	@Summary		Reset password
//	@Description	Sets a new password given a valid, unexpired reset token.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		ResetPasswordPayload	true	"Reset password details"
//	@Success		200		{object}	map[string]string		"Password reset successful"
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Router			/authentication/reset-password [patch]
func (app *application) resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var payload ResetPasswordPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.validationErrorResponse(w, r, err)
		return
	}

	ctx := r.Context()

	// Hash the token to compare with the stored hash
	hash := sha256.Sum256([]byte(payload.Token))
	hashToken := hex.EncodeToString(hash[:])

	user, err := app.store.Users.GetByResetToken(ctx, hashToken)
	if err != nil {
		if err == users.ErrNotFound {
			app.badRequestResponse(w, r, errors.New("invalid or expired token"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if time.Now().UTC().After(user.ResetPasswordExpires.UTC()) {
		app.badRequestResponse(w, r, errors.New("invalid or expired token"))
		return
	}

	if err := user.Password.Set(payload.Password); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// Persist the new hash and clear the token in one statement
	if err := app.store.Users.ResetPassword(ctx, user.ID, user.Password.Hash()); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "Password reset successful"}); err != nil {
		app.internalServerError(w, r, err)
	}
}
