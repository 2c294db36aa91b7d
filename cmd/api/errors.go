package main

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "Erro interno do servidor")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, "não encontrado")
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	writeJSONError(w, http.StatusTooManyRequests, "limite de requisições excedido, tente novamente em "+retryAfter)
}

// validationErrorResponse renders validator failures as a field map so the
// client can attach messages to inputs. Field names come from the json tag
// (registered tag-name func); messages stay user-facing Portuguese.
func (app *application) validationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		app.badRequestResponse(w, r, err)
		return
	}

	fields := make(map[string][]string)
	for _, fe := range verrs {
		name := fe.Field()
		fields[name] = append(fields[name], validationMessage(fe))
	}

	app.logger.Warnw("validation failed", "method", r.Method, "path", r.URL.Path, "fields", fields)

	type envelope struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Status  int                 `json:"status"`
		Fields  map[string][]string `json:"fields"`
	}
	writeJSON(w, http.StatusBadRequest, &envelope{
		Success: false,
		Message: "dados inválidos",
		Status:  http.StatusBadRequest,
		Fields:  fields,
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "e-mail inválido"
	case "min":
		return fmt.Sprintf("deve ter no mínimo %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
	case "url":
		return "URL inválida"
	case "oneof":
		return "valor inválido"
	case "brphone":
		return "telefone inválido"
	case "hhmm":
		return "horário inválido (use HH:MM)"
	case "gte":
		return fmt.Sprintf("deve ser maior ou igual a %s", fe.Param())
	case "lt":
		return fmt.Sprintf("deve ser menor que %s", fe.Param())
	case "eqfield":
		return "as senhas não coincidem"
	default:
		return "valor inválido"
	}
}
