package mailer

import "embed"

const (
	FromName              = "Conexão Íris"
	maxRetries            = 3
	UserWelcomeTemplate   = "user_welcome.tmpl"
	ResetPasswordTemplate = "reset_password.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
