// Package routepath centralizes the web service's route constants.
package routepath

const (
	Root          = "/"
	Login         = "/login"
	Logout        = "/logout"
	ResetPassword = "/reset-password"
	ResetPrefix   = "/reset/"

	DocumentWelcome = "/documents/welcome.png"

	Health = "/healthz"
)
