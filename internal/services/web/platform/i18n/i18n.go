// Package i18n resolves a request-scoped localizer for web templates.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CookieName stores the viewer's language preference.
const CookieName = "formdesk_lang"

var supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

func init() {
	// Message keys are the English strings; only non-English locales need
	// catalog entries.
	for key, value := range map[string]string{
		"Sign In":                "Entrar",
		"Signing In...":          "Entrando...",
		"Reset Password":         "Redefinir Senha",
		"Sending Reset Email...": "Enviando Email...",
		"Welcome back":           "Bem-vindo de volta",
		"Email":                  "Email",
		"Password":               "Senha",
		"New Password":           "Nova Senha",
		"Choose a new password":  "Escolha uma nova senha",
		"Save Password":          "Salvar Senha",
		"If that email exists, a reset link is on its way.": "Se esse email existir, um link de redefinição está a caminho.",
		"Email or password is incorrect.":                   "Email ou senha incorretos.",
		"Something went wrong. Try again.":                  "Algo deu errado. Tente novamente.",
		"Page not found":                                    "Página não encontrada",
		"Your password has been updated. Sign in to continue.": "Sua senha foi atualizada. Entre para continuar.",
		"This reset link is invalid or has expired.":           "Este link de redefinição é inválido ou expirou.",
		"Passwords must be at least 8 characters.":              "Senhas devem ter pelo menos 8 caracteres.",
		"Email is required.":                                    "Email é obrigatório.",
		"Download welcome document":                             "Baixar documento de boas-vindas",
		"Sign Out":                                              "Sair",
	} {
		_ = message.SetString(language.BrazilianPortuguese, key, value)
	}
}

// ResolveLocalizer picks the request language from the language cookie, then
// the Accept-Language header, and returns a printer plus the BCP 47 tag.
func ResolveLocalizer(r *http.Request) (*message.Printer, string) {
	tag := resolveTag(r)
	return message.NewPrinter(tag), tag.String()
}

func resolveTag(r *http.Request) language.Tag {
	if r == nil {
		return language.English
	}
	var preferred []language.Tag
	if cookie, err := r.Cookie(CookieName); err == nil {
		if value := strings.TrimSpace(cookie.Value); value != "" {
			if parsed, err := language.Parse(value); err == nil {
				preferred = append(preferred, parsed)
			}
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if parsed, _, err := language.ParseAcceptLanguage(accept); err == nil {
			preferred = append(preferred, parsed...)
		}
	}
	if len(preferred) == 0 {
		return language.English
	}
	_, index, _ := matcher.Match(preferred...)
	return supported[index]
}
