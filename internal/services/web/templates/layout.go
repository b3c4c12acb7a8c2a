package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

const htmxScript = `<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`

// AuthLayout is the public page shell for unauthenticated pages.
//
// The page body is passed as templ children.
func AuthLayout(title, metaDesc, lang string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if lang == "" {
			lang = "en"
		}
		_, err := fmt.Fprintf(w,
			`<!doctype html><html lang="%s"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s</title>`,
			html.EscapeString(lang),
			html.EscapeString(title))
		if err != nil {
			return err
		}
		if metaDesc != "" {
			if _, err := fmt.Fprintf(w, `<meta name="description" content="%s">`,
				html.EscapeString(metaDesc)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w,
			`<link rel="stylesheet" href="/static/app.css">`+htmxScript+
				`</head><body><main class="auth-main">`); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</main></body></html>`)
		return err
	})
}
