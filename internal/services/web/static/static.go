// Package static embeds the web service's static assets.
package static

import "embed"

// FS holds the embedded static files served under /static/.
//
//go:embed app.css
var FS embed.FS
