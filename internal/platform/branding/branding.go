// Package branding centralizes product naming for user-facing surfaces.
package branding

// AppName is the product name shown in page titles and generated documents.
const AppName = "Formdesk"

// Tagline is the short description used in page metadata.
const Tagline = "Formdesk account portal"
