// Package web provides embedded static assets (CSS, JS) for the admin
// interface. In development, templates load TailwindCSS and HTMX from CDN;
// in production builds the compiled and vendored files are embedded here
// and served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree. Docker builds add the
// compiled TailwindCSS output and a vendored htmx.min.js before compiling.
//
//go:embed all:static
var StaticFS embed.FS
