package constants

import "time"

// HTTP Server Timeouts
const (
	HTTPReadTimeout  = 15 * time.Second
	HTTPWriteTimeout = 30 * time.Second
	HTTPIdleTimeout  = 120 * time.Second
)

// Content Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

// Headers
const (
	HeaderContentType = "Content-Type"
)

// Page routes the gate redirects to
const (
	LoginPagePath = "/login"
	HomePagePath  = "/"
)
