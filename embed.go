package pagecraft

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// analytics.js and dashboard.js.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
