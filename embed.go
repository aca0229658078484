package pageforge

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// builder.js, builder.css
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
