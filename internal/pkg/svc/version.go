package svc

// Overridden at build time via -ldflags.
var (
	serviceName    = "searchsync"
	serviceVersion = "dev"
)
