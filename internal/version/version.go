package version

// Name identifies the service in telemetry and log output.
const Name = "discipled"

// Version is overridden at build time via -ldflags.
var Version = "dev"
