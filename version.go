package vym

// Version is the release version, set at build time with
// -ldflags "-X github.com/sz10101/vym.Version=...".
var Version = "0.1.0-dev"
