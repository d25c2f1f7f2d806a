// Package version pins the application version reported by the system API.
package version

// Version is the current application version.
const Version = "1.0.0"
