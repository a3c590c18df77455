// Package app wires the application together: configuration, logging,
// metrics, services, router, and HTTP server lifecycle. main() should
// contain nothing beyond constructing an Application and running it.
package app
