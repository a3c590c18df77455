// Package http implements the HTTP handlers for the inventory API.
// Handlers stay thin: they parse the request, delegate to the service
// layer, and translate service errors into RFC 7807 problem responses.
package http
