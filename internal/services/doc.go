// Package services contains the business logic layer sitting between the
// HTTP transport and the inventory engine. Services own the in-memory
// datasets, guard them with locks, and translate domain errors into
// service-level sentinels the handlers can map to HTTP status codes.
package services
