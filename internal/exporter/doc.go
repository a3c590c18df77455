// Package exporter regenerates CSV text from in-memory category datasets.
// Exports carry the dataset's current column order, serialize numeric
// cells at full precision rather than display rounding, and are prefixed
// with a UTF-8 BOM so Excel opens them cleanly.
package exporter
