// Package inventory implements the two data transforms behind the beverage
// program dashboard: the ingestion normalizer, which turns a raw uploaded
// table into a typed category dataset, and the recalculation engine, which
// re-derives every computed column from the editable ones.
//
// Both transforms are pure functions over domain.Dataset values. The four
// categories (spirits, wine, beer, ingredients) share a single generic
// pipeline driven by per-category FieldSpec tables rather than four copies
// of the same code.
package inventory
