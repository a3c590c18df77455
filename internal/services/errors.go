package services

import "errors"

// Inventory service errors
var (
	// Dataset errors
	ErrDatasetNotFound = errors.New("no dataset loaded for category")
	ErrRowNotFound     = errors.New("row index out of range")

	// Edit errors
	ErrDerivedColumn = errors.New("column is derived and cannot be edited")
	ErrUnknownColumn = errors.New("column is not editable for this category")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
