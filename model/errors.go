package model

import "errors"

var (
	// ErrConfigMismatch marks inconsistent fps or shape values passed
	// across encode/decode calls of one pipeline run. Fatal to the
	// operation that detects it.
	ErrConfigMismatch = errors.New("config mismatch")

	// ErrInvalidInput marks input a component cannot produce any output
	// for, e.g. zero-length audio handed to the slicer.
	ErrInvalidInput = errors.New("invalid input")
)
