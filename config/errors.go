package config

import "errors"

var (
	// ErrValidation is returned when a field has no value from any source and
	// no default, or when a value cannot be converted to the field's type.
	ErrValidation = errors.New("settings validation failed")

	// ErrSource is returned when a source exists but cannot be read.
	ErrSource = errors.New("settings source failed")

	// ErrDotenvEncoding is returned for a dotenv file that is not valid UTF-8.
	ErrDotenvEncoding = errors.New("dotenv file is not valid UTF-8")

	// ErrInvalidTarget is returned when the settings type is not a struct.
	ErrInvalidTarget = errors.New("settings type must be a struct")
)
