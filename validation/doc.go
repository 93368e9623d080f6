// Package validation provides input validation utilities for streamkit.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for configuration structs.
//
// # Struct Tag Validation
//
//	type Settings struct {
//	    Name     string `validate:"required"`
//	    Prefetch int    `validate:"gte=0"`
//	}
//	err := validation.Validate(settings)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", name).Min("prefetch", prefetch, 0)
//	err := v.Validate()
package validation
