// Package validation checks request payloads and configuration before
// they are used, with go-playground/validator struct tags:
//
//	type Credentials struct {
//	    Username string `json:"username" validate:"required,notblank"`
//	    Password string `json:"password" validate:"required"`
//	}
//	if err := validation.Validate(creds); err != nil {
//	    for _, f := range validation.Fields(err) { ... }
//	}
//
// Field names in errors are the json (or mapstructure) names.
package validation
