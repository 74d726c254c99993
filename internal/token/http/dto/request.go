// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	customValidation "github.com/allisson/containertoken/internal/validation"
)

// IssueTokenRequest contains the container placement to authorize.
type IssueTokenRequest struct {
	ApplicationID     string `json:"application_id"`
	ContainerSequence int32  `json:"container_sequence"`
	NodeAddress       string `json:"node_address"`
	MemoryMB          int64  `json:"memory_mb"`
	VCores            int32  `json:"vcores"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ApplicationID,
			validation.Required,
			customValidation.NotBlank,
			validation.By(validateUUID),
		),
		validation.Field(&r.ContainerSequence,
			validation.Min(0),
		),
		validation.Field(&r.NodeAddress,
			validation.Required,
			customValidation.NotBlank,
			customValidation.HostPort,
		),
		validation.Field(&r.MemoryMB,
			validation.Required,
			validation.Min(1),
		),
		validation.Field(&r.VCores,
			validation.Required,
			validation.Min(1),
		),
	)
}

// validateUUID validates that a string parses as a UUID.
func validateUUID(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_uuid_type", "must be a string")
	}
	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_uuid", "must be a valid UUID")
	}
	return nil
}
