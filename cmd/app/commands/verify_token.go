package commands

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	validation "github.com/jellydator/validation"

	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
	tokenUseCase "github.com/allisson/containertoken/internal/token/usecase"
	customValidation "github.com/allisson/containertoken/internal/validation"
)

// verifyTokenOutput is the JSON document emitted by RunVerifyToken.
type verifyTokenOutput struct {
	Valid       bool   `json:"valid"`
	ContainerID string `json:"container_id,omitempty"`
	NodeAddress string `json:"node_address,omitempty"`
	MemoryMB    int64  `json:"memory_mb,omitempty"`
	VCores      int32  `json:"vcores,omitempty"`
	ExpiresAt   string `json:"expires_at,omitempty"`
	Error       string `json:"error,omitempty"`
}

// RunVerifyToken verifies a base64-encoded wire token credential and prints
// the validated identity. A verification failure is reported in the output
// document, not as a command error.
func RunVerifyToken(
	ctx context.Context,
	useCase tokenUseCase.TokenUseCase,
	writer io.Writer,
	credential string,
) error {
	if err := validation.Validate(credential,
		validation.Required,
		customValidation.Base64,
	); err != nil {
		return customValidation.WrapValidationError(err)
	}

	raw, err := base64.StdEncoding.DecodeString(credential)
	if err != nil {
		return fmt.Errorf("credential is not valid base64: %w", err)
	}

	var token tokenDomain.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return fmt.Errorf("credential is not a wire token: %w", err)
	}

	document := verifyTokenOutput{}

	identity, err := useCase.Validate(ctx, token.Identifier, token.Signature)
	if err != nil {
		document.Error = err.Error()
	} else {
		document.Valid = true
		document.ContainerID = identity.ContainerID.String()
		document.NodeAddress = identity.NodeAddress
		document.MemoryMB = identity.Resource.MemoryMB
		document.VCores = identity.Resource.VCores
		document.ExpiresAt = identity.ExpiresAt.Format("2006-01-02T15:04:05Z07:00")
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(document)
}
