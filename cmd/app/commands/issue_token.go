package commands

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	tokenUseCase "github.com/allisson/containertoken/internal/token/usecase"
)

// issueTokenOutput is the JSON document emitted by RunIssueToken.
type issueTokenOutput struct {
	ContainerID string `json:"container_id"`
	Service     string `json:"service"`
	KeyVersion  uint32 `json:"key_version"`
	ExpiresAt   string `json:"expires_at"`
	// Credential is the base64-encoded wire token, usable directly as a
	// Bearer credential against the container API.
	Credential string `json:"credential"`
}

// RunIssueToken signs a container token for the given placement and prints
// the credential. Only useful when the process shares a deterministic master
// key seed with the verifying node agent.
func RunIssueToken(
	ctx context.Context,
	useCase tokenUseCase.TokenUseCase,
	writer io.Writer,
	applicationID string,
	containerSequence int64,
	nodeAddress string,
	memoryMB int64,
	vcores int64,
) error {
	appID, err := uuid.Parse(applicationID)
	if err != nil {
		return fmt.Errorf("invalid application id: %w", err)
	}

	output, err := useCase.Issue(ctx, &tokenUseCase.IssueTokenInput{
		ApplicationID:     appID,
		ContainerSequence: int32(containerSequence),
		NodeAddress:       nodeAddress,
		MemoryMB:          memoryMB,
		VCores:            int32(vcores),
	})
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	raw, err := json.Marshal(output.Token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	document := issueTokenOutput{
		ContainerID: output.Identifier.ContainerID.String(),
		Service:     output.Token.Service,
		KeyVersion:  output.Identifier.KeyVersion,
		ExpiresAt:   output.Identifier.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		Credential:  base64.StdEncoding.EncodeToString(raw),
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(document)
}
