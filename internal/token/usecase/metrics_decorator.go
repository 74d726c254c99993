package usecase

import (
	"context"
	"time"

	"github.com/allisson/containertoken/internal/metrics"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *IssueTokenInput,
) (*IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "token_issue", status)
	t.metrics.RecordDuration(ctx, "token", "token_issue", time.Since(start), status)

	return output, err
}

// Validate records metrics for token validation.
func (t *tokenUseCaseWithMetrics) Validate(
	ctx context.Context,
	identifierBytes, signature []byte,
) (*tokenDomain.ValidatedIdentity, error) {
	start := time.Now()
	identity, err := t.next.Validate(ctx, identifierBytes, signature)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "token_validate", status)
	t.metrics.RecordDuration(ctx, "token", "token_validate", time.Since(start), status)

	return identity, err
}

// RotateKey records metrics for master key rotation.
func (t *tokenUseCaseWithMetrics) RotateKey(ctx context.Context) (uint32, error) {
	start := time.Now()
	version, err := t.next.RotateKey(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "token", "key_rotate", status)
	t.metrics.RecordDuration(ctx, "token", "key_rotate", time.Since(start), status)

	return version, err
}
