package domain

import "context"

// KMSKeeper abstracts the subset of a KMS keeper used to wrap and unwrap
// the master key seed at rest. *secrets.Keeper from gocloud.dev satisfies it.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
