package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/allisson/containertoken/internal/token/service"
)

// RunCreateMasterSeed generates a cryptographically secure 32-byte master key
// seed. Issuer and verifier processes configured with the same seed derive
// identical master keys per version, so no key exchange is needed between
// them. The seed is zeroed from memory after encoding.
//
// When kmsKeyURI is set, the seed is wrapped with the KMS key before output
// and KMS_KEY_URI is emitted alongside it; the server unwraps at startup.
// For local development, use kmsKeyURI="base64key://<32-byte-base64-key>".
//
// Output format:
//   - MASTER_KEY_SEED="<base64-encoded-seed-or-kms-ciphertext>"
//   - KMS_KEY_URI="<uri>" (KMS mode only)
func RunCreateMasterSeed(ctx context.Context, writer io.Writer, kmsKeyURI string) error {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return fmt.Errorf("failed to generate master key seed: %w", err)
	}
	defer func() {
		for i := range seed {
			seed[i] = 0
		}
	}()

	output := seed

	if kmsKeyURI != "" {
		kmsService := service.NewKMSService()
		keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() {
			if closeErr := keeper.Close(); closeErr != nil {
				fmt.Fprintf(writer, "# Warning: failed to close KMS keeper: %v\n", closeErr)
			}
		}()

		output, err = keeper.Encrypt(ctx, seed)
		if err != nil {
			return fmt.Errorf("failed to wrap master key seed with KMS: %w", err)
		}

		fmt.Fprintln(writer, "# Master Key Seed Configuration (KMS Mode)")
	} else {
		fmt.Fprintln(writer, "# Master Key Seed Configuration")
	}

	fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintln(writer, "# Every issuer and verifier must be configured with the same seed")
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "MASTER_KEY_SEED=\"%s\"\n", base64.StdEncoding.EncodeToString(output))

	if kmsKeyURI != "" {
		fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	}

	return nil
}
