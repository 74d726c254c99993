package commands

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedLine = regexp.MustCompile(`MASTER_KEY_SEED="([^"]+)"`)

func TestRunCreateMasterSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PlainSeed", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, RunCreateMasterSeed(ctx, &buf, ""))

		matches := seedLine.FindStringSubmatch(buf.String())
		require.Len(t, matches, 2)

		seed, err := base64.StdEncoding.DecodeString(matches[1])
		require.NoError(t, err)
		assert.Len(t, seed, 32)
		assert.NotContains(t, buf.String(), "KMS_KEY_URI")
	})

	t.Run("Success_KMSWrappedSeed", func(t *testing.T) {
		kmsKey := make([]byte, 32)
		_, err := rand.Read(kmsKey)
		require.NoError(t, err)
		kmsKeyURI := fmt.Sprintf("base64key://%s", base64.URLEncoding.EncodeToString(kmsKey))

		var buf bytes.Buffer

		require.NoError(t, RunCreateMasterSeed(ctx, &buf, kmsKeyURI))

		matches := seedLine.FindStringSubmatch(buf.String())
		require.Len(t, matches, 2)

		// The wrapped seed is KMS ciphertext, longer than the raw 32 bytes.
		ciphertext, err := base64.StdEncoding.DecodeString(matches[1])
		require.NoError(t, err)
		assert.Greater(t, len(ciphertext), 32)
		assert.Contains(t, buf.String(), "KMS_KEY_URI")
	})

	t.Run("Error_InvalidKMSKeyURI", func(t *testing.T) {
		var buf bytes.Buffer

		err := RunCreateMasterSeed(ctx, &buf, "unknown://provider")

		assert.Error(t, err)
	})
}
