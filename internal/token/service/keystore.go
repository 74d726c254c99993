package service

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"

	apperrors "github.com/allisson/containertoken/internal/errors"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// masterKeySize is the secret size in bytes for every master key version.
const masterKeySize = 32

// masterKey pairs secret material with its monotonically increasing version.
type masterKey struct {
	version uint32
	secret  []byte
}

// KeyStore holds the active signing key and a bounded window of recently
// retired keys that remain valid for verification only.
//
// Invariants: exactly one key is active at a time; retained keys are
// ordered oldest first and never exceed the retention size; versions are
// never reused. Reads take a shared lock, rotation an exclusive one, so
// rotation never blocks an in-flight validation longer than the time to
// swap two references.
//
// Key material is process-resident only. Outstanding tokens do not survive
// a restart, which is acceptable because container allocation is
// re-entrant.
type KeyStore struct {
	mu        sync.RWMutex
	seed      []byte
	retention int
	current   *masterKey
	retained  []*masterKey
	next      uint32
}

// NewKeyStore creates a key store with the first master key active.
//
// retention is the number of retired keys kept for verification after a
// rotation; zero means rotation immediately invalidates tokens signed
// under the previous key.
//
// seed is optional deterministic key material (32 bytes). When set, every
// key version is derived from it with HKDF-SHA256, so two processes
// configured with the same seed agree on all versions without any key
// exchange. When nil, each version is independently random.
func NewKeyStore(retention int, seed []byte) (*KeyStore, error) {
	if retention < 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "retention must not be negative")
	}
	if seed != nil && len(seed) != masterKeySize {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("seed must be %d bytes, got %d", masterKeySize, len(seed)),
		)
	}

	ks := &KeyStore{
		seed:      seed,
		retention: retention,
		next:      1,
	}

	secret, err := ks.newSecret(ks.next)
	if err != nil {
		return nil, err
	}
	ks.current = &masterKey{version: ks.next, secret: secret}
	ks.next++

	return ks, nil
}

// Current returns the active key's version and a copy of its secret.
func (ks *KeyStore) Current() (uint32, []byte) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	return ks.current.version, cloneSecret(ks.current.secret)
}

// Get returns a copy of the secret for the given version. It fails with
// ErrKeyNotFound when the version was never issued or has been evicted
// from the retention window.
func (ks *KeyStore) Get(version uint32) ([]byte, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	if ks.current.version == version {
		return cloneSecret(ks.current.secret), nil
	}
	for _, key := range ks.retained {
		if key.version == version {
			return cloneSecret(key.secret), nil
		}
	}

	return nil, apperrors.Wrap(
		tokenDomain.ErrKeyNotFound,
		fmt.Sprintf("version %d", version),
	)
}

// Rotate activates a fresh master key and demotes the previous active key
// into the retention window, evicting (and zeroing) the oldest retained
// key once the window size is exceeded. Tokens signed under keys still
// inside the window keep validating, which is what lets long-lived
// sessions survive a rotation.
func (ks *KeyStore) Rotate() (uint32, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	secret, err := ks.newSecret(ks.next)
	if err != nil {
		return 0, err
	}

	ks.retained = append(ks.retained, ks.current)
	for len(ks.retained) > ks.retention {
		zero(ks.retained[0].secret)
		ks.retained = ks.retained[1:]
	}

	ks.current = &masterKey{version: ks.next, secret: secret}
	ks.next++

	return ks.current.version, nil
}

// Close zeroes all key material. The store must not be used afterwards.
func (ks *KeyStore) Close() {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	if ks.current != nil {
		zero(ks.current.secret)
		ks.current = nil
	}
	for _, key := range ks.retained {
		zero(key.secret)
	}
	ks.retained = nil
	zero(ks.seed)
	ks.seed = nil
}

// newSecret produces the secret for a version: HKDF-derived from the seed
// when one is configured, otherwise fresh random bytes.
func (ks *KeyStore) newSecret(version uint32) ([]byte, error) {
	secret := make([]byte, masterKeySize)

	if ks.seed != nil {
		info := fmt.Appendf(nil, "container-token-master-key-v%d", version)
		kdf := hkdf.New(sha256.New, ks.seed, nil, info)
		if _, err := io.ReadFull(kdf, secret); err != nil {
			return nil, apperrors.Wrap(err, "failed to derive master key")
		}
		return secret, nil
	}

	if _, err := rand.Read(secret); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate master key")
	}
	return secret, nil
}

func cloneSecret(secret []byte) []byte {
	out := make([]byte, len(secret))
	copy(out, secret)
	return out
}

// zero overwrites sensitive data in memory with zeros.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
