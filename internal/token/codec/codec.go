// Package codec implements the canonical byte encoding of token
// identifiers. The same bytes are used for signing and for wire transfer,
// so the encoding must be deterministic: fixed field order, big-endian
// fixed-width integers, and explicit length prefixes for variable-length
// fields to prevent framing ambiguity.
package codec

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/containertoken/internal/errors"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// formatVersion is the first byte of every encoding. Bumped only on
// incompatible layout changes.
const formatVersion byte = 0x01

// maxNodeAddressLen bounds the only variable-length field. Anything larger
// than a hostname plus port is rejected as malformed.
const maxNodeAddressLen = 512

// Field layout after the version byte:
//
//	application id    16 bytes (raw UUID)
//	sequence           4 bytes (int32, big-endian)
//	node address       4-byte length prefix + bytes
//	memory mb          8 bytes (int64, big-endian)
//	vcores             4 bytes (int32, big-endian)
//	issued at          8 bytes (unix nanoseconds, big-endian)
//	expires at         8 bytes (unix nanoseconds, big-endian)
//	key version        4 bytes (uint32, big-endian)
const fixedTailLen = 8 + 4 + 8 + 8 + 4

// Encode produces the canonical byte form of an identifier. Encoding the
// same identifier always yields identical bytes.
func Encode(identifier tokenDomain.TokenIdentifier) []byte {
	addr := []byte(identifier.NodeAddress)

	buf := make([]byte, 0, 1+16+4+4+len(addr)+fixedTailLen)
	buf = append(buf, formatVersion)
	buf = append(buf, identifier.ContainerID.ApplicationID[:]...)
	buf = appendInt32(buf, identifier.ContainerID.Sequence)
	buf = appendLengthPrefixed(buf, addr)
	buf = appendInt64(buf, identifier.Resource.MemoryMB)
	buf = appendInt32(buf, identifier.Resource.VCores)
	buf = appendInt64(buf, identifier.IssuedAt.UnixNano())
	buf = appendInt64(buf, identifier.ExpiresAt.UnixNano())
	buf = appendUint32(buf, identifier.KeyVersion)

	return buf
}

// Decode parses canonical bytes back into an identifier. It fails with
// ErrMalformedToken on truncated input, trailing bytes, an unknown format
// version, or an oversized variable-length field. The round-trip law holds:
// Decode(Encode(x)) equals x for every valid identifier x.
func Decode(data []byte) (tokenDomain.TokenIdentifier, error) {
	var identifier tokenDomain.TokenIdentifier

	if len(data) < 1 {
		return identifier, apperrors.Wrap(tokenDomain.ErrMalformedToken, "empty input")
	}
	if data[0] != formatVersion {
		return identifier, apperrors.Wrap(
			tokenDomain.ErrMalformedToken,
			fmt.Sprintf("unknown format version 0x%02x", data[0]),
		)
	}

	r := reader{data: data[1:]}

	appIDBytes, err := r.take(16)
	if err != nil {
		return identifier, err
	}
	appID, err := uuid.FromBytes(appIDBytes)
	if err != nil {
		return identifier, apperrors.Wrap(tokenDomain.ErrMalformedToken, "invalid application id")
	}

	sequence, err := r.int32()
	if err != nil {
		return identifier, err
	}

	addr, err := r.lengthPrefixed()
	if err != nil {
		return identifier, err
	}

	memoryMB, err := r.int64()
	if err != nil {
		return identifier, err
	}
	vcores, err := r.int32()
	if err != nil {
		return identifier, err
	}
	issuedNanos, err := r.int64()
	if err != nil {
		return identifier, err
	}
	expiresNanos, err := r.int64()
	if err != nil {
		return identifier, err
	}
	keyVersion, err := r.uint32()
	if err != nil {
		return identifier, err
	}

	if r.remaining() != 0 {
		return identifier, apperrors.Wrap(
			tokenDomain.ErrMalformedToken,
			fmt.Sprintf("%d trailing bytes", r.remaining()),
		)
	}

	identifier = tokenDomain.TokenIdentifier{
		ContainerID: tokenDomain.ContainerID{
			ApplicationID: appID,
			Sequence:      sequence,
		},
		NodeAddress: string(addr),
		Resource: tokenDomain.Resource{
			MemoryMB: memoryMB,
			VCores:   vcores,
		},
		IssuedAt:   time.Unix(0, issuedNanos).UTC(),
		ExpiresAt:  time.Unix(0, expiresNanos).UTC(),
		KeyVersion: keyVersion,
	}

	return identifier, nil
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

func appendInt32(buf []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(buf, uint32(v))
}

func appendInt64(buf []byte, v int64) []byte {
	return binary.BigEndian.AppendUint64(buf, uint64(v))
}

func appendUint32(buf []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(buf, v)
}

// reader consumes canonical bytes field by field, converting underruns
// into ErrMalformedToken.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) take(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, apperrors.Wrap(tokenDomain.ErrMalformedToken, "truncated input")
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) int32() (int32, error) {
	v, err := r.uint32()
	return int32(v), err
}

func (r *reader) int64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *reader) lengthPrefixed() ([]byte, error) {
	length, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if length > maxNodeAddressLen {
		return nil, apperrors.Wrap(
			tokenDomain.ErrMalformedToken,
			fmt.Sprintf("length prefix %d exceeds maximum %d", length, maxNodeAddressLen),
		)
	}
	return r.take(int(length))
}
