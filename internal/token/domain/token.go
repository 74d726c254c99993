package domain

// Kind tags the credential type a token represents. Each RPC protocol
// requires a specific kind; the mapping is explicit rather than resolved
// through dynamic dispatch.
type Kind string

const (
	// KindContainerToken authorizes container operations against a node agent.
	KindContainerToken Kind = "ContainerToken"
)

// Protocol names a server-side RPC surface that requires authentication.
type Protocol string

const (
	// ProtocolContainerManager is the node agent's container management API.
	ProtocolContainerManager Protocol = "ContainerManager"
)

// requiredKinds maps each protocol to the token kind it accepts.
var requiredKinds = map[Protocol]Kind{
	ProtocolContainerManager: KindContainerToken,
}

// RequiredKind returns the token kind a protocol demands at session
// establishment. Unknown protocols accept no token at all.
func RequiredKind(p Protocol) (Kind, bool) {
	kind, ok := requiredKinds[p]
	return kind, ok
}

// Token is the wire representation of a container launch credential.
//
// Identifier holds the canonical encoding of a TokenIdentifier and
// Signature the HMAC computed over those bytes by the issuing secret
// manager. Service is the "host:port" endpoint the token authorizes use
// against; a token presented to any other endpoint must be rejected by
// the receiving side before signature validation is even attempted.
type Token struct {
	Identifier []byte `json:"identifier"`
	Signature  []byte `json:"signature"`
	Kind       Kind   `json:"kind"`
	Service    string `json:"service"`
}
