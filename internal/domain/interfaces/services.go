package interfaces

import domaintypes "kdcsim/internal/domain/types"

// KDCService authenticates key requests and issues session key grants.
type KDCService interface {
	HandleRequest(
		encryptedRequest []byte,
		claimedSender domaintypes.Identity,
	) (domaintypes.GrantPair, error)
}

// Cipher is the authenticated symmetric encryption the protocol relies on.
//
// Encrypt must be randomised: sealing the same plaintext twice under the same
// key yields different ciphertexts. Decrypt must fail on any tampering, wrong
// key or malformed input and never return partial plaintext.
type Cipher interface {
	Encrypt(key, plaintext []byte) ([]byte, error)
	Decrypt(key, ciphertext []byte) ([]byte, error)
}

// KDCMetrics receives protocol outcome counts from the KDC.
type KDCMetrics interface {
	RequestReceived()
	GrantsIssued()
	RequestRejected(reason string)
}
