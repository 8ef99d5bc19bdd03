// Package signchain implements the signature chain of custody of
// spec.md §4.5: the Helper signs its processed output, and the
// (malicious-model) Auditor signs the batch of outer ciphertexts it
// forwarded, each directly on crypto/ecdsa per spec.md §1's stdlib
// contract for signature primitives.
package signchain

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidSignature is returned by Verify when a signature does not
// validate against the given public key and message.
var ErrInvalidSignature = errors.New("signchain: signature verification failed")

func curveP256() elliptic.Curve { return elliptic.P256() }

// GenerateKeyPair produces a new ECDSA-P256 signing identity for a
// Helper or Auditor.
func GenerateKeyPair(r io.Reader) (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	priv, err := ecdsa.GenerateKey(curveP256(), r)
	if err != nil {
		return nil, nil, fmt.Errorf("signchain: generate key: %w", err)
	}
	return priv, &priv.PublicKey, nil
}

// Sign signs the SHA-256 digest of msg, the canonical byte
// representation of whatever is being signed (a Helper's processed
// output, or an Auditor's forwarded batch).
func Sign(r io.Reader, priv *ecdsa.PrivateKey, msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	sig, err := ecdsa.SignASN1(r, priv, digest[:])
	if err != nil {
		return nil, fmt.Errorf("signchain: sign: %w", err)
	}
	return sig, nil
}

// Verify checks sig against msg under pub. A failure here is fatal for
// the downstream party per spec.md §4.5: the Helper rejects an
// Auditor-signed batch that does not verify, and a committee member
// rejects a Helper-signed output that does not verify.
func Verify(pub *ecdsa.PublicKey, msg, sig []byte) error {
	digest := sha256.Sum256(msg)
	if !ecdsa.VerifyASN1(pub, digest[:], sig) {
		return ErrInvalidSignature
	}
	return nil
}
