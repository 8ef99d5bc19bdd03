// Package envelope implements the outer, role-bound authenticated
// encryption layer of spec.md §4.4 on top of stdlib and x/crypto
// primitives: one-pass ephemeral-static ECDH on P-256, HKDF-SHA256 key
// derivation, and AES-256-GCM. spec.md §1 treats the hybrid PKE as an
// external collaborator specified only by its contract ("authenticated
// encryption with associated data, bound to a recipient public key");
// this package is that contract's concrete realization.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// ErrOpen is returned when Open fails to authenticate a ciphertext,
// whether due to a malformed envelope or a tampered payload. The two
// cases are deliberately not distinguished to avoid a decryption oracle.
var ErrOpen = errors.New("envelope: open failed")

const (
	hkdfInfo = "aid-distribution/envelope/v1"
	keyLen   = 32
)

func curveP256() ecdh.Curve { return ecdh.P256() }

// GenerateKeyPair produces a new P-256 ECDH identity key pair for a
// Helper, Auditor, or recipient.
func GenerateKeyPair(r io.Reader) (*ecdh.PrivateKey, *ecdh.PublicKey, error) {
	priv, err := curveP256().GenerateKey(r)
	if err != nil {
		return nil, nil, fmt.Errorf("envelope: generate key: %w", err)
	}
	return priv, priv.PublicKey(), nil
}

// Seal encrypts plaintext to recipient public key pub, authenticating ad
// as associated data. The wire format is
// ephemeralPublicKey(65) || nonce(12) || ciphertext+tag.
func Seal(r io.Reader, pub *ecdh.PublicKey, plaintext, ad []byte) ([]byte, error) {
	ephPriv, ephPub, err := GenerateKeyPair(r)
	if err != nil {
		return nil, err
	}
	shared, err := ephPriv.ECDH(pub)
	if err != nil {
		return nil, fmt.Errorf("envelope: ECDH: %w", err)
	}
	key, err := deriveKey(shared, ad)
	if err != nil {
		return nil, err
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, fmt.Errorf("envelope: random nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, ad)

	ephBytes := ephPub.Bytes()
	out := make([]byte, 0, len(ephBytes)+len(nonce)+len(sealed))
	out = append(out, ephBytes...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// Open decrypts an envelope produced by Seal using the recipient's
// private key, authenticating ad as associated data.
func Open(priv *ecdh.PrivateKey, envelope, ad []byte) ([]byte, error) {
	const uncompressedP256Len = 65
	const nonceLen = 12

	if len(envelope) < uncompressedP256Len+nonceLen {
		return nil, fmt.Errorf("%w: truncated envelope", ErrOpen)
	}

	ephBytes := envelope[:uncompressedP256Len]
	nonce := envelope[uncompressedP256Len : uncompressedP256Len+nonceLen]
	sealed := envelope[uncompressedP256Len+nonceLen:]

	ephPub, err := curveP256().NewPublicKey(ephBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: bad ephemeral key: %v", ErrOpen, err)
	}
	shared, err := priv.ECDH(ephPub)
	if err != nil {
		return nil, fmt.Errorf("%w: ECDH: %v", ErrOpen, err)
	}
	key, err := deriveKey(shared, ad)
	if err != nil {
		return nil, err
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, sealed, ad)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	return plaintext, nil
}

func deriveKey(shared, ad []byte) ([]byte, error) {
	h := hkdf.New(sha256.New, shared, ad, []byte(hkdfInfo))
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, fmt.Errorf("envelope: HKDF: %w", err)
	}
	return key, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("envelope: new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("envelope: new GCM: %w", err)
	}
	return aead, nil
}

// HelperAD builds the associated-data string bound to a given period
// for Helper-bound envelopes: the 2-byte big-endian period id, per
// spec.md §4.4.
func HelperAD(period uint16) []byte {
	return []byte{byte(period >> 8), byte(period)}
}

// AuditorAD is the associated-data string for Auditor-bound envelopes:
// always empty, per spec.md §4.4.
func AuditorAD() []byte {
	return nil
}
