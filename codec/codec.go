// Package codec implements the canonical fixed-width wire encodings for
// ciphertexts and partial decryptions exchanged between roles. Every
// encoding is plain big-endian concatenation of the (uncompressed) point
// encodings curve.G1/G2/GT already produce; there is no TLV framing
// because every message type has a statically known length.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/spring-epfl/aid-distribution/config"
	"github.com/spring-epfl/aid-distribution/curve"
	"github.com/spring-epfl/aid-distribution/thbgn"
	"github.com/spring-epfl/aid-distribution/thelgamal"
)

// ErrDeserialization is returned whenever an input buffer's length does
// not match the expected wire size for the type being decoded. Callers
// in package protocol remap this onto protocol.Deserialization.
var ErrDeserialization = errors.New("codec: malformed or truncated input")

const idSize = 4

func putID(id int) []byte {
	buf := make([]byte, idSize)
	binary.BigEndian.PutUint32(buf, uint32(id))
	return buf
}

func getID(data []byte) int {
	return int(binary.BigEndian.Uint32(data))
}

// Ciphertext1Size is the wire length of an encoded thbgn.Ciphertext1.
const Ciphertext1Size = 2*curve.G1Size + 2*curve.G2Size

// EncodeCiphertext1 serializes a level-1 THBGN ciphertext as
// c1 || c2 || c3 || c4.
func EncodeCiphertext1(ct thbgn.Ciphertext1) []byte {
	out := make([]byte, 0, Ciphertext1Size)
	out = append(out, ct.C1.Marshal()...)
	out = append(out, ct.C2.Marshal()...)
	out = append(out, ct.C3.Marshal()...)
	out = append(out, ct.C4.Marshal()...)
	return out
}

// DecodeCiphertext1 parses the wire format produced by EncodeCiphertext1.
func DecodeCiphertext1(data []byte) (thbgn.Ciphertext1, error) {
	if len(data) != Ciphertext1Size {
		return thbgn.Ciphertext1{}, fmt.Errorf("%w: ciphertext1 wants %d bytes, got %d", ErrDeserialization, Ciphertext1Size, len(data))
	}
	off := 0
	c1, err := curve.UnmarshalG1(data[off : off+curve.G1Size])
	if err != nil {
		return thbgn.Ciphertext1{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	off += curve.G1Size
	c2, err := curve.UnmarshalG1(data[off : off+curve.G1Size])
	if err != nil {
		return thbgn.Ciphertext1{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	off += curve.G1Size
	c3, err := curve.UnmarshalG2(data[off : off+curve.G2Size])
	if err != nil {
		return thbgn.Ciphertext1{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	off += curve.G2Size
	c4, err := curve.UnmarshalG2(data[off : off+curve.G2Size])
	if err != nil {
		return thbgn.Ciphertext1{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	return thbgn.Ciphertext1{C1: c1, C2: c2, C3: c3, C4: c4}, nil
}

// Ciphertext1BatchSize is the wire length of config.InfoLen concatenated
// level-1 ciphertexts, the Recipient->Helper inner payload of spec.md
// §4.3.
const Ciphertext1BatchSize = config.InfoLen * Ciphertext1Size

// EncodeCiphertext1Batch serializes exactly config.InfoLen ciphertexts.
func EncodeCiphertext1Batch(cts []thbgn.Ciphertext1) ([]byte, error) {
	if len(cts) != config.InfoLen {
		return nil, fmt.Errorf("%w: batch wants %d ciphertexts, got %d", ErrDeserialization, config.InfoLen, len(cts))
	}
	out := make([]byte, 0, Ciphertext1BatchSize)
	for _, ct := range cts {
		out = append(out, EncodeCiphertext1(ct)...)
	}
	return out, nil
}

// DecodeCiphertext1Batch parses the wire format produced by
// EncodeCiphertext1Batch.
func DecodeCiphertext1Batch(data []byte) ([]thbgn.Ciphertext1, error) {
	if len(data) != Ciphertext1BatchSize {
		return nil, fmt.Errorf("%w: batch wants %d bytes, got %d", ErrDeserialization, Ciphertext1BatchSize, len(data))
	}
	out := make([]thbgn.Ciphertext1, config.InfoLen)
	for i := range out {
		ct, err := DecodeCiphertext1(data[i*Ciphertext1Size : (i+1)*Ciphertext1Size])
		if err != nil {
			return nil, err
		}
		out[i] = ct
	}
	return out, nil
}

// CiphertextTSize is the wire length of an encoded thbgn.CiphertextT.
const CiphertextTSize = 4 * curve.GTSize

// EncodeCiphertextT serializes a target-level ciphertext.
func EncodeCiphertextT(ct thbgn.CiphertextT) []byte {
	out := make([]byte, 0, CiphertextTSize)
	out = append(out, ct.C1.Marshal()...)
	out = append(out, ct.C2.Marshal()...)
	out = append(out, ct.C3.Marshal()...)
	out = append(out, ct.C4.Marshal()...)
	return out
}

// DecodeCiphertextT parses the wire format produced by EncodeCiphertextT.
func DecodeCiphertextT(data []byte) (thbgn.CiphertextT, error) {
	if len(data) != CiphertextTSize {
		return thbgn.CiphertextT{}, fmt.Errorf("%w: ciphertextT wants %d bytes, got %d", ErrDeserialization, CiphertextTSize, len(data))
	}
	fields := make([]*curve.GT, 4)
	for i := range fields {
		gt, err := curve.UnmarshalGT(data[i*curve.GTSize : (i+1)*curve.GTSize])
		if err != nil {
			return thbgn.CiphertextT{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
		}
		fields[i] = gt
	}
	return thbgn.CiphertextT{C1: fields[0], C2: fields[1], C3: fields[2], C4: fields[3]}, nil
}

// PartialDecryptionSize is the wire length of a THBGN round-1 partial
// decryption: a 4-byte id followed by four GT elements.
const PartialDecryptionSize = idSize + 4*curve.GTSize

// EncodePartialDecryption serializes a round-1 THBGN partial decryption.
func EncodePartialDecryption(pd thbgn.PartialDecryption) []byte {
	out := make([]byte, 0, PartialDecryptionSize)
	out = append(out, putID(pd.ID)...)
	out = append(out, pd.C1.Marshal()...)
	out = append(out, pd.C2.Marshal()...)
	out = append(out, pd.C3.Marshal()...)
	out = append(out, pd.C4.Marshal()...)
	return out
}

// DecodePartialDecryption parses EncodePartialDecryption's output.
func DecodePartialDecryption(data []byte) (thbgn.PartialDecryption, error) {
	if len(data) != PartialDecryptionSize {
		return thbgn.PartialDecryption{}, fmt.Errorf("%w: partial decryption wants %d bytes, got %d", ErrDeserialization, PartialDecryptionSize, len(data))
	}
	id := getID(data[:idSize])
	rest := data[idSize:]
	fields := make([]*curve.GT, 4)
	for i := range fields {
		gt, err := curve.UnmarshalGT(rest[i*curve.GTSize : (i+1)*curve.GTSize])
		if err != nil {
			return thbgn.PartialDecryption{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
		}
		fields[i] = gt
	}
	return thbgn.PartialDecryption{ID: id, C1: fields[0], C2: fields[1], C3: fields[2], C4: fields[3]}, nil
}

// PartialDecryption2Size is the wire length of a THBGN round-2 partial
// decryption: a 4-byte id followed by two GT elements.
const PartialDecryption2Size = idSize + 2*curve.GTSize

// EncodePartialDecryption2 serializes a round-2 THBGN partial decryption.
func EncodePartialDecryption2(pd thbgn.PartialDecryption2) []byte {
	out := make([]byte, 0, PartialDecryption2Size)
	out = append(out, putID(pd.ID)...)
	out = append(out, pd.S1S2C1.Marshal()...)
	out = append(out, pd.C.Marshal()...)
	return out
}

// DecodePartialDecryption2 parses EncodePartialDecryption2's output.
func DecodePartialDecryption2(data []byte) (thbgn.PartialDecryption2, error) {
	if len(data) != PartialDecryption2Size {
		return thbgn.PartialDecryption2{}, fmt.Errorf("%w: partial decryption 2 wants %d bytes, got %d", ErrDeserialization, PartialDecryption2Size, len(data))
	}
	id := getID(data[:idSize])
	rest := data[idSize:]
	s1s2c1, err := curve.UnmarshalGT(rest[:curve.GTSize])
	if err != nil {
		return thbgn.PartialDecryption2{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	c, err := curve.UnmarshalGT(rest[curve.GTSize : 2*curve.GTSize])
	if err != nil {
		return thbgn.PartialDecryption2{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	return thbgn.PartialDecryption2{ID: id, S1S2C1: s1s2c1, C: c}, nil
}

// ElGamalCiphertextSize is the wire length of an encoded
// thelgamal.Ciphertext.
const ElGamalCiphertextSize = 2 * curve.G1Size

// EncodeElGamalCiphertext serializes a single-level threshold-ElGamal
// ciphertext as c1 || c2.
func EncodeElGamalCiphertext(ct thelgamal.Ciphertext) []byte {
	out := make([]byte, 0, ElGamalCiphertextSize)
	out = append(out, ct.C1.Marshal()...)
	out = append(out, ct.C2.Marshal()...)
	return out
}

// DecodeElGamalCiphertext parses EncodeElGamalCiphertext's output.
func DecodeElGamalCiphertext(data []byte) (thelgamal.Ciphertext, error) {
	if len(data) != ElGamalCiphertextSize {
		return thelgamal.Ciphertext{}, fmt.Errorf("%w: elgamal ciphertext wants %d bytes, got %d", ErrDeserialization, ElGamalCiphertextSize, len(data))
	}
	c1, err := curve.UnmarshalG1(data[:curve.G1Size])
	if err != nil {
		return thelgamal.Ciphertext{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	c2, err := curve.UnmarshalG1(data[curve.G1Size:])
	if err != nil {
		return thelgamal.Ciphertext{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	return thelgamal.Ciphertext{C1: c1, C2: c2}, nil
}

// ElGamalPartialDecryptionSize is the wire length of a committee
// member's single-round ElGamal partial decryption.
const ElGamalPartialDecryptionSize = idSize + curve.G1Size

// EncodeElGamalPartialDecryption serializes a threshold-ElGamal partial
// decryption.
func EncodeElGamalPartialDecryption(pd thelgamal.PartialDecryption) []byte {
	out := make([]byte, 0, ElGamalPartialDecryptionSize)
	out = append(out, putID(pd.ID)...)
	out = append(out, pd.Value.Marshal()...)
	return out
}

// DecodeElGamalPartialDecryption parses
// EncodeElGamalPartialDecryption's output.
func DecodeElGamalPartialDecryption(data []byte) (thelgamal.PartialDecryption, error) {
	if len(data) != ElGamalPartialDecryptionSize {
		return thelgamal.PartialDecryption{}, fmt.Errorf("%w: elgamal partial decryption wants %d bytes, got %d", ErrDeserialization, ElGamalPartialDecryptionSize, len(data))
	}
	id := getID(data[:idSize])
	v, err := curve.UnmarshalG1(data[idSize:])
	if err != nil {
		return thelgamal.PartialDecryption{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	return thelgamal.PartialDecryption{ID: id, Value: v}, nil
}
