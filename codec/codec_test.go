package codec

import (
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	"github.com/spring-epfl/aid-distribution/thbgn"
	"github.com/spring-epfl/aid-distribution/thelgamal"
)

func TestCiphertext1Roundtrip(t *testing.T) {
	pp, err := thbgn.ParamGen(rand.Reader)
	if err != nil {
		t.Fatalf("ParamGen: %v", err)
	}
	_, pk, err := thbgn.KeyGen(rand.Reader, pp)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	ct, err := thbgn.Encrypt(rand.Reader, pp, pk, big.NewInt(3))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	data := EncodeCiphertext1(ct)
	if len(data) != Ciphertext1Size {
		t.Fatalf("expected %d bytes, got %d", Ciphertext1Size, len(data))
	}
	decoded, err := DecodeCiphertext1(data)
	if err != nil {
		t.Fatalf("DecodeCiphertext1: %v", err)
	}
	if !decoded.C1.Equal(ct.C1) || !decoded.C2.Equal(ct.C2) || !decoded.C3.Equal(ct.C3) || !decoded.C4.Equal(ct.C4) {
		t.Errorf("roundtrip mismatch")
	}
}

func TestCiphertext1TruncatedRejected(t *testing.T) {
	_, err := DecodeCiphertext1(make([]byte, Ciphertext1Size-1))
	if !errors.Is(err, ErrDeserialization) {
		t.Errorf("expected ErrDeserialization, got %v", err)
	}
}

func TestCiphertext1BatchRoundtrip(t *testing.T) {
	pp, err := thbgn.ParamGen(rand.Reader)
	if err != nil {
		t.Fatalf("ParamGen: %v", err)
	}
	_, pk, err := thbgn.KeyGen(rand.Reader, pp)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	cts := make([]thbgn.Ciphertext1, 2)
	for i := range cts {
		ct, err := thbgn.Encrypt(rand.Reader, pp, pk, big.NewInt(int64(i)))
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		cts[i] = ct
	}

	data, err := EncodeCiphertext1Batch(cts)
	if err != nil {
		t.Fatalf("EncodeCiphertext1Batch: %v", err)
	}
	decoded, err := DecodeCiphertext1Batch(data)
	if err != nil {
		t.Fatalf("DecodeCiphertext1Batch: %v", err)
	}
	for i := range cts {
		if !decoded[i].C1.Equal(cts[i].C1) {
			t.Errorf("batch element %d mismatch", i)
		}
	}
}

func TestCiphertext1BatchWrongCountRejected(t *testing.T) {
	_, err := EncodeCiphertext1Batch(nil)
	if !errors.Is(err, ErrDeserialization) {
		t.Errorf("expected ErrDeserialization, got %v", err)
	}
}

func TestCiphertextTRoundtrip(t *testing.T) {
	pp, err := thbgn.ParamGen(rand.Reader)
	if err != nil {
		t.Fatalf("ParamGen: %v", err)
	}
	_, pk, err := thbgn.KeyGen(rand.Reader, pp)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	ct0, err := thbgn.Encrypt(rand.Reader, pp, pk, big.NewInt(2))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	ct1, err := thbgn.Encrypt(rand.Reader, pp, pk, big.NewInt(3))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	ctT := thbgn.Mul(ct0, ct1)

	data := EncodeCiphertextT(ctT)
	if len(data) != CiphertextTSize {
		t.Fatalf("expected %d bytes, got %d", CiphertextTSize, len(data))
	}
	decoded, err := DecodeCiphertextT(data)
	if err != nil {
		t.Fatalf("DecodeCiphertextT: %v", err)
	}
	if !decoded.C1.Equal(ctT.C1) || !decoded.C4.Equal(ctT.C4) {
		t.Errorf("roundtrip mismatch")
	}
}

func TestPartialDecryptionRoundtrip(t *testing.T) {
	pp, err := thbgn.ParamGen(rand.Reader)
	if err != nil {
		t.Fatalf("ParamGen: %v", err)
	}
	sk, pk, err := thbgn.KeyGen(rand.Reader, pp)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	ct0, _ := thbgn.Encrypt(rand.Reader, pp, pk, big.NewInt(2))
	ct1, _ := thbgn.Encrypt(rand.Reader, pp, pk, big.NewInt(3))
	ctT := thbgn.Mul(ct0, ct1)

	shares, err := thbgn.ShareSK(rand.Reader, sk, 3, 5)
	if err != nil {
		t.Fatalf("ShareSK: %v", err)
	}
	pd := thbgn.PartialDecrypt(shares[0], ctT)

	data := EncodePartialDecryption(pd)
	if len(data) != PartialDecryptionSize {
		t.Fatalf("expected %d bytes, got %d", PartialDecryptionSize, len(data))
	}
	decoded, err := DecodePartialDecryption(data)
	if err != nil {
		t.Fatalf("DecodePartialDecryption: %v", err)
	}
	if decoded.ID != pd.ID || !decoded.C4.Equal(pd.C4) {
		t.Errorf("roundtrip mismatch")
	}
}

func TestElGamalCiphertextRoundtrip(t *testing.T) {
	pp, err := thelgamal.Setup(rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	_, pk, err := thelgamal.KeyGen(rand.Reader, pp)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	ct, err := thelgamal.Encrypt(rand.Reader, pp, pk, big.NewInt(4))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	data := EncodeElGamalCiphertext(ct)
	if len(data) != ElGamalCiphertextSize {
		t.Fatalf("expected %d bytes, got %d", ElGamalCiphertextSize, len(data))
	}
	decoded, err := DecodeElGamalCiphertext(data)
	if err != nil {
		t.Fatalf("DecodeElGamalCiphertext: %v", err)
	}
	if !decoded.C1.Equal(ct.C1) || !decoded.C2.Equal(ct.C2) {
		t.Errorf("roundtrip mismatch")
	}
}

func TestElGamalPartialDecryptionRoundtrip(t *testing.T) {
	pp, err := thelgamal.Setup(rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	sk, pk, err := thelgamal.KeyGen(rand.Reader, pp)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	ct, err := thelgamal.Encrypt(rand.Reader, pp, pk, big.NewInt(4))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	shares, err := thelgamal.ShareSK(rand.Reader, sk, 3, 5)
	if err != nil {
		t.Fatalf("ShareSK: %v", err)
	}
	pd := thelgamal.PartialDecrypt(shares[0], ct)

	data := EncodeElGamalPartialDecryption(pd)
	decoded, err := DecodeElGamalPartialDecryption(data)
	if err != nil {
		t.Fatalf("DecodeElGamalPartialDecryption: %v", err)
	}
	if decoded.ID != pd.ID || !decoded.Value.Equal(pd.Value) {
		t.Errorf("roundtrip mismatch")
	}
}
