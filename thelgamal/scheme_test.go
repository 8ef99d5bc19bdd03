package thelgamal

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func TestEncryptDecryptRoundtrip(t *testing.T) {
	pp, err := Setup(rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	sk, pk, err := KeyGen(rand.Reader, pp)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	msg := big.NewInt(17)
	ct, err := Encrypt(rand.Reader, pp, pk, msg)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	pt, err := Decrypt(sk, ct, 64)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if pt.Cmp(msg) != 0 {
		t.Errorf("expected %d; got %d", msg, pt)
	}
}

func TestAdditiveHomomorphism(t *testing.T) {
	pp, err := Setup(rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	sk, pk, err := KeyGen(rand.Reader, pp)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	ct1, err := Encrypt(rand.Reader, pp, pk, big.NewInt(4))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	ct2, err := Encrypt(rand.Reader, pp, pk, big.NewInt(9))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	sum := Add(ct1, ct2)
	pt, err := Decrypt(sk, sum, 64)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if pt.Cmp(big.NewInt(13)) != 0 {
		t.Errorf("expected 13; got %d", pt)
	}
}

// TestTwoPartyHbCAggregate is a scaled-down version of scenario 2 of
// spec.md §8: a fold of many 1-encryptions, decrypted via threshold.
func TestTwoPartyHbCAggregate(t *testing.T) {
	pp, err := Setup(rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	sk, pk, err := KeyGen(rand.Reader, pp)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	const numRecipients = 50
	var sum Ciphertext
	for i := 0; i < numRecipients; i++ {
		ct, err := Encrypt(rand.Reader, pp, pk, big.NewInt(1))
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		if i == 0 {
			sum = ct
		} else {
			sum = Add(sum, ct)
		}
	}

	shares, err := ShareSK(rand.Reader, sk, 3, 5)
	if err != nil {
		t.Fatalf("ShareSK: %v", err)
	}

	pdecs := make([]PartialDecryption, 0, 3)
	for _, s := range shares[:3] {
		pdecs = append(pdecs, PartialDecrypt(s, sum))
	}

	pt, err := FinalDecrypt(sum, pdecs, numRecipients+1)
	if err != nil {
		t.Fatalf("FinalDecrypt: %v", err)
	}
	if pt.Cmp(big.NewInt(numRecipients)) != 0 {
		t.Errorf("expected %d; got %d", numRecipients, pt)
	}
}

func TestSubsetIndependence(t *testing.T) {
	pp, err := Setup(rand.Reader)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	sk, pk, err := KeyGen(rand.Reader, pp)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	ct, err := Encrypt(rand.Reader, pp, pk, big.NewInt(6))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	shares, err := ShareSK(rand.Reader, sk, 3, 5)
	if err != nil {
		t.Fatalf("ShareSK: %v", err)
	}

	subsets := [][]SecretKeyShare{
		{shares[0], shares[1], shares[2]},
		{shares[1], shares[2], shares[3]},
		{shares[2], shares[3], shares[4]},
	}

	for _, subset := range subsets {
		pdecs := make([]PartialDecryption, len(subset))
		for i, s := range subset {
			pdecs[i] = PartialDecrypt(s, ct)
		}
		pt, err := FinalDecrypt(ct, pdecs, 16)
		if err != nil {
			t.Fatalf("FinalDecrypt: %v", err)
		}
		if pt.Cmp(big.NewInt(6)) != 0 {
			t.Errorf("expected 6; got %d", pt)
		}
	}
}
