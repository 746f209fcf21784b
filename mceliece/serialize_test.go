package mceliece

import (
	"bytes"
	"testing"

	pkc "github.com/SDarius22/PKC"
	"github.com/SDarius22/PKC/core"
	"github.com/SDarius22/PKC/gf2"
)

func TestPackUnpackBits(t *testing.T) {
	bits := []byte{1, 0, 1, 1, 0, 0, 0, 1, 1, 0, 1}
	packed := packBits(bits)
	if len(packed) != 2 {
		t.Fatalf("packed length = %d, want 2", len(packed))
	}
	got := unpackBits(packed, len(bits))
	if !bytes.Equal(got, bits) {
		t.Errorf("unpackBits = %v, want %v", got, bits)
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	kp, err := GenerateKeys(core.Toy10Params)
	if err != nil {
		t.Fatalf("GenerateKeys failed: %v", err)
	}

	data := SerializePublicKey(&kp.PublicKey)
	pk, err := DeserializePublicKey(data)
	if err != nil {
		t.Fatalf("DeserializePublicKey failed: %v", err)
	}
	if !gf2.Equal(pk.GHat, kp.PublicKey.GHat) {
		t.Error("G_hat changed in round trip")
	}
	if pk.T != kp.PublicKey.T {
		t.Errorf("t = %d, want %d", pk.T, kp.PublicKey.T)
	}
	if !bytes.Equal(SerializePublicKey(pk), data) {
		t.Error("re-serialization differs")
	}

	// The deserialized key must be usable for encryption.
	if _, err := Encrypt(pk, []byte{1, 0, 1, 1, 0}); err != nil {
		t.Errorf("Encrypt with deserialized key failed: %v", err)
	}
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	kp, err := GenerateKeys(core.Toy10Params)
	if err != nil {
		t.Fatalf("GenerateKeys failed: %v", err)
	}

	data := SerializePrivateKey(&kp.PrivateKey)
	sk, err := DeserializePrivateKey(data)
	if err != nil {
		t.Fatalf("DeserializePrivateKey failed: %v", err)
	}
	if !gf2.Equal(sk.S, kp.PrivateKey.S) || !gf2.Equal(sk.P, kp.PrivateKey.P) || !gf2.Equal(sk.G, kp.PrivateKey.G) {
		t.Error("private key matrices changed in round trip")
	}
	if sk.T != kp.PrivateKey.T {
		t.Errorf("t = %d, want %d", sk.T, kp.PrivateKey.T)
	}
}

func TestDeserializePublicKeyErrors(t *testing.T) {
	kp, err := GenerateKeys(core.Toy10Params)
	if err != nil {
		t.Fatalf("GenerateKeys failed: %v", err)
	}
	good := SerializePublicKey(&kp.PublicKey)

	cases := map[string][]byte{
		"empty":       {},
		"header only": good[:4],
		"truncated":   good[:len(good)-3],
		"zero rows":   {0, 0, 0, 0, 1, 0, 0, 0},
		"huge rows":   {0xff, 0xff, 0xff, 0xff, 1, 0, 0, 0},
	}
	for name, data := range cases {
		if _, err := DeserializePublicKey(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	// k > n has no valid key shape.
	tall := pkc.NewBinaryMatrix(6, 5)
	data := appendUint32(appendMatrix(nil, tall), 1)
	if _, err := DeserializePublicKey(data); err == nil {
		t.Error("k > n should be rejected")
	}

	// Error weight beyond the code length.
	bad := appendUint32(appendMatrix(nil, kp.PublicKey.GHat), core.Toy10Params.N+1)
	if _, err := DeserializePublicKey(bad); err == nil {
		t.Error("t > n should be rejected")
	}
}

func TestDeserializePrivateKeyErrors(t *testing.T) {
	kp, err := GenerateKeys(core.Toy10Params)
	if err != nil {
		t.Fatalf("GenerateKeys failed: %v", err)
	}
	good := SerializePrivateKey(&kp.PrivateKey)

	if _, err := DeserializePrivateKey(good[:len(good)-2]); err == nil {
		t.Error("truncated data: expected error")
	}
	if _, err := DeserializePrivateKey(nil); err == nil {
		t.Error("empty data: expected error")
	}

	// Mismatched dimensions: S is 4x4 but G has 5 rows.
	out := appendMatrix(nil, gf2.Identity(4))
	out = appendMatrix(out, gf2.Identity(10))
	out = appendMatrix(out, kp.PrivateKey.G)
	out = appendUint32(out, 2)
	if _, err := DeserializePrivateKey(out); err == nil {
		t.Error("inconsistent S dimension should be rejected")
	}
}
