package session

import (
	"bytes"
	"errors"
	"testing"
)

var signedTestKey = []byte("0123456789abcdef0123456789abcdef")

func newSignedTestCodec(t *testing.T) *SignedCodec {
	t.Helper()

	codec, err := NewSignedCodec(signedTestKey)
	if err != nil {
		t.Fatalf("NewSignedCodec failed: %v", err)
	}
	return codec
}

func TestSignedCodecRoundTrip(t *testing.T) {
	codec := newSignedTestCodec(t)
	want := testSession()

	data, err := codec.Encode(want)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := codec.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestSignedCodecRejectsTampering(t *testing.T) {
	codec := newSignedTestCodec(t)

	data, err := codec.Encode(testSession())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Flip a byte inside the payload segment.
	parts := bytes.SplitN(data, []byte("."), 3)
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", data)
	}
	payload := parts[1]
	payload[len(payload)/2] ^= 0x01
	tampered := bytes.Join(parts, []byte("."))

	if _, err := codec.Decode(tampered); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord for tampered record, got %v", err)
	}
}

func TestSignedCodecRejectsForeignKey(t *testing.T) {
	codec := newSignedTestCodec(t)

	other, err := NewSignedCodec([]byte("another-key-entirely-0123456789a"))
	if err != nil {
		t.Fatalf("NewSignedCodec failed: %v", err)
	}

	data, err := other.Encode(testSession())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if _, err := codec.Decode(data); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord for foreign key, got %v", err)
	}
}

func TestSignedCodecRejectsPlainJSON(t *testing.T) {
	codec := newSignedTestCodec(t)

	plain, err := JSONCodec{}.Encode(testSession())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if _, err := codec.Decode(plain); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord for unsigned record, got %v", err)
	}
}

func TestNewSignedCodecRequiresKey(t *testing.T) {
	if _, err := NewSignedCodec(nil); err == nil {
		t.Fatal("expected error for empty key")
	}

	key := []byte("secret")
	codec, err := NewSignedCodec(key)
	if err != nil {
		t.Fatalf("NewSignedCodec failed: %v", err)
	}

	// The codec must hold its own copy of the key.
	key[0] = 'X'
	data, err := codec.Encode(testSession())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := codec.Decode(data); err != nil {
		t.Fatalf("Decode failed after caller mutated key slice: %v", err)
	}
}
