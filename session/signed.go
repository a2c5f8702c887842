package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignedCodec persists the session record as an HS256-signed token. A record
// whose signature does not verify is corrupt: it decodes to no session, same
// as malformed JSON under [JSONCodec]. The key only authenticates the stored
// record against tampering; it does not make the record secret.
type SignedCodec struct {
	key []byte
}

// NewSignedCodec creates a [SignedCodec] with the given HMAC key.
func NewSignedCodec(key []byte) (*SignedCodec, error) {
	if len(key) == 0 {
		return nil, errors.New("signed codec requires a non-empty key")
	}
	out := make([]byte, len(key))
	copy(out, key)
	return &SignedCodec{key: out}, nil
}

type signedRecordClaims struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// Encode describes the encode operation and its observable behavior.
func (c *SignedCodec) Encode(sess *Session) ([]byte, error) {
	record, err := recordFromSession(sess)
	if err != nil {
		return nil, err
	}

	claims := signedRecordClaims{
		DisplayName: record.DisplayName,
		Role:        record.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       record.ID,
			Subject:  record.Email,
			IssuedAt: jwt.NewNumericDate(time.Unix(record.CreatedAt, 0)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return nil, err
	}
	return []byte(token), nil
}

// Decode describes the decode operation and its observable behavior.
func (c *SignedCodec) Decode(data []byte) (*Session, error) {
	var claims signedRecordClaims

	_, err := jwt.ParseWithClaims(
		string(data),
		&claims,
		func(*jwt.Token) (interface{}, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	record := sessionRecord{
		ID:          claims.ID,
		Email:       claims.Subject,
		DisplayName: claims.DisplayName,
		Role:        role,
	}
	if claims.IssuedAt != nil {
		record.CreatedAt = claims.IssuedAt.Unix()
	}

	return record.session()
}
