package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptRecord is returned by a [Codec] when a persisted value cannot be
// decoded into a valid [Session]. The store treats it as "no session" and
// clears the entry; it never reaches engine callers.
var ErrCorruptRecord = errors.New("corrupt persisted session record")

// Codec defines a public type used by clientcore APIs.
//
// Codec instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Codec interface {
	Encode(sess *Session) ([]byte, error)
	Decode(data []byte) (*Session, error)
}

type sessionRecord struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

func recordFromSession(sess *Session) (sessionRecord, error) {
	if sess == nil {
		return sessionRecord{}, errors.New("cannot encode nil session")
	}
	if sess.ID == "" || sess.Email == "" {
		return sessionRecord{}, errors.New("session id and email are required")
	}
	if !sess.Role.Valid() {
		return sessionRecord{}, fmt.Errorf("cannot encode invalid role %d", uint8(sess.Role))
	}

	return sessionRecord{
		ID:          sess.ID,
		Email:       sess.Email,
		DisplayName: sess.DisplayName,
		Role:        sess.Role,
		CreatedAt:   sess.CreatedAt,
	}, nil
}

func (r sessionRecord) session() (*Session, error) {
	if r.ID == "" || r.Email == "" {
		return nil, fmt.Errorf("%w: missing id or email", ErrCorruptRecord)
	}
	if !r.Role.Valid() {
		return nil, fmt.Errorf("%w: role out of range", ErrCorruptRecord)
	}

	return &Session{
		ID:          r.ID,
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Role:        r.Role,
		CreatedAt:   r.CreatedAt,
	}, nil
}

// JSONCodec is the default [Codec]: one JSON object per persisted session.
type JSONCodec struct{}

// Encode describes the encode operation and its observable behavior.
func (JSONCodec) Encode(sess *Session) ([]byte, error) {
	record, err := recordFromSession(sess)
	if err != nil {
		return nil, err
	}
	return json.Marshal(record)
}

// Decode describes the decode operation and its observable behavior.
func (JSONCodec) Decode(data []byte) (*Session, error) {
	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return record.session()
}
