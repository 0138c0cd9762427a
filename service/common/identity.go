package common

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
)

const IdentityLength = 32

// Identity is a 32 byte account or authority key, rendered as base58.
type Identity [IdentityLength]byte

var EmptyIdentity Identity

func (a Identity) IsEmpty() bool {
	return a == EmptyIdentity
}

func (a Identity) String() string {
	return base58.Encode(a[:])
}

func (a Identity) Bytes() []byte {
	return a[:]
}

func (a Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Identity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := IdentityFromString(s)
	if err != nil {
		return err
	}
	*a = id
	return nil
}

func (Identity) GormDataType() string {
	return "bytes"
}

func (a Identity) Value() (driver.Value, error) {
	return a.Bytes(), nil
}

func (a *Identity) Scan(value interface{}) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal Identity value: %v", value)
	}
	id, err := IdentityFromBytes(b)
	if err != nil {
		return err
	}
	*a = id
	return nil
}

func IdentityFromBytes(b []byte) (Identity, error) {
	if len(b) != IdentityLength {
		return Identity{}, fmt.Errorf("identity must be %d bytes, got %d", IdentityLength, len(b))
	}
	var id Identity
	copy(id[:], b)
	return id, nil
}

// IdentityFromString parses a base58 encoded identity.
func IdentityFromString(s string) (Identity, error) {
	if s == "" {
		return Identity{}, fmt.Errorf("empty identity")
	}
	b, err := base58.Decode(s)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid base58 identity %q: %w", s, err)
	}
	return IdentityFromBytes(b)
}

// MustIdentityFromString is IdentityFromString for constants and tests.
func MustIdentityFromString(s string) Identity {
	id, err := IdentityFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}
