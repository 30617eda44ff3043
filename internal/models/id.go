package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID is an opaque record identifier.
type ID string

const temporaryPrefix = "local-"

// NewTemporaryID returns a client-side identifier for a record the server
// has not seen yet. It embeds a UUIDv7, which is time-ordered and unique,
// and carries a prefix no server identifier uses.
func NewTemporaryID() ID {
	u, err := uuid.NewV7()
	if err != nil {
		u = uuid.New()
	}
	return ID(temporaryPrefix + u.String())
}

// IsTemporary reports whether id was minted by NewTemporaryID.
func (id ID) IsTemporary() bool {
	return strings.HasPrefix(string(id), temporaryPrefix)
}

func (id ID) String() string { return string(id) }

// MarshalJSON always writes a JSON string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts JSON strings and numbers. Numbers are kept in their
// literal form, so 42 and "42" decode to the same ID.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}
