package admin

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ID identifies a record. Seed documents carry numeric ids for most
// collections and UUID strings for categories; both decode into ID.
type ID string

// String returns the raw identifier.
func (id ID) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool { return id == "" }

// ParseID converts form and path values into an ID.
func ParseID(raw string) ID {
	return ID(strings.TrimSpace(raw))
}

func (id ID) numeric() (int64, bool) {
	if id == "" || (len(id) > 1 && id[0] == '0') {
		return 0, false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MarshalJSON keeps numeric ids numeric so exports round-trip with the seed.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, ok := id.numeric(); ok {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (id ID) MarshalYAML() (any, error) {
	if n, ok := id.numeric(); ok {
		return n, nil
	}
	return string(id), nil
}

// UnmarshalYAML reads scalar ids of any kind.
func (id *ID) UnmarshalYAML(value *yaml.Node) error {
	*id = ID(value.Value)
	return nil
}

// IDGenerator produces a new identifier that is not already taken.
type IDGenerator func(now time.Time, taken func(ID) bool) ID

// TimestampIDs issues millisecond timestamps, bumping until free.
func TimestampIDs() IDGenerator {
	return func(now time.Time, taken func(ID) bool) ID {
		n := now.UnixMilli()
		for {
			candidate := ID(strconv.FormatInt(n, 10))
			if taken == nil || !taken(candidate) {
				return candidate
			}
			n++
		}
	}
}

// UUIDs issues random v4 identifiers.
func UUIDs() IDGenerator {
	return func(_ time.Time, taken func(ID) bool) ID {
		for {
			candidate := ID(uuid.NewString())
			if taken == nil || !taken(candidate) {
				return candidate
			}
		}
	}
}
