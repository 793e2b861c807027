package user

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrMissingUserID is returned when a profile object carries no usable user_id.
var ErrMissingUserID = errors.New("profile has no user_id")

// Claims represents the authenticated caller extracted from a bearer token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// Profile is a user profile owned by the external user-detail service.
// The object is kept verbatim so every field the service returns is passed
// through to clients; UserID is the normalized identifier used for matching.
type Profile struct {
	UserID string
	fields map[string]any
}

// NewProfile builds a profile from its identifier and additional fields.
func NewProfile(userID string, fields map[string]any) Profile {
	all := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		all[k] = v
	}
	all["user_id"] = userID
	return Profile{UserID: userID, fields: all}
}

// Field returns a single profile field.
func (p Profile) Field(name string) (any, bool) {
	v, ok := p.fields[name]
	return v, ok
}

// UnmarshalJSON decodes a profile object. user_id may be a JSON string or number.
func (p *Profile) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return err
	}
	if fields == nil {
		return ErrMissingUserID
	}

	switch id := fields["user_id"].(type) {
	case string:
		p.UserID = id
	case json.Number:
		p.UserID = id.String()
	default:
		return ErrMissingUserID
	}
	p.fields = fields
	return nil
}

// MarshalJSON encodes the profile exactly as it was received.
func (p Profile) MarshalJSON() ([]byte, error) {
	if p.fields == nil {
		return json.Marshal(map[string]any{"user_id": p.UserID})
	}
	return json.Marshal(p.fields)
}
