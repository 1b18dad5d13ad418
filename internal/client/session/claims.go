package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the user summary the API embeds in the token payload.
type Identity struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Claims is the token payload. The API nests the identity under "data";
// some issuers put username/email at the top level, which Username falls
// back to.
type Claims struct {
	jwt.RegisteredClaims
	Data     Identity `json:"data"`
	Username string   `json:"username,omitempty"`
	Email    string   `json:"email,omitempty"`
}

// Profile returns the identity with top-level fallbacks applied.
func (c *Claims) Profile() Identity {
	id := c.Data
	if id.Username == "" {
		id.Username = c.Username
	}
	if id.Email == "" {
		id.Email = c.Email
	}
	if id.ID == "" {
		id.ID = c.Subject
	}
	return id
}

var parser = jwt.NewParser()

// Decode reads the payload segment of token. Neither the signature nor the
// header is checked, so a header without a known alg still decodes.
func Decode(token Credential) (*Claims, error) {
	parts := strings.Split(string(token), ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: token has %d segments", ErrDecode, len(parts))
	}
	raw, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	claims := &Claims{}
	if err := json.Unmarshal(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return claims, nil
}
