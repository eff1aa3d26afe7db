// Package token implements the bearer token format:
//
//	token_<issuedAtEpochMillis>:<base64(email)>
//
// Tokens carry no signature: integrity relies on the expiry window and on the
// credential store being consulted on every validation. Anyone who knows a
// registered email can forge a token. This is a documented weakness of the
// scheme, kept for wire compatibility, not a property to silently fix.
package token

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

const prefix = "token_"

// ErrMalformed indicates the token does not match the expected format.
var ErrMalformed = errors.New("invalid token format")

// Encode builds a token for the given email issued at the given time.
func Encode(email string, issuedAt time.Time) string {
	millis := strconv.FormatInt(issuedAt.UnixMilli(), 10)
	encoded := base64.StdEncoding.EncodeToString([]byte(email))
	return prefix + millis + ":" + encoded
}

// Decode extracts the issue time and email from a token. It fails with
// ErrMalformed when the prefix is absent, the remainder does not split on ":"
// into exactly two parts, the millis are not an integer, or the email is not
// valid base64.
func Decode(tok string) (issuedAt time.Time, email string, err error) {
	if !strings.HasPrefix(tok, prefix) {
		return time.Time{}, "", ErrMalformed
	}
	parts := strings.Split(tok[len(prefix):], ":")
	if len(parts) != 2 {
		return time.Time{}, "", ErrMalformed
	}
	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, "", ErrMalformed
	}
	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, "", ErrMalformed
	}
	return time.UnixMilli(millis).UTC(), string(raw), nil
}
