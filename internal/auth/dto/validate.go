package dto

import (
	"net/mail"
	"strings"
)

// validEmail accepts a bare RFC 5322 address with a dotted domain part.
// Display names ("A <a@b.com>") are rejected.
func validEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}
