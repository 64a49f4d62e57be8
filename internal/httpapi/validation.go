package httpapi

import (
	"strings"

	"github.com/google/uuid"
)

func validEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domainPart := s[at+1:]
	if !strings.Contains(domainPart, ".") || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	return true
}

// validID rejects malformed ids before they reach the store, so a bad path
// segment is a 400 rather than a database error.
func validID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
