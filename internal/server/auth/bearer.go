package auth

import (
	"strings"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
)

// TokenFromHeader extracts the token from an Authorization value. Both the
// bare token and the "Bearer <token>" form are accepted.
func TokenFromHeader(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", common.ErrMissingToken
	}

	prefix := strings.TrimSpace(common.BearerPrefix)
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) && header[len(prefix)] == ' ' {
		header = strings.TrimSpace(header[len(prefix):])
	} else if strings.EqualFold(header, prefix) {
		return "", common.ErrMissingToken
	}

	if header == "" {
		return "", common.ErrMissingToken
	}
	if strings.ContainsAny(header, " \t") {
		return "", common.ErrInvalidToken
	}
	return header, nil
}
