package console

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/s2k/videogame-store/internal/core/domain"
)

// describe turns an error from the services into a one-line message for the
// terminal. Unexpected errors are logged with their cause.
func describe(err error, log zerolog.Logger) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "[X] " + sentence(inputDetail(err))
	case errors.Is(err, domain.ErrPermissionDenied):
		return "[X] You do not have permission to do that."
	case errors.Is(err, domain.ErrOutOfStock):
		return "[X] Checkout failed: game is out of stock!"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "[X] Incorrect username or password."
	case errors.Is(err, domain.ErrAccountNotFound):
		return "[X] Account not found."
	case errors.Is(err, domain.ErrUsernameTaken):
		return "[X] Username already in use."
	case errors.Is(err, domain.ErrNotLoggedIn):
		return "[X] You are not logged in."
	case errors.Is(err, domain.ErrNotSessionOwner):
		return "[X] That account is not the one logged in."
	case errors.Is(err, domain.ErrGameNotFound):
		return "[X] Game not found."
	case errors.Is(err, domain.ErrCartEmpty):
		return "[X] Cart is empty."
	}

	log.Error().Err(err).Msg("unhandled error")
	return "[X] Error: " + err.Error()
}

// inputDetail drops everything up to and including the "invalid input: " marker.
func inputDetail(err error) string {
	msg := err.Error()
	marker := domain.ErrInvalidInput.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

func sentence(s string) string {
	if s == "" {
		return "Invalid input."
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") {
		s += "."
	}
	return s
}
