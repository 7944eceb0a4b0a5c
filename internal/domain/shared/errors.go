package shared

import (
	"errors"
	"strings"
)

// UserMessager is implemented by errors that carry a message meant for the
// end user, separate from their Error() text
type UserMessager interface {
	UserMessage() string
}

// MessageOf returns the text to show the user for err. It prefers a
// UserMessager anywhere in the chain, then err.Error(), then fallback.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var um UserMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

// UserMessageOr returns the message of a UserMessager in err's chain, or
// fallback for any other error
func UserMessageOr(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var um UserMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return fallback
}
