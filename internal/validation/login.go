package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Login field messages. The UI renders these next to their field, so each
// validator returns at most one message, most actionable first.
const (
	MsgUsernameRequired = "Username is required"
	MsgUsernameTooShort = "Username must be at least 3 characters"
	MsgUsernameTooLong  = "Username must not exceed 50 characters"
	MsgUsernameCharset  = "Username may only contain letters, numbers, dots, dashes and underscores"

	MsgPasswordRequired    = "Password is required"
	MsgPasswordTooShort    = "Password must be at least 6 characters"
	MsgPasswordTooLong     = "Password must not exceed 100 characters"
	MsgPasswordNeedsDigit  = "Password must contain at least one digit"
	MsgPasswordNeedsLetter = "Password must contain at least one letter"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]+$`)

// ValidateUsername checks a login name against the account naming rules.
// An empty string means the value is valid. Rules are checked in order and
// the first failing rule wins.
func ValidateUsername(username string) string {
	if strings.TrimSpace(username) == "" {
		return MsgUsernameRequired
	}
	length := utf8.RuneCountInString(username)
	if length < 3 {
		return MsgUsernameTooShort
	}
	if length > 50 {
		return MsgUsernameTooLong
	}
	if !usernamePattern.MatchString(username) {
		return MsgUsernameCharset
	}
	return ""
}

// ValidatePassword checks a password against the complexity rules. An empty
// string means the value is valid. Structural checks precede content checks
// so the most actionable message surfaces first.
func ValidatePassword(password string) string {
	if strings.TrimSpace(password) == "" {
		return MsgPasswordRequired
	}
	length := utf8.RuneCountInString(password)
	if length < 6 {
		return MsgPasswordTooShort
	}
	if length > 100 {
		return MsgPasswordTooLong
	}
	hasDigit := false
	hasLetter := false
	for _, char := range password {
		switch {
		case unicode.IsDigit(char):
			hasDigit = true
		case unicode.IsLetter(char):
			hasLetter = true
		}
	}
	if !hasDigit {
		return MsgPasswordNeedsDigit
	}
	if !hasLetter {
		return MsgPasswordNeedsLetter
	}
	return ""
}
