package service

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/makrand12345/StoreDoc-Backend/pkg/validator"
)

const (
	minNameLength     = 20
	maxNameLength     = 60
	maxAddressLength  = 400
	minPasswordLength = 8
	maxPasswordLength = 16
	maxEmailLength    = 255
	passwordSpecials  = "!@#$%^&*"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var registerRulesOnce sync.Once

// registerRules installs the registration rules. They are not tagged
// required, so an empty value is checked like any other.
func registerRules() {
	registerRulesOnce.Do(func() {
		rules := []struct {
			tag     string
			fn      func(string) bool
			message string
		}{
			{"personname", validName, "Name must be between 20 and 60 characters."},
			{"postaddress", validAddress, "Address must not exceed 400 characters."},
			{"storepassword", validPassword, "Password must be 8-16 chars, include 1 Uppercase and 1 Special char."},
			{"emailshape", validEmail, "Invalid email format."},
		}
		for _, r := range rules {
			if err := validator.RegisterRule(r.tag, r.fn, r.message); err != nil {
				panic(err)
			}
		}
	})
}

func validName(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minNameLength && n <= maxNameLength
}

func validAddress(s string) bool {
	return utf8.RuneCountInString(s) <= maxAddressLength
}

func validPassword(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < minPasswordLength || n > maxPasswordLength {
		return false
	}
	var upper, special bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && special
}

// validEmail also caps the length at the width of the email columns.
func validEmail(s string) bool {
	return utf8.RuneCountInString(s) <= maxEmailLength && emailPattern.MatchString(s)
}

// validate runs the struct rules, making sure custom rules are installed.
func validate(v any) error {
	registerRules()
	return validator.Validate(v)
}
