// Package validate provides shared validation functions for form input.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
)

// Required validates a value is non-empty after trimming whitespace.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// Email validates a single bare address such as "name@example.com".
func Email(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("email is required")
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return fmt.Errorf("%q is not a valid email address", value)
	}
	if !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
		return fmt.Errorf("%q is missing a domain", value)
	}
	return nil
}
