package patient

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\d{10,15}$`)

// IsValidEmail only requires an "@" and a ".". Callers rely on this loose contract.
func IsValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// IsValidPhoneNumber accepts 10 to 15 decimal digits and nothing else.
func IsValidPhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}

func IsValidPatientID(id string) bool {
	return strings.TrimSpace(id) != ""
}
