package doctor

import (
	"regexp"
	"strings"
)

var licensePattern = regexp.MustCompile(`^[A-Z]{2}\d{6}$`)

// IsValidLicenseNumber checks the two-letter, six-digit license format, e.g. AB123456.
func IsValidLicenseNumber(license string) bool {
	return licensePattern.MatchString(license)
}

func IsValidSpecialization(specialization string) bool {
	return strings.TrimSpace(specialization) != ""
}
