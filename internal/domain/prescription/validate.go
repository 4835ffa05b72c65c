package prescription

import (
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
)

const idPrefix = "RX-"

func IsValidPrescriptionID(id string) bool {
	return strings.HasPrefix(id, idPrefix)
}

func HasMedications(p *Prescription) bool {
	return p != nil && len(p.Medications) > 0
}

// IsValidExpiryDate requires the expiry date to fall strictly after today.
func IsValidExpiryDate(expiry, now time.Time) bool {
	if expiry.IsZero() {
		return false
	}
	return clock.Day(expiry).After(clock.Day(now))
}
