package listing

import "fmt"

// ClinicsFoundLabel renders the clinics listing counter.
func ClinicsFoundLabel(n int) string {
	return fmt.Sprintf("%d Clinics Found", n)
}

// DoctorsAvailableLabel renders the doctors counter shown on the clinics
// landing section.
func DoctorsAvailableLabel(n int) string {
	return fmt.Sprintf("%d doctors available", n)
}
