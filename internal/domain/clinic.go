package domain

// ClinicStatus is the operational status of a veterinary clinic.
type ClinicStatus int

const (
	ClinicInactive ClinicStatus = 0
	ClinicActive   ClinicStatus = 1
)

// String returns the lower-case status name used in API payloads.
func (s ClinicStatus) String() string {
	switch s {
	case ClinicActive:
		return "active"
	case ClinicInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Address is the postal location of a clinic.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Clinic represents a veterinary clinic listed on the platform.
type Clinic struct {
	ID      int64        `json:"id"`
	Name    string       `json:"name"`
	Address Address      `json:"address"`
	Rating  float64      `json:"rating"` // 0-5, one decimal
	Status  ClinicStatus `json:"status"`
	OwnerID string       `json:"owner_id"`
}

// IsActive reports whether the clinic currently accepts bookings.
func (c Clinic) IsActive() bool {
	return c.Status == ClinicActive
}
