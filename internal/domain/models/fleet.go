package models

// Bus capacity determines how many seats a trip materializes on assignment.
type Bus struct {
	ID          int64  `json:"id"`
	BusCode     string `json:"busCode"`
	PlateNumber string `json:"plateNumber"`
	Capacity    int    `json:"capacity"`
	Active      bool   `json:"active"`
}

type Driver struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	Active        bool   `json:"active"`
}
