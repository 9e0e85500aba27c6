package nash

// JobPayload mirrors the slice of the Nash job resource this service
// reads. Unknown fields are ignored on decode.
type JobPayload struct {
	OptionsGroup      *OptionsGroup      `json:"optionsGroup"`
	JobConfigurations []JobConfiguration `json:"jobConfigurations"`
}

// OptionsGroup carries the opaque service-option classifier.
type OptionsGroup struct {
	ID string `json:"id"`
}

// JobConfiguration is one delivery configuration of a job. Only the first
// configuration is consulted.
type JobConfiguration struct {
	AdvancedTask AdvancedTask `json:"advancedTask"`
	Package      Package      `json:"package"`
	Tasks        []Task       `json:"tasks"`
}

// AdvancedTask wraps the delivery leg of a configuration.
type AdvancedTask struct {
	Delivery Delivery `json:"delivery"`
}

// Delivery carries the raw provider status and total price.
type Delivery struct {
	Status          string  `json:"status"`
	TotalPriceCents float64 `json:"totalPriceCents"`
}

// Package describes the parcel, its locations and dropoff window.
type Package struct {
	DropoffStartTime    string         `json:"dropoffStartTime"`
	DropoffEndTime      string         `json:"dropoffEndTime"`
	DrivingMetrics      DrivingMetrics `json:"drivingMetrics"`
	PackageDeliveryMode string         `json:"packageDeliveryMode"`
	PickupLocation      Location       `json:"pickupLocation"`
	DropoffLocation     Location       `json:"dropoffLocation"`
}

// DrivingMetrics carries the routed driving distance in meters.
type DrivingMetrics struct {
	Distance float64 `json:"distance"`
}

// Location is a pickup or dropoff point.
type Location struct {
	FormattedAddress string `json:"formattedAddress"`
	FirstName        string `json:"firstName"`
	Email            string `json:"email"`
	Instructions     string `json:"instructions"`
	TimezoneName     string `json:"timezoneName"`
}

// Task is one task of a configuration; the first one carries the tip.
type Task struct {
	TipAmountCents float64 `json:"tipAmountCents"`
}
