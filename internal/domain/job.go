package domain

import "time"

// JobDetails is the normalized view of one upstream job payload. It is
// transient: derived on every webhook delivery and reconciled against the
// persisted Order for the same JobID.
//
// Invariant: at most one of DeliveryStartTime / DeliveryEndTime is set.
type JobDetails struct {
	JobID             string
	Email             string
	Status            Status
	Distance          float64
	Price             string
	Tip               float64
	DeliveryDate      time.Time
	DeliveryStartTime string
	DeliveryEndTime   string
	Asap              bool
	PickupAddress     string
	PickupName        string
	DropoffAddress    string
	DropoffName       string
	DeliveryStyle     DeliveryStyle
	OptionID          string
}
