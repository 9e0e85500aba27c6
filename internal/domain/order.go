package domain

import "time"

// Status represents the canonical lifecycle status of a delivery order.
// Values are this system's own vocabulary, mapped from the upstream
// provider's raw status strings by pricing.MapStatus.
type Status string

const (
	StatusCreated         Status = "Created"
	StatusPendingDriver   Status = "Pending Driver"
	StatusAssigningDriver Status = "Assigning Driver"
	StatusAssignedDriver  Status = "Assigned Driver"
	StatusPickupEnroute   Status = "Pickup Enroute"
	StatusPickupArrived   Status = "Pickup Arrived"
	StatusDropoffEnroute  Status = "Dropoff Enroute"
	StatusDropoffArrived  Status = "Dropoff Arrived"
	StatusDelivered       Status = "Delivered"
	StatusOther           Status = "Other"
	StatusCanceled        Status = "Canceled"
	StatusCanceledDriver  Status = "Canceled Driver"
)

// TerminalStatuses are the statuses eligible for the billing sweep.
var TerminalStatuses = []Status{
	StatusDelivered,
	StatusCanceled,
	StatusCanceledDriver,
	StatusOther,
}

// IsTerminal reports whether the order has reached a final state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCanceled, StatusCanceledDriver, StatusOther:
		return true
	}
	return false
}

// IsCanceled reports whether the status is one of the canceled variants.
func (s Status) IsCanceled() bool {
	return s == StatusCanceled || s == StatusCanceledDriver
}

// IsValid reports whether s is a known canonical status.
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPendingDriver, StatusAssigningDriver,
		StatusAssignedDriver, StatusPickupEnroute, StatusPickupArrived,
		StatusDropoffEnroute, StatusDropoffArrived, StatusDelivered,
		StatusOther, StatusCanceled, StatusCanceledDriver:
		return true
	}
	return false
}

// DeliveryStyle classifies how a delivery is serviced. The classifier
// vocabulary is wider than the original eight styles: Alcohol, Batched,
// Special Handling (2) and Prescription are first-class values here.
type DeliveryStyle string

const (
	StyleStandard         DeliveryStyle = "Standard"
	StyleStandardLong     DeliveryStyle = "Standard - Long"
	StyleHybrid           DeliveryStyle = "Hybrid"
	StyleSpecialHandling  DeliveryStyle = "Special Handling"
	StyleOversize         DeliveryStyle = "Oversize"
	StyleStandardLCF      DeliveryStyle = "Standard LCF"
	StyleCustom           DeliveryStyle = "Custom"
	StyleCateringPro      DeliveryStyle = "Catering Pro"
	StyleAlcohol          DeliveryStyle = "Alcohol"
	StyleBatched          DeliveryStyle = "Batched"
	StyleSpecialHandling2 DeliveryStyle = "Special Handling (2)"
	StylePrescription     DeliveryStyle = "Prescription"
)

// IsValid reports whether d is a known delivery style.
func (d DeliveryStyle) IsValid() bool {
	switch d {
	case StyleStandard, StyleStandardLong, StyleHybrid, StyleSpecialHandling,
		StyleOversize, StyleStandardLCF, StyleCustom, StyleCateringPro,
		StyleAlcohol, StyleBatched, StyleSpecialHandling2, StylePrescription:
		return true
	}
	return false
}

// Order is the persisted record of a delivery job. Identity is the
// upstream job ID, which is stable across repeated webhook deliveries.
type Order struct {
	ID                string
	JobID             string
	Email             string
	Status            Status
	Distance          float64 // miles, rounded to 2 decimals
	Price             string  // decimal string, 2 fraction digits
	Tip               float64
	DeliveryDate      time.Time // zero when the job carried no dropoff window
	DeliveryStartTime string    // "HH:MM:SS", empty when unset
	DeliveryEndTime   string    // mutually exclusive with DeliveryStartTime
	Asap              bool
	PickupAddress     string
	PickupName        string
	DropoffAddress    string
	DropoffName       string
	DeliveryStyle     DeliveryStyle
	OptionID          string // opaque upstream service-option classifier, may be empty
	BillingProcessed  bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
