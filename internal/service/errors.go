package service

import "errors"

var (
	// ErrInvalidJobID is returned when the job ID is empty.
	ErrInvalidJobID = errors.New("invalid job id")

	// ErrInvalidStatus is returned when a status value is not part of the
	// canonical vocabulary.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidDeliveryStyle is returned when a delivery style value is
	// unknown.
	ErrInvalidDeliveryStyle = errors.New("invalid delivery style")

	// ErrInvalidDistance is returned when a distance is negative.
	ErrInvalidDistance = errors.New("invalid distance")

	// ErrInvalidPrice is returned when a price is not a non-negative decimal.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidTip is returned when a tip is negative.
	ErrInvalidTip = errors.New("invalid tip")

	// ErrInvalidDeliveryDate is returned when a delivery date cannot be parsed.
	ErrInvalidDeliveryDate = errors.New("invalid delivery date")

	// ErrInvalidDeliveryTime is returned when a delivery time is not
	// formatted as HH:MM:SS.
	ErrInvalidDeliveryTime = errors.New("invalid delivery time")

	// ErrInvalidTimeFilter is returned when the listing time filter is not
	// one of today, past, future or all.
	ErrInvalidTimeFilter = errors.New("invalid time filter")

	// ErrInvalidPagination is returned when page or per_page are out of range.
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)
