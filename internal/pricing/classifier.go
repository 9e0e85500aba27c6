package pricing

import "unihop/internal/domain"

// MapStatus maps an upstream raw delivery status to the canonical order
// status. It is a total function: unrecognized raw statuses map to Other
// on purpose rather than failing.
func MapStatus(rawStatus, deliveryMode string, distanceMiles float64) domain.Status {
	switch rawStatus {
	case "CANCELED_BY_CUSTOMER", "CANCELED_BY_PROVIDER", "CANCELED_BY_NASH", "EXPIRED":
		return domain.StatusCanceled
	case "DROPOFF_COMPLETE":
		return domain.StatusDelivered
	case "PICKUP_ARRIVED":
		return domain.StatusPickupArrived
	case "PICKUP_COMPLETE", "DROPOFF_ENROUTE":
		return domain.StatusDropoffEnroute
	case "PICKUP_ENROUTE":
		return domain.StatusPickupEnroute
	case "ASSIGNED_DRIVER":
		return domain.StatusAssignedDriver
	case "DROPOFF_ARRIVED":
		return domain.StatusDropoffArrived
	case "FAILED", "CANCELED_BY_AUTO_REASSIGN", "RETURNED", "RETURN_IN_PROGRESS", "RETURN_ARRIVED":
		return domain.StatusOther
	case "CREATED", "SCHEDULED", "NOT_ASSIGNED_DRIVER":
		if deliveryMode == "NOW" {
			if distanceMiles <= 20.0 {
				return domain.StatusAssigningDriver
			}
			return domain.StatusPendingDriver
		}
		return domain.StatusCreated
	default:
		return domain.StatusOther
	}
}

// ClassifyStyle derives the delivery style for a job. Rules are evaluated
// in order and the first match wins; the tip threshold is the terminal
// fallback, so the function is total.
func ClassifyStyle(distanceMiles, tip float64, optionID string) domain.DeliveryStyle {
	switch {
	case optionID == "dss_5BR7K8":
		return domain.StyleAlcohol
	case optionID == "dss_UJ3brb" || optionID == "dss_4jdjfF":
		return domain.StyleBatched
	case (optionID == "dss_a6mpw3" || optionID == "dss_FsNLzs") && distanceMiles > 20.0:
		return domain.StyleStandardLong
	case optionID == "dss_hfQWkR":
		return domain.StyleSpecialHandling2
	case optionID == "dss_XEWdAE":
		return domain.StyleCustom
	case optionID == "dss_d6tSpe":
		return domain.StyleCateringPro
	case optionID == "dss_bN9XiB":
		return domain.StyleHybrid
	case optionID == "dss_3oZQHv":
		return domain.StylePrescription
	case optionID == "dss_7jSMmA" || optionID == "dss_65ontq":
		return domain.StyleSpecialHandling
	case optionID == "opn_836HQA" || optionID == "dss_PsCM3y":
		return domain.StyleOversize
	case tip <= 3.0:
		return domain.StyleStandardLCF
	default:
		return domain.StyleStandard
	}
}
