package pricing

import (
	"testing"

	"unihop/internal/domain"
)

func TestMapStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		rawStatus    string
		deliveryMode string
		distance     float64
		want         domain.Status
	}{
		{"canceled by customer", "CANCELED_BY_CUSTOMER", "NOW", 5, domain.StatusCanceled},
		{"canceled by nash", "CANCELED_BY_NASH", "", 5, domain.StatusCanceled},
		{"canceled by provider", "CANCELED_BY_PROVIDER", "", 5, domain.StatusCanceled},
		{"expired", "EXPIRED", "", 5, domain.StatusCanceled},
		{"dropoff complete", "DROPOFF_COMPLETE", "NOW", 5, domain.StatusDelivered},
		{"pickup arrived", "PICKUP_ARRIVED", "", 5, domain.StatusPickupArrived},
		{"pickup complete maps to dropoff enroute", "PICKUP_COMPLETE", "", 5, domain.StatusDropoffEnroute},
		{"dropoff enroute", "DROPOFF_ENROUTE", "", 5, domain.StatusDropoffEnroute},
		{"pickup enroute", "PICKUP_ENROUTE", "", 5, domain.StatusPickupEnroute},
		{"assigned driver", "ASSIGNED_DRIVER", "", 5, domain.StatusAssignedDriver},
		{"dropoff arrived", "DROPOFF_ARRIVED", "", 5, domain.StatusDropoffArrived},
		{"failed", "FAILED", "", 5, domain.StatusOther},
		{"auto reassign", "CANCELED_BY_AUTO_REASSIGN", "", 5, domain.StatusOther},
		{"returned", "RETURNED", "", 5, domain.StatusOther},
		{"return in progress", "RETURN_IN_PROGRESS", "", 5, domain.StatusOther},
		{"return arrived", "RETURN_ARRIVED", "", 5, domain.StatusOther},
		{"created on demand short", "CREATED", "NOW", 20, domain.StatusAssigningDriver},
		{"created on demand long", "NOT_ASSIGNED_DRIVER", "NOW", 25, domain.StatusPendingDriver},
		{"scheduled on demand short", "SCHEDULED", "NOW", 3.2, domain.StatusAssigningDriver},
		{"created scheduled delivery", "CREATED", "SCHEDULED", 25, domain.StatusCreated},
		{"not assigned scheduled delivery", "NOT_ASSIGNED_DRIVER", "", 5, domain.StatusCreated},
		{"unknown raw status", "SOMETHING_NEW", "NOW", 5, domain.StatusOther},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MapStatus(tc.rawStatus, tc.deliveryMode, tc.distance)
			if got != tc.want {
				t.Errorf("MapStatus(%q, %q, %v) = %q, want %q",
					tc.rawStatus, tc.deliveryMode, tc.distance, got, tc.want)
			}
		})
	}
}

func TestClassifyStyle(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		distance float64
		tip      float64
		optionID string
		want     domain.DeliveryStyle
	}{
		{"alcohol", 5, 0, "dss_5BR7K8", domain.StyleAlcohol},
		{"batched", 5, 0, "dss_UJ3brb", domain.StyleBatched},
		{"batched alternate option", 25, 10, "dss_4jdjfF", domain.StyleBatched},
		{"standard long over twenty", 25, 0, "dss_a6mpw3", domain.StyleStandardLong},
		{"standard long other option", 20.5, 5, "dss_FsNLzs", domain.StyleStandardLong},
		{"long option under twenty falls through", 10, 2, "dss_a6mpw3", domain.StyleStandardLCF},
		{"special handling two", 5, 0, "dss_hfQWkR", domain.StyleSpecialHandling2},
		{"custom", 5, 0, "dss_XEWdAE", domain.StyleCustom},
		{"catering pro", 5, 0, "dss_d6tSpe", domain.StyleCateringPro},
		{"hybrid", 5, 0, "dss_bN9XiB", domain.StyleHybrid},
		{"prescription", 5, 0, "dss_3oZQHv", domain.StylePrescription},
		{"special handling", 5, 0, "dss_7jSMmA", domain.StyleSpecialHandling},
		{"special handling alternate option", 5, 0, "dss_65ontq", domain.StyleSpecialHandling},
		{"oversize", 5, 0, "opn_836HQA", domain.StyleOversize},
		{"oversize alternate option", 5, 10, "dss_PsCM3y", domain.StyleOversize},
		{"low tip", 5, 3, "", domain.StyleStandardLCF},
		{"zero tip", 5, 0, "dss_unknown", domain.StyleStandardLCF},
		{"standard", 5, 3.01, "", domain.StyleStandard},
		{"option rule wins over tip rule", 5, 0, "dss_5BR7K8", domain.StyleAlcohol},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ClassifyStyle(tc.distance, tc.tip, tc.optionID)
			if got != tc.want {
				t.Errorf("ClassifyStyle(%v, %v, %q) = %q, want %q",
					tc.distance, tc.tip, tc.optionID, got, tc.want)
			}
		})
	}
}
