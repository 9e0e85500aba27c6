package nash

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"unihop/internal/domain"
	"unihop/internal/pricing"
)

const metersPerMile = 1609.34

var (
	// ErrMissingConfiguration is returned when a job payload carries no
	// delivery configuration.
	ErrMissingConfiguration = errors.New("job has no configurations")

	// ErrEmailMissing is returned when no customer email can be resolved
	// from the payload.
	ErrEmailMissing = errors.New("email must be filled")
)

var countrySuffix = regexp.MustCompile(`,\s*US(A)?$`)

// ExtractJobDetails normalizes a raw Nash job payload into JobDetails,
// deriving the canonical status, delivery style and price.
func ExtractJobDetails(jobID string, p *JobPayload) (*domain.JobDetails, error) {
	if p == nil || len(p.JobConfigurations) == 0 {
		return nil, ErrMissingConfiguration
	}
	cfg := p.JobConfigurations[0]
	pkg := cfg.Package

	distance := pkg.DrivingMetrics.Distance / metersPerMile

	var optionID string
	if p.OptionsGroup != nil {
		optionID = p.OptionsGroup.ID
	}

	var tip float64
	if len(cfg.Tasks) > 0 {
		tip = cfg.Tasks[0].TipAmountCents / 100
	}

	email, err := resolveEmail(pkg.PickupLocation)
	if err != nil {
		return nil, err
	}

	details := &domain.JobDetails{
		JobID:          jobID,
		Email:          email,
		Status:         pricing.MapStatus(cfg.AdvancedTask.Delivery.Status, pkg.PackageDeliveryMode, distance),
		Distance:       math.Round(distance*100) / 100,
		Price:          pricing.Calculate(cfg.AdvancedTask.Delivery.TotalPriceCents/100, distance, tip, optionID),
		Tip:            tip,
		Asap:           pkg.PackageDeliveryMode == "NOW",
		PickupAddress:  countrySuffix.ReplaceAllString(pkg.PickupLocation.FormattedAddress, ""),
		PickupName:     pkg.PickupLocation.FirstName,
		DropoffAddress: countrySuffix.ReplaceAllString(pkg.DropoffLocation.FormattedAddress, ""),
		DropoffName:    strings.TrimSpace(strings.SplitN(pkg.DropoffLocation.FirstName, "- UniHop", 2)[0]),
		DeliveryStyle:  pricing.ClassifyStyle(distance, tip, optionID),
		OptionID:       optionID,
	}

	// A job has at most one of the two window bounds; the start bound wins
	// when both are present.
	if pkg.DropoffStartTime != "" {
		t, err := parseUTC(pkg.DropoffStartTime)
		if err == nil {
			details.DeliveryDate = dateOf(t)
			details.DeliveryStartTime = t.Format("15:04:05")
			details.DeliveryEndTime = ""
		}
	} else if pkg.DropoffEndTime != "" {
		t, err := parseUTC(pkg.DropoffEndTime)
		if err == nil {
			details.DeliveryDate = dateOf(t)
			details.DeliveryEndTime = t.Format("15:04:05")
			details.DeliveryStartTime = ""
		}
	}

	return details, nil
}

// resolveEmail takes the pickup location's email field, falling back to
// parsing it out of the delimited instructions text. The instructions
// format is "<text>-*&<email>", with "-*" as an older delimiter variant.
func resolveEmail(loc Location) (string, error) {
	if loc.Email != "" {
		return loc.Email, nil
	}

	instructions := loc.Instructions
	if instructions == "" || instructions == "N/A" {
		return "", ErrEmailMissing
	}

	for _, delim := range []string{"-*&", "-*"} {
		parts := strings.SplitN(instructions, delim, 2)
		if len(parts) == 2 {
			return strings.TrimSpace(parts[1]), nil
		}
	}

	return "", ErrEmailMissing
}

// parseUTC parses a provider timestamp, which arrives without a zone
// designator and is documented as UTC.
func parseUTC(ts string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSuffix(ts, "Z")+"Z")
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
