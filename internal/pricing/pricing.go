// Package pricing holds the pure pricing and classification rules for
// delivery jobs. Everything here is side-effect free.
package pricing

import (
	"fmt"
	"math"
)

// Calculate computes the delivery price in dollars from the upstream total
// price, driving distance and tip. Distances are rounded up to the next
// whole mile before use. Branches are evaluated top to bottom; the first
// matching option set wins.
//
// The result is formatted with exactly two fraction digits, truncated.
func Calculate(totalDollars, distanceMiles, tip float64, optionID string) string {
	miles := math.Ceil(distanceMiles)
	var price float64

	switch {
	case optionID == "dss_7jSMmA" || optionID == "dss_65ontq":
		price = math.Max(35+miles*0.5+tip, math.Ceil(totalDollars*1.15)+tip)

	case optionID == "dss_bN9XiB" || optionID == "dsr_cv2WbL" || optionID == "dss_d6tSpe":
		price = math.Max(25+miles*0.5+tip, math.Ceil(totalDollars*1.15)+tip)

	case optionID == "opn_836HQA" || optionID == "dss_hfQWkR" || optionID == "dss_PsCM3y":
		price = math.Ceil(totalDollars*1.15) + tip

	case optionID == "dss_4jdjfF" || optionID == "dss_UJ3brb":
		price = 13 + tip
		if miles > 20 {
			price += miles - 20
		}

	case optionID == "dss_XEWdAE":
		price = 10 + tip
		if miles > 8 {
			price += miles - 8
		}

	default:
		if miles <= 30 {
			price = math.Max(10+miles*0.5+tip, math.Ceil(totalDollars+3)+tip)
		} else {
			price = math.Ceil(totalDollars*1.15) + tip
		}
	}

	return FormatPrice(price)
}

// FormatPrice renders a dollar amount as a decimal string with exactly two
// fraction digits, truncating rather than rounding. The epsilon absorbs
// binary float error on amounts that are exact in cents.
func FormatPrice(amount float64) string {
	cents := math.Floor(amount*100 + 1e-9)
	return fmt.Sprintf("%.2f", cents/100)
}
