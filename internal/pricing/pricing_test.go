package pricing

import (
	"strconv"
	"testing"
)

func TestCalculate_BranchTable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		total    float64
		distance float64
		tip      float64
		optionID string
		want     string
	}{
		{
			name:     "special handling distance price wins",
			total:    20,
			distance: 10,
			tip:      0,
			optionID: "dss_7jSMmA",
			want:     "40.00", // 35 + 10*0.5 vs ceil(23)
		},
		{
			name:     "special handling total price wins",
			total:    100,
			distance: 2,
			tip:      1,
			optionID: "dss_65ontq",
			want:     "116.00", // ceil(115)+1 vs 35+1+1
		},
		{
			name:     "catering tier total price wins",
			total:    40,
			distance: 4,
			tip:      2,
			optionID: "dss_bN9XiB",
			want:     "48.00", // ceil(46)+2 vs 25+2+2
		},
		{
			name:     "catering tier distance price wins",
			total:    10,
			distance: 20,
			tip:      0,
			optionID: "dss_d6tSpe",
			want:     "35.00", // 25+20*0.5 vs ceil(11.5)
		},
		{
			name:     "markup only tier",
			total:    10.50,
			distance: 50,
			tip:      1,
			optionID: "opn_836HQA",
			want:     "14.00", // ceil(12.075)+1
		},
		{
			name:     "batched short",
			total:    100,
			distance: 18.4,
			tip:      2,
			optionID: "dss_4jdjfF",
			want:     "15.00", // ceil(18.4)=19 <= 20
		},
		{
			name:     "batched over twenty miles",
			total:    100,
			distance: 25.3,
			tip:      0,
			optionID: "dss_UJ3brb",
			want:     "19.00", // 13 + (26-20)
		},
		{
			name:     "custom short",
			total:    100,
			distance: 5,
			tip:      1.5,
			optionID: "dss_XEWdAE",
			want:     "11.50",
		},
		{
			name:     "custom over eight miles",
			total:    100,
			distance: 12.1,
			tip:      0,
			optionID: "dss_XEWdAE",
			want:     "15.00", // 10 + (13-8)
		},
		{
			name:     "default short total floor wins",
			total:    12,
			distance: 3,
			tip:      0,
			optionID: "",
			want:     "15.00", // ceil(12+3) vs 10+1.5
		},
		{
			name:     "default short distance price wins",
			total:    12,
			distance: 28,
			tip:      5,
			optionID: "",
			want:     "29.00", // 10+14+5 vs ceil(15)+5
		},
		{
			name:     "default long haul markup",
			total:    100,
			distance: 35,
			tip:      0,
			optionID: "",
			want:     "115.00",
		},
		{
			name:     "unknown option falls to default",
			total:    12,
			distance: 3,
			tip:      0,
			optionID: "dss_zzzzzz",
			want:     "15.00",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Calculate(tc.total, tc.distance, tc.tip, tc.optionID)
			if got != tc.want {
				t.Errorf("Calculate(%v, %v, %v, %q) = %q, want %q",
					tc.total, tc.distance, tc.tip, tc.optionID, got, tc.want)
			}
		})
	}
}

func TestCalculate_NonNegative(t *testing.T) {
	t.Parallel()

	optionIDs := []string{
		"", "dss_7jSMmA", "dss_65ontq", "dss_bN9XiB", "dsr_cv2WbL",
		"dss_d6tSpe", "opn_836HQA", "dss_hfQWkR", "dss_PsCM3y",
		"dss_4jdjfF", "dss_UJ3brb", "dss_XEWdAE", "dss_unknown",
	}
	distances := []float64{0, 0.1, 8, 20, 20.5, 30, 31, 100}
	tips := []float64{0, 0.01, 3, 10}

	for _, optionID := range optionIDs {
		for _, distance := range distances {
			for _, tip := range tips {
				got := Calculate(0, distance, tip, optionID)
				value, err := strconv.ParseFloat(got, 64)
				if err != nil {
					t.Fatalf("Calculate returned non-decimal %q", got)
				}
				if value < 0 {
					t.Errorf("Calculate(0, %v, %v, %q) = %q, want >= 0",
						distance, tip, optionID, got)
				}
			}
		}
	}
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		amount float64
		want   string
	}{
		{0, "0.00"},
		{15, "15.00"},
		{15.5, "15.50"},
		{10.567, "10.56"}, // truncated, not rounded
		{19.999, "19.99"},
		{13.10, "13.10"},
	}

	for _, tc := range testCases {
		if got := FormatPrice(tc.amount); got != tc.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
