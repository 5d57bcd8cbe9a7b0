package models

// ImpactResult summarizes how a teammate performs with and without the
// injured player, including the significance of the difference. Computed
// fresh per (injured player, teammate, stat) query and never persisted.
type ImpactResult struct {
	TeammateID    int          `json:"teammate_id"`
	TeammateName  string       `json:"teammate_name"`
	Stat          StatCategory `json:"stat"`
	MeanWith      float64      `json:"mean_with"`
	MeanWithout   float64      `json:"mean_without"`
	StdDevWith    float64      `json:"std_dev_with"`
	StdDevWithout float64      `json:"std_dev_without"`
	SampleWith    int          `json:"sample_with"`
	SampleWithout int          `json:"sample_without"`
	// Difference is mean-without minus mean-with: positive means the
	// teammate produces more when the injured player sits.
	Difference float64 `json:"difference"`
	// PValue is nil when either cohort had fewer than two observations
	// and the t-test could not run.
	PValue       *float64 `json:"p_value"`
	Significant  bool     `json:"significant"`
	Insufficient bool     `json:"insufficient_data"`
	// ExcludedRows counts teammate rows dropped for absent minutes or an
	// absent/NaN value of the target stat, kept for auditability.
	ExcludedRows int `json:"excluded_rows"`
}

// PercentChange returns the relative lift of the without-cohort mean over
// the with-cohort mean, as a percentage. Zero when the with-cohort mean
// is not positive.
func (r *ImpactResult) PercentChange() float64 {
	if r.MeanWith <= 0 {
		return 0
	}
	return r.Difference / r.MeanWith * 100
}
