package domain

// SuccessionShares is the preliminary Italian succession split for a given
// number of heirs. The legittima is the legally mandated minimum share of
// the estate; the quota disponibile is the freely disposable remainder.
// This is a fixed arithmetic rule surfaced read-only; actual shares depend
// on wills, donations and the full family tree.
type SuccessionShares struct {
	// Legittima is the forced share, as a fraction string ("1/2", "2/3").
	Legittima string `json:"legittima"`

	// Disponibile is the freely disposable share fraction.
	Disponibile string `json:"disponibile"`

	// PerHeirPct is the minimum percentage of the estate per heir.
	PerHeirPct float64 `json:"per_heir_pct"`
}

// ComputeSuccession returns the preliminary shares for n heirs.
// With a single heir half the estate is forced; with more, two thirds
// are forced and split equally. Returns the zero value for n < 1.
func ComputeSuccession(n int) SuccessionShares {
	if n < 1 {
		return SuccessionShares{}
	}
	if n == 1 {
		return SuccessionShares{
			Legittima:   "1/2",
			Disponibile: "1/2",
			PerHeirPct:  50.0,
		}
	}

	pct := (2.0 / 3.0) / float64(n) * 100
	// Round to one decimal place for display parity across surfaces.
	pct = float64(int(pct*10+0.5)) / 10

	return SuccessionShares{
		Legittima:   "2/3",
		Disponibile: "1/3",
		PerHeirPct:  pct,
	}
}
