package dto

// AccountCreate carries the fields accepted when opening an account.
// Balance is accepted for compatibility but never applied: new accounts start at zero.
type AccountCreate struct {
	Name         string
	Number       int64
	Balance      float64
	SpecialLimit float64
}

// AccountUpdate carries the full set of fields written by an account update.
type AccountUpdate struct {
	Name         string
	Number       int64
	Balance      float64
	SpecialLimit float64
}
