// Package model defines domain entities shared by the store, providers and presentation.
package model

// Button labels derived from the reveal state (never set independently).
const (
	ButtonReveal = "Reveal Details"
	ButtonHide   = "Hide Details"
)

// CardDetails is the raw card data fetched once per load.
// Owned exclusively by the store after the fetch resolves; never mutated.
type CardDetails struct {
	Number string // full PAN, e.g. "1234 5678 9012 3456"
	Holder string
	Expiry string // MM/YY
	CVV    string
}

// DisplayState is one immutable snapshot of the card widget.
// The store replaces it wholesale on every transition; observers must not mutate it.
type DisplayState struct {
	CardNumber string `json:"cardNumber"`
	CardHolder string `json:"cardHolder"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	ButtonText string `json:"buttonText"`
	IsRevealed bool   `json:"isRevealed"`
	IsLocked   bool   `json:"isLocked"`
	IsLoading  bool   `json:"isLoading"`
	IsError    bool   `json:"isError"`
}

// Intent is a discrete request to change display state. The set is closed:
// only the three types below satisfy it.
type Intent interface{ intent() }

// LoadCardDetails (re)issues the asynchronous fetch. The loading snapshot is
// published synchronously; the loaded one when the fetch resolves.
type LoadCardDetails struct{}

// ToggleVisibility flips between masked and revealed display.
// A no-op before details are cached; never reveals while locked.
type ToggleVisibility struct{}

// ToggleLock flips the lock. Locking always clears reveal; unlocking
// leaves the displayed fields exactly as they were.
type ToggleLock struct{}

func (LoadCardDetails) intent()  {}
func (ToggleVisibility) intent() {}
func (ToggleLock) intent()       {}
