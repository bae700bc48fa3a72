/*
Package forecast provides the balance-projection engine.

PURPOSE:
  Turns a plan snapshot (settings, planned extras/outgoings, recorded
  actual closings) into a month-by-month running balance series. This is
  the computational core of the dashboard; everything around it is
  transport or rendering.

KEY CONCEPTS IN THIS FILE (snapshot.go):
  - Snapshot: The user-entered state, exactly as it lives in the synced
    JSON document
  - Settings: Start month, horizon, opening balance
  - MonthlyTransaction / MonthlyActual: One planned or recorded amount
    per month key

DESIGN PRINCIPLES:
  1. Pure transform: Snapshot in, series out; nothing here does I/O or
     holds state between calls
  2. Degradation: A malformed snapshot still produces a series - missing
     settings fall back to defaults, unparseable amounts count as zero
  3. Precision: decimal.Decimal for every amount

SEE ALSO:
  - series.go: BuildSeries and the hybrid locked-actual series
  - supply: lead-time reference collections carried in the same document
*/
package forecast

import (
	"github.com/warp/cashplan/numeric"
	"github.com/warp/cashplan/supply"
)

// =============================================================================
// SNAPSHOT - The synced plan document payload
// =============================================================================

// Settings holds the projection window configuration.
// HorizonMonths and OpeningBalance tolerate both JSON numbers and
// locale-formatted strings; the document has been edited by hand.
type Settings struct {
	StartMonth     string        `json:"startMonth"`
	HorizonMonths  numeric.Value `json:"horizonMonths"`
	OpeningBalance numeric.Value `json:"openingBalance"`
}

// MonthlyTransaction is one planned cash movement in a given month.
// Extras are added as signed values; outgoings are treated as
// magnitudes regardless of the sign the user typed.
type MonthlyTransaction struct {
	Month     string        `json:"month"`
	AmountEur numeric.Value `json:"amountEur"`
}

// MonthlyActual is a user-confirmed real closing balance for a month.
// An absent or unparseable ClosingEur means "no actual recorded",
// which is different from an actual of zero.
type MonthlyActual struct {
	Month      string        `json:"month"`
	ClosingEur numeric.Value `json:"closingEur"`
}

// Snapshot is the full user-entered state. It is recomputed from
// scratch on every projection call; no field is ever mutated in place.
type Snapshot struct {
	Settings Settings `json:"settings"`

	// OpeningEur, when present, wins over Settings.OpeningBalance.
	OpeningEur       numeric.Value `json:"openingEur"`
	MonthlyAmazonEur numeric.Value `json:"monthlyAmazonEur"`
	PayoutPct        numeric.Value `json:"payoutPct"`

	Extras    []MonthlyTransaction `json:"extras"`
	Outgoings []MonthlyTransaction `json:"outgoings"`
	Actuals   []MonthlyActual      `json:"actuals"`

	// Lead-time reference data, resolved by the supply package.
	Suppliers        []supply.Supplier        `json:"suppliers"`
	Products         []supply.Product         `json:"products"`
	ProductSuppliers []supply.ProductSupplier `json:"productSuppliers"`
}

// Catalog bundles the snapshot's reference collections for lead-time
// resolution.
func (s Snapshot) Catalog() supply.Catalog {
	return supply.Catalog{
		Suppliers:        s.Suppliers,
		Products:         s.Products,
		ProductSuppliers: s.ProductSuppliers,
	}
}
