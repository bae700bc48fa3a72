/*
series.go - Balance series construction

PURPOSE:
  Builds the month-by-month running balance from a snapshot. Two shapes
  come out of here:
  - Series: the flat arrays the chart consumes (months, net, closing)
  - ProjectionPoint rows: the richer table shape with planned vs actual
    closings and the locked-actual flag

KEY INSIGHT:
  A recorded actual closing permanently re-bases the projection: the
  next month's opening is the actual, not the planned value. Once
  reality is known, the forecast yields to it from that point on.

ALGORITHM (BuildSeries):
  1. Resolve start month, horizon, and opening balance (with defaults)
  2. Generate exactly `horizon` consecutive months
  3. Aggregate extras (signed) and outgoings (magnitudes) per month;
     records outside the window are dropped, they never extend it
  4. net[i] = monthlyAmazonEur * payoutPct + extras[i] - outgoings[i]
  5. Chain the running balance: opening[i+1] = closing[i]

SEE ALSO:
  - snapshot.go: Input document shape
  - calendar: Month value type and sequence generation
*/
package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/warp/cashplan/calendar"
	"github.com/warp/cashplan/numeric"
)

// Defaults for a snapshot that omits settings. The payout factor is the
// fraction of gross marketplace revenue actually disbursed to the seller.
const DefaultHorizonMonths = 12

var defaultPayoutFactor = decimal.NewFromFloat(0.85)

// =============================================================================
// OUTPUT SHAPES
// =============================================================================

// Series is the flat projection consumed by the chart and the sync layer.
type Series struct {
	Months      []calendar.Month
	Net         []decimal.Decimal
	Closing     []decimal.Decimal
	OpeningList []decimal.Decimal
	Opening     decimal.Decimal
	Start       calendar.Month
	Horizon     int
}

// ProjectionPoint is one table row of the hybrid series.
// ActualClosing is nil when no actual has been recorded for the month.
type ProjectionPoint struct {
	Month          calendar.Month
	Opening        decimal.Decimal
	Net            decimal.Decimal
	PlannedClosing decimal.Decimal
	Closing        decimal.Decimal
	ActualClosing  *decimal.Decimal
	LockedActual   bool
}

// Row is the input to BuildHybridClosingSeries: a month with its
// pre-computed net and an optional recorded actual closing.
type Row struct {
	Month         calendar.Month
	Net           decimal.Decimal
	ActualClosing numeric.Value
}

// =============================================================================
// FLAT SERIES
// =============================================================================

// BuildSeries computes the projection for a snapshot. It never fails:
// missing or malformed inputs degrade to defaults so the dashboard
// always has something to draw.
func BuildSeries(s Snapshot) Series {
	start, ok := calendar.ParseMonth(s.Settings.StartMonth)
	if !ok {
		start = calendar.CurrentMonth()
	}

	horizon := int(s.Settings.HorizonMonths.Decimal().IntPart())
	if !s.Settings.HorizonMonths.Valid() || horizon < 1 {
		horizon = DefaultHorizonMonths
	}

	opening := resolveOpening(s)
	months := calendar.MonthSequence(start, horizon)

	extras := aggregateByMonth(s.Extras, months, false)
	outgoings := aggregateByMonth(s.Outgoings, months, true)

	base := s.MonthlyAmazonEur.Decimal().Mul(payoutFactor(s))

	series := Series{
		Months:      months,
		Net:         make([]decimal.Decimal, horizon),
		Closing:     make([]decimal.Decimal, horizon),
		OpeningList: make([]decimal.Decimal, horizon),
		Opening:     opening,
		Start:       start,
		Horizon:     horizon,
	}

	running := opening
	for i, m := range months {
		net := base.Add(extras[m]).Sub(outgoings[m])
		series.OpeningList[i] = running
		series.Net[i] = net
		series.Closing[i] = running.Add(net)
		running = series.Closing[i]
	}
	return series
}

// resolveOpening prefers the explicit numeric field, then the
// locale-formatted settings fallback, then zero.
func resolveOpening(s Snapshot) decimal.Decimal {
	if s.OpeningEur.Valid() {
		return s.OpeningEur.Decimal()
	}
	if s.Settings.OpeningBalance.Valid() {
		return s.Settings.OpeningBalance.Decimal()
	}
	return decimal.Zero
}

// payoutFactor returns the disbursement fraction. Zero and absent both
// fall back to the default: a payout of 0 only ever shows up as an
// unfilled form field.
func payoutFactor(s Snapshot) decimal.Decimal {
	if s.PayoutPct.Valid() && !s.PayoutPct.Decimal().IsZero() {
		return s.PayoutPct.Decimal()
	}
	return defaultPayoutFactor
}

// aggregateByMonth sums records into a month -> total map. Records whose
// month key falls outside the generated window are dropped; they never
// force a new month into existence. Unmapped months read as zero.
func aggregateByMonth(records []MonthlyTransaction, window []calendar.Month, magnitudes bool) map[calendar.Month]decimal.Decimal {
	inWindow := make(map[calendar.Month]bool, len(window))
	for _, m := range window {
		inWindow[m] = true
	}

	totals := make(map[calendar.Month]decimal.Decimal)
	for _, rec := range records {
		m, ok := calendar.ParseMonth(rec.Month)
		if !ok || !inWindow[m] {
			continue
		}
		amount := rec.AmountEur.Decimal()
		if magnitudes {
			amount = amount.Abs()
		}
		totals[m] = totals[m].Add(amount)
	}
	return totals
}

// =============================================================================
// HYBRID SERIES - Planned projection with locked actuals
// =============================================================================

// BuildHybridClosingSeries chains a running balance over pre-computed
// nets, letting a recorded actual closing override the planned one.
// The override re-bases everything after it: the next row opens at the
// actual, not at the plan. Empty input yields an empty series.
func BuildHybridClosingSeries(rows []Row, initialOpening decimal.Decimal) []ProjectionPoint {
	if len(rows) == 0 {
		return nil
	}

	points := make([]ProjectionPoint, 0, len(rows))
	opening := initialOpening
	for _, row := range rows {
		planned := opening.Add(row.Net)
		closing := planned

		var actual *decimal.Decimal
		locked := false
		if row.ActualClosing.Valid() {
			a := row.ActualClosing.Decimal()
			actual = &a
			closing = a
			locked = true
		}

		points = append(points, ProjectionPoint{
			Month:          row.Month,
			Opening:        opening,
			Net:            row.Net,
			PlannedClosing: planned,
			Closing:        closing,
			ActualClosing:  actual,
			LockedActual:   locked,
		})
		opening = closing
	}
	return points
}

// BuildHybridFromSnapshot composes BuildSeries with the snapshot's
// recorded actuals. When a month carries several actual entries the
// last one wins, matching last-write-wins editing in the grid.
func BuildHybridFromSnapshot(s Snapshot) []ProjectionPoint {
	series := BuildSeries(s)

	actuals := make(map[calendar.Month]numeric.Value)
	for _, a := range s.Actuals {
		m, ok := calendar.ParseMonth(a.Month)
		if !ok {
			continue
		}
		actuals[m] = a.ClosingEur
	}

	rows := make([]Row, len(series.Months))
	for i, m := range series.Months {
		rows[i] = Row{Month: m, Net: series.Net[i], ActualClosing: actuals[m]}
	}
	return BuildHybridClosingSeries(rows, series.Opening)
}
