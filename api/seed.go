/*
seed.go - Demo plan dataset

PURPOSE:
  A realistic starter plan for demos and local development: one year of
  marketplace revenue, a few one-off inflows and outflows, two recorded
  actuals, and a small supplier/product catalog for lead-time lookups.

SEE ALSO:
  - handlers.go: SeedDemo endpoint
*/
package api

import (
	"github.com/warp/cashplan/forecast"
	"github.com/warp/cashplan/numeric"
	"github.com/warp/cashplan/supply"
)

// demoPlan builds the demo snapshot. Amounts mix JSON-number style and
// locale strings on purpose; real documents contain both.
func demoPlan() forecast.Snapshot {
	return forecast.Snapshot{
		Settings: forecast.Settings{
			StartMonth:     "2025-01",
			HorizonMonths:  numeric.FromFloat(12),
			OpeningBalance: numeric.FromString("25.000,00"),
		},
		MonthlyAmazonEur: numeric.FromFloat(18000),
		PayoutPct:        numeric.FromFloat(0.85),
		Extras: []forecast.MonthlyTransaction{
			{Month: "2025-02", AmountEur: numeric.FromFloat(4500)},    // VAT refund
			{Month: "2025-06", AmountEur: numeric.FromString("1.200,50")},
		},
		Outgoings: []forecast.MonthlyTransaction{
			{Month: "2025-01", AmountEur: numeric.FromFloat(9800)},  // restock PO
			{Month: "2025-03", AmountEur: numeric.FromFloat(2400)},  // software + fees
			{Month: "2025-07", AmountEur: numeric.FromString("14.750,00")},
		},
		Actuals: []forecast.MonthlyActual{
			{Month: "2025-01", ClosingEur: numeric.FromString("31.420,18")},
			{Month: "2025-02", ClosingEur: numeric.FromFloat(48210.02)},
		},
		Suppliers: []supply.Supplier{
			{
				ID:                  "sup-shenzhen-01",
				Name:                "Shenzhen Electronics Co.",
				DefaultLeadTimeDays: numeric.FromFloat(45),
				LeadTimeOverrides: map[string]numeric.Value{
					"SKU-CHARGER-65W": numeric.FromFloat(30),
				},
			},
			{
				ID:                  "sup-pl-02",
				Name:                "Gdansk Packaging",
				DefaultLeadTimeDays: numeric.FromFloat(14),
			},
		},
		Products: []supply.Product{
			{SKU: "sku-charger-65w", Name: "65W USB-C Charger", DefaultLeadTimeDays: numeric.FromFloat(60)},
			{SKU: "sku-cable-2m", Name: "2m Braided Cable", DefaultLeadTimeDays: numeric.FromFloat(40)},
		},
		ProductSuppliers: []supply.ProductSupplier{
			{SKU: "SKU-CABLE-2M", SupplierID: "sup-shenzhen-01", LeadTimeDays: numeric.FromFloat(35)},
		},
	}
}
