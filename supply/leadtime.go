/*
Package supply resolves production lead times across override layers.

PURPOSE:
  A SKU's lead time can be declared in several places: a per-SKU
  override on the supplier, an explicit supplier<->SKU mapping record,
  the supplier's own default, or the product's default. This package
  walks that precedence chain and reports which layer answered.

PRECEDENCE (first valid candidate wins):
  1. Supplier per-SKU override      -> "Supplier×SKU"
  2. Supplier<->SKU mapping record  -> "Supplier×SKU"
  3. Supplier default               -> "Supplier Default"
  4. Product default                -> "Product Default"
  5. Nothing found                  -> "missing"

VALIDITY:
  A candidate counts only if it is a finite number strictly greater
  than zero. A present-but-invalid override (zero, negative, garbage)
  falls through to the next layer; it never short-circuits to missing.

SKU MATCHING:
  Product and mapping lookups always use the normalized (trimmed,
  lower-cased) SKU. Supplier overrides are probed with the raw key
  first and the normalized key second, because the override map is
  keyed by whatever string was typed when the override was created.

SEE ALSO:
  - forecast/snapshot.go: carries these collections in the plan document
*/
package supply

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/cashplan/numeric"
)

// =============================================================================
// REFERENCE RECORDS
// =============================================================================

// Supplier is one sourcing partner. LeadTimeOverrides is a free-form
// per-SKU map; keys may be raw or normalized SKU strings.
type Supplier struct {
	ID                  string                   `json:"id"`
	Name                string                   `json:"name,omitempty"`
	DefaultLeadTimeDays numeric.Value            `json:"defaultLeadTimeDays"`
	LeadTimeOverrides   map[string]numeric.Value `json:"leadTimeOverrides,omitempty"`
}

// Product is one catalog item with its fallback lead time.
type Product struct {
	SKU                 string        `json:"sku"`
	Name                string        `json:"name,omitempty"`
	DefaultLeadTimeDays numeric.Value `json:"defaultLeadTimeDays"`
}

// ProductSupplier is an explicit supplier<->SKU mapping record.
type ProductSupplier struct {
	SKU          string        `json:"sku"`
	SupplierID   string        `json:"supplierId"`
	LeadTimeDays numeric.Value `json:"leadTimeDays"`
}

// Catalog bundles the reference collections a resolution runs against.
type Catalog struct {
	Suppliers        []Supplier
	Products         []Product
	ProductSuppliers []ProductSupplier
}

// =============================================================================
// RESOLUTION
// =============================================================================

// Source labels for Resolution, shown verbatim in the dashboard.
const (
	SourceSupplierSKU     = "Supplier×SKU"
	SourceSupplierDefault = "Supplier Default"
	SourceProductDefault  = "Product Default"
	SourceMissing         = "missing"
)

// Resolution is the outcome of a lead-time lookup. Value is nil when no
// layer produced a valid candidate.
type Resolution struct {
	Value  *decimal.Decimal
	Source string
}

// NormalizeSKU trims and lower-cases a SKU for case/whitespace
// insensitive matching.
func NormalizeSKU(sku string) string {
	return strings.ToLower(strings.TrimSpace(sku))
}

// ResolveLeadTime walks the precedence chain for a SKU/supplier pair.
// It never fails: missing records simply fall through to "missing".
func ResolveLeadTime(sku, supplierID string, c Catalog) Resolution {
	normalized := NormalizeSKU(sku)
	supplier := findSupplier(c.Suppliers, supplierID)

	// 1. Supplier per-SKU override: raw key first, normalized second.
	if supplier != nil {
		if v, ok := candidate(supplier.LeadTimeOverrides[sku]); ok {
			return Resolution{Value: v, Source: SourceSupplierSKU}
		}
		if v, ok := candidate(supplier.LeadTimeOverrides[normalized]); ok {
			return Resolution{Value: v, Source: SourceSupplierSKU}
		}
	}

	// 2. Explicit mapping record.
	for _, ps := range c.ProductSuppliers {
		if ps.SupplierID == supplierID && NormalizeSKU(ps.SKU) == normalized {
			if v, ok := candidate(ps.LeadTimeDays); ok {
				return Resolution{Value: v, Source: SourceSupplierSKU}
			}
		}
	}

	// 3. Supplier default.
	if supplier != nil {
		if v, ok := candidate(supplier.DefaultLeadTimeDays); ok {
			return Resolution{Value: v, Source: SourceSupplierDefault}
		}
	}

	// 4. Product default.
	for _, p := range c.Products {
		if NormalizeSKU(p.SKU) == normalized {
			if v, ok := candidate(p.DefaultLeadTimeDays); ok {
				return Resolution{Value: v, Source: SourceProductDefault}
			}
		}
	}

	return Resolution{Source: SourceMissing}
}

func findSupplier(suppliers []Supplier, id string) *Supplier {
	for i := range suppliers {
		if suppliers[i].ID == id {
			return &suppliers[i]
		}
	}
	return nil
}

// candidate accepts a value only if it is a finite number > 0.
func candidate(v numeric.Value) (*decimal.Decimal, bool) {
	if !v.Positive() {
		return nil, false
	}
	d := v.Decimal()
	return &d, true
}
