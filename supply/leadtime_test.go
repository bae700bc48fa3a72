package supply_test

import (
	"testing"

	"github.com/warp/cashplan/numeric"
	"github.com/warp/cashplan/supply"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func catalog() supply.Catalog {
	return supply.Catalog{
		Suppliers: []supply.Supplier{
			{
				ID:                  "sup-1",
				DefaultLeadTimeDays: numeric.FromFloat(20),
				LeadTimeOverrides: map[string]numeric.Value{
					"SKU-A": numeric.FromFloat(5),
				},
			},
			{
				ID:                  "sup-2",
				DefaultLeadTimeDays: numeric.Absent(),
			},
		},
		Products: []supply.Product{
			{SKU: "sku-a", DefaultLeadTimeDays: numeric.FromFloat(10)},
			{SKU: "sku-b", DefaultLeadTimeDays: numeric.FromFloat(12)},
		},
		ProductSuppliers: []supply.ProductSupplier{
			{SKU: "sku-b", SupplierID: "sup-2", LeadTimeDays: numeric.FromFloat(8)},
		},
	}
}

func assertResolution(t *testing.T, got supply.Resolution, wantValue float64, wantSource string) {
	t.Helper()
	if got.Source != wantSource {
		t.Errorf("source = %q, want %q", got.Source, wantSource)
	}
	if wantSource == supply.SourceMissing {
		if got.Value != nil {
			t.Errorf("value = %v, want nil", got.Value)
		}
		return
	}
	if got.Value == nil {
		t.Fatalf("value is nil, want %v", wantValue)
	}
	if got.Value.InexactFloat64() != wantValue {
		t.Errorf("value = %s, want %v", got.Value, wantValue)
	}
}

// =============================================================================
// PRECEDENCE
// =============================================================================

func TestResolveLeadTime_OverrideWinsOverProductDefault(t *testing.T) {
	// GIVEN: supplier override of 5 days and product default of 10 days
	// THEN: the override wins
	res := supply.ResolveLeadTime("SKU-A", "sup-1", catalog())
	assertResolution(t, res, 5, supply.SourceSupplierSKU)
}

func TestResolveLeadTime_NormalizedOverrideKey(t *testing.T) {
	// The override map stores the normalized key; a raw query with
	// stray case and whitespace must still match via the second probe.
	c := catalog()
	c.Suppliers[0].LeadTimeOverrides = map[string]numeric.Value{
		"sku-a": numeric.FromFloat(7), // stored normalized this time
	}

	res := supply.ResolveLeadTime("  SKU-A ", "sup-1", c)
	assertResolution(t, res, 7, supply.SourceSupplierSKU)
}

func TestResolveLeadTime_InvalidOverrideFallsThrough(t *testing.T) {
	// GIVEN: an override of 0 (and then negative, then garbage-absent)
	// THEN: the resolver falls through to the supplier default, never
	//       returning the invalid 0
	for _, override := range []numeric.Value{
		numeric.FromFloat(0),
		numeric.FromFloat(-3),
		numeric.Absent(),
	} {
		c := catalog()
		c.Suppliers[0].LeadTimeOverrides["SKU-A"] = override

		res := supply.ResolveLeadTime("SKU-A", "sup-1", c)
		assertResolution(t, res, 20, supply.SourceSupplierDefault)
	}
}

func TestResolveLeadTime_MappingRecordBeatsDefaults(t *testing.T) {
	// sup-2 has no override and no usable default; the explicit
	// supplier<->SKU mapping answers before the product default.
	res := supply.ResolveLeadTime("SKU-B", "sup-2", catalog())
	assertResolution(t, res, 8, supply.SourceSupplierSKU)
}

func TestResolveLeadTime_SupplierDefault(t *testing.T) {
	// sku-b has no override for sup-1 and no mapping with sup-1.
	res := supply.ResolveLeadTime("sku-b", "sup-1", catalog())
	assertResolution(t, res, 20, supply.SourceSupplierDefault)
}

func TestResolveLeadTime_ProductDefault(t *testing.T) {
	// Unknown supplier: only the product default can answer.
	res := supply.ResolveLeadTime("sku-a", "sup-unknown", catalog())
	assertResolution(t, res, 10, supply.SourceProductDefault)
}

func TestResolveLeadTime_Missing(t *testing.T) {
	res := supply.ResolveLeadTime("sku-nope", "sup-unknown", catalog())
	assertResolution(t, res, 0, supply.SourceMissing)
}

func TestResolveLeadTime_EmptyCatalog(t *testing.T) {
	res := supply.ResolveLeadTime("sku-a", "sup-1", supply.Catalog{})
	assertResolution(t, res, 0, supply.SourceMissing)
}
