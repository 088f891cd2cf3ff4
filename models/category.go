package models

// ShippingCategory classifies a shipment by weight/kind and drives which
// transport modes are eligible and which fulfillment path applies.
type ShippingCategory string

const (
	CategorySmallParcel ShippingCategory = "small_parcel" // 0-30kg
	CategoryHeavyParcel ShippingCategory = "heavy_parcel" // 30-100kg
	CategoryLTLFreight  ShippingCategory = "ltl_freight"  // 100-4000kg
	CategoryFTLFreight  ShippingCategory = "ftl_freight"  // 4000kg+
	CategoryVehicle     ShippingCategory = "vehicle"
	CategorySuperHeavy  ShippingCategory = "super_heavy"

	// CategoryAll is only valid inside configuration records (settings,
	// warehouses) and means "applies to every category".
	CategoryAll ShippingCategory = "all"
)

// Transport mode type codes, matching TransportMode.Type.
const (
	ModeAir   = "air"
	ModeSea   = "sea"
	ModeRail  = "rail"
	ModeTruck = "truck"
)

// InferCategory derives a shipping category from weight when the caller did
// not supply one.
func InferCategory(weightKg float64) ShippingCategory {
	switch {
	case weightKg < 30:
		return CategorySmallParcel
	case weightKg < 100:
		return CategoryHeavyParcel
	case weightKg < 4000:
		return CategoryLTLFreight
	default:
		return CategoryFTLFreight
	}
}

// Valid reports whether c is a recognized shipment category (not "all").
func (c ShippingCategory) Valid() bool {
	switch c {
	case CategorySmallParcel, CategoryHeavyParcel, CategoryLTLFreight,
		CategoryFTLFreight, CategoryVehicle, CategorySuperHeavy:
		return true
	}
	return false
}

// AllowedModes returns the transport mode types eligible for this category.
func (c ShippingCategory) AllowedModes() []string {
	switch c {
	case CategorySmallParcel:
		return []string{ModeAir}
	case CategoryHeavyParcel:
		return []string{ModeAir, ModeSea}
	case CategoryVehicle, CategorySuperHeavy:
		return []string{ModeSea}
	default:
		return []string{ModeAir, ModeSea, ModeRail, ModeTruck}
	}
}

// RequiresLiftGate reports whether pickup for this category needs lift-gate
// equipment (and its fee).
func (c ShippingCategory) RequiresLiftGate() bool {
	switch c {
	case CategoryLTLFreight, CategoryFTLFreight, CategoryVehicle, CategorySuperHeavy:
		return true
	}
	return false
}

// categoryListMatches implements the shared "supports category" semantics for
// configuration records: an empty list or a list containing "all" matches
// everything, otherwise the exact category must be present.
func categoryListMatches(list []string, category ShippingCategory, emptyMeansAll bool) bool {
	if len(list) == 0 {
		return emptyMeansAll
	}
	for _, c := range list {
		if c == string(CategoryAll) || c == string(category) {
			return true
		}
	}
	return false
}
