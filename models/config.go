package models

import (
	"time"
)

// Country is a reference row for ISO country codes.
type Country struct {
	Code            string    `gorm:"type:varchar(2);primaryKey" json:"code"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Continent       string    `gorm:"type:varchar(50)" json:"continent"`
	CustomsRequired bool      `gorm:"default:true" json:"customs_required"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TransportMode is one of the four long-haul modes (air, sea, rail, truck).
type TransportMode struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Code           string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"` // e.g. "AIR"
	Type           string    `gorm:"type:varchar(20);not null" json:"type"`             // air|sea|rail|truck
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	// TransitDaysMin/Max, when set, override the mode's fixed transit
	// window in route quotes. Zero means not configured.
	TransitDaysMin int       `gorm:"default:0" json:"transit_days_min"`
	TransitDaysMax int       `gorm:"default:0" json:"transit_days_max"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Route is a directed country pair served by one transport mode. Priority
// sorts route-based quotes before price (higher first).
type Route struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	OriginCountry      string        `gorm:"type:varchar(2);not null;index:idx_routes_pair" json:"origin_country"`
	DestinationCountry string        `gorm:"type:varchar(2);not null;index:idx_routes_pair" json:"destination_country"`
	TransportModeID    uint          `gorm:"not null" json:"transport_mode_id"`
	TransportMode      TransportMode `json:"transport_mode"`
	IsAvailable        bool          `gorm:"default:true" json:"is_available"`
	Carrier            string        `gorm:"type:varchar(100)" json:"carrier"`
	Priority           int           `gorm:"default:0" json:"priority"`
	PickupAvailable    bool          `gorm:"default:false" json:"pickup_available"`
	LocalShippingOnly  bool          `gorm:"default:false" json:"local_shipping_only"`
	CreatedAt          time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// CalculationSettings holds every tunable constant for the four freight
// formulas, either for one route+mode or as the mode's global default.
type CalculationSettings struct {
	ID              uint  `gorm:"primaryKey" json:"id"`
	RouteID         *uint `gorm:"index;uniqueIndex:idx_calc_route_mode" json:"route_id,omitempty"`
	TransportModeID uint  `gorm:"not null;uniqueIndex:idx_calc_route_mode" json:"transport_mode_id"`

	// Empty or containing "all" means the settings apply to every category.
	ShippingCategories []string `gorm:"serializer:json;type:jsonb" json:"shipping_categories"`

	// Air freight
	BaseRate                 float64 `gorm:"default:0" json:"base_rate"`
	PerKgRate                float64 `gorm:"default:8.5" json:"per_kg_rate"`
	FuelSurchargePercent     float64 `gorm:"default:15" json:"fuel_surcharge_percent"`
	SecurityFee              float64 `gorm:"default:25" json:"security_fee"`
	DimensionalWeightDivisor float64 `gorm:"default:5000" json:"dimensional_weight_divisor"`
	HandlingFee              float64 `gorm:"default:0" json:"handling_fee"`

	// Sea freight LCL
	RatePerCBM              float64 `gorm:"default:65" json:"rate_per_cbm"`
	RatePerTon              float64 `gorm:"default:150" json:"rate_per_ton"`
	OceanFreightBase        float64 `gorm:"default:150" json:"ocean_freight_base"`
	PortOriginHandling      float64 `gorm:"default:75" json:"port_origin_handling"`
	PortDestinationHandling float64 `gorm:"default:120" json:"port_destination_handling"`
	DocumentationFee        float64 `gorm:"default:45" json:"documentation_fee"`
	CustomsClearanceFee     float64 `gorm:"default:75" json:"customs_clearance_fee"`
	DestinationDeliveryFee  float64 `gorm:"default:80" json:"destination_delivery_fee"`

	// Sea freight FCL
	Container20ftPrice       float64 `gorm:"default:2200" json:"container_20ft_price"`
	Container40ftPrice       float64 `gorm:"default:3800" json:"container_40ft_price"`
	Container20ftCBM         float64 `gorm:"default:28" json:"container_20ft_cbm"`
	Container40ftCBM         float64 `gorm:"default:58" json:"container_40ft_cbm"`
	ContainerOriginFees      float64 `gorm:"default:200" json:"container_origin_fees"`
	ContainerDestinationFees float64 `gorm:"default:300" json:"container_destination_fees"`
	ContainerCustomsFee      float64 `gorm:"default:150" json:"container_customs_fee"`
	ContainerDeliveryFee     float64 `gorm:"default:200" json:"container_delivery_fee"`

	// Rail freight
	BaseRateRail        float64 `gorm:"default:200" json:"base_rate_rail"`
	PerKgRateRail       float64 `gorm:"default:2.5" json:"per_kg_rate_rail"`
	TerminalHandlingFee float64 `gorm:"default:100" json:"terminal_handling_fee"`
	CustomsFeeRail      float64 `gorm:"default:50" json:"customs_fee_rail"`

	// Truck freight. BaseRateTruck is the LTL rate per CWT (100 lbs);
	// FTL scales it by 40.
	BaseRateTruck   float64 `gorm:"default:50" json:"base_rate_truck"`
	CustomsFeeTruck float64 `gorm:"default:0" json:"customs_fee_truck"`

	IsGlobalDefault bool      `gorm:"default:false" json:"is_global_default"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SupportsCategory reports whether these settings apply to the category.
// An empty list means all categories.
func (s *CalculationSettings) SupportsCategory(category ShippingCategory) bool {
	return categoryListMatches(s.ShippingCategories, category, true)
}

// DefaultCalculationSettings returns a global-default settings row for the
// mode with every rate at its standard value. Used when no row exists yet.
func DefaultCalculationSettings(modeID uint) *CalculationSettings {
	return &CalculationSettings{
		TransportModeID:          modeID,
		ShippingCategories:       []string{string(CategoryAll)},
		PerKgRate:                8.5,
		FuelSurchargePercent:     15,
		SecurityFee:              25,
		DimensionalWeightDivisor: 5000,
		RatePerCBM:               65,
		RatePerTon:               150,
		OceanFreightBase:         150,
		PortOriginHandling:       75,
		PortDestinationHandling:  120,
		DocumentationFee:         45,
		CustomsClearanceFee:      75,
		DestinationDeliveryFee:   80,
		Container20ftPrice:       2200,
		Container40ftPrice:       3800,
		Container20ftCBM:         28,
		Container40ftCBM:         58,
		ContainerOriginFees:      200,
		ContainerDestinationFees: 300,
		ContainerCustomsFee:      150,
		ContainerDeliveryFee:     200,
		BaseRateRail:             200,
		PerKgRateRail:            2.5,
		TerminalHandlingFee:      100,
		CustomsFeeRail:           50,
		BaseRateTruck:            50,
		IsGlobalDefault:          true,
	}
}

// PickupSettings configures pickup pricing for a (country, state, category)
// scope. The row with IsGlobalFallback set is the last-resort match.
type PickupSettings struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Country          string           `gorm:"type:varchar(2);not null;index:idx_pickup_scope" json:"country"`
	State            string           `gorm:"type:varchar(100);index:idx_pickup_scope" json:"state"`
	ShippingCategory ShippingCategory `gorm:"type:varchar(20);default:'all';index:idx_pickup_scope" json:"shipping_category"`

	BasePickupFee    float64 `gorm:"default:25" json:"base_pickup_fee"`
	PerKgRate        float64 `gorm:"default:0.5" json:"per_kg_rate"`
	PerKmRate        float64 `gorm:"default:1.5" json:"per_km_rate"`
	MinimumPickupFee float64 `gorm:"default:15" json:"minimum_pickup_fee"`

	UseDimensionalWeight     bool    `gorm:"default:true" json:"use_dimensional_weight"`
	DimensionalWeightDivisor float64 `gorm:"default:5000" json:"dimensional_weight_divisor"`

	ResidentialFee float64 `gorm:"default:5" json:"residential_fee"`
	LiftGateFee    float64 `gorm:"default:0" json:"lift_gate_fee"`
	MarkupPercent  float64 `gorm:"default:0" json:"markup_percent"`

	IsGlobalFallback bool      `gorm:"default:false" json:"is_global_fallback"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Warehouse is a receiving facility. Selection picks the highest-priority
// active warehouse in a country whose category list matches.
type Warehouse struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(200);not null" json:"name"`
	Country string `gorm:"type:varchar(2);not null;index" json:"country"`

	// Unlike CalculationSettings, an empty list here supports nothing.
	ShippingCategories []string `gorm:"serializer:json;type:jsonb" json:"shipping_categories"`

	FullName   string `gorm:"type:varchar(255);not null" json:"full_name"`
	Company    string `gorm:"type:varchar(255)" json:"company"`
	Street1    string `gorm:"type:varchar(255);not null" json:"street1"`
	Street2    string `gorm:"type:varchar(255)" json:"street2"`
	City       string `gorm:"type:varchar(100);not null" json:"city"`
	State      string `gorm:"type:varchar(100)" json:"state"`
	PostalCode string `gorm:"type:varchar(20)" json:"postal_code"`
	Phone      string `gorm:"type:varchar(20)" json:"phone"`
	Email      string `gorm:"type:varchar(255)" json:"email"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	Priority  int       `gorm:"default:0" json:"priority"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SupportsCategory reports whether the warehouse accepts the category.
func (w *Warehouse) SupportsCategory(category ShippingCategory) bool {
	return categoryListMatches(w.ShippingCategories, category, false)
}

// Address returns the warehouse as a shipping address.
func (w *Warehouse) Address() Address {
	return Address{
		Name:       w.FullName,
		Company:    w.Company,
		Street1:    w.Street1,
		Street2:    w.Street2,
		City:       w.City,
		State:      w.State,
		PostalCode: w.PostalCode,
		Country:    w.Country,
		Phone:      w.Phone,
		Email:      w.Email,
	}
}

// EngineConfig carries the engine-wide tunables that were ambient settings in
// older deployments; injecting them keeps the formulas deterministic in tests.
type EngineConfig struct {
	// MarkupPercent is applied uniformly on top of every route formula's
	// pre-markup subtotal.
	MarkupPercent float64

	// PickupWeightThresholdKg: at or above this weight pickup is required
	// on the standard path.
	PickupWeightThresholdKg float64

	// DefaultFreightClass for LTL truck pricing when the caller omits one.
	DefaultFreightClass int

	// QuoteTTL is how long a persisted quote session stays convertible.
	QuoteTTL time.Duration

	// FallbackWarehouse is substituted when no warehouse row matches the
	// origin country and category.
	FallbackWarehouse Address
}

// DefaultEngineConfig returns production defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MarkupPercent:           20,
		PickupWeightThresholdKg: 100,
		DefaultFreightClass:     70,
		QuoteTTL:                24 * time.Hour,
		FallbackWarehouse: Address{
			Name:       "Consolidation Warehouse",
			Company:    "Brokerage Logistics",
			Street1:    "1234 Warehouse St",
			City:       "Los Angeles",
			State:      "CA",
			PostalCode: "90001",
			Country:    "US",
			Phone:      "+14155550100",
			Email:      "warehouse@brokerage.example",
		},
	}
}
