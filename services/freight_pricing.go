package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"quote-service/models"
)

// Transit windows per mode, in days.
var (
	transitAir   = models.TransitRange{MinDays: 1, MaxDays: 8}
	transitSea   = models.TransitRange{MinDays: 15, MaxDays: 45}
	transitRail  = models.TransitRange{MinDays: 10, MaxDays: 20}
	transitTruck = models.TransitRange{MinDays: 2, MaxDays: 10}
)

// LTL applies below this weight, FTL at or above it.
var ftlThresholdLbs = decimal.NewFromInt(10000)

var lbsPerKg = decimal.NewFromFloat(2.20462)

// FreightBreakdown is the result of one route pricing formula.
type FreightBreakdown struct {
	Total              float64
	Breakdown          map[string]float64
	Transit            models.TransitRange
	ChargeableWeightKg float64
	VolumeCBM          float64
	IsFCL              bool
	ContainerType      string
}

// FreightPricer computes route-leg freight charges for the four transport
// modes. All intermediate math is exact decimal; floats only at the edges.
type FreightPricer struct {
	cfg    models.EngineConfig
	logger *zap.Logger
}

// NewFreightPricer creates a FreightPricer.
func NewFreightPricer(cfg models.EngineConfig, logger *zap.Logger) *FreightPricer {
	return &FreightPricer{cfg: cfg, logger: logger}
}

// DimensionalWeightKg computes volumetric weight from centimeter dimensions:
// (L/100 * W/100 * H/100 * 1000) / divisor.
func DimensionalWeightKg(dims models.Dimensions, divisor float64) (decimal.Decimal, error) {
	if divisor <= 0 {
		return decimal.Zero, fmt.Errorf("dimensional weight divisor must be positive, got %v", divisor)
	}
	hundred := decimal.NewFromInt(100)
	l := decimal.NewFromFloat(dims.LengthCm).Div(hundred)
	w := decimal.NewFromFloat(dims.WidthCm).Div(hundred)
	h := decimal.NewFromFloat(dims.HeightCm).Div(hundred)
	return l.Mul(w).Mul(h).Mul(decimal.NewFromInt(1000)).Div(decimal.NewFromFloat(divisor)), nil
}

// VolumeCBM converts centimeter dimensions to cubic meters.
func VolumeCBM(dims models.Dimensions) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	l := decimal.NewFromFloat(dims.LengthCm).Div(hundred)
	w := decimal.NewFromFloat(dims.WidthCm).Div(hundred)
	h := decimal.NewFromFloat(dims.HeightCm).Div(hundred)
	return l.Mul(w).Mul(h)
}

func (p *FreightPricer) markup(total decimal.Decimal) decimal.Decimal {
	pct := decimal.NewFromFloat(p.cfg.MarkupPercent).Div(decimal.NewFromInt(100))
	return total.Mul(pct)
}

func validateWeight(weightKg float64) (decimal.Decimal, error) {
	if weightKg <= 0 {
		return decimal.Zero, fmt.Errorf("weight must be positive, got %v kg", weightKg)
	}
	return decimal.NewFromFloat(weightKg), nil
}

// AirFreight prices the air formula: chargeable weight times per-kg rate on
// top of the base, plus fuel surcharge on the base and a security fee.
func (p *FreightPricer) AirFreight(s *models.CalculationSettings, weightKg float64, dims models.Dimensions) (*FreightBreakdown, error) {
	actual, err := validateWeight(weightKg)
	if err != nil {
		return nil, err
	}
	dimWeight, err := DimensionalWeightKg(dims, s.DimensionalWeightDivisor)
	if err != nil {
		return nil, err
	}

	chargeable := decimal.Max(actual, dimWeight)

	baseRate := decimal.NewFromFloat(s.BaseRate).
		Add(chargeable.Mul(decimal.NewFromFloat(s.PerKgRate)))
	fuelSurcharge := baseRate.Mul(decimal.NewFromFloat(s.FuelSurchargePercent).Div(decimal.NewFromInt(100)))
	securityFee := decimal.NewFromFloat(s.SecurityFee)

	total := baseRate.Add(fuelSurcharge).Add(securityFee)
	markup := p.markup(total)
	final := total.Add(markup)

	p.logger.Debug("air freight priced",
		zap.Float64("chargeable_kg", chargeable.InexactFloat64()),
		zap.Float64("total", final.InexactFloat64()))

	return &FreightBreakdown{
		Total:              final.InexactFloat64(),
		ChargeableWeightKg: chargeable.InexactFloat64(),
		VolumeCBM:          VolumeCBM(dims).InexactFloat64(),
		Transit:            transitAir,
		Breakdown: map[string]float64{
			"base_rate":      baseRate.InexactFloat64(),
			"fuel_surcharge": fuelSurcharge.InexactFloat64(),
			"security_fee":   securityFee.InexactFloat64(),
			"markup":         markup.InexactFloat64(),
		},
	}, nil
}

// SeaFreight prices the sea formula. Cargo that fits a container is priced
// FCL at the flat container price plus container fees; anything larger goes
// LCL at max(volume, weight-ton) pricing plus port and clearance fees.
func (p *FreightPricer) SeaFreight(s *models.CalculationSettings, weightKg float64, dims models.Dimensions) (*FreightBreakdown, error) {
	weight, err := validateWeight(weightKg)
	if err != nil {
		return nil, err
	}

	volume := VolumeCBM(dims)
	weightTon := weight.Div(decimal.NewFromInt(1000))

	if volume.LessThanOrEqual(decimal.NewFromFloat(s.Container20ftCBM)) {
		return p.seaFCL(s, volume, "20ft", s.Container20ftPrice), nil
	}
	if volume.LessThanOrEqual(decimal.NewFromFloat(s.Container40ftCBM)) {
		return p.seaFCL(s, volume, "40ft", s.Container40ftPrice), nil
	}

	// LCL
	costByVolume := volume.Mul(decimal.NewFromFloat(s.RatePerCBM))
	costByWeight := weightTon.Mul(decimal.NewFromFloat(s.RatePerTon))
	baseShipping := decimal.Max(costByVolume, costByWeight)

	oceanBase := decimal.NewFromFloat(s.OceanFreightBase)
	originHandling := decimal.NewFromFloat(s.PortOriginHandling)
	destHandling := decimal.NewFromFloat(s.PortDestinationHandling)
	documentation := decimal.NewFromFloat(s.DocumentationFee)
	customs := decimal.NewFromFloat(s.CustomsClearanceFee)
	delivery := decimal.NewFromFloat(s.DestinationDeliveryFee)

	total := oceanBase.Add(baseShipping).
		Add(originHandling).Add(destHandling).
		Add(documentation).Add(customs).Add(delivery)
	markup := p.markup(total)
	final := total.Add(markup)

	p.logger.Debug("sea freight priced LCL",
		zap.Float64("volume_cbm", volume.InexactFloat64()),
		zap.Float64("total", final.InexactFloat64()))

	return &FreightBreakdown{
		Total:              final.InexactFloat64(),
		ChargeableWeightKg: weight.InexactFloat64(),
		VolumeCBM:          volume.InexactFloat64(),
		Transit:            transitSea,
		Breakdown: map[string]float64{
			"ocean_freight_base":        oceanBase.InexactFloat64(),
			"base_shipping":             baseShipping.InexactFloat64(),
			"port_origin_handling":      originHandling.InexactFloat64(),
			"port_destination_handling": destHandling.InexactFloat64(),
			"documentation_fee":         documentation.InexactFloat64(),
			"customs_clearance_fee":     customs.InexactFloat64(),
			"destination_delivery_fee":  delivery.InexactFloat64(),
			"markup":                    markup.InexactFloat64(),
		},
	}, nil
}

func (p *FreightPricer) seaFCL(s *models.CalculationSettings, volume decimal.Decimal, containerType string, containerPrice float64) *FreightBreakdown {
	base := decimal.NewFromFloat(containerPrice)
	originFees := decimal.NewFromFloat(s.ContainerOriginFees)
	destFees := decimal.NewFromFloat(s.ContainerDestinationFees)
	customs := decimal.NewFromFloat(s.ContainerCustomsFee)
	delivery := decimal.NewFromFloat(s.ContainerDeliveryFee)

	total := base.Add(originFees).Add(destFees).Add(customs).Add(delivery)
	markup := p.markup(total)
	final := total.Add(markup)

	p.logger.Debug("sea freight priced FCL",
		zap.String("container", containerType),
		zap.Float64("total", final.InexactFloat64()))

	return &FreightBreakdown{
		Total:         final.InexactFloat64(),
		VolumeCBM:     volume.InexactFloat64(),
		Transit:       transitSea,
		IsFCL:         true,
		ContainerType: containerType,
		Breakdown: map[string]float64{
			"ocean_freight_base": base.InexactFloat64(),
			"origin_fees":        originFees.InexactFloat64(),
			"destination_fees":   destFees.InexactFloat64(),
			"customs_fee":        customs.InexactFloat64(),
			"delivery_fee":       delivery.InexactFloat64(),
			"markup":             markup.InexactFloat64(),
		},
	}
}

// RailFreight prices the rail formula: base route cost plus per-kg charge,
// terminal handling and customs.
func (p *FreightPricer) RailFreight(s *models.CalculationSettings, weightKg float64) (*FreightBreakdown, error) {
	weight, err := validateWeight(weightKg)
	if err != nil {
		return nil, err
	}

	baseRate := decimal.NewFromFloat(s.BaseRateRail).
		Add(weight.Mul(decimal.NewFromFloat(s.PerKgRateRail)))
	terminalHandling := decimal.NewFromFloat(s.TerminalHandlingFee)
	customs := decimal.NewFromFloat(s.CustomsFeeRail)

	total := baseRate.Add(terminalHandling).Add(customs)
	markup := p.markup(total)
	final := total.Add(markup)

	p.logger.Debug("rail freight priced", zap.Float64("total", final.InexactFloat64()))

	return &FreightBreakdown{
		Total:              final.InexactFloat64(),
		ChargeableWeightKg: weight.InexactFloat64(),
		Transit:            transitRail,
		Breakdown: map[string]float64{
			"base_rate":         baseRate.InexactFloat64(),
			"terminal_handling": terminalHandling.InexactFloat64(),
			"customs_fee":       customs.InexactFloat64(),
			"markup":            markup.InexactFloat64(),
		},
	}, nil
}

// TruckFreight prices the road formula. Below 10,000 lbs it uses LTL
// hundredweight pricing with a freight-class multiplier; at or above that it
// switches to a flat FTL rate scaled from the per-CWT base.
func (p *FreightPricer) TruckFreight(s *models.CalculationSettings, weightKg float64, freightClass int) (*FreightBreakdown, error) {
	weight, err := validateWeight(weightKg)
	if err != nil {
		return nil, err
	}
	if freightClass <= 0 {
		freightClass = p.cfg.DefaultFreightClass
	}

	weightLbs := weight.Mul(lbsPerKg)

	var baseRate, fuelSurcharge, accessorials decimal.Decimal
	if weightLbs.LessThan(ftlThresholdLbs) {
		cwt := weightLbs.Div(decimal.NewFromInt(100))
		classMultiplier := decimal.NewFromInt(int64(freightClass)).Div(decimal.NewFromInt(100))
		baseRate = cwt.Mul(decimal.NewFromFloat(s.BaseRateTruck)).Mul(classMultiplier)
		fuelSurcharge = baseRate.Mul(decimal.NewFromFloat(s.FuelSurchargePercent).Div(decimal.NewFromInt(100)))
		accessorials = decimal.NewFromFloat(s.HandlingFee)
		if s.HandlingFee == 0 {
			accessorials = decimal.NewFromInt(50)
		}
	} else {
		baseRate = decimal.NewFromFloat(s.BaseRateTruck).Mul(decimal.NewFromInt(40))
		fuelPct := decimal.NewFromFloat(s.FuelSurchargePercent)
		if s.FuelSurchargePercent == 0 {
			fuelPct = decimal.NewFromInt(20)
		}
		fuelSurcharge = baseRate.Mul(fuelPct.Div(decimal.NewFromInt(100)))
		accessorials = decimal.Zero
	}

	total := baseRate.Add(fuelSurcharge).Add(accessorials)
	markup := p.markup(total)
	final := total.Add(markup)

	p.logger.Debug("truck freight priced",
		zap.Float64("weight_lbs", weightLbs.InexactFloat64()),
		zap.Float64("total", final.InexactFloat64()))

	return &FreightBreakdown{
		Total:              final.InexactFloat64(),
		ChargeableWeightKg: weight.InexactFloat64(),
		Transit:            transitTruck,
		Breakdown: map[string]float64{
			"base_rate":      baseRate.InexactFloat64(),
			"fuel_surcharge": fuelSurcharge.InexactFloat64(),
			"accessorials":   accessorials.InexactFloat64(),
			"markup":         markup.InexactFloat64(),
		},
	}, nil
}
