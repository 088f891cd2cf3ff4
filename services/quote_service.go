package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"quote-service/events"
	"quote-service/models"
	"quote-service/providers"
	"quote-service/repository"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// Parcels above this weight always move as broker-handled freight. The cut
// is fixed; the configurable pickup threshold only decides when the standard
// path makes pickup mandatory.
const brokerHandledWeightKg = 100.0

// QuoteService defines the business logic interface.
type QuoteService interface {
	CalculateQuotes(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResult, *ServiceError)
	GetQuoteSession(ctx context.Context, id string) (*models.QuoteSession, *ServiceError)
	ConvertQuote(ctx context.Context, id string, quoteIndex int) (*models.Shipment, *ServiceError)
	TrackShipment(ctx context.Context, shipmentNumber string) (*models.TrackingStatus, *ServiceError)
}

type quoteServiceImpl struct {
	routes     repository.RouteRepository
	warehouses repository.WarehouseRepository
	quotes     repository.QuoteRepository
	resolver   *SettingsResolver
	pricer     *FreightPricer
	pickup     *PickupCalculator
	provider   providers.RateProvider
	publisher  events.Publisher
	cfg        models.EngineConfig
	logger     *zap.Logger
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(
	routes repository.RouteRepository,
	warehouses repository.WarehouseRepository,
	quotes repository.QuoteRepository,
	resolver *SettingsResolver,
	pricer *FreightPricer,
	pickup *PickupCalculator,
	provider providers.RateProvider,
	publisher events.Publisher,
	cfg models.EngineConfig,
	logger *zap.Logger,
) QuoteService {
	return &quoteServiceImpl{
		routes:     routes,
		warehouses: warehouses,
		quotes:     quotes,
		resolver:   resolver,
		pricer:     pricer,
		pickup:     pickup,
		provider:   provider,
		publisher:  publisher,
		cfg:        cfg,
		logger:     logger,
	}
}

// CalculateQuotes runs the fulfillment decision tree, prices every eligible
// option and persists the result as a convertible session.
func (s *quoteServiceImpl) CalculateQuotes(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResult, *ServiceError) {
	if req.WeightKg <= 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "weight must be positive"}
	}
	if !req.Dimensions.Positive() {
		return nil, &ServiceError{StatusCode: 400, Message: "dimensions must be positive"}
	}
	if !req.Origin.HasCountry() || !req.Destination.HasCountry() {
		return nil, &ServiceError{StatusCode: 400, Message: "origin and destination country are required"}
	}
	if req.Origin.Country == req.Destination.Country {
		if svcErr := s.validateLocalAddresses(ctx, req); svcErr != nil {
			return nil, svcErr
		}
	}

	category := req.Category
	if category == "" {
		category = models.InferCategory(req.WeightKg)
	} else if !category.Valid() {
		return nil, &ServiceError{StatusCode: 400, Message: "unknown shipping category: " + string(category)}
	}

	quotes, status := s.gatherQuotes(ctx, req, category)

	session := &models.QuoteSession{
		Request:   *req,
		Quotes:    quotes,
		Status:    status,
		Category:  category,
		ExpiresAt: time.Now().Add(s.cfg.QuoteTTL),
	}
	if err := s.quotes.SaveSession(ctx, session); err != nil {
		s.logger.Error("failed to persist quote session", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "failed to save quote session"}
	}

	return &models.QuoteResult{
		SessionID: session.ID,
		Status:    status,
		Category:  category,
		Quotes:    quotes,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// gatherQuotes picks the fulfillment path and returns the priced options.
func (s *quoteServiceImpl) gatherQuotes(ctx context.Context, req *models.QuoteRequest, category models.ShippingCategory) ([]models.Quote, models.QuoteStatus) {
	// Local shipping: the customer books a courier directly, no warehouse
	// involvement.
	if req.Origin.Country == req.Destination.Country {
		return s.localCourierQuotes(ctx, req)
	}

	warehouse := s.selectWarehouse(ctx, req.Origin.Country, category)

	isInternationalParcel := (category == models.CategorySmallParcel || category == models.CategoryHeavyParcel) &&
		req.WeightKg <= brokerHandledWeightKg
	isBrokerHandled := category == models.CategoryVehicle || req.WeightKg > brokerHandledWeightKg

	if isInternationalParcel && !req.SkipOriginToWarehouse {
		return s.internationalParcelQuotes(ctx, req, category, warehouse)
	}

	// Route origin: the warehouse country when the parcel is already there
	// (buy-and-ship) or when the brokerage collects it.
	routeOrigin := req.Origin.Country
	if req.SkipOriginToWarehouse || isBrokerHandled {
		routeOrigin = warehouse.Country
	}

	// Broker-handled freight cannot move without a pickup operation at
	// the origin.
	if isBrokerHandled && !req.SkipOriginToWarehouse {
		if !s.pickup.IsAvailable(ctx, req.Origin, category) {
			s.logger.Warn("pickup not available for broker-handled shipment",
				zap.String("country", req.Origin.Country),
				zap.String("state", req.Origin.State),
				zap.String("category", string(category)))
			return []models.Quote{}, models.QuoteStatusNoService
		}
	}

	pickupRequired := false
	if !req.SkipOriginToWarehouse {
		if isBrokerHandled {
			pickupRequired = true
		} else {
			pickupRequired = s.pickupRequired(req.WeightKg, category)
		}
	}

	routes, err := s.routes.FindAvailable(ctx, routeOrigin, req.Destination.Country)
	if err != nil {
		s.logger.Error("route lookup failed", zap.Error(err))
		return []models.Quote{}, models.QuoteStatusUpstreamUnavailable
	}

	allowed := allowedModeSet(category)
	quotes := make([]models.Quote, 0, len(routes))
	for i := range routes {
		route := &routes[i]
		if !allowed[route.TransportMode.Type] {
			continue
		}

		breakdown, err := s.priceRoute(ctx, route, category, req)
		if err != nil {
			s.logger.Warn("route pricing failed, skipping route",
				zap.Uint("route_id", route.ID), zap.Error(err))
			continue
		}

		q := routeQuote(route, breakdown)
		q.IsBrokerHandled = isBrokerHandled

		switch {
		case req.SkipOriginToWarehouse:
			q.IsBuyAndShip = true
		case pickupRequired:
			cost := s.pickup.Cost(ctx, req.Origin, warehouse, req.WeightKg, req.Dimensions, category)
			q.PickupCost = cost
			q.PickupIncluded = true
			q.PickupAvailable = true
			q.Total = addMoney(q.Total, cost)
			q.Breakdown["pickup"] = cost
		default:
			// Pickup optional: price the drop-off courier leg to the
			// warehouse instead.
			if cost, ok := s.originToWarehouseCost(ctx, req, warehouse); ok {
				q.Total = addMoney(q.Total, cost)
				q.Breakdown["origin_to_warehouse"] = cost
			}
			q.PickupAvailable = s.pickup.IsAvailable(ctx, req.Origin, category)
		}

		quotes = append(quotes, q)
	}

	if len(quotes) == 0 {
		return quotes, models.QuoteStatusNoService
	}

	// Priority routes first, then cheapest.
	sort.SliceStable(quotes, func(i, j int) bool {
		if quotes[i].Priority != quotes[j].Priority {
			return quotes[i].Priority > quotes[j].Priority
		}
		return quotes[i].Total < quotes[j].Total
	})

	return quotes, models.QuoteStatusOK
}

// validateLocalAddresses rejects same-country requests the courier gateway
// could never rate: both addresses must be complete, and the gateway gets a
// chance to veto the destination. A gateway failure is not the customer's
// fault, so validation errors fall through to rating.
func (s *quoteServiceImpl) validateLocalAddresses(ctx context.Context, req *models.QuoteRequest) *ServiceError {
	if !req.Origin.Complete() || !req.Destination.Complete() {
		return &ServiceError{StatusCode: 400, Message: "local shipping requires complete origin and destination addresses"}
	}
	ok, err := s.provider.ValidateAddress(ctx, req.Destination)
	if err != nil {
		s.logger.Warn("address validation unavailable, proceeding to rating", zap.Error(err))
		return nil
	}
	if !ok {
		return &ServiceError{StatusCode: 400, Message: "destination address was rejected by the courier gateway"}
	}
	return nil
}

// localCourierQuotes serves same-country shipments straight from the gateway.
func (s *quoteServiceImpl) localCourierQuotes(ctx context.Context, req *models.QuoteRequest) ([]models.Quote, models.QuoteStatus) {
	rates, err := s.provider.GetRates(ctx, rateQuery(req, req.Destination))
	if err != nil {
		s.logger.Error("gateway rates failed for local shipping", zap.Error(err))
		return []models.Quote{}, models.QuoteStatusUpstreamUnavailable
	}
	if len(rates) == 0 {
		return []models.Quote{}, models.QuoteStatusNoService
	}

	quotes := make([]models.Quote, 0, len(rates))
	for _, rate := range rates {
		q := models.Quote{
			Mode:        "local_courier",
			Carrier:     rate.Courier,
			ServiceName: rate.ServiceName,
			Total:       rate.TotalCharge,
			Currency:    rate.Currency,
			Transit:     models.TransitRange{MinDays: rate.MinDeliveryDays, MaxDays: rate.MaxDeliveryDays},
			RateID:      rate.RateID,
			Breakdown:   map[string]float64{"courier_charge": rate.TotalCharge},
		}
		if isDropOffCarrier(rate.Courier) {
			q.RequiresDropOff = true
			q.DropOffInstructions = dropOffInstructions(rate.Courier)
		}
		quotes = append(quotes, q)
	}

	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Total < quotes[j].Total })
	return quotes, models.QuoteStatusOK
}

// internationalParcelQuotes builds two-leg options: a courier drop-off leg to
// the warehouse crossed with every eligible long-haul route onward.
func (s *quoteServiceImpl) internationalParcelQuotes(ctx context.Context, req *models.QuoteRequest, category models.ShippingCategory, warehouse models.Address) ([]models.Quote, models.QuoteStatus) {
	rates, err := s.provider.GetRates(ctx, rateQuery(req, warehouse))
	if err != nil {
		s.logger.Error("gateway rates failed for warehouse leg", zap.Error(err))
		return []models.Quote{}, models.QuoteStatusUpstreamUnavailable
	}
	if len(rates) == 0 {
		s.logger.Warn("no courier rates to warehouse, cannot quote international parcel")
		return []models.Quote{}, models.QuoteStatusNoService
	}

	routes, err := s.routes.FindAvailable(ctx, warehouse.Country, req.Destination.Country)
	if err != nil {
		s.logger.Error("route lookup failed", zap.Error(err))
		return []models.Quote{}, models.QuoteStatusUpstreamUnavailable
	}
	if len(routes) == 0 {
		s.logger.Warn("no routes from warehouse to destination",
			zap.String("warehouse", warehouse.Country),
			zap.String("destination", req.Destination.Country))
		return []models.Quote{}, models.QuoteStatusNoService
	}

	allowed := allowedModeSet(category)
	quotes := make([]models.Quote, 0, len(rates)*len(routes))

	for _, rate := range rates {
		for i := range routes {
			route := &routes[i]
			if !allowed[route.TransportMode.Type] {
				continue
			}

			breakdown, err := s.priceRoute(ctx, route, category, req)
			if err != nil {
				s.logger.Warn("route pricing failed, skipping route",
					zap.Uint("route_id", route.ID), zap.Error(err))
				continue
			}

			q := routeQuote(route, breakdown)
			q.Total = addMoney(rate.TotalCharge, breakdown.Total)
			q.RateID = rate.RateID
			q.Transit = models.TransitRange{
				MinDays: rate.MinDeliveryDays + breakdown.Transit.MinDays,
				MaxDays: rate.MaxDeliveryDays + breakdown.Transit.MaxDays,
			}
			q.Leg1 = &models.Leg1Courier{
				RateID:      rate.RateID,
				Courier:     rate.Courier,
				ServiceName: rate.ServiceName,
				Cost:        rate.TotalCharge,
				Currency:    rate.Currency,
				MinDays:     rate.MinDeliveryDays,
				MaxDays:     rate.MaxDeliveryDays,
			}
			q.Leg2 = &models.Leg2Route{
				Mode:    route.TransportMode.Type,
				Carrier: route.Carrier,
				Cost:    breakdown.Total,
				Transit: breakdown.Transit,
			}
			q.Breakdown = map[string]float64{
				"leg1_origin_to_warehouse":      rate.TotalCharge,
				"leg2_warehouse_to_destination": breakdown.Total,
			}
			// The customer hands the parcel to the leg-one courier.
			q.RequiresDropOff = true
			q.DropOffInstructions = dropOffInstructions(rate.Courier)

			quotes = append(quotes, q)
		}
	}

	if len(quotes) == 0 {
		return quotes, models.QuoteStatusNoService
	}

	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Total < quotes[j].Total })
	return quotes, models.QuoteStatusOK
}

// priceRoute resolves settings then runs the formula for the route's mode.
func (s *quoteServiceImpl) priceRoute(ctx context.Context, route *models.Route, category models.ShippingCategory, req *models.QuoteRequest) (*FreightBreakdown, error) {
	settings, err := s.resolver.Resolve(ctx, route, route.TransportModeID, category)
	if err != nil {
		return nil, err
	}

	var breakdown *FreightBreakdown
	switch route.TransportMode.Type {
	case models.ModeAir:
		breakdown, err = s.pricer.AirFreight(settings, req.WeightKg, req.Dimensions)
	case models.ModeSea:
		breakdown, err = s.pricer.SeaFreight(settings, req.WeightKg, req.Dimensions)
	case models.ModeRail:
		breakdown, err = s.pricer.RailFreight(settings, req.WeightKg)
	case models.ModeTruck:
		breakdown, err = s.pricer.TruckFreight(settings, req.WeightKg, req.FreightClass)
	default:
		return nil, &ServiceError{StatusCode: 500, Message: "unknown transport mode: " + route.TransportMode.Type}
	}
	if err != nil {
		return nil, err
	}

	// A configured range on the transport mode overrides the formula's
	// fixed transit window.
	if min, max := route.TransportMode.TransitDaysMin, route.TransportMode.TransitDaysMax; min > 0 && max >= min {
		breakdown.Transit = models.TransitRange{MinDays: min, MaxDays: max}
	}
	return breakdown, nil
}

// originToWarehouseCost prices the drop-off courier leg for heavy shipments
// that skip pickup. Best effort; absent rates just omit the component.
func (s *quoteServiceImpl) originToWarehouseCost(ctx context.Context, req *models.QuoteRequest, warehouse models.Address) (float64, bool) {
	rates, err := s.provider.GetRates(ctx, rateQuery(req, warehouse))
	if err != nil {
		s.logger.Warn("gateway rates failed for origin-to-warehouse leg", zap.Error(err))
		return 0, false
	}
	if len(rates) == 0 {
		return 0, false
	}
	cheapest := rates[0]
	for _, r := range rates[1:] {
		if r.TotalCharge < cheapest.TotalCharge {
			cheapest = r
		}
	}
	return cheapest.TotalCharge, true
}

func (s *quoteServiceImpl) pickupRequired(weightKg float64, category models.ShippingCategory) bool {
	if weightKg >= s.cfg.PickupWeightThresholdKg {
		return true
	}
	return category == models.CategoryVehicle || category == models.CategorySuperHeavy
}

// selectWarehouse returns the highest-priority active warehouse for the
// country that accepts the category, or the configured fallback.
func (s *quoteServiceImpl) selectWarehouse(ctx context.Context, country string, category models.ShippingCategory) models.Address {
	warehouses, err := s.warehouses.FindActiveByCountry(ctx, country)
	if err != nil {
		s.logger.Warn("warehouse lookup failed, using fallback", zap.Error(err))
		return s.cfg.FallbackWarehouse
	}
	for i := range warehouses {
		if warehouses[i].SupportsCategory(category) {
			return warehouses[i].Address()
		}
	}
	return s.cfg.FallbackWarehouse
}

// GetQuoteSession loads a previously calculated session.
func (s *quoteServiceImpl) GetQuoteSession(ctx context.Context, id string) (*models.QuoteSession, *ServiceError) {
	session, err := s.quotes.FindSession(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "quote session not found"}
		}
		s.logger.Error("quote session lookup failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "failed to load quote session"}
	}
	return session, nil
}

// ConvertQuote turns one option of a live session into a shipment, booking
// the courier leg when the option carries a bookable rate.
func (s *quoteServiceImpl) ConvertQuote(ctx context.Context, id string, quoteIndex int) (*models.Shipment, *ServiceError) {
	session, svcErr := s.GetQuoteSession(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if session.Converted {
		return nil, &ServiceError{StatusCode: 409, Message: "quote session already converted"}
	}
	if session.Expired(time.Now()) {
		return nil, &ServiceError{StatusCode: 410, Message: "quote session has expired"}
	}
	if quoteIndex < 0 || quoteIndex >= len(session.Quotes) {
		return nil, &ServiceError{StatusCode: 400, Message: "quote index out of range"}
	}

	selected := session.Quotes[quoteIndex]
	req := session.Request

	// The quote already carries the chargeable weight its formula billed;
	// gateway-only quotes fall back to the actual weight.
	chargeable := req.WeightKg
	if selected.ChargeableWeightKg > chargeable {
		chargeable = selected.ChargeableWeightKg
	}

	insurance := decimal.NewFromFloat(req.DeclaredValue).
		Mul(decimal.NewFromFloat(0.01)).InexactFloat64()

	shipment := &models.Shipment{
		ShipmentNumber:     newShipmentNumber(),
		SessionID:          session.ID,
		Mode:               selected.Mode,
		Carrier:            selected.Carrier,
		ServiceName:        selected.ServiceName,
		IsBrokerHandled:    selected.IsBrokerHandled,
		IsBuyAndShip:       selected.IsBuyAndShip,
		Origin:             req.Origin,
		Destination:        req.Destination,
		WeightKg:           req.WeightKg,
		ChargeableWeightKg: chargeable,
		VolumeCBM:          VolumeCBM(req.Dimensions).InexactFloat64(),
		ShippingCost:       addMoney(selected.Total, -selected.PickupCost),
		PickupCost:         selected.PickupCost,
		InsuranceCost:      insurance,
		TotalCost:          addMoney(selected.Total, insurance),
		Currency:           currencyOr(selected.Currency, "USD"),
		RateID:             selected.RateID,
	}

	// Book the courier leg when the selection references a gateway rate.
	if selected.RateID != "" {
		destination := req.Destination
		if selected.Leg1 != nil {
			destination = s.selectWarehouse(ctx, req.Origin.Country, session.Category)
		}
		label, err := s.provider.CreateShipment(ctx, rateQuery(&req, destination), selected.RateID)
		if err != nil {
			s.logger.Warn("courier booking failed, shipment created without label",
				zap.String("rate_id", selected.RateID), zap.Error(err))
		} else if label != nil {
			shipment.GatewayShipmentID = label.ShipmentID
			shipment.TrackingNumber = label.TrackingNumber
			shipment.LabelURL = label.LabelURL
			shipment.TrackingPageURL = label.TrackingPageURL
		}
	}

	if err := s.quotes.CreateShipment(ctx, shipment); err != nil {
		s.logger.Error("failed to persist shipment", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "failed to create shipment"}
	}
	if err := s.quotes.MarkConverted(ctx, session.ID); err != nil {
		s.logger.Error("failed to mark session converted", zap.Error(err))
	}

	evt := models.ShipmentCreatedEvent{
		ShipmentNumber: shipment.ShipmentNumber,
		SessionID:      shipment.SessionID,
		Mode:           shipment.Mode,
		Carrier:        shipment.Carrier,
		TotalCost:      shipment.TotalCost,
		Currency:       shipment.Currency,
		TrackingNumber: shipment.TrackingNumber,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishShipmentCreated(ctx, evt); err != nil {
		s.logger.Error("failed to publish shipment created event", zap.Error(err))
	}

	return shipment, nil
}

// TrackShipment resolves a shipment by number and fetches its tracking status
// from the gateway.
func (s *quoteServiceImpl) TrackShipment(ctx context.Context, shipmentNumber string) (*models.TrackingStatus, *ServiceError) {
	shipment, err := s.quotes.FindShipmentByNumber(ctx, shipmentNumber)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "shipment not found"}
		}
		s.logger.Error("shipment lookup failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "failed to load shipment"}
	}
	if shipment.TrackingNumber == "" {
		return nil, &ServiceError{StatusCode: 404, Message: "no tracking available for this shipment"}
	}

	status, err := s.provider.Track(ctx, shipment.TrackingNumber)
	if err != nil {
		s.logger.Error("tracking lookup failed",
			zap.String("tracking_number", shipment.TrackingNumber), zap.Error(err))
		return nil, &ServiceError{StatusCode: 502, Message: "tracking service unavailable"}
	}
	return status, nil
}

// ---- helpers ----

// Carriers whose services hand over at a drop-off location.
var dropOffCarriers = []string{
	"usps", "united states postal service", "fedex office", "ups store",
	"dhl express servicepoint", "dhl ecommerce", "hk post", "sf express",
}

func isDropOffCarrier(carrier string) bool {
	name := strings.ToLower(carrier)
	for _, c := range dropOffCarriers {
		if strings.Contains(name, c) {
			return true
		}
	}
	return false
}

// Known-carrier handover instructions, with a generic fallback.
var dropOffInstructionsByCarrier = map[string]string{
	"usps":                         "Drop off your package at your local USPS Post Office or authorized USPS location. Bring a printed shipping label or use the QR code provided.",
	"united states postal service": "Drop off your package at your local USPS Post Office or authorized USPS location. Bring a printed shipping label or use the QR code provided.",
	"fedex office":                 "Drop off your package at a FedEx Office location. You can find the nearest one using the FedEx locator. Bring a printed shipping label.",
	"ups store":                    "Drop off your package at a UPS Store location. You can find the nearest one using the UPS locator. Bring a printed shipping label.",
	"dhl express servicepoint":     "Drop off your package at a DHL ServicePoint location. You can find the nearest one using the DHL locator. Bring a printed shipping label.",
	"dhl ecommerce":                "Drop off your package at a DHL ServicePoint location. You can find the nearest one using the DHL locator. Bring a printed shipping label.",
}

func dropOffInstructions(carrier string) string {
	name := strings.ToLower(carrier)
	for key, text := range dropOffInstructionsByCarrier {
		if strings.Contains(name, key) {
			return text
		}
	}
	return "Drop off your package at a " + carrier + " location. Check with the carrier for the nearest drop-off point and bring a printed shipping label."
}

func rateQuery(req *models.QuoteRequest, destination models.Address) providers.RateQuery {
	return providers.RateQuery{
		Origin:        req.Origin,
		Destination:   destination,
		WeightKg:      req.WeightKg,
		Dimensions:    req.Dimensions,
		DeclaredValue: req.DeclaredValue,
		ItemTitle:     req.ItemTitle,
	}
}

func routeQuote(route *models.Route, breakdown *FreightBreakdown) models.Quote {
	carrier := route.Carrier
	if carrier == "" {
		carrier = "Multiple Carriers"
	}
	bd := make(map[string]float64, len(breakdown.Breakdown))
	for k, v := range breakdown.Breakdown {
		bd[k] = v
	}
	return models.Quote{
		Mode:               route.TransportMode.Type,
		Carrier:            carrier,
		ServiceName:        route.TransportMode.Name,
		Total:              breakdown.Total,
		Currency:           "USD",
		Transit:            breakdown.Transit,
		Breakdown:          bd,
		Priority:           route.Priority,
		ChargeableWeightKg: breakdown.ChargeableWeightKg,
	}
}

func allowedModeSet(category models.ShippingCategory) map[string]bool {
	set := make(map[string]bool, 4)
	for _, m := range category.AllowedModes() {
		set[m] = true
	}
	return set
}

// addMoney adds two float amounts through decimal to avoid drift.
func addMoney(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).InexactFloat64()
}

func currencyOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}

func newShipmentNumber() string {
	return "SH-" + strings.ToUpper(uuid.NewString()[:8])
}
