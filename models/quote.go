package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransitRange is an estimated door-to-door window in days.
type TransitRange struct {
	MinDays int `json:"min_days"`
	MaxDays int `json:"max_days"`
}

// CourierRate is a single rate returned by the external rate gateway.
type CourierRate struct {
	RateID          string  `json:"rate_id"`
	Courier         string  `json:"courier"`
	ServiceName     string  `json:"service_name"`
	TotalCharge     float64 `json:"total_charge"`
	Currency        string  `json:"currency"`
	MinDeliveryDays int     `json:"min_delivery_days"`
	MaxDeliveryDays int     `json:"max_delivery_days"`
}

// Quote is one priced shipping option presented to the customer.
type Quote struct {
	Mode        string       `json:"mode"`
	Carrier     string       `json:"carrier,omitempty"`
	ServiceName string       `json:"service_name"`
	Total       float64      `json:"total"`
	Currency    string       `json:"currency"`
	Transit     TransitRange `json:"transit"`

	// Breakdown itemizes the charge components of the final total.
	Breakdown map[string]float64 `json:"breakdown,omitempty"`

	PickupCost      float64 `json:"pickup_cost"`
	PickupIncluded  bool    `json:"pickup_included"`
	PickupAvailable bool    `json:"pickup_available"`

	// ChargeableWeightKg is the weight the route formula actually billed,
	// using the resolved settings' dimensional divisor. Zero for pure
	// gateway quotes, where the courier prices weight itself.
	ChargeableWeightKg float64 `json:"chargeable_weight_kg,omitempty"`

	// RateID is set when leg one (or the whole quote) came from the
	// external gateway and can be booked by reference.
	RateID string `json:"rate_id,omitempty"`

	// Drop-off handover: the customer brings the parcel to a carrier
	// location instead of the carrier collecting it.
	RequiresDropOff     bool   `json:"requires_drop_off,omitempty"`
	DropOffInstructions string `json:"drop_off_instructions,omitempty"`

	Priority int `json:"-"`

	// IsBrokerHandled marks quotes the brokerage fulfills internally
	// rather than through a courier gateway.
	IsBrokerHandled bool `json:"is_broker_handled"`
	IsBuyAndShip    bool `json:"is_buy_and_ship"`

	// Two-leg international parcel quotes carry both legs.
	Leg1 *Leg1Courier `json:"leg1,omitempty"`
	Leg2 *Leg2Route   `json:"leg2,omitempty"`
}

// Leg1Courier is the origin-to-warehouse courier leg of a combined quote.
type Leg1Courier struct {
	RateID      string  `json:"rate_id"`
	Courier     string  `json:"courier"`
	ServiceName string  `json:"service_name"`
	Cost        float64 `json:"cost"`
	Currency    string  `json:"currency"`
	MinDays     int     `json:"min_days"`
	MaxDays     int     `json:"max_days"`
}

// Leg2Route is the warehouse-to-destination route leg of a combined quote.
type Leg2Route struct {
	Mode    string       `json:"mode"`
	Carrier string       `json:"carrier,omitempty"`
	Cost    float64      `json:"cost"`
	Transit TransitRange `json:"transit"`
}

// QuoteStatus distinguishes an empty result set that means "no service on
// this lane" from one caused by upstream failure.
type QuoteStatus string

const (
	QuoteStatusOK                  QuoteStatus = "ok"
	QuoteStatusNoService           QuoteStatus = "no_service"
	QuoteStatusUpstreamUnavailable QuoteStatus = "upstream_unavailable"
)

// QuoteRequest is the inbound calculation payload.
type QuoteRequest struct {
	Origin      Address    `json:"origin" binding:"required"`
	Destination Address    `json:"destination" binding:"required"`
	WeightKg    float64    `json:"weight" binding:"required,gt=0"`
	Dimensions  Dimensions `json:"dimensions" binding:"required"`

	// Category is inferred from weight when omitted.
	Category ShippingCategory `json:"category,omitempty"`

	DeclaredValue float64 `json:"declared_value,omitempty"`
	ItemTitle     string  `json:"item_title,omitempty"`

	// SkipOriginToWarehouse marks buy-and-ship orders already at (or
	// inbound to) the warehouse; only the outbound leg is priced.
	SkipOriginToWarehouse bool `json:"skip_origin_to_warehouse,omitempty"`

	FreightClass int `json:"freight_class,omitempty"`
}

// QuoteResult is the calculation response: the session token plus options.
type QuoteResult struct {
	SessionID string           `json:"session_id"`
	Status    QuoteStatus      `json:"status"`
	Category  ShippingCategory `json:"category"`
	Quotes    []Quote          `json:"quotes"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// QuoteSession persists a calculation so one of its options can later be
// converted into a shipment. Request and Quotes are stored as JSON blobs.
type QuoteSession struct {
	ID        string           `gorm:"type:uuid;primaryKey" json:"id"`
	Request   QuoteRequest     `gorm:"serializer:json;type:jsonb" json:"request"`
	Quotes    []Quote          `gorm:"serializer:json;type:jsonb" json:"quotes"`
	Status    QuoteStatus      `gorm:"type:varchar(30);default:'ok'" json:"status"`
	Category  ShippingCategory `gorm:"type:varchar(20)" json:"category"`
	Converted bool             `gorm:"default:false" json:"converted"`
	ExpiresAt time.Time        `gorm:"index" json:"expires_at"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the session id.
func (s *QuoteSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Expired reports whether the session can no longer be converted.
func (s *QuoteSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// TrackingCheckpoint is one scan event in a shipment's tracking history.
type TrackingCheckpoint struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Location     string `json:"location"`
	CheckpointAt string `json:"checkpoint_at"`
}

// TrackingStatus is the gateway's view of a booked shipment in transit.
type TrackingStatus struct {
	TrackingNumber    string               `json:"tracking_number"`
	Status            string               `json:"status"`
	EstimatedDelivery string               `json:"estimated_delivery,omitempty"`
	Checkpoints       []TrackingCheckpoint `json:"checkpoints,omitempty"`
}

// ShipmentLabel is what the gateway returns after booking a rate.
type ShipmentLabel struct {
	ShipmentID      string `json:"shipment_id"`
	TrackingNumber  string `json:"tracking_number"`
	LabelURL        string `json:"label_url"`
	TrackingPageURL string `json:"tracking_page_url"`
}

// Shipment is the booked order created when a quote session converts.
type Shipment struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	ShipmentNumber string `gorm:"type:varchar(20);uniqueIndex;not null" json:"shipment_number"`
	SessionID      string `gorm:"type:uuid;index;not null" json:"session_id"`

	Mode            string `gorm:"type:varchar(20)" json:"mode"`
	Carrier         string `gorm:"type:varchar(100)" json:"carrier"`
	ServiceName     string `gorm:"type:varchar(200)" json:"service_name"`
	IsBrokerHandled bool   `gorm:"default:false" json:"is_broker_handled"`
	IsBuyAndShip    bool   `gorm:"default:false" json:"is_buy_and_ship"`

	Origin      Address `gorm:"serializer:json;type:jsonb" json:"origin"`
	Destination Address `gorm:"serializer:json;type:jsonb" json:"destination"`

	WeightKg           float64 `json:"weight_kg"`
	ChargeableWeightKg float64 `json:"chargeable_weight_kg"`
	VolumeCBM          float64 `json:"volume_cbm"`

	ShippingCost  float64 `json:"shipping_cost"`
	PickupCost    float64 `json:"pickup_cost"`
	InsuranceCost float64 `json:"insurance_cost"`
	TotalCost     float64 `json:"total_cost"`
	Currency      string  `gorm:"type:varchar(3);default:'USD'" json:"currency"`

	// Gateway booking details, when leg one was booked by rate id.
	RateID            string `gorm:"type:varchar(100)" json:"rate_id,omitempty"`
	GatewayShipmentID string `gorm:"type:varchar(100)" json:"gateway_shipment_id,omitempty"`
	TrackingNumber    string `gorm:"type:varchar(100)" json:"tracking_number,omitempty"`
	LabelURL          string `gorm:"type:varchar(500)" json:"label_url,omitempty"`
	TrackingPageURL   string `gorm:"type:varchar(500)" json:"tracking_page_url,omitempty"`

	Status    string    `gorm:"type:varchar(30);default:'created'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ShipmentCreatedEvent is published to SNS when a session converts.
type ShipmentCreatedEvent struct {
	ShipmentNumber string  `json:"shipment_number"`
	SessionID      string  `json:"session_id"`
	Mode           string  `json:"mode"`
	Carrier        string  `json:"carrier"`
	TotalCost      float64 `json:"total_cost"`
	Currency       string  `json:"currency"`
	TrackingNumber string  `json:"tracking_number,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
