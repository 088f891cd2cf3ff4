package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"quote-service/models"
)

const easyshipBaseURL = "https://public-api.easyship.com/2024-09"

// Defaults substituted when the caller's address is missing contact fields;
// the gateway rejects parcels without them.
const (
	defaultPhone       = "+1234567890"
	defaultOriginEmail = "shipping@brokerage.example"
	defaultDestEmail   = "customer@brokerage.example"
	defaultHSCode      = "999999"
	minCustomsValue    = 1.0
)

// EasyShipProvider implements RateProvider using the EasyShip API.
type EasyShipProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewEasyShipProvider creates a new EasyShipProvider.
func NewEasyShipProvider(apiKey string, logger *zap.Logger) *EasyShipProvider {
	return &EasyShipProvider{
		apiKey:  apiKey,
		baseURL: easyshipBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// ---- EasyShip API request/response structs ----

type easyshipAddress struct {
	ContactName   string `json:"contact_name"`
	CompanyName   string `json:"company_name,omitempty"`
	ContactPhone  string `json:"contact_phone"`
	ContactEmail  string `json:"contact_email"`
	Line1         string `json:"line_1"`
	Line2         string `json:"line_2,omitempty"`
	City          string `json:"city"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postal_code"`
	CountryAlpha2 string `json:"country_alpha2"`
}

type easyshipDimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type easyshipItem struct {
	Quantity             int                `json:"quantity"`
	ActualWeight         float64            `json:"actual_weight"`
	Dimensions           easyshipDimensions `json:"dimensions"`
	DeclaredCurrency     string             `json:"declared_currency"`
	DeclaredCustomsValue float64            `json:"declared_customs_value"`
	HSCode               string             `json:"hs_code"`
	Description          string             `json:"description"`
}

type easyshipParcel struct {
	Items []easyshipItem `json:"items"`
}

type easyshipUnits struct {
	Dimensions string `json:"dimensions"`
	Weight     string `json:"weight"`
}

type easyshipShippingSettings struct {
	Units          easyshipUnits `json:"units"`
	OutputCurrency string        `json:"output_currency"`
}

type easyshipRatesRequest struct {
	OriginAddress      easyshipAddress          `json:"origin_address"`
	DestinationAddress easyshipAddress          `json:"destination_address"`
	Incoterms          string                   `json:"incoterms"`
	Parcels            []easyshipParcel         `json:"parcels"`
	ShippingSettings   easyshipShippingSettings `json:"shipping_settings"`
}

type easyshipRate struct {
	CourierService struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"courier_service"`
	TotalCharge     float64 `json:"total_charge"`
	Currency        string  `json:"currency"`
	MinDeliveryTime int     `json:"min_delivery_time"`
	MaxDeliveryTime int     `json:"max_delivery_time"`
}

type easyshipRatesResponse struct {
	Rates []easyshipRate `json:"rates"`
}

type easyshipCourierSelection struct {
	SelectedCourierServiceID string `json:"selected_courier_service_id"`
	AllowFallback            bool   `json:"allow_courier_fallback"`
}

type easyshipShipmentRequest struct {
	OriginAddress      easyshipAddress          `json:"origin_address"`
	DestinationAddress easyshipAddress          `json:"destination_address"`
	Incoterms          string                   `json:"incoterms"`
	Parcels            []easyshipParcel         `json:"parcels"`
	ShippingSettings   easyshipShippingSettings `json:"shipping_settings"`
	CourierSelection   easyshipCourierSelection `json:"courier_selection"`
	BuyLabel           bool                     `json:"buy_label"`
}

type easyshipShipmentResponse struct {
	Shipment struct {
		EasyshipShipmentID string `json:"easyship_shipment_id"`
		TrackingPageURL    string `json:"tracking_page_url"`
		Trackings          []struct {
			TrackingNumber string `json:"tracking_number"`
		} `json:"trackings"`
		ShippingDocuments []struct {
			Category string `json:"category"`
			URL      string `json:"url"`
		} `json:"shipping_documents"`
	} `json:"shipment"`
}

type easyshipTracking struct {
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`
	ETADate        string `json:"eta_date"`
	Checkpoints    []struct {
		Status         string `json:"status"`
		Message        string `json:"message"`
		City           string `json:"city"`
		CountryAlpha2  string `json:"country_alpha2"`
		CheckpointTime string `json:"checkpoint_time"`
	} `json:"checkpoints"`
}

type easyshipTrackingsResponse struct {
	Trackings []easyshipTracking `json:"trackings"`
}

type easyshipAddressValidationRequest struct {
	Address easyshipAddress `json:"address"`
}

type easyshipAddressValidationResponse struct {
	Validation struct {
		Status string `json:"status"`
	} `json:"validation"`
}

// ---- RateProvider implementation ----

// GetRates requests courier rates for the parcel. Gateway failures are
// returned as errors; the caller decides how to degrade. An unconfigured
// provider rates nothing rather than erroring.
func (p *EasyShipProvider) GetRates(ctx context.Context, query RateQuery) ([]models.CourierRate, error) {
	if p.apiKey == "" {
		p.logger.Warn("easyship api key not configured, returning no rates")
		return nil, nil
	}

	reqBody := easyshipRatesRequest{
		OriginAddress:      toEasyshipAddress(query.Origin, defaultOriginEmail),
		DestinationAddress: toEasyshipAddress(query.Destination, defaultDestEmail),
		Incoterms:          "DDU",
		Parcels:            []easyshipParcel{{Items: []easyshipItem{toEasyshipItem(query)}}},
		ShippingSettings: easyshipShippingSettings{
			Units:          easyshipUnits{Dimensions: "cm", Weight: "kg"},
			OutputCurrency: "USD",
		},
	}

	var resp easyshipRatesResponse
	if err := p.doRequest(ctx, http.MethodPost, "/rates", reqBody, &resp); err != nil {
		return nil, fmt.Errorf("easyship GetRates: %w", err)
	}

	rates := make([]models.CourierRate, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		rates = append(rates, models.CourierRate{
			RateID:          r.CourierService.ID,
			Courier:         r.CourierService.Name,
			ServiceName:     r.CourierService.Name,
			TotalCharge:     r.TotalCharge,
			Currency:        r.Currency,
			MinDeliveryDays: r.MinDeliveryTime,
			MaxDeliveryDays: r.MaxDeliveryTime,
		})
	}

	return rates, nil
}

// CreateShipment books the selected courier rate and buys the label.
func (p *EasyShipProvider) CreateShipment(ctx context.Context, query RateQuery, rateID string) (*models.ShipmentLabel, error) {
	reqBody := easyshipShipmentRequest{
		OriginAddress:      toEasyshipAddress(query.Origin, defaultOriginEmail),
		DestinationAddress: toEasyshipAddress(query.Destination, defaultDestEmail),
		Incoterms:          "DDU",
		Parcels:            []easyshipParcel{{Items: []easyshipItem{toEasyshipItem(query)}}},
		ShippingSettings: easyshipShippingSettings{
			Units:          easyshipUnits{Dimensions: "cm", Weight: "kg"},
			OutputCurrency: "USD",
		},
		CourierSelection: easyshipCourierSelection{
			SelectedCourierServiceID: rateID,
			AllowFallback:            false,
		},
		BuyLabel: true,
	}

	var resp easyshipShipmentResponse
	if err := p.doRequest(ctx, http.MethodPost, "/shipments", reqBody, &resp); err != nil {
		return nil, fmt.Errorf("easyship CreateShipment: %w", err)
	}

	label := &models.ShipmentLabel{
		ShipmentID:      resp.Shipment.EasyshipShipmentID,
		TrackingPageURL: resp.Shipment.TrackingPageURL,
	}
	if len(resp.Shipment.Trackings) > 0 {
		label.TrackingNumber = resp.Shipment.Trackings[0].TrackingNumber
	}
	for _, doc := range resp.Shipment.ShippingDocuments {
		if doc.Category == "label" {
			label.LabelURL = doc.URL
			break
		}
	}

	return label, nil
}

// ValidateAddress asks the gateway whether the address is deliverable.
func (p *EasyShipProvider) ValidateAddress(ctx context.Context, address models.Address) (bool, error) {
	reqBody := easyshipAddressValidationRequest{
		Address: toEasyshipAddress(address, defaultDestEmail),
	}

	var resp easyshipAddressValidationResponse
	if err := p.doRequest(ctx, http.MethodPost, "/addresses/validations", reqBody, &resp); err != nil {
		return false, fmt.Errorf("easyship ValidateAddress: %w", err)
	}

	return resp.Validation.Status == "valid" || resp.Validation.Status == "partially_valid", nil
}

// Track fetches the tracking record for a booked shipment.
func (p *EasyShipProvider) Track(ctx context.Context, trackingNumber string) (*models.TrackingStatus, error) {
	path := "/trackings?tracking_number=" + url.QueryEscape(trackingNumber)

	var resp easyshipTrackingsResponse
	if err := p.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("easyship Track: %w", err)
	}
	if len(resp.Trackings) == 0 {
		return nil, fmt.Errorf("easyship Track: no tracking record for %s", trackingNumber)
	}

	t := resp.Trackings[0]
	status := &models.TrackingStatus{
		TrackingNumber:    t.TrackingNumber,
		Status:            t.Status,
		EstimatedDelivery: t.ETADate,
	}
	for _, cp := range t.Checkpoints {
		location := cp.City
		if cp.CountryAlpha2 != "" {
			if location != "" {
				location += ", "
			}
			location += cp.CountryAlpha2
		}
		status.Checkpoints = append(status.Checkpoints, models.TrackingCheckpoint{
			Status:       cp.Status,
			Message:      cp.Message,
			Location:     location,
			CheckpointAt: cp.CheckpointTime,
		})
	}
	return status, nil
}

// ---- HTTP helper ----

func (p *EasyShipProvider) doRequest(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("easyship API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// ---- Conversion helpers ----

func toEasyshipAddress(a models.Address, fallbackEmail string) easyshipAddress {
	phone := a.Phone
	if phone == "" {
		phone = defaultPhone
	}
	email := a.Email
	if email == "" {
		email = fallbackEmail
	}
	name := a.Name
	if name == "" {
		name = "Shipping Contact"
	}
	return easyshipAddress{
		ContactName:   name,
		CompanyName:   a.Company,
		ContactPhone:  phone,
		ContactEmail:  email,
		Line1:         a.Street1,
		Line2:         a.Street2,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		CountryAlpha2: a.Country,
	}
}

func toEasyshipItem(q RateQuery) easyshipItem {
	value := q.DeclaredValue
	if value < minCustomsValue {
		value = minCustomsValue
	}
	desc := q.ItemTitle
	if desc == "" {
		desc = "General merchandise"
	}
	return easyshipItem{
		Quantity:     1,
		ActualWeight: q.WeightKg,
		Dimensions: easyshipDimensions{
			Length: q.Dimensions.LengthCm,
			Width:  q.Dimensions.WidthCm,
			Height: q.Dimensions.HeightCm,
		},
		DeclaredCurrency:     "USD",
		DeclaredCustomsValue: value,
		HSCode:               defaultHSCode,
		Description:          desc,
	}
}
