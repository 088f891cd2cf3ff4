package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"quote-service/models"
)

func testQuery() RateQuery {
	return RateQuery{
		Origin: models.Address{
			Name: "Sender", Street1: "1 Origin Rd", City: "Shenzhen",
			State: "GD", PostalCode: "518000", Country: "CN",
		},
		Destination: models.Address{
			Name: "Receiver", Street1: "5 Elm St", City: "Austin",
			State: "TX", PostalCode: "78701", Country: "US",
		},
		WeightKg:   2.5,
		Dimensions: models.Dimensions{LengthCm: 20, WidthCm: 15, HeightCm: 10},
		ItemTitle:  "Ceramic mug",
	}
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*EasyShipProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, _ := zap.NewDevelopment()
	p := NewEasyShipProvider("test-key", logger)
	p.baseURL = srv.URL
	return p, srv
}

func TestGetRates_ParsesResponse(t *testing.T) {
	var captured easyshipRatesRequest
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rates", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(easyshipRatesResponse{ //nolint:errcheck
			Rates: []easyshipRate{
				{
					CourierService: struct {
						ID   string `json:"id"`
						Name string `json:"name"`
					}{ID: "cs-1", Name: "DHL Express"},
					TotalCharge:     42.75,
					Currency:        "USD",
					MinDeliveryTime: 2,
					MaxDeliveryTime: 5,
				},
			},
		})
	})

	rates, err := p.GetRates(context.Background(), testQuery())
	assert.NoError(t, err)
	assert.Len(t, rates, 1)
	assert.Equal(t, "cs-1", rates[0].RateID)
	assert.Equal(t, "DHL Express", rates[0].Courier)
	assert.Equal(t, 42.75, rates[0].TotalCharge)
	assert.Equal(t, 2, rates[0].MinDeliveryDays)

	// Request carries the parcel and the cm/kg unit settings.
	assert.Equal(t, "cm", captured.ShippingSettings.Units.Dimensions)
	assert.Equal(t, "kg", captured.ShippingSettings.Units.Weight)
	assert.Equal(t, 2.5, captured.Parcels[0].Items[0].ActualWeight)
	assert.Equal(t, defaultHSCode, captured.Parcels[0].Items[0].HSCode)
}

func TestGetRates_ContactDefaultsSubstituted(t *testing.T) {
	var captured easyshipRatesRequest
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured) //nolint:errcheck
		json.NewEncoder(w).Encode(easyshipRatesResponse{}) //nolint:errcheck
	})

	q := testQuery()
	q.Origin.Phone = ""
	q.Origin.Email = ""
	q.DeclaredValue = 0

	_, err := p.GetRates(context.Background(), q)
	assert.NoError(t, err)
	assert.Equal(t, defaultPhone, captured.OriginAddress.ContactPhone)
	assert.Equal(t, defaultOriginEmail, captured.OriginAddress.ContactEmail)
	// Customs value floors at the minimum.
	assert.Equal(t, minCustomsValue, captured.Parcels[0].Items[0].DeclaredCustomsValue)
}

func TestGetRates_APIErrorSurfaces(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid address"}`, http.StatusUnprocessableEntity)
	})

	_, err := p.GetRates(context.Background(), testQuery())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestCreateShipment_ExtractsLabel(t *testing.T) {
	var captured easyshipShipmentRequest
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shipments", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		resp := easyshipShipmentResponse{}
		resp.Shipment.EasyshipShipmentID = "ESSG-001"
		resp.Shipment.TrackingPageURL = "https://track.example/ESSG-001"
		resp.Shipment.Trackings = []struct {
			TrackingNumber string `json:"tracking_number"`
		}{{TrackingNumber: "TRK777"}}
		resp.Shipment.ShippingDocuments = []struct {
			Category string `json:"category"`
			URL      string `json:"url"`
		}{
			{Category: "invoice", URL: "https://docs.example/inv.pdf"},
			{Category: "label", URL: "https://docs.example/label.pdf"},
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	})

	label, err := p.CreateShipment(context.Background(), testQuery(), "cs-1")
	assert.NoError(t, err)
	assert.Equal(t, "ESSG-001", label.ShipmentID)
	assert.Equal(t, "TRK777", label.TrackingNumber)
	assert.Equal(t, "https://docs.example/label.pdf", label.LabelURL)
	assert.Equal(t, "https://track.example/ESSG-001", label.TrackingPageURL)

	assert.Equal(t, "cs-1", captured.CourierSelection.SelectedCourierServiceID)
	assert.False(t, captured.CourierSelection.AllowFallback)
	assert.True(t, captured.BuyLabel)
}

func TestGetRates_UnconfiguredKeyRatesNothing(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	p := NewEasyShipProvider("", logger)

	rates, err := p.GetRates(context.Background(), testQuery())
	assert.NoError(t, err)
	assert.Empty(t, rates)
}

func TestTrack_ParsesCheckpoints(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trackings", r.URL.Path)
		assert.Equal(t, "TRK777", r.URL.Query().Get("tracking_number"))

		resp := easyshipTrackingsResponse{Trackings: []easyshipTracking{{
			TrackingNumber: "TRK777",
			Status:         "in_transit",
			ETADate:        "2026-09-02",
		}}}
		resp.Trackings[0].Checkpoints = []struct {
			Status         string `json:"status"`
			Message        string `json:"message"`
			City           string `json:"city"`
			CountryAlpha2  string `json:"country_alpha2"`
			CheckpointTime string `json:"checkpoint_time"`
		}{
			{Status: "picked_up", Message: "Package received", City: "Shenzhen", CountryAlpha2: "CN", CheckpointTime: "2026-08-27T09:00:00Z"},
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	})

	status, err := p.Track(context.Background(), "TRK777")
	assert.NoError(t, err)
	assert.Equal(t, "in_transit", status.Status)
	assert.Equal(t, "2026-09-02", status.EstimatedDelivery)
	assert.Len(t, status.Checkpoints, 1)
	assert.Equal(t, "Shenzhen, CN", status.Checkpoints[0].Location)
}

func TestTrack_NoRecordIsError(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(easyshipTrackingsResponse{}) //nolint:errcheck
	})

	_, err := p.Track(context.Background(), "TRK000")
	assert.Error(t, err)
}

func TestValidateAddress(t *testing.T) {
	status := "valid"
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		resp := easyshipAddressValidationResponse{}
		resp.Validation.Status = status
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	})

	ok, err := p.ValidateAddress(context.Background(), testQuery().Destination)
	assert.NoError(t, err)
	assert.True(t, ok)

	status = "invalid"
	ok, err = p.ValidateAddress(context.Background(), testQuery().Destination)
	assert.NoError(t, err)
	assert.False(t, ok)
}
