package models

import "strings"

// Address represents a physical mailing address used for quoting and shipping.
type Address struct {
	Name       string `json:"name"`
	Company    string `json:"company,omitempty"`
	Street1    string `json:"street1"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"` // ISO 3166-1 alpha-2, e.g. "US"
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

// IsResidential reports whether the address looks residential (no company
// name). Pickup pricing adds a residential fee in that case.
func (a *Address) IsResidential() bool {
	return a == nil || strings.TrimSpace(a.Company) == ""
}

// HasCountry reports whether a usable country code is present.
func (a *Address) HasCountry() bool {
	return a != nil && strings.TrimSpace(a.Country) != ""
}

// Complete reports whether the address carries enough fields for a courier
// rating API (street, city, postal code, country).
func (a *Address) Complete() bool {
	if a == nil {
		return false
	}
	return strings.TrimSpace(a.Street1) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.PostalCode) != "" &&
		strings.TrimSpace(a.Country) != ""
}

// Dimensions of a parcel in centimeters.
type Dimensions struct {
	LengthCm float64 `json:"length" binding:"required,gt=0"`
	WidthCm  float64 `json:"width" binding:"required,gt=0"`
	HeightCm float64 `json:"height" binding:"required,gt=0"`
}

// Positive reports whether all three sides are set.
func (d Dimensions) Positive() bool {
	return d.LengthCm > 0 && d.WidthCm > 0 && d.HeightCm > 0
}

// VolumeCBM returns the volume in cubic meters.
func (d Dimensions) VolumeCBM() float64 {
	return (d.LengthCm / 100) * (d.WidthCm / 100) * (d.HeightCm / 100)
}
