package domain

import (
	"errors"
	"time"
)

// Type represents the kind of vehicle.
type Type string

const (
	TypeTruck Type = "TRUCK"
	TypeCar   Type = "CAR"
)

// Status represents the availability of a transport.
type Status string

const (
	StatusFree Status = "FREE"
	StatusBusy Status = "BUSY"
)

var (
	ErrInvalidType       = errors.New("invalid transport type")
	ErrInvalidStatus     = errors.New("invalid transport status")
	ErrEmptyLicensePlate = errors.New("license plate must not be empty")
	ErrInvalidCapacity   = errors.New("capacity must be positive")
	ErrInvalidPrice      = errors.New("price per km must be positive")
	ErrNotFound          = errors.New("transport not found")
)

// ValidType reports whether t is a known transport type.
func ValidType(t Type) bool {
	switch t {
	case TypeTruck, TypeCar:
		return true
	default:
		return false
	}
}

// ValidStatus reports whether s is a known transport status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusFree, StatusBusy:
		return true
	default:
		return false
	}
}

// Transport represents a vehicle available to execute routes.
type Transport struct {
	ID            string    `json:"id"`
	LicensePlate  string    `json:"licensePlate"`
	Model         string    `json:"model,omitempty"`
	Type          Type      `json:"type"`
	Capacity      float64   `json:"capacity"`
	PricePerKmEUR float64   `json:"pricePerKmEUR"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewTransport creates a new Transport in the FREE state and validates it.
func NewTransport(id, licensePlate, model string, transportType Type, capacity, pricePerKmEUR float64) (*Transport, error) {
	t := &Transport{
		ID:            id,
		LicensePlate:  licensePlate,
		Model:         model,
		Type:          transportType,
		Capacity:      capacity,
		PricePerKmEUR: pricePerKmEUR,
		Status:        StatusFree,
		CreatedAt:     time.Now().UTC(),
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the transport invariants.
func (t *Transport) Validate() error {
	if t.LicensePlate == "" {
		return ErrEmptyLicensePlate
	}
	if !ValidType(t.Type) {
		return ErrInvalidType
	}
	if !ValidStatus(t.Status) {
		return ErrInvalidStatus
	}
	if t.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if t.PricePerKmEUR <= 0 {
		return ErrInvalidPrice
	}
	return nil
}
