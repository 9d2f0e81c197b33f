package chargers

import (
	"time"

	"github.com/google/uuid"
)

// Status is the rolled-up operational state of a charger, derived from user
// verifications. New chargers start unverified.
type Status string

const (
	StatusUnverified Status = "unverified"
	StatusActive     Status = "active"
	StatusNotWorking Status = "not_working"
	StatusPartial    Status = "partial"
)

// Connector is one plug on a charger.
type Connector struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ChargerID  uuid.UUID `db:"charger_id" json:"charger_id"`
	PortType   string    `db:"port_type" json:"port_type"`
	MaxPowerKW float64   `db:"max_power_kw" json:"max_power_kw"`
	Count      int       `db:"count" json:"count"`
}

// Charger is a charging station in the registry.
type Charger struct {
	ID                uuid.UUID   `db:"id" json:"id"`
	Name              string      `db:"name" json:"name"`
	Address           string      `db:"address" json:"address"`
	Latitude          float64     `db:"latitude" json:"latitude"`
	Longitude         float64     `db:"longitude" json:"longitude"`
	Status            Status      `db:"status" json:"status"`
	TrustScore        float64     `db:"trust_score" json:"trust_score"`
	VerificationCount int         `db:"verification_count" json:"verification_count"`
	AddedBy           uuid.UUID   `db:"added_by" json:"added_by"`
	Connectors        []Connector `db:"-" json:"connectors"`
	LastVerifiedAt    *time.Time  `db:"last_verified_at" json:"last_verified_at,omitempty"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at" json:"updated_at"`
}

// CreateChargerRequest is the add-charger payload. Coordinates are pointers
// so "required" means present, not non-zero: latitude 0 and longitude 0 are
// valid places.
type CreateChargerRequest struct {
	Name       string                   `json:"name" binding:"required"`
	Address    string                   `json:"address" binding:"required"`
	Latitude   *float64                 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude  *float64                 `json:"longitude" binding:"required,min=-180,max=180"`
	Connectors []CreateConnectorRequest `json:"connectors" binding:"required,min=1,dive"`
}

// CreateConnectorRequest describes one plug of a new charger.
type CreateConnectorRequest struct {
	PortType   string  `json:"port_type" binding:"required"`
	MaxPowerKW float64 `json:"max_power_kw" binding:"required,gt=0"`
	Count      int     `json:"count" binding:"required,min=1"`
}

// Filters narrows charger listings.
type Filters struct {
	Status   *Status
	Page     int
	PageSize int
}

// NearbyQuery is a radius search around a point.
type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKM  float64
	Limit     int
}

// NearbyCharger is a charger with its distance from the query point.
type NearbyCharger struct {
	Charger
	DistanceKM float64 `db:"distance_km" json:"distance_km"`
}
