package http

import (
	"time"

	"porter/internal/core/application/usecases/queries"
)

// GeoPointRequest carries a coordinate pair with its street address.
type GeoPointRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Address   string  `json:"address" validate:"required,max=500"`
}

// BookDeliveryRequest is the booking payload. The fare is computed server
// side from package type and distance, so the client never sends an amount.
type BookDeliveryRequest struct {
	Pickup        GeoPointRequest `json:"pickup" validate:"required"`
	Dropoff       GeoPointRequest `json:"dropoff" validate:"required"`
	PackageType   string          `json:"packageType" validate:"required,oneof=SMALL MEDIUM LARGE"`
	WeightKg      float64         `json:"weightKg" validate:"required,gt=0"`
	Description   string          `json:"description" validate:"max=1000"`
	ScheduledTime time.Time       `json:"scheduledTime" validate:"required"`
	Prepaid       bool            `json:"prepaid"`
}

// AcceptDeliveryRequest carries the porter's current device fix.
type AcceptDeliveryRequest struct {
	Location *GeoPointRequest `json:"location" validate:"required"`
}

// AdvanceDeliveryRequest moves an assigned delivery one step forward.
type AdvanceDeliveryRequest struct {
	Status   string           `json:"status" validate:"required,oneof=PICKED_UP IN_TRANSIT DELIVERED"`
	Location *GeoPointRequest `json:"location" validate:"required"`
}

// AdminUpdateDeliveryRequest is the admin escape hatch payload. A null
// porterId detaches the porter.
type AdminUpdateDeliveryRequest struct {
	Status   string  `json:"status" validate:"required"`
	PorterID *string `json:"porterId" validate:"omitempty,uuid"`
}

// CreatePorterRequest registers a porter profile.
type CreatePorterRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Phone string `json:"phone" validate:"required,e164"`
}

// RatePorterRequest overwrites a porter's rating.
type RatePorterRequest struct {
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
}

// GeoPointResponse mirrors GeoPointRequest on the way out.
type GeoPointResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// DeliveryResponse is the wire shape of one delivery in list responses.
type DeliveryResponse struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	PorterID      *string          `json:"porterId,omitempty"`
	Pickup        GeoPointResponse `json:"pickup"`
	Dropoff       GeoPointResponse `json:"dropoff"`
	PackageType   string           `json:"packageType"`
	WeightKg      float64          `json:"weightKg"`
	Description   string           `json:"description"`
	ScheduledTime time.Time        `json:"scheduledTime"`
	DistanceKm    float64          `json:"distanceKm"`
	Amount        float64          `json:"amount"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"paymentStatus"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// BookDeliveryResponse returns the identifier of a fresh booking.
type BookDeliveryResponse struct {
	ID string `json:"id"`
}

// CreatePorterResponse returns the identifier of a fresh porter profile.
type CreatePorterResponse struct {
	ID string `json:"id"`
}

// DeliveryStatsResponse aggregates delivery counts for the actor's scope.
type DeliveryStatsResponse struct {
	Total        int64   `json:"total"`
	Pending      int64   `json:"pending"`
	Accepted     int64   `json:"accepted"`
	PickedUp     int64   `json:"pickedUp"`
	InTransit    int64   `json:"inTransit"`
	Delivered    int64   `json:"delivered"`
	Cancelled    int64   `json:"cancelled"`
	UnpaidAmount float64 `json:"unpaidAmount"`
}

// TrackingPointResponse is one recorded position in a delivery trail.
type TrackingPointResponse struct {
	ID         string           `json:"id"`
	Position   GeoPointResponse `json:"position"`
	RecordedAt time.Time        `json:"recordedAt"`
}

// ErrorResponse is the uniform error body. Code carries the machine
// readable reason, for example CONFLICT or LOCATION_REQUIRED.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toDeliveryResponse(d queries.DeliveryQueryResponse) DeliveryResponse {
	var porterID *string
	if d.PorterID != nil {
		s := d.PorterID.String()
		porterID = &s
	}

	return DeliveryResponse{
		ID:       d.ID.String(),
		UserID:   d.UserID.String(),
		PorterID: porterID,
		Pickup: GeoPointResponse{
			Latitude:  d.Pickup.Latitude,
			Longitude: d.Pickup.Longitude,
			Address:   d.Pickup.Address,
		},
		Dropoff: GeoPointResponse{
			Latitude:  d.Dropoff.Latitude,
			Longitude: d.Dropoff.Longitude,
			Address:   d.Dropoff.Address,
		},
		PackageType:   d.PackageType,
		WeightKg:      d.WeightKg,
		Description:   d.Description,
		ScheduledTime: d.ScheduledTime,
		DistanceKm:    d.DistanceKm,
		Amount:        d.Amount,
		Status:        d.Status,
		PaymentStatus: d.PaymentStatus,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toDeliveryListResponse(ds []queries.DeliveryQueryResponse) []DeliveryResponse {
	response := make([]DeliveryResponse, len(ds))
	for i, d := range ds {
		response[i] = toDeliveryResponse(d)
	}
	return response
}
