package handlers

import "time"

// shipping

type dimensionsDTO struct {
	Length float64 `json:"length" validate:"gt=0"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

type lineItemDTO struct {
	SKU      string `json:"sku"`
	Category string `json:"category"`
	Quantity int    `json:"quantity,omitempty" validate:"omitempty,gte=1"`
}

type orderDTO struct {
	OrderID        string        `json:"order_id"`
	OriginZip      string        `json:"origin_zip" validate:"zip5"`
	DestinationZip string        `json:"destination_zip" validate:"zip5"`
	Distance       *float64      `json:"distance,omitempty" validate:"omitempty,gte=0"`
	Weight         float64       `json:"weight" validate:"gte=0"`
	Dimensions     dimensionsDTO `json:"dimensions"`
	OrderValue     float64       `json:"order_value" validate:"gte=0"`
	Items          []lineItemDTO `json:"items" validate:"dive"`
	SellerID       int64         `json:"seller_id" validate:"gte=0"`
}

type rateRequest struct {
	Order     orderDTO `json:"order"`
	Urgency   string   `json:"urgency" validate:"omitempty,oneof=same_day next_day standard economy"`
	Criterion string   `json:"criterion" validate:"omitempty,oneof=fastest cost_effective most_reliable"`
}

type analyzeRequest struct {
	Orders []rateRequest `json:"orders" validate:"required,min=1,dive"`
}

type optionDTO struct {
	CarrierCode         string    `json:"carrier_code"`
	CarrierName         string    `json:"carrier_name"`
	ServiceCode         string    `json:"service_code"`
	ServiceName         string    `json:"service_name"`
	TransitDays         int       `json:"transit_days"`
	OriginalCost        float64   `json:"original_cost"`
	FinalCost           float64   `json:"final_cost"`
	FreeShippingApplied bool      `json:"free_shipping_applied"`
	FreeShippingSource  string    `json:"free_shipping_source,omitempty"`
	Reliability         float64   `json:"reliability"`
	Features            []string  `json:"features"`
	DeliveryDate        time.Time `json:"delivery_date"`
	Savings             float64   `json:"savings"`
}

type offerDTO struct {
	ID                int64   `json:"id"`
	OfferedBy         string  `json:"offered_by"`
	EntityID          int64   `json:"entity_id"`
	EntityName        string  `json:"entity_name"`
	Type              string  `json:"type"`
	MinimumOrderValue float64 `json:"minimum_order_value"`
	Terms             string  `json:"terms,omitempty"`
}

type analysisDTO struct {
	TotalOptions     int     `json:"total_options"`
	AverageCost      float64 `json:"average_cost"`
	PotentialSavings float64 `json:"potential_savings"`
	Criterion        string  `json:"criterion"`
	Distance         float64 `json:"distance"`
	IsLocal          bool    `json:"is_local"`
}

type rateResponse struct {
	Recommended *optionDTO  `json:"recommended"`
	Options     []optionDTO `json:"options"`
	Offer       *offerDTO   `json:"free_shipping_offer"`
	Analysis    analysisDTO `json:"analysis"`
}

type orderAnalysisDTO struct {
	OrderID string       `json:"order_id"`
	Result  rateResponse `json:"result"`
}

type batchSummaryDTO struct {
	TotalOrders         int     `json:"total_orders"`
	TotalSavings        float64 `json:"total_savings"`
	AverageDeliveryDays float64 `json:"average_delivery_days"`
	FreeShippingApplied int     `json:"free_shipping_applied"`
}

type analyzeResponse struct {
	Orders  []orderAnalysisDTO `json:"orders"`
	Summary batchSummaryDTO    `json:"summary"`
}

// zones

type coverageRequest struct {
	PostalCode    string `json:"postal_code" validate:"required"`
	DeliveryType  string `json:"delivery_type" validate:"omitempty,oneof=same-day 2-hour 4-hour next-day"`
	AllowFallback *bool  `json:"allow_fallback,omitempty"`
}

type zoneDTO struct {
	ID               int64    `json:"id"`
	CenterID         int64    `json:"center_id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	ZipCodes         []string `json:"zip_codes"`
	BasePrice        float64  `json:"base_price"`
	MaxDistance      float64  `json:"max_distance"`
	EstimatedMinutes int      `json:"estimated_minutes"`
	Priority         int      `json:"priority"`
	Active           bool     `json:"active"`
}

type fallbackDTO struct {
	Type             string  `json:"type"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	BasePrice        float64 `json:"base_price"`
}

type coverageResponse struct {
	Covered           bool         `json:"covered"`
	PostalCode        string       `json:"postal_code"`
	Zone              *zoneDTO     `json:"zone,omitempty"`
	EstimatedDelivery time.Time    `json:"estimated_delivery"`
	Fee               float64      `json:"fee"`
	Fallback          *fallbackDTO `json:"fallback,omitempty"`
	Message           string       `json:"message"`
}

type createZoneRequest struct {
	CenterID         int64    `json:"center_id" validate:"gt=0"`
	Name             string   `json:"name" validate:"required"`
	Type             string   `json:"type" validate:"oneof=same-day 2-hour 4-hour next-day"`
	ZipCodes         []string `json:"zip_codes" validate:"required,min=1,dive,zip5"`
	BasePrice        float64  `json:"base_price" validate:"gte=0"`
	MaxDistance      float64  `json:"max_distance" validate:"gte=0"`
	EstimatedMinutes int      `json:"estimated_minutes" validate:"gt=0"`
	Priority         int      `json:"priority" validate:"gte=0"`
	Active           *bool    `json:"active,omitempty"`
}

type zoneTotalsDTO struct {
	Total  int            `json:"total"`
	Active int            `json:"active"`
	ByType map[string]int `json:"by_type"`
}

type zoneListResponse struct {
	Zones  []zoneDTO     `json:"zones"`
	Totals zoneTotalsDTO `json:"totals"`
}

// deliveries

type createDeliveryRequest struct {
	CenterID      int64      `json:"center_id" validate:"gt=0"`
	ZoneID        int64      `json:"zone_id" validate:"gt=0"`
	CustomerName  string     `json:"customer_name" validate:"required"`
	CustomerPhone string     `json:"customer_phone" validate:"required"`
	Address       string     `json:"address" validate:"required"`
	ZipCode       string     `json:"zip_code" validate:"zip5"`
	Type          string     `json:"type" validate:"oneof=same-day 2-hour 4-hour next-day"`
	PackageCount  int        `json:"package_count" validate:"gte=1"`
	TotalWeight   float64    `json:"total_weight" validate:"gt=0"`
	ScheduledAt   *time.Time `json:"scheduled_time,omitempty"`
	Instructions  string     `json:"instructions"`
}

type updateStatusRequest struct {
	Status     string  `json:"status" validate:"required"`
	DriverID   *int64  `json:"driver_id,omitempty" validate:"omitempty,gt=0"`
	PhotoProof *string `json:"photo_proof,omitempty"`
	Signature  *string `json:"signature,omitempty"`
}

type deliveryDTO struct {
	ID             int64      `json:"id"`
	TrackingNumber string     `json:"tracking_number"`
	CenterID       int64      `json:"center_id"`
	DriverID       *int64     `json:"driver_id"`
	ZoneID         int64      `json:"zone_id"`
	RouteID        *int64     `json:"route_id"`
	CustomerName   string     `json:"customer_name"`
	CustomerPhone  string     `json:"customer_phone"`
	Address        string     `json:"address"`
	ZipCode        string     `json:"zip_code"`
	Type           string     `json:"type"`
	PackageCount   int        `json:"package_count"`
	TotalWeight    float64    `json:"total_weight"`
	Fee            float64    `json:"delivery_fee"`
	Status         string     `json:"status"`
	HeldStatus     string     `json:"held_status,omitempty"`
	ScheduledAt    time.Time  `json:"scheduled_time"`
	EstimatedAt    time.Time  `json:"estimated_time"`
	PickedUpAt     *time.Time `json:"picked_up_at"`
	DeliveredAt    *time.Time `json:"delivered_at"`
	Instructions   string     `json:"instructions,omitempty"`
	PhotoProof     *string    `json:"photo_proof,omitempty"`
	Signature      *string    `json:"signature,omitempty"`
}

type statusChangeResponse struct {
	Delivery deliveryDTO `json:"delivery"`
	From     string      `json:"previous_status"`
	At       time.Time   `json:"changed_at"`
}

type deliveryStatsDTO struct {
	Total        int     `json:"total"`
	Scheduled    int     `json:"scheduled"`
	InTransit    int     `json:"in_transit"`
	Delivered    int     `json:"delivered"`
	Failed       int     `json:"failed"`
	TotalRevenue float64 `json:"total_revenue"`
}

type deliveryListResponse struct {
	Deliveries []deliveryDTO    `json:"deliveries"`
	Stats      deliveryStatsDTO `json:"stats"`
}

// drivers

type locationDTO struct {
	Lat float64    `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64    `json:"lng" validate:"gte=-180,lte=180"`
	At  *time.Time `json:"at,omitempty"`
}

type createDriverRequest struct {
	CenterID     int64        `json:"center_id" validate:"gt=0"`
	Name         string       `json:"name" validate:"required"`
	Phone        string       `json:"phone" validate:"required"`
	Email        string       `json:"email" validate:"omitempty,email"`
	VehicleType  string       `json:"vehicle_type" validate:"omitempty,oneof=van car scooter bike"`
	VehiclePlate string       `json:"vehicle_plate"`
	Status       string       `json:"status" validate:"omitempty,oneof=available busy break off-duty"`
	Rating       *float64     `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Location     *locationDTO `json:"location,omitempty"`
}

type driverStatusRequest struct {
	Status   string       `json:"status" validate:"oneof=available busy break off-duty"`
	Location *locationDTO `json:"location,omitempty"`
}

type driverDTO struct {
	ID              int64        `json:"id"`
	CenterID        int64        `json:"center_id"`
	Name            string       `json:"name"`
	Phone           string       `json:"phone"`
	Email           string       `json:"email,omitempty"`
	VehicleType     string       `json:"vehicle_type"`
	VehiclePlate    string       `json:"vehicle_plate,omitempty"`
	Status          string       `json:"status"`
	Location        *locationDTO `json:"location,omitempty"`
	TodayDeliveries int          `json:"today_deliveries"`
	TotalDeliveries int          `json:"total_deliveries"`
	Rating          float64      `json:"rating"`
	Active          bool         `json:"active"`
}

type driverStatsDTO struct {
	Total                int     `json:"total"`
	Available            int     `json:"available"`
	Busy                 int     `json:"busy"`
	OffDuty              int     `json:"off_duty"`
	AvgRating            float64 `json:"avg_rating"`
	TotalDeliveriesToday int     `json:"total_deliveries_today"`
}

type driverListResponse struct {
	Drivers []driverDTO    `json:"drivers"`
	Stats   driverStatsDTO `json:"stats"`
}

// routes

type optimizeRouteRequest struct {
	DeliveryIDs []int64    `json:"delivery_ids" validate:"required,min=1,unique,dive,gt=0"`
	DriverID    int64      `json:"driver_id" validate:"gte=0"`
	StartAt     *time.Time `json:"start_time,omitempty"`
}

// completeStopRequest is optional; an empty body completes the current stop.
type completeStopRequest struct {
	Stop *int `json:"stop,omitempty" validate:"omitempty,gte=0"`
}

type routeDTO struct {
	ID                  int64      `json:"id"`
	DriverID            int64      `json:"driver_id"`
	Name                string     `json:"route_name"`
	DeliveryIDs         []int64    `json:"delivery_ids"`
	StartAt             time.Time  `json:"start_time"`
	EndAt               *time.Time `json:"end_time"`
	TotalDistance       float64    `json:"total_distance"`
	TotalMinutes        int        `json:"estimated_duration"`
	EstimatedArrival    time.Time  `json:"estimated_arrival"`
	Status              string     `json:"status"`
	CurrentStop         int        `json:"current_stop"`
	CompletedDeliveries int        `json:"completed_deliveries"`
	Remaining           int        `json:"remaining_stops"`
}

type routeTotalsDTO struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	TotalDistance float64        `json:"total_distance"`
}

type routeListResponse struct {
	Routes []routeDTO     `json:"routes"`
	Totals routeTotalsDTO `json:"totals"`
}

// carriers

type serviceDTO struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	TransitDays int     `json:"transit_days"`
	BaseCost    float64 `json:"base_cost"`
	Ground      bool    `json:"ground"`
	Priority    bool    `json:"priority"`
}

type carrierDTO struct {
	Code                  string       `json:"code"`
	Name                  string       `json:"name"`
	Active                bool         `json:"active"`
	SupportsSameDay       bool         `json:"supports_same_day"`
	SupportsNextDay       bool         `json:"supports_next_day"`
	SupportsInternational bool         `json:"supports_international"`
	CostMultiplier        float64      `json:"cost_multiplier"`
	Reliability           float64      `json:"reliability"`
	Services              []serviceDTO `json:"services"`
}

type carrierListResponse struct {
	Version  string       `json:"catalog_version"`
	Carriers []carrierDTO `json:"carriers"`
}

type carrierMetricsResponse struct {
	CarrierCode         string    `json:"carrier_code"`
	CarrierName         string    `json:"carrier_name"`
	Route               string    `json:"route,omitempty"`
	AverageCost         float64   `json:"average_cost"`
	AverageDeliveryDays float64   `json:"average_delivery_days"`
	OnTimePercentage    float64   `json:"on_time_percentage"`
	DamageRate          float64   `json:"damage_rate"`
	TotalShipments      int       `json:"total_shipments"`
	Simulated           bool      `json:"simulated"`
	AsOf                time.Time `json:"as_of"`
}

type reloadResponse struct {
	Version           string `json:"catalog_version"`
	PreviousVersion   string `json:"previous_version"`
	Carriers          int    `json:"carriers"`
	Services          int    `json:"services"`
	Offers            int    `json:"offers"`
	QuotesInvalidated int    `json:"quotes_invalidated"`
}
