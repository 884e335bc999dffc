package handlers

import (
	"math"

	"shipping-allocation-engine/internal/catalog"
	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/gateway/carrierinfo"
)

func (r orderDTO) toModel() domain.OrderContext {
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.LineItem{SKU: it.SKU, Category: it.Category, Quantity: it.Quantity})
	}
	return domain.OrderContext{
		OrderID:        r.OrderID,
		OriginZip:      r.OriginZip,
		DestinationZip: r.DestinationZip,
		Distance:       r.Distance,
		Weight:         r.Weight,
		Dimensions: domain.Dimensions{
			Length: r.Dimensions.Length,
			Width:  r.Dimensions.Width,
			Height: r.Dimensions.Height,
		},
		OrderValue: r.OrderValue,
		Items:      items,
		SellerID:   r.SellerID,
	}
}

func (r rateRequest) toModel() domain.BatchOrder {
	return domain.BatchOrder{
		Order:     r.Order.toModel(),
		Urgency:   domain.UrgencyBand(r.Urgency),
		Criterion: domain.Criterion(r.Criterion),
	}
}

func optionToResponse(o domain.ShippingOption) optionDTO {
	features := o.Features
	if features == nil {
		features = []string{}
	}
	return optionDTO{
		CarrierCode:         o.CarrierCode,
		CarrierName:         o.CarrierName,
		ServiceCode:         o.ServiceCode,
		ServiceName:         o.ServiceName,
		TransitDays:         o.TransitDays,
		OriginalCost:        o.OriginalCost,
		FinalCost:           o.FinalCost,
		FreeShippingApplied: o.FreeShippingApplied,
		FreeShippingSource:  o.FreeShippingSource,
		Reliability:         o.Reliability,
		Features:            features,
		DeliveryDate:        o.DeliveryDate,
		Savings:             o.Savings,
	}
}

func resultToResponse(res domain.OptimizationResult) rateResponse {
	out := rateResponse{
		Options: make([]optionDTO, 0, len(res.Options)),
		Analysis: analysisDTO{
			TotalOptions:     res.Analysis.TotalOptions,
			AverageCost:      res.Analysis.AverageCost,
			PotentialSavings: res.Analysis.PotentialSavings,
			Criterion:        string(res.Analysis.Criterion),
			Distance:         res.Analysis.Distance,
			IsLocal:          res.Analysis.IsLocal,
		},
	}
	for _, o := range res.Options {
		out.Options = append(out.Options, optionToResponse(o))
	}
	if res.Recommended != nil {
		rec := optionToResponse(*res.Recommended)
		out.Recommended = &rec
	}
	if res.Offer != nil {
		out.Offer = &offerDTO{
			ID:                res.Offer.ID,
			OfferedBy:         string(res.Offer.OfferedBy),
			EntityID:          res.Offer.EntityID,
			EntityName:        res.Offer.EntityName,
			Type:              string(res.Offer.Type),
			MinimumOrderValue: res.Offer.MinimumOrderValue,
			Terms:             res.Offer.Terms,
		}
	}
	return out
}

func batchToResponse(res domain.BatchResult) analyzeResponse {
	out := analyzeResponse{
		Orders: make([]orderAnalysisDTO, 0, len(res.Orders)),
		Summary: batchSummaryDTO{
			TotalOrders:         res.Summary.TotalOrders,
			TotalSavings:        res.Summary.TotalSavings,
			AverageDeliveryDays: res.Summary.AverageDeliveryDays,
			FreeShippingApplied: res.Summary.FreeShippingApplied,
		},
	}
	for _, o := range res.Orders {
		out.Orders = append(out.Orders, orderAnalysisDTO{OrderID: o.OrderID, Result: resultToResponse(o.Result)})
	}
	return out
}

func zoneToResponse(z domain.Zone) zoneDTO {
	zips := z.ZipCodes
	if zips == nil {
		zips = []string{}
	}
	return zoneDTO{
		ID:               z.ID,
		CenterID:         z.CenterID,
		Name:             z.Name,
		Type:             string(z.Type),
		ZipCodes:         zips,
		BasePrice:        z.BasePrice,
		MaxDistance:      z.MaxDistance,
		EstimatedMinutes: z.EstimatedMinutes,
		Priority:         z.Priority,
		Active:           z.Active,
	}
}

func zonesToResponse(list []domain.Zone) zoneListResponse {
	out := zoneListResponse{
		Zones:  make([]zoneDTO, 0, len(list)),
		Totals: zoneTotalsDTO{Total: len(list), ByType: map[string]int{}},
	}
	for _, z := range list {
		out.Zones = append(out.Zones, zoneToResponse(z))
		out.Totals.ByType[string(z.Type)]++
		if z.Active {
			out.Totals.Active++
		}
	}
	return out
}

func verdictToResponse(v domain.CoverageVerdict) coverageResponse {
	out := coverageResponse{
		Covered:           v.Covered,
		PostalCode:        v.PostalCode,
		EstimatedDelivery: v.EstimatedDelivery,
		Fee:               v.Fee,
		Message:           v.Message,
	}
	if v.Zone != nil {
		z := zoneToResponse(*v.Zone)
		out.Zone = &z
	}
	if v.Fallback != nil {
		out.Fallback = &fallbackDTO{
			Type:             string(v.Fallback.Type),
			EstimatedMinutes: v.Fallback.EstimatedMinutes,
			BasePrice:        v.Fallback.BasePrice,
		}
	}
	return out
}

func (r createZoneRequest) toModel() *domain.Zone {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &domain.Zone{
		CenterID:         r.CenterID,
		Name:             r.Name,
		Type:             domain.ZoneType(r.Type),
		ZipCodes:         r.ZipCodes,
		BasePrice:        r.BasePrice,
		MaxDistance:      r.MaxDistance,
		EstimatedMinutes: r.EstimatedMinutes,
		Priority:         r.Priority,
		Active:           active,
	}
}

func (r createDeliveryRequest) toModel() domain.DeliveryRequest {
	req := domain.DeliveryRequest{
		CenterID:      r.CenterID,
		ZoneID:        r.ZoneID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Address:       r.Address,
		ZipCode:       r.ZipCode,
		Type:          domain.ZoneType(r.Type),
		PackageCount:  r.PackageCount,
		TotalWeight:   r.TotalWeight,
		Instructions:  r.Instructions,
	}
	if r.ScheduledAt != nil {
		req.ScheduledAt = r.ScheduledAt.UTC()
	}
	return req
}

func (r updateStatusRequest) toModel(id int64) domain.StatusUpdate {
	return domain.StatusUpdate{
		DeliveryID: id,
		Status:     domain.DeliveryStatus(r.Status),
		DriverID:   r.DriverID,
		PhotoProof: r.PhotoProof,
		Signature:  r.Signature,
	}
}

func deliveryToResponse(d domain.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:             d.ID,
		TrackingNumber: d.TrackingNumber,
		CenterID:       d.CenterID,
		DriverID:       d.DriverID,
		ZoneID:         d.ZoneID,
		RouteID:        d.RouteID,
		CustomerName:   d.CustomerName,
		CustomerPhone:  d.CustomerPhone,
		Address:        d.Address,
		ZipCode:        d.ZipCode,
		Type:           string(d.Type),
		PackageCount:   d.PackageCount,
		TotalWeight:    d.TotalWeight,
		Fee:            d.Fee,
		Status:         string(d.Status),
		HeldStatus:     string(d.HeldStatus),
		ScheduledAt:    d.ScheduledAt,
		EstimatedAt:    d.EstimatedAt,
		PickedUpAt:     d.PickedUpAt,
		DeliveredAt:    d.DeliveredAt,
		Instructions:   d.Instructions,
		PhotoProof:     d.PhotoProof,
		Signature:      d.Signature,
	}
}

func deliveriesToResponse(list []domain.Delivery, st domain.DeliveryStats) deliveryListResponse {
	out := deliveryListResponse{
		Deliveries: make([]deliveryDTO, 0, len(list)),
		Stats: deliveryStatsDTO{
			Total:        st.Total,
			Scheduled:    st.Scheduled,
			InTransit:    st.InTransit,
			Delivered:    st.Delivered,
			Failed:       st.Failed,
			TotalRevenue: st.TotalRevenue,
		},
	}
	for _, d := range list {
		out.Deliveries = append(out.Deliveries, deliveryToResponse(d))
	}
	return out
}

func (l *locationDTO) toModel() *domain.Location {
	if l == nil {
		return nil
	}
	loc := &domain.Location{Lat: l.Lat, Lng: l.Lng}
	if l.At != nil {
		loc.At = l.At.UTC()
	}
	return loc
}

func (r createDriverRequest) toModel() *domain.Driver {
	d := &domain.Driver{
		CenterID:     r.CenterID,
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		VehicleType:  domain.VehicleType(r.VehicleType),
		VehiclePlate: r.VehiclePlate,
		Status:       domain.DriverStatus(r.Status),
		Location:     r.Location.toModel(),
	}
	if r.Rating != nil {
		d.Rating = *r.Rating
	}
	return d
}

func (r driverStatusRequest) toModel(id int64) domain.DriverStatusUpdate {
	return domain.DriverStatusUpdate{
		ID:       id,
		Status:   domain.DriverStatus(r.Status),
		Location: r.Location.toModel(),
	}
}

func driverToResponse(d domain.Driver) driverDTO {
	out := driverDTO{
		ID:              d.ID,
		CenterID:        d.CenterID,
		Name:            d.Name,
		Phone:           d.Phone,
		Email:           d.Email,
		VehicleType:     string(d.VehicleType),
		VehiclePlate:    d.VehiclePlate,
		Status:          string(d.Status),
		TodayDeliveries: d.TodayDeliveries,
		TotalDeliveries: d.TotalDeliveries,
		Rating:          d.Rating,
		Active:          d.Active,
	}
	if d.Location != nil {
		at := d.Location.At
		out.Location = &locationDTO{Lat: d.Location.Lat, Lng: d.Location.Lng, At: &at}
	}
	return out
}

func driversToResponse(list []domain.Driver, st domain.DriverStats) driverListResponse {
	out := driverListResponse{
		Drivers: make([]driverDTO, 0, len(list)),
		Stats: driverStatsDTO{
			Total:                st.Total,
			Available:            st.Available,
			Busy:                 st.Busy,
			OffDuty:              st.OffDuty,
			AvgRating:            st.AvgRating,
			TotalDeliveriesToday: st.TotalDeliveriesToday,
		},
	}
	for _, d := range list {
		out.Drivers = append(out.Drivers, driverToResponse(d))
	}
	return out
}

func (r optimizeRouteRequest) toModel() domain.RoutePlan {
	plan := domain.RoutePlan{DeliveryIDs: r.DeliveryIDs, DriverID: r.DriverID}
	if r.StartAt != nil {
		plan.StartAt = r.StartAt.UTC()
	}
	return plan
}

func routeToResponse(rt domain.Route) routeDTO {
	ids := rt.DeliveryIDs
	if ids == nil {
		ids = []int64{}
	}
	return routeDTO{
		ID:                  rt.ID,
		DriverID:            rt.DriverID,
		Name:                rt.Name,
		DeliveryIDs:         ids,
		StartAt:             rt.StartAt,
		EndAt:               rt.EndAt,
		TotalDistance:       rt.TotalDistance,
		TotalMinutes:        rt.TotalMinutes,
		EstimatedArrival:    rt.EstimatedArrival,
		Status:              string(rt.Status),
		CurrentStop:         rt.CurrentStop,
		CompletedDeliveries: rt.CompletedDeliveries,
		Remaining:           rt.Remaining(),
	}
}

func routesToResponse(list []domain.Route) routeListResponse {
	out := routeListResponse{
		Routes: make([]routeDTO, 0, len(list)),
		Totals: routeTotalsDTO{Total: len(list), ByStatus: map[string]int{}},
	}
	var distance float64
	for _, rt := range list {
		out.Routes = append(out.Routes, routeToResponse(rt))
		out.Totals.ByStatus[string(rt.Status)]++
		distance += rt.TotalDistance
	}
	out.Totals.TotalDistance = math.Round(distance*10) / 10
	return out
}

func catalogToResponse(c *catalog.Catalog) carrierListResponse {
	out := carrierListResponse{Version: c.Version, Carriers: make([]carrierDTO, 0, len(c.Carriers))}
	for _, cr := range c.Carriers {
		dto := carrierDTO{
			Code:                  cr.Code,
			Name:                  cr.Name,
			Active:                cr.Active,
			SupportsSameDay:       cr.SupportsSameDay,
			SupportsNextDay:       cr.SupportsNextDay,
			SupportsInternational: cr.SupportsInternational,
			CostMultiplier:        cr.CostMultiplier,
			Reliability:           cr.Reliability,
			Services:              []serviceDTO{},
		}
		for _, s := range c.ServicesOf(cr.Code) {
			dto.Services = append(dto.Services, serviceDTO{
				Code:        s.Code,
				Name:        s.Name,
				TransitDays: s.TransitDays,
				BaseCost:    s.BaseCost,
				Ground:      s.Ground,
				Priority:    s.Priority,
			})
		}
		out.Carriers = append(out.Carriers, dto)
	}
	return out
}

func metricsToResponse(m carrierinfo.Metrics) carrierMetricsResponse {
	return carrierMetricsResponse{
		CarrierCode:         m.CarrierCode,
		CarrierName:         m.CarrierName,
		Route:               m.Route,
		AverageCost:         m.AverageCost,
		AverageDeliveryDays: m.AverageDeliveryDays,
		OnTimePercentage:    m.OnTimePercentage,
		DamageRate:          m.DamageRate,
		TotalShipments:      m.TotalShipments,
		Simulated:           m.Simulated,
		AsOf:                m.AsOf,
	}
}
