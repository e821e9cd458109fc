package trips

import "time"

type CreateTripRequest struct {
	RouteID       uint      `json:"route_id" binding:"required"`
	BusID         uint      `json:"bus_id" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
}

type UpdateTripStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=SCHEDULED BOARDING DEPARTED ARRIVED CANCELLED"`
}

type TripListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	RouteID  uint   `form:"route_id"`
	Status   string `form:"status" binding:"omitempty,oneof=SCHEDULED BOARDING DEPARTED ARRIVED CANCELLED"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

type PaginatedTrips struct {
	Trips      []Trip `json:"trips"`
	TotalCount int64  `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}
