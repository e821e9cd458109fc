package routes

type CreateRouteRequest struct {
	Name     string              `json:"name" binding:"required,min=2,max=100"`
	Origin   string              `json:"origin" binding:"required"`
	Terminus string              `json:"terminus" binding:"required"`
	Stops    []CreateStopRequest `json:"stops" binding:"omitempty,dive"`
}

type UpdateRouteRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Origin   *string `json:"origin"`
	Terminus *string `json:"terminus"`
	Active   *bool   `json:"active"`
}

type CreateStopRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}
