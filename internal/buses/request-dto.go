package buses

type CreateBusRequest struct {
	Plate    string `json:"plate" binding:"required,min=5,max=10"`
	Model    string `json:"model"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=200"`
}

type UpdateBusRequest struct {
	Model    *string `json:"model"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1,max=200"`
	Active   *bool   `json:"active"`
}
