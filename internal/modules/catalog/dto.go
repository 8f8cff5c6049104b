package catalog

type RoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	RoomType    string `json:"room_type" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,gt=0,lte=50"`
	IsVisible   *bool  `json:"is_visible"`
}

type VisibilityRequest struct {
	IsVisible *bool `json:"is_visible" binding:"required"`
}
