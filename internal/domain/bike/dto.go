package bike

// AddBikeRequest carries the form fields of POST /api/add-bike. The image
// arrives as a file part alongside these.
type AddBikeRequest struct {
	Name  string  `form:"name" validate:"required"`
	Price float64 `form:"price" validate:"required,gt=0"`
	Desc  string  `form:"desc" validate:"required"`
}
