package port

import "image"

// SpatialFilter интерфейс фильтров пространственной области
type SpatialFilter interface {
	// Mean сглаживает изображение усреднением по окну k x k
	Mean(img *image.Gray, k int) (*image.Gray, error)

	// Median заменяет пиксель медианой окна k x k
	Median(img *image.Gray, k int) (*image.Gray, error)
}
