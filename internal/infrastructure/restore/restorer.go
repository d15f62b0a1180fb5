package restore

import (
	"image"

	"restoration-lab/internal/domain/entity"
	"restoration-lab/internal/domain/port"
)

// Restorer связывает функции пакета с портами приложения.
type Restorer struct{}

// NewRestorer создаёт Restorer.
func NewRestorer() *Restorer {
	return &Restorer{}
}

// Inverse вызывает InverseFilter.
func (Restorer) Inverse(img *image.Gray, k int) (*image.Gray, error) {
	return InverseFilter(img, k)
}

// Compare вызывает Compare.
func (Restorer) Compare(reference, img *image.Gray) (entity.Quality, error) {
	return Compare(reference, img)
}

var (
	_ port.FrequencyFilter = Restorer{}
	_ port.QualityMeter    = Restorer{}
)
