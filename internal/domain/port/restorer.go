package port

import (
	"image"

	"restoration-lab/internal/domain/entity"
)

// FrequencyFilter интерфейс восстановления в частотной области
type FrequencyFilter interface {
	// Inverse обращает предполагаемое размытие k x k
	Inverse(img *image.Gray, k int) (*image.Gray, error)
}

// QualityMeter интерфейс оценки качества восстановления
type QualityMeter interface {
	// Compare сравнивает изображение с эталоном
	Compare(reference, img *image.Gray) (entity.Quality, error)
}
