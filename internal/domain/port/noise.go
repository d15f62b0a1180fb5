package port

import "image"

// NoiseGenerator интерфейс генератора синтетического шума
type NoiseGenerator interface {
	// Gaussian добавляет аддитивный нормальный шум
	Gaussian(img *image.Gray, mean, sigma float64) (*image.Gray, error)

	// SaltAndPepper заменяет случайные пиксели на 255 и 0
	SaltAndPepper(img *image.Gray, saltProb, pepperProb float64) (*image.Gray, error)

	// Speckle добавляет мультипликативный шум
	Speckle(img *image.Gray, scale float64) (*image.Gray, error)
}
