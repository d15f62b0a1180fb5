package port

import "image"

// ImageLoader интерфейс загрузки полутоновых изображений
type ImageLoader interface {
	// Load читает файл с диска
	Load(path string) (*image.Gray, error)

	// Decode декодирует изображение из байтов
	Decode(data []byte) (*image.Gray, error)
}
