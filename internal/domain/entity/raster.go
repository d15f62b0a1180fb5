package entity

import (
	"errors"
	"image"
	"math"
)

var (
	// ErrImageNotFound возвращается, если входного файла нет на диске
	ErrImageNotFound = errors.New("image not found")
	// ErrImageDecode возвращается, если данные не удалось декодировать
	ErrImageDecode = errors.New("failed to decode image")
	// ErrShapeMismatch возвращается, если размеры растров не совпадают
	ErrShapeMismatch = errors.New("raster shape mismatch")
	// ErrKernelSize возвращается для чётного или неположительного размера ядра
	ErrKernelSize = errors.New("kernel size must be a positive odd number")
	// ErrUserBusy возвращается, пока для пользователя идёт обработка
	ErrUserBusy = errors.New("user is busy")
)

// NewRaster создаёт пустой полутоновый растр w x h с началом в (0, 0).
func NewRaster(w, h int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, w, h))
}

// CloneRaster копирует растр, приводя его координаты к началу (0, 0).
func CloneRaster(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := NewRaster(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()], src.Pix[off:off+b.Dx()])
	}
	return dst
}

// SameShape сообщает, совпадают ли размеры двух растров.
func SameShape(a, b *image.Gray) bool {
	return a.Bounds().Dx() == b.Bounds().Dx() && a.Bounds().Dy() == b.Bounds().Dy()
}

// ClampByte обрезает значение до диапазона [0, 255] и отбрасывает дробную часть. NaN даёт 0.
func ClampByte(v float64) uint8 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
