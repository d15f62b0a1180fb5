//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"restoration-lab/internal/domain/entity"
	"restoration-lab/internal/domain/port"
)

// Filters реализует фильтры через OpenCV.
type Filters struct{}

// NewFilters создаёт фильтры на базе gocv.
func NewFilters() *Filters {
	return &Filters{}
}

// Mean применяет cv::blur с ядром k x k.
func (f *Filters) Mean(img *image.Gray, k int) (*image.Gray, error) {
	if err := checkKernel(k); err != nil {
		return nil, err
	}
	return apply(img, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.Blur(src, dst, image.Pt(k, k))
	})
}

// Median применяет cv::medianBlur с апертурой k.
func (f *Filters) Median(img *image.Gray, k int) (*image.Gray, error) {
	if err := checkKernel(k); err != nil {
		return nil, err
	}
	return apply(img, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.MedianBlur(src, dst, k)
	})
}

// apply переводит растр в gocv.Mat, вызывает фильтр и возвращает результат обратно.
func apply(img *image.Gray, fn func(src gocv.Mat, dst *gocv.Mat)) (*image.Gray, error) {
	src, err := gocv.ImageGrayToMatGray(entity.CloneRaster(img))
	if err != nil {
		return nil, fmt.Errorf("convert to mat: %w", err)
	}
	defer src.Close()

	if src.Empty() {
		return nil, errors.New("empty image")
	}

	dst := gocv.NewMat()
	defer dst.Close()
	fn(src, &dst)

	out, err := dst.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert from mat: %w", err)
	}
	gray, ok := out.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("unexpected mat type %v", dst.Type())
	}
	return gray, nil
}

func checkKernel(k int) error {
	if k <= 0 || k%2 == 0 {
		return fmt.Errorf("%w: got %d", entity.ErrKernelSize, k)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.SpatialFilter = (*Filters)(nil)
