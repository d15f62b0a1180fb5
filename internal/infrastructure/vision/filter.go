//go:build !gocv
// +build !gocv

package vision

import (
	"fmt"
	"image"
	"slices"

	"restoration-lab/internal/domain/entity"
	"restoration-lab/internal/domain/port"
)

// Filters реализует фильтры без OpenCV, повторяя поведение cv::blur и cv::medianBlur.
type Filters struct{}

// NewFilters создаёт фильтры на чистом Go.
func NewFilters() *Filters {
	return &Filters{}
}

// Mean усредняет окно k x k. Граница отражается без повтора крайнего пикселя (BORDER_REFLECT_101).
func (f *Filters) Mean(img *image.Gray, k int) (*image.Gray, error) {
	if err := checkKernel(k); err != nil {
		return nil, err
	}
	src := entity.CloneRaster(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := entity.NewRaster(w, h)
	r := k / 2
	area := k * k

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for dy := -r; dy <= r; dy++ {
				row := reflect101(y+dy, h) * src.Stride
				for dx := -r; dx <= r; dx++ {
					sum += int(src.Pix[row+reflect101(x+dx, w)])
				}
			}
			out.Pix[y*out.Stride+x] = uint8((2*sum + area) / (2 * area))
		}
	}
	return out, nil
}

// Median берёт медиану окна k x k. Граница повторяет крайний пиксель (BORDER_REPLICATE).
func (f *Filters) Median(img *image.Gray, k int) (*image.Gray, error) {
	if err := checkKernel(k); err != nil {
		return nil, err
	}
	src := entity.CloneRaster(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := entity.NewRaster(w, h)
	r := k / 2
	window := make([]uint8, 0, k*k)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			window = window[:0]
			for dy := -r; dy <= r; dy++ {
				row := clampIndex(y+dy, h) * src.Stride
				for dx := -r; dx <= r; dx++ {
					window = append(window, src.Pix[row+clampIndex(x+dx, w)])
				}
			}
			slices.Sort(window)
			out.Pix[y*out.Stride+x] = window[len(window)/2]
		}
	}
	return out, nil
}

func checkKernel(k int) error {
	if k <= 0 || k%2 == 0 {
		return fmt.Errorf("%w: got %d", entity.ErrKernelSize, k)
	}
	return nil
}

// reflect101 отражает индекс относительно края: -1 -> 1, n -> n-2.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*n - 2 - i
		}
	}
	return i
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Проверка реализации интерфейса
var _ port.SpatialFilter = (*Filters)(nil)
