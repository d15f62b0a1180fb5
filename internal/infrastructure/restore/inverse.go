// Package restore восстанавливает изображения в частотной области.
package restore

import (
	"fmt"
	"image"
	"math"
	"math/cmplx"

	"restoration-lab/internal/domain/entity"
)

// DefaultDegradationKernel — сторона предполагаемого ядра размытия.
const DefaultDegradationKernel = 5

// epsilon заменяет близкие к нулю коэффициенты передаточной функции.
const epsilon = 1e-5

// InverseFilter делит спектр изображения на спектр предполагаемого
// размытия k x k и возвращает модуль обратного преобразования.
// Регуляризации нет: шум усиливается на частотах, где |H| мал.
func InverseFilter(img *image.Gray, k int) (*image.Gray, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", entity.ErrKernelSize, k)
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return entity.NewRaster(w, h), nil
	}

	g := rasterSpectrum(img)
	g.forward()

	kernel := boxSpectrum(k, w, h)
	kernel.forward()

	for i, hv := range kernel.data {
		if cmplx.Abs(hv) < epsilon {
			hv = complex(epsilon, 0)
		}
		g.data[i] /= hv
	}
	g.inverse()

	out := entity.NewRaster(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := math.Round(cmplx.Abs(g.data[y*w+x]))
			out.Pix[y*out.Stride+x] = entity.ClampByte(v)
		}
	}
	return out, nil
}

// Degrade моделирует размытие, которое обращает InverseFilter:
// циклическая свёртка с ядром k x k, прижатым к началу координат.
func Degrade(img *image.Gray, k int) (*image.Gray, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", entity.ErrKernelSize, k)
	}
	src := entity.CloneRaster(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := entity.NewRaster(w, h)
	area := float64(k * k)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for i := 0; i < k; i++ {
				row := mod(y-i, h) * src.Stride
				for j := 0; j < k; j++ {
					sum += int(src.Pix[row+mod(x-j, w)])
				}
			}
			out.Pix[y*out.Stride+x] = entity.ClampByte(math.Round(float64(sum) / area))
		}
	}
	return out, nil
}

func rasterSpectrum(img *image.Gray) *spectrum {
	b := img.Bounds()
	s := newSpectrum(b.Dx(), b.Dy())
	for y := 0; y < s.h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < s.w; x++ {
			s.data[y*s.w+x] = complex(float64(img.Pix[off+x]), 0)
		}
	}
	return s
}

// boxSpectrum раскладывает нормированное ядро k x k в левый верхний угол
// матрицы w x h. Ядро больше изображения сворачивается по модулю.
func boxSpectrum(k, w, h int) *spectrum {
	s := newSpectrum(w, h)
	v := complex(1/float64(k*k), 0)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			s.data[mod(i, h)*w+mod(j, w)] += v
		}
	}
	return s
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
