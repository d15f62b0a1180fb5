package restore

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/floats"

	"restoration-lab/internal/domain/entity"
)

// Compare считает MSE и PSNR изображения относительно эталона.
func Compare(reference, img *image.Gray) (entity.Quality, error) {
	if !entity.SameShape(reference, img) {
		return entity.Quality{}, fmt.Errorf("%w: %v vs %v", entity.ErrShapeMismatch, reference.Bounds().Size(), img.Bounds().Size())
	}
	a, b := toFloats(reference), toFloats(img)
	if len(a) == 0 {
		return entity.Quality{}, nil
	}

	d := floats.Distance(a, b, 2)
	mse := d * d / float64(len(a))
	return entity.Quality{MSE: mse, PSNR: psnr(mse)}, nil
}

func psnr(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(255*255/mse)
}

func toFloats(img *image.Gray) []float64 {
	b := img.Bounds()
	out := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for _, v := range img.Pix[off : off+b.Dx()] {
			out = append(out, float64(v))
		}
	}
	return out
}
