// Package noise добавляет к полутоновым изображениям синтетический шум.
package noise

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"restoration-lab/internal/domain/entity"
	"restoration-lab/internal/domain/port"
)

// Параметры шума по умолчанию.
const (
	DefaultGaussianMean  = 0.0
	DefaultGaussianSigma = 20.0
	DefaultSaltProb      = 0.02
	DefaultPepperProb    = 0.02
	DefaultSpeckleScale  = 0.1
)

// Generator генерирует шум из одного источника случайных чисел.
// Не безопасен для одновременного использования из нескольких горутин.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator создаёт генератор с фиксированным зерном.
func NewGenerator(seed uint64) *Generator {
	return NewGeneratorFromSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewGeneratorFromSource создаёт генератор поверх готового источника.
func NewGeneratorFromSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Gaussian добавляет нормальный шум N(mean, sigma) к каждому пикселю.
func (g *Generator) Gaussian(img *image.Gray, mean, sigma float64) (*image.Gray, error) {
	if sigma < 0 || !finite(sigma) {
		return nil, fmt.Errorf("gaussian noise: invalid sigma %v", sigma)
	}
	if !finite(mean) {
		return nil, fmt.Errorf("gaussian noise: invalid mean %v", mean)
	}
	dist := distuv.Normal{Mu: mean, Sigma: sigma, Src: g.rnd}

	out := entity.CloneRaster(img)
	for i, v := range out.Pix {
		out.Pix[i] = entity.ClampByte(float64(v) + dist.Rand())
	}
	return out, nil
}

// SaltAndPepper выставляет ceil(p*N) случайных пикселей в 255, затем ceil(q*N) в 0.
// Координаты выбираются с повторениями.
func (g *Generator) SaltAndPepper(img *image.Gray, saltProb, pepperProb float64) (*image.Gray, error) {
	if !validProb(saltProb) || !validProb(pepperProb) {
		return nil, fmt.Errorf("salt and pepper noise: probabilities must be in [0, 1], got %v and %v", saltProb, pepperProb)
	}

	out := entity.CloneRaster(img)
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	total := float64(w * h)
	if total == 0 {
		return out, nil
	}

	g.scatter(out, int(math.Ceil(saltProb*total)), 255)
	g.scatter(out, int(math.Ceil(pepperProb*total)), 0)
	return out, nil
}

// Speckle добавляет мультипликативный шум: v + v*N(0, 1)*scale.
func (g *Generator) Speckle(img *image.Gray, scale float64) (*image.Gray, error) {
	if !finite(scale) {
		return nil, fmt.Errorf("speckle noise: invalid scale %v", scale)
	}
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: g.rnd}

	out := entity.CloneRaster(img)
	for i, v := range out.Pix {
		fv := float64(v)
		out.Pix[i] = entity.ClampByte(fv + fv*dist.Rand()*scale)
	}
	return out, nil
}

func (g *Generator) scatter(img *image.Gray, n int, value uint8) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for range n {
		x, y := g.rnd.IntN(w), g.rnd.IntN(h)
		img.Pix[y*img.Stride+x] = value
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validProb(p float64) bool {
	return p >= 0 && p <= 1
}

// Проверка реализации интерфейса
var _ port.NoiseGenerator = (*Generator)(nil)
