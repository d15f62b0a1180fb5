package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/google/uuid"

	"restoration-lab/internal/domain/entity"
	"restoration-lab/internal/domain/port"
)

// Params — внутренние параметры шума и фильтров. Снаружи не настраиваются.
type Params struct {
	GaussianMean      float64
	GaussianSigma     float64
	SaltProb          float64
	PepperProb        float64
	SpeckleScale      float64
	SpatialKernel     int // окно среднего и медианного фильтров
	DegradationKernel int // предполагаемое размытие для инверсного фильтра
}

// DefaultParams возвращает параметры исходного сценария.
func DefaultParams() Params {
	return Params{
		GaussianMean:      0,
		GaussianSigma:     20,
		SaltProb:          0.02,
		PepperProb:        0.02,
		SpeckleScale:      0.1,
		SpatialKernel:     3,
		DegradationKernel: 5,
	}
}

// RestorationService прогоняет изображение через шум, фильтры и отрисовку.
type RestorationService struct {
	loader    port.ImageLoader
	noise     port.NoiseGenerator
	filters   port.SpatialFilter
	frequency port.FrequencyFilter
	quality   port.QualityMeter
	renderer  port.FigureRenderer
	params    Params
	mu        sync.Mutex // генератор шума не потокобезопасен
}

// NewRestorationService создаёт сервис с параметрами по умолчанию.
func NewRestorationService(
	loader port.ImageLoader,
	noise port.NoiseGenerator,
	filters port.SpatialFilter,
	frequency port.FrequencyFilter,
	quality port.QualityMeter,
	renderer port.FigureRenderer,
) *RestorationService {
	return &RestorationService{
		loader:    loader,
		noise:     noise,
		filters:   filters,
		frequency: frequency,
		quality:   quality,
		renderer:  renderer,
		params:    DefaultParams(),
	}
}

// RunFile загружает изображение и прогоняет конвейер.
// Ошибка загрузки возвращается до любого шума и фильтрации.
func (s *RestorationService) RunFile(ctx context.Context, path string) (*entity.Report, error) {
	if s.loader == nil {
		return nil, errors.New("loader is not configured")
	}
	img, err := s.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	return s.Run(ctx, img)
}

// RunBytes декодирует изображение из байтов и прогоняет конвейер.
func (s *RestorationService) RunBytes(ctx context.Context, data []byte) (*entity.Report, error) {
	if s.loader == nil {
		return nil, errors.New("loader is not configured")
	}
	img, err := s.loader.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return s.Run(ctx, img)
}

// Run зашумляет изображение тремя способами, восстанавливает каждый вариант
// и собирает отчёт с раскладкой из восьми панелей.
func (s *RestorationService) Run(ctx context.Context, img *image.Gray) (*entity.Report, error) {
	if s.noise == nil || s.filters == nil || s.frequency == nil {
		return nil, errors.New("pipeline is not configured")
	}
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("empty image")
	}
	original := entity.CloneRaster(img)

	gaussianNoisy, spNoisy, speckleNoisy, err := s.addNoise(original)
	if err != nil {
		return nil, err
	}

	report := &entity.Report{
		ID:       uuid.NewString(),
		Original: original,
	}
	if report.Gaussian, err = s.restore(ctx, gaussianNoisy); err != nil {
		return nil, fmt.Errorf("gaussian: %w", err)
	}
	if report.SaltPepper, err = s.restore(ctx, spNoisy); err != nil {
		return nil, fmt.Errorf("salt and pepper: %w", err)
	}
	if report.Speckle, err = s.restore(ctx, speckleNoisy); err != nil {
		return nil, fmt.Errorf("speckle: %w", err)
	}

	report.Panels = Layout(report)
	if report.Quality, err = s.measure(report); err != nil {
		return nil, err
	}
	return report, nil
}

// RenderReport рисует сетку панелей отчёта.
func (s *RestorationService) RenderReport(report *entity.Report, w io.Writer) error {
	if s.renderer == nil {
		return errors.New("renderer is not configured")
	}
	return s.renderer.Render(report.Panels, w)
}

// Layout возвращает восемь панелей в порядке отображения.
func Layout(r *entity.Report) []entity.Panel {
	return []entity.Panel{
		{Title: entity.TitleOriginal, Image: r.Original},
		{Title: entity.TitleGaussianNoise, Image: r.Gaussian.Noisy},
		{Title: entity.TitleGaussianMean, Image: r.Gaussian.Mean},
		{Title: entity.TitleGaussianMedian, Image: r.Gaussian.Median},
		{Title: entity.TitleGaussianInverse, Image: r.Gaussian.Inverse},
		{Title: entity.TitleSaltPepperNoise, Image: r.SaltPepper.Noisy},
		{Title: entity.TitleSaltPepperMean, Image: r.SaltPepper.Mean},
		{Title: entity.TitleSaltPepperMedian, Image: r.SaltPepper.Median},
	}
}

func (s *RestorationService) addNoise(img *image.Gray) (gaussian, saltPepper, speckle *image.Gray, err error) {
	p := s.params
	s.mu.Lock()
	defer s.mu.Unlock()

	if gaussian, err = s.noise.Gaussian(img, p.GaussianMean, p.GaussianSigma); err != nil {
		return nil, nil, nil, err
	}
	if saltPepper, err = s.noise.SaltAndPepper(img, p.SaltProb, p.PepperProb); err != nil {
		return nil, nil, nil, err
	}
	if speckle, err = s.noise.Speckle(img, p.SpeckleScale); err != nil {
		return nil, nil, nil, err
	}
	return gaussian, saltPepper, speckle, nil
}

// restore применяет к зашумлённому изображению все три фильтра.
func (s *RestorationService) restore(ctx context.Context, noisy *image.Gray) (entity.Variant, error) {
	v := entity.Variant{Noisy: noisy}
	var err error

	if err = ctx.Err(); err != nil {
		return v, err
	}
	if v.Mean, err = s.filters.Mean(noisy, s.params.SpatialKernel); err != nil {
		return v, fmt.Errorf("mean filter: %w", err)
	}
	if v.Median, err = s.filters.Median(noisy, s.params.SpatialKernel); err != nil {
		return v, fmt.Errorf("median filter: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return v, err
	}
	if v.Inverse, err = s.frequency.Inverse(noisy, s.params.DegradationKernel); err != nil {
		return v, fmt.Errorf("inverse filter: %w", err)
	}
	return v, nil
}

// measure сравнивает с оригиналом все производные изображения.
func (s *RestorationService) measure(r *entity.Report) (map[string]entity.Quality, error) {
	if s.quality == nil {
		return nil, nil
	}
	images := map[string]*image.Gray{
		entity.TitleGaussianNoise:     r.Gaussian.Noisy,
		entity.TitleGaussianMean:      r.Gaussian.Mean,
		entity.TitleGaussianMedian:    r.Gaussian.Median,
		entity.TitleGaussianInverse:   r.Gaussian.Inverse,
		entity.TitleSaltPepperNoise:   r.SaltPepper.Noisy,
		entity.TitleSaltPepperMean:    r.SaltPepper.Mean,
		entity.TitleSaltPepperMedian:  r.SaltPepper.Median,
		entity.TitleSaltPepperInverse: r.SaltPepper.Inverse,
		entity.TitleSpeckleNoise:      r.Speckle.Noisy,
		entity.TitleSpeckleMean:       r.Speckle.Mean,
		entity.TitleSpeckleMedian:     r.Speckle.Median,
		entity.TitleSpeckleInverse:    r.Speckle.Inverse,
	}

	out := make(map[string]entity.Quality, len(images))
	for title, img := range images {
		q, err := s.quality.Compare(r.Original, img)
		if err != nil {
			return nil, fmt.Errorf("quality of %s: %w", title, err)
		}
		out[title] = q
	}
	return out, nil
}
