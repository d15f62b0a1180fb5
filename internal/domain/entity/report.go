package entity

import "image"

// Заголовки панелей итоговой сетки.
const (
	TitleOriginal          = "Original"
	TitleGaussianNoise     = "Gaussian Noise"
	TitleGaussianMean      = "Mean Filter (Gaussian)"
	TitleGaussianMedian    = "Median Filter (Gaussian)"
	TitleGaussianInverse   = "Inverse Filter (Gaussian)"
	TitleSaltPepperNoise   = "Salt & Pepper Noise"
	TitleSaltPepperMean    = "Mean Filter (S&P)"
	TitleSaltPepperMedian  = "Median Filter (S&P)"
	TitleSaltPepperInverse = "Inverse Filter (S&P)"
	TitleSpeckleNoise      = "Speckle Noise"
	TitleSpeckleMean       = "Mean Filter (Speckle)"
	TitleSpeckleMedian     = "Median Filter (Speckle)"
	TitleSpeckleInverse    = "Inverse Filter (Speckle)"
)

// Panel — одна ячейка сетки: подпись и изображение.
type Panel struct {
	Title string
	Image *image.Gray
}

// Variant хранит зашумлённое изображение и результаты всех фильтров для него.
type Variant struct {
	Noisy   *image.Gray
	Mean    *image.Gray
	Median  *image.Gray
	Inverse *image.Gray
}

// Quality — насколько изображение близко к оригиналу.
type Quality struct {
	MSE  float64 // среднеквадратичная ошибка
	PSNR float64 // пиковое отношение сигнал/шум, дБ; +Inf при MSE == 0
}

// Report — результат одного прогона конвейера.
type Report struct {
	ID         string
	Original   *image.Gray
	Gaussian   Variant
	SaltPepper Variant
	Speckle    Variant
	Panels     []Panel            // фиксированная раскладка из восьми панелей
	Quality    map[string]Quality // ключ — заголовок панели
}

// Titles возвращает заголовки панелей в порядке отображения.
func (r *Report) Titles() []string {
	titles := make([]string, 0, len(r.Panels))
	for _, p := range r.Panels {
		titles = append(titles, p.Title)
	}
	return titles
}
