package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"restoration-lab/internal/domain/entity"
	"restoration-lab/internal/domain/port"
)

// DefaultMaxSide — предельная сторона изображения из бота.
const DefaultMaxSide = 1024

// Loader читает изображения и переводит их в оттенки серого.
type Loader struct {
	// MaxSide ограничивает большую сторону; 0 отключает уменьшение.
	MaxSide int
}

// NewLoader создаёт загрузчик с ограничением размера.
func NewLoader(maxSide int) *Loader {
	return &Loader{MaxSide: maxSide}
}

// Load открывает файл и возвращает полутоновый растр.
func (l *Loader) Load(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", entity.ErrImageNotFound, path, err)
		}
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	return l.decode(f)
}

// Decode декодирует изображение из байтов.
func (l *Loader) Decode(data []byte) (*image.Gray, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", entity.ErrImageDecode)
	}
	return l.decode(bytes.NewReader(data))
}

func (l *Loader) decode(r io.Reader) (*image.Gray, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrImageDecode, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty %s image", entity.ErrImageDecode, format)
	}

	gray := ToGray(img)
	return l.fit(gray), nil
}

// fit уменьшает изображение, если большая сторона превышает MaxSide.
func (l *Loader) fit(img *image.Gray) *image.Gray {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if l.MaxSide <= 0 || (w <= l.MaxSide && h <= l.MaxSide) {
		return img
	}

	scale := float64(l.MaxSide) / float64(max(w, h))
	newW := max(1, int(float64(w)*scale))
	newH := max(1, int(float64(h)*scale))

	dst := entity.NewRaster(newW, newH)
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// ToGray переводит произвольное изображение в оттенки серого с началом в (0, 0).
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return entity.CloneRaster(g)
	}
	b := img.Bounds()
	dst := entity.NewRaster(b.Dx(), b.Dy())
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// Проверка реализации интерфейса
var _ port.ImageLoader = (*Loader)(nil)
