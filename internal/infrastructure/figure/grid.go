// Package figure рисует сетку панелей с изображениями.
package figure

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"restoration-lab/internal/domain/entity"
	"restoration-lab/internal/domain/port"
)

// Раскладка по умолчанию: две строки по четыре панели, 15x10 дюймов.
const (
	DefaultRows = 2
	DefaultCols = 4
)

// GridRenderer рисует панели сеткой Rows x Cols и сохраняет PNG.
type GridRenderer struct {
	Rows   int
	Cols   int
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// NewGridRenderer создаёт рендерер с раскладкой 2x4.
func NewGridRenderer() *GridRenderer {
	return &GridRenderer{
		Rows:   DefaultRows,
		Cols:   DefaultCols,
		Width:  15 * vg.Inch,
		Height: 10 * vg.Inch,
		DPI:    96,
	}
}

// Render рисует панели слева направо, сверху вниз и пишет PNG в w.
func (r *GridRenderer) Render(panels []entity.Panel, w io.Writer) error {
	if len(panels) > r.Rows*r.Cols {
		return fmt.Errorf("too many panels: %d for a %dx%d grid", len(panels), r.Rows, r.Cols)
	}

	plots := make([][]*plot.Plot, r.Rows)
	for j := range plots {
		plots[j] = make([]*plot.Plot, r.Cols)
	}
	for i, p := range panels {
		if p.Image == nil {
			return fmt.Errorf("panel %q has no image", p.Title)
		}
		plots[i/r.Cols][i%r.Cols] = panelPlot(p)
	}

	img := vgimg.NewWith(vgimg.UseWH(r.Width, r.Height), vgimg.UseDPI(r.DPI))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      r.Rows,
		Cols:      r.Cols,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}

	canvases := plot.Align(plots, tiles, dc)
	for i, p := range panels {
		pl, c := plots[i/r.Cols][i%r.Cols], canvases[i/r.Cols][i%r.Cols]
		b := p.Image.Bounds()
		letterbox(pl, c, float64(b.Dx()), float64(b.Dy()))
		pl.Draw(c)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// Save рисует панели в файл, создавая каталог при необходимости.
func (r *GridRenderer) Save(panels []entity.Panel, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create figure: %w", err)
	}
	if err := r.Render(panels, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// panelPlot строит график с изображением без осей. Пропорции выставляет letterbox.
func panelPlot(p entity.Panel) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.HideAxes()
	pl.X.Padding, pl.Y.Padding = 0, 0

	b := p.Image.Bounds()
	pl.Add(plotter.NewImage(p.Image, 0, 0, float64(b.Dx()), float64(b.Dy())))
	return pl
}

// letterbox расширяет диапазон одной из осей так, чтобы пиксели изображения
// w x h остались квадратными в области данных c. Лишнее место остаётся фоном.
func letterbox(pl *plot.Plot, c draw.Canvas, w, h float64) {
	size := pl.DataCanvas(c).Size()
	cw, ch := float64(size.X), float64(size.Y)
	if cw <= 0 || ch <= 0 || w <= 0 || h <= 0 {
		return
	}

	pl.X.Min, pl.X.Max = 0, w
	pl.Y.Min, pl.Y.Max = 0, h
	if cw/ch > w/h {
		pad := (h*cw/ch - w) / 2
		pl.X.Min, pl.X.Max = -pad, w+pad
	} else {
		pad := (w*ch/cw - h) / 2
		pl.Y.Min, pl.Y.Max = -pad, h+pad
	}
}

// Проверка реализации интерфейса
var _ port.FigureRenderer = (*GridRenderer)(nil)
