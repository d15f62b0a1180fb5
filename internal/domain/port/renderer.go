package port

import (
	"io"

	"restoration-lab/internal/domain/entity"
)

// FigureRenderer интерфейс отрисовки сетки панелей
type FigureRenderer interface {
	// Render рисует панели и пишет PNG в w
	Render(panels []entity.Panel, w io.Writer) error
}
