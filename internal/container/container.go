package container

import (
	app "restoration-lab/internal/application"
	"restoration-lab/internal/domain/port"
	"restoration-lab/internal/infrastructure/figure"
	"restoration-lab/internal/infrastructure/noise"
	"restoration-lab/internal/infrastructure/restore"
	"restoration-lab/internal/infrastructure/vision"
)

type Container struct {
	UserService        *app.UserService
	RestorationService *app.RestorationService
	Renderer           *figure.GridRenderer
}

// New собирает сервисы. maxSide ограничивает размер входных изображений, seed задаёт шум.
func New(userRepo port.UserRepository, maxSide int, seed uint64) *Container {
	userService := app.NewUserService(userRepo)

	restorer := restore.NewRestorer()
	renderer := figure.NewGridRenderer()
	restorationService := app.NewRestorationService(
		vision.NewLoader(maxSide),
		noise.NewGenerator(seed),
		vision.NewFilters(),
		restorer,
		restorer,
		renderer,
	)

	return &Container{
		UserService:        userService,
		RestorationService: restorationService,
		Renderer:           renderer,
	}
}
