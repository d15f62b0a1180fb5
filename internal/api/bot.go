package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "restoration-lab/internal/application"
	"restoration-lab/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я показываю, как шум портит изображение и как фильтры его восстанавливают.

📸 Отправьте /restore и фото, и я добавлю гауссов шум, «соль и перец» и спекл-шум, а затем применю средний, медианный и инверсный фильтры.

📋 Команды:
/restore — начать восстановление
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /restore, затем фото
2️⃣ Бот переведёт его в оттенки серого и зашумит
3️⃣ Вы получите сетку из восьми панелей и PSNR каждого фильтра

💡 Чем выше PSNR, тем ближе результат к оригиналу.

📋 Команды:
/restore — начать восстановление
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото для восстановления."
	msgCancelled       = "❌ Операция отменена. Отправьте /restore для новой попытки."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgBusy            = "⏳ Предыдущее изображение ещё обрабатывается, подождите."
	msgRestoreFirst    = "📸 Сначала отправьте /restore, затем фото."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
)

// downloadTimeout ограничивает скачивание фото из Telegram
const downloadTimeout = 30 * time.Second

// captionTitles — строки подписи в порядке вывода
var captionTitles = []string{
	entity.TitleGaussianNoise,
	entity.TitleGaussianMean,
	entity.TitleGaussianMedian,
	entity.TitleGaussianInverse,
	entity.TitleSaltPepperNoise,
	entity.TitleSaltPepperMean,
	entity.TitleSaltPepperMedian,
}

// Bot представляет Telegram-бота
type Bot struct {
	api         *tgbotapi.BotAPI
	users       *app.UserService
	restoration *app.RestorationService
	client      *http.Client
	wg          sync.WaitGroup
}

// NewBot создаёт нового бота
func NewBot(token string, users *app.UserService, restoration *app.RestorationService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:         api,
		users:       users,
		restoration: restoration,
		client:      &http.Client{Timeout: downloadTimeout},
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		// Во время обработки /start только показывает приветствие
		b.setState(ctx, userID, chatID, b.users.Cancel)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "restore":
		err := b.setState(ctx, userID, chatID, b.users.BeginRestore)
		b.sendMessage(chatID, commandReply(err, msgAwaitingPhoto))

	case "cancel":
		err := b.setState(ctx, userID, chatID, b.users.Cancel)
		b.sendMessage(chatID, commandReply(err, msgCancelled))

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

func (b *Bot) setState(ctx context.Context, userID, chatID int64, fn func(context.Context, int64, int64) (*entity.User, error)) error {
	_, err := fn(ctx, userID, chatID)
	if err != nil && !errors.Is(err, entity.ErrUserBusy) {
		log.Printf("Error updating user %d: %v", userID, err)
	}
	return err
}

// commandReply выбирает ответ на команду, меняющую состояние
func commandReply(err error, done string) string {
	if errors.Is(err, entity.ErrUserBusy) {
		return msgBusy
	}
	return done
}

// photoRefusal объясняет, почему фото не принято
func photoRefusal(user *entity.User) string {
	if user.Busy() {
		return msgBusy
	}
	return msgRestoreFirst
}

// handlePhoto занимает пользователя, ожидающего фото, и запускает конвейер в отдельной горутине
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	ok, err := b.users.TryBeginProcessing(ctx, userID, chatID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}
	if !ok {
		user, err := b.users.Get(ctx, userID, chatID)
		if err != nil {
			log.Printf("Error getting user: %v", err)
			return
		}
		b.sendMessage(chatID, photoRefusal(user))
		return
	}

	b.sendMessage(chatID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() {
			if err := b.users.FinishProcessing(context.WithoutCancel(ctx), userID, chatID); err != nil {
				log.Printf("Error resetting user %d: %v", userID, err)
			}
		}()

		if err := b.processPhoto(ctx, chatID, photo.FileID); err != nil {
			log.Printf("Error processing photo for user %d: %v", userID, err)
			b.sendMessage(chatID, msgProcessingError)
		}
	}()
}

func (b *Bot) processPhoto(ctx context.Context, chatID int64, fileID string) error {
	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		return err
	}
	log.Printf("Received image: %d bytes", len(imageData))

	report, err := b.restoration.RunBytes(ctx, imageData)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := b.restoration.RenderReport(report, &buf); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "restoration-" + report.ID + ".png",
		Bytes: buf.Bytes(),
	})
	photo.Caption = FormatCaption(report)
	if _, err := b.api.Send(photo); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("download file: unexpected status " + resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// FormatCaption перечисляет PSNR панелей отчёта относительно оригинала
func FormatCaption(report *entity.Report) string {
	var sb strings.Builder
	sb.WriteString("PSNR, дБ:")
	for _, title := range captionTitles {
		q, ok := report.Quality[title]
		if !ok {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(title)
		sb.WriteString(": ")
		if math.IsInf(q.PSNR, 1) {
			sb.WriteString("∞")
		} else {
			fmt.Fprintf(&sb, "%.2f", q.PSNR)
		}
	}
	return sb.String()
}
