package handlers

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"car-persona-ai-bot/internal/gemini"
	"car-persona-ai-bot/internal/mediagroup"
	"car-persona-ai-bot/internal/persona"
	"car-persona-ai-bot/internal/session"
	"car-persona-ai-bot/internal/telegram"
)

type Options struct {
	Telegram *telegram.Client
	Analyzer *persona.Analyzer
	Sessions *session.Store
	Logger   *slog.Logger
}

type Handler struct {
	tg         *telegram.Client
	analyzer   *persona.Analyzer
	sessions   *session.Store
	logger     *slog.Logger
	aggregator *mediagroup.Aggregator
}

func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		tg:       opts.Telegram,
		analyzer: opts.Analyzer,
		sessions: opts.Sessions,
		logger:   logger,
	}
}

func (h *Handler) SetMediaGroupAggregator(ag *mediagroup.Aggregator) {
	h.aggregator = ag
}

func (h *Handler) HandleUpdate(ctx context.Context, update telegram.Update) error {
	if update.Message == nil {
		return nil
	}

	msg := update.Message
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.IsCommand() {
		return h.handleCommand(ctx, chatID, userID, msg)
	}

	if len(msg.Photo) > 0 {
		return h.handlePhoto(ctx, chatID, userID, msg)
	}

	if msg.Text != "" {
		return h.tg.SendText(chatID, "📷 Send me a photo of a car and I'll tell you who drives it.")
	}

	return nil
}

// HandleMediaGroup analyzes a flushed photo album as one request: every frame
// is attached to the identification call.
func (h *Handler) HandleMediaGroup(ctx context.Context, group mediagroup.Group) {
	if err := h.processPhotos(ctx, group.ChatID, group.UserID, group.FileIDs); err != nil {
		h.logger.Error("media group processing failed", "err", err)
	}
}

func (h *Handler) handleCommand(ctx context.Context, chatID int64, userID int64, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return h.tg.SendText(chatID,
			"🚗 CarBTI Bot\n\n"+
				"Send me a photo of a car and I'll profile its presumed owner: "+
				"lifestyle, vibe and a five-axis meme index.\n\n"+
				"Commands:\n"+
				"/start - Show this message\n"+
				"/help - Help\n"+
				"/again - New persona for your last car\n"+
				"/clear - Forget your last car",
		)
	case "help":
		return h.tg.SendText(chatID,
			"🚗 Help\n\n"+
				"Send a car photo (or an album with several angles) — I'll identify "+
				"the model and invent its owner's persona.\n"+
				"/again — re-spin the persona for the last identified car.\n"+
				"/clear — forget the last identified car.",
		)
	case "clear":
		h.sessions.Clear(userID)
		return h.tg.SendText(chatID, "✅ Forgotten. Send me a new car photo!")
	case "again":
		carModel, ok := h.sessions.LastCar(userID)
		if !ok {
			return h.tg.SendText(chatID, "🤔 I don't remember a car for you yet. Send me a photo first!")
		}

		h.tg.SendTyping(chatID)

		p, err := h.analyzer.Persona(ctx, carModel)
		if err != nil {
			h.logger.Error("persona re-spin failed", "err", err)
			return h.tg.SendText(chatID, "❌ Something went wrong. Please try again.")
		}

		return h.tg.SendText(chatID, formatPersona(carModel, p))
	default:
		return h.tg.SendText(chatID, "❌ Unknown command. Try /help.")
	}
}

func (h *Handler) handlePhoto(ctx context.Context, chatID int64, userID int64, msg *tgbotapi.Message) error {
	photo := msg.Photo[len(msg.Photo)-1]
	fileID := photo.FileID

	if msg.MediaGroupID != "" && h.aggregator != nil {
		h.aggregator.Add(mediagroup.Item{
			ChatID:       chatID,
			UserID:       userID,
			MediaGroupID: msg.MediaGroupID,
			FileID:       fileID,
		})
		return nil
	}

	return h.processPhotos(ctx, chatID, userID, []string{fileID})
}

func (h *Handler) processPhotos(ctx context.Context, chatID int64, userID int64, fileIDs []string) error {
	h.tg.SendTyping(chatID)

	images := make([]gemini.ImageInput, len(fileIDs))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, fileID := range fileIDs {
		i := i
		fileID := fileID
		eg.Go(func() error {
			data, mimeType, err := h.tg.DownloadPhotoBase64(egCtx, fileID)
			if err != nil {
				return err
			}
			images[i] = gemini.ImageInput{DataBase64: data, MimeType: mimeType}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		h.logger.Error("photo download failed", "err", err)
		return h.tg.SendText(chatID, "❌ Couldn't download your photo. Please try again.")
	}

	analysis, err := h.analyzer.Analyze(ctx, images)
	if err != nil {
		h.logger.Error("analysis failed", "err", err)
		return h.tg.SendText(chatID, "❌ Analysis failed. Please try again.")
	}

	if !analysis.IsCar {
		return h.tg.SendText(chatID, "🔍 I can't find a car in this photo. Try another angle?")
	}

	h.sessions.Remember(userID, analysis.Candidates[0].Model)

	return h.tg.SendText(chatID, formatAnalysis(analysis))
}
