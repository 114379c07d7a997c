package line

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v7/linebot"
	"go.uber.org/zap"

	"github.com/ogurasousui/kintai-line-bot/internal/core/dispatch"
)

// EventSource は webhook リクエストのデコードを抽象化します。
type EventSource interface {
	ParseRequest(r *http.Request) ([]*linebot.Event, error)
}

// Replier は 1 イベントへの応答送信を抽象化します。
type Replier interface {
	Reply(ctx context.Context, replyToken string, reply dispatch.Reply) error
}

// Dispatcher はコアのコマンド振り分けを抽象化します。
type Dispatcher interface {
	HandleText(ctx context.Context, ev dispatch.TextEvent) dispatch.Reply
	HandlePostback(ctx context.Context, ev dispatch.PostbackEvent) dispatch.Reply
}

// WebhookHandler は LINE からの webhook を受け、イベントごとに
// コマンドを処理して応答します。イベント単位の失敗はログに残すだけで、
// 同じリクエスト内の他のイベント処理は続行します。
type WebhookHandler struct {
	events     EventSource
	replier    Replier
	dispatcher Dispatcher
	logger     *zap.Logger
}

// NewWebhookHandler は WebhookHandler を生成します。
func NewWebhookHandler(events EventSource, replier Replier, dispatcher Dispatcher, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{events: events, replier: replier, dispatcher: dispatcher, logger: logger}
}

// Handle は POST /callback のハンドラです。
func (h *WebhookHandler) Handle(c *gin.Context) {
	events, err := h.events.ParseRequest(c.Request)
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			c.Status(http.StatusBadRequest)
			return
		}
		h.logger.Error("webhook リクエストの解析に失敗しました", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	ctx := c.Request.Context()
	for _, event := range events {
		h.handleEvent(ctx, event)
	}

	c.Status(http.StatusOK)
}

func (h *WebhookHandler) handleEvent(ctx context.Context, event *linebot.Event) {
	logger := h.logger.With(zap.String("event_id", uuid.NewString()))

	userID := ""
	if event.Source != nil {
		userID = event.Source.UserID
	}

	var reply dispatch.Reply
	switch event.Type {
	case linebot.EventTypeMessage:
		text, ok := event.Message.(*linebot.TextMessage)
		if !ok {
			// スタンプや画像などテキスト以外は応答しない。
			return
		}
		reply = h.dispatcher.HandleText(ctx, dispatch.TextEvent{
			UserID:     userID,
			Text:       text.Text,
			ReplyToken: event.ReplyToken,
		})
	case linebot.EventTypePostback:
		if event.Postback == nil {
			return
		}
		reply = h.dispatcher.HandlePostback(ctx, dispatch.PostbackEvent{
			UserID:     userID,
			Action:     event.Postback.Data,
			ReplyToken: event.ReplyToken,
		})
	default:
		return
	}

	if err := h.replier.Reply(ctx, event.ReplyToken, reply); err != nil {
		logger.Error("応答の送信に失敗しました", zap.String("user_id", userID), zap.Error(err))
	}
}
