// Package line は LINE Messaging API との境界を実装します。署名検証と
// イベントのデコード、応答・プッシュ送信、プロフィール取得をこの
// パッケージに閉じ込め、コアには抽象化されたイベントと応答だけを渡し
// ます。
package line

import (
	"context"
	"fmt"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/ogurasousui/kintai-line-bot/internal/core/dispatch"
)

// Messenger は linebot クライアントの薄いラッパーです。
// dispatch.ProfileSource と vacation.Notifier を実装します。
type Messenger struct {
	bot         *linebot.Client
	adminUserID string
}

// NewMessenger はチャネル認証情報から Messenger を生成します。
func NewMessenger(channelSecret, channelToken, adminUserID string) (*Messenger, error) {
	bot, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("line: create client: %w", err)
	}
	return &Messenger{bot: bot, adminUserID: adminUserID}, nil
}

// ParseRequest は署名を検証し webhook リクエストをイベント列へデコード
// します。
func (m *Messenger) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	return m.bot.ParseRequest(r)
}

// Reply は 1 イベントに対する応答を送信します。
func (m *Messenger) Reply(ctx context.Context, replyToken string, reply dispatch.Reply) error {
	if _, err := m.bot.ReplyMessage(replyToken, toMessages(reply)...).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("line: reply: %w", err)
	}
	return nil
}

// DisplayName は利用者の表示名を取得します。
func (m *Messenger) DisplayName(ctx context.Context, userID string) (string, error) {
	profile, err := m.bot.GetProfile(userID).WithContext(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("line: get profile: %w", err)
	}
	return profile.DisplayName, nil
}

// NotifyAdmin は設定済みの管理者へプッシュ通知を送ります。
func (m *Messenger) NotifyAdmin(ctx context.Context, text string) error {
	if m.adminUserID == "" {
		return nil
	}
	if _, err := m.bot.PushMessage(m.adminUserID, linebot.NewTextMessage(text)).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("line: push to admin: %w", err)
	}
	return nil
}

// toMessages は dispatch.Reply を LINE のメッセージへ変換します。
func toMessages(reply dispatch.Reply) []linebot.SendingMessage {
	if reply.Menu == nil {
		return []linebot.SendingMessage{linebot.NewTextMessage(reply.Text)}
	}

	menu := reply.Menu
	actions := make([]linebot.TemplateAction, 0, len(menu.Actions))
	for _, a := range menu.Actions {
		actions = append(actions, &linebot.PostbackAction{Label: a.Label, Data: a.Data})
	}
	template := &linebot.ButtonsTemplate{
		Title:   menu.Title,
		Text:    menu.Prompt,
		Actions: actions,
	}
	return []linebot.SendingMessage{linebot.NewTemplateMessage(menu.Title, template)}
}
