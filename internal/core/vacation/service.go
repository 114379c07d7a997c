package vacation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const minSubmitTokens = 4

// Service は休暇申請と承認のユースケースをまとめます。
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *zap.Logger
}

// UseCase は休暇ユースケースの公開インターフェースです。
type UseCase interface {
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
	Approve(ctx context.Context, in ApproveInput) (*ApproveResult, error)
}

// NewService は Service を生成します。notifier が nil の場合は管理者
// 未設定として通知を行いません。
func NewService(repo Repository, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// SubmitInput は休暇申請の入力です。RawCommand は
// 「休暇申請 <種別> <日付> <理由...>」形式のメッセージ全文です。
type SubmitInput struct {
	Name       string
	RawCommand string
}

// SubmitResult は受理された申請の内容を表します。
type SubmitResult struct {
	Date     string
	Kind     string
	Reason   string
	Notified bool
}

// ApproveInput は承認対象の指定です。
type ApproveInput struct {
	Date string
	Name string
}

// ApproveResult は承認された申請の内容を表します。
type ApproveResult struct {
	Date string
	Name string
	Kind string
}

// Submit はコマンドを解析して申請中の行を追記し、管理者が設定されて
// いれば通知を送ります。通知の失敗はログに残すだけで申請自体は成功と
// して扱います。
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	tokens := strings.Fields(in.RawCommand)
	if len(tokens) < minSubmitTokens {
		return nil, ErrMalformedRequest
	}

	kind := tokens[1]
	date := tokens[2]
	reason := strings.Join(tokens[3:], " ")

	req := Request{
		Date:   date,
		Name:   name,
		Kind:   kind,
		Reason: reason,
		Status: StatusPending,
	}
	if err := s.repo.Append(ctx, req); err != nil {
		return nil, err
	}

	result := &SubmitResult{Date: date, Kind: kind, Reason: reason}

	if s.notifier != nil {
		text := fmt.Sprintf("【休暇申請】\n名前: %s\n日付: %s\n種別: %s\n理由: %s", name, date, kind, reason)
		if err := s.notifier.NotifyAdmin(ctx, text); err != nil {
			s.logger.Warn("管理者通知に失敗しました", zap.String("name", name), zap.Error(err))
		} else {
			result.Notified = true
		}
	}

	return result, nil
}

// Approve は先頭から走査して (日付, 名前) が一致した最初の行を承認済へ
// 更新します。一致が無ければ ErrRequestNotFound を返します。
func (s *Service) Approve(ctx context.Context, in ApproveInput) (*ApproveResult, error) {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return nil, ErrInvalidTargetDate
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	requests, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, req := range requests {
		if req.Date != date || req.Name != name {
			continue
		}

		if err := s.repo.MarkApproved(ctx, req.Row); err != nil {
			return nil, err
		}
		return &ApproveResult{Date: req.Date, Name: req.Name, Kind: req.Kind}, nil
	}

	return nil, ErrRequestNotFound
}
