package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// レコードが見つかりませんを統一
var ErrNotFound = errors.New("not found")

// emailのunique制約違反
var ErrDuplicateEmail = errors.New("email already registered")

// 保存・取得を約束
type UserRepository interface {
	// 新規ユーザー作成。email重複はErrDuplicateEmail。
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。見つからなければnil。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	// メールからユーザーを1件取得する。見つからなければnil。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 複数IDをまとめて取得（管理者の注文一覧でowner情報を結合する用）
	FindByIDs(ctx context.Context, userIDs []int64) ([]model.User, error)
	// ユーザー情報の更新
	Update(ctx context.Context, user *model.User) error
}
