package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/sirupsen/logrus"
)

// ステータス更新を誰に許すかのポリシー。
type StatusUpdatePolicy string

const (
	// 管理者だけが全ての遷移を実行できる
	StatusPolicyAdminOnly StatusUpdatePolicy = "admin_only"
	// 所有者はpendingの自己キャンセルだけ可能（旧仕様。現在は未採用）
	StatusPolicyOwnerCancelPending StatusUpdatePolicy = "owner_cancel_pending"
)

// 採用中のポリシー。ルーティング側のRequireRolesもこれに合わせてある。
const ActiveStatusUpdatePolicy = StatusPolicyAdminOnly

type AdminOrderUsecase struct {
	orders repo.OrderRepository
	users  repo.UserRepository
	log    *logrus.Logger
}

func NewAdminOrderUsecase(orders repo.OrderRepository, users repo.UserRepository, log *logrus.Logger) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders, users: users, log: log}
}

// 管理画面用。注文にowner（公開プロフィールのみ）を結合して返す。
type AdminOrderOutput struct {
	model.Order
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// ListAll は全注文を新しい順で返す
func (u *AdminOrderUsecase) ListAll(ctx context.Context) ([]AdminOrderOutput, error) {
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}

	// owner情報をまとめて引いて結合（注文ごとに引かない）
	idSet := map[int64]struct{}{}
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		if _, ok := idSet[o.UserID]; !ok {
			idSet[o.UserID] = struct{}{}
			ids = append(ids, o.UserID)
		}
	}

	users, err := u.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	byID := make(map[int64]model.User, len(users))
	for _, usr := range users {
		byID[usr.ID] = usr
	}

	outs := make([]AdminOrderOutput, 0, len(orders))
	for _, o := range orders {
		out := AdminOrderOutput{Order: o}
		if usr, ok := byID[o.UserID]; ok {
			out.UserName = usr.Name
			out.UserEmail = usr.Email
		}
		outs = append(outs, out)
	}

	return outs, nil
}

// UpdateStatus は注文のstatusを遷移させる。
// 閉集合チェック → 取得 → 同値no-op → 遷移ガード → 単一行UPDATEの順。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorUserID int64, orderID int64, rawStatus string) (model.Order, error) {
	if actorUserID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "User authentication required")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(rawStatus))
	if !newStatus.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Invalid status")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// すでに同じ値なら何もしない（200で現状を返す）
	if o.Status == newStatus {
		return o, nil
	}

	if !model.CanTransition(o.Status, newStatus) {
		if o.Status.Terminal() {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "Cannot change "+string(o.Status)+" order")
		}
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Cannot revert order to pending")
	}

	if err := u.orders.UpdateStatus(ctx, orderID, newStatus); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"actor_id": actorUserID,
		"from":     string(o.Status),
		"to":       string(newStatus),
	}).Info("order status updated")

	o.Status = newStatus
	return o, nil
}

// Delete は注文を明細ごと完全に消す
func (u *AdminOrderUsecase) Delete(ctx context.Context, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return o, nil
}
