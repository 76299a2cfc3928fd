package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// mocks（Admin向け：衝突回避）
// =====================

type AdminOrderRepoMock struct{ mock.Mock }

func (m *AdminOrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminOrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *AdminOrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminOrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *AdminOrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *AdminOrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type AdminUserRepoMock struct{ mock.Mock }

func (m *AdminUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdminUserRepoMock) FindByIDs(ctx context.Context, userIDs []int64) ([]model.User, error) {
	args := m.Called(ctx, userIDs)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *AdminUserRepoMock) Update(ctx context.Context, user *model.User) error {
	panic("not used in AdminOrderUsecase tests")
}

func newAdminOrderUsecase(orders *AdminOrderRepoMock, users *AdminUserRepoMock) *usecase.AdminOrderUsecase {
	return usecase.NewAdminOrderUsecase(orders, users, discardLogger())
}

// =====================
// ListAll tests
// =====================

// 注文ごとにユーザーを引かず、まとめて1回で結合する
func TestAdminOrderUsecase_ListAll_JoinsOwners(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	users := new(AdminUserRepoMock)

	orders.On("ListAll", mock.Anything).Return([]model.Order{
		{ID: 3, UserID: 7},
		{ID: 2, UserID: 8},
		{ID: 1, UserID: 7},
	}, nil)
	// 重複を除いたIDだけで照会
	users.On("FindByIDs", mock.Anything, []int64{7, 8}).Return([]model.User{
		{ID: 7, Name: "Taro", Email: "taro@example.com"},
		{ID: 8, Name: "Hana", Email: "hana@example.com"},
	}, nil)

	uc := newAdminOrderUsecase(orders, users)

	outs, err := uc.ListAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, outs, 3)

	assert.Equal(t, "Taro", outs[0].UserName)
	assert.Equal(t, "taro@example.com", outs[0].UserEmail)
	assert.Equal(t, "Hana", outs[1].UserName)
	assert.Equal(t, "Taro", outs[2].UserName)

	orders.AssertExpectations(t)
	users.AssertExpectations(t)
}

// 退会済みなどでownerが引けない注文はowner欄が空のまま返る
func TestAdminOrderUsecase_ListAll_MissingOwner(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	users := new(AdminUserRepoMock)

	orders.On("ListAll", mock.Anything).Return([]model.Order{{ID: 1, UserID: 42}}, nil)
	users.On("FindByIDs", mock.Anything, []int64{42}).Return([]model.User{}, nil)

	uc := newAdminOrderUsecase(orders, users)

	outs, err := uc.ListAll(context.Background())
	assert.NoError(t, err)
	if assert.Len(t, outs, 1) {
		assert.Equal(t, "", outs[0].UserName)
		assert.Equal(t, "", outs[0].UserEmail)
	}
}

// =====================
// UpdateStatus tests
// =====================

func TestAdminOrderUsecase_UpdateStatus_UnauthorizedActor(t *testing.T) {
	uc := newAdminOrderUsecase(new(AdminOrderRepoMock), new(AdminUserRepoMock))

	_, err := uc.UpdateStatus(context.Background(), 0, 1, "confirmed")
	assertHTTPError(t, err, http.StatusUnauthorized, "authentication required")
}

func TestAdminOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	uc := newAdminOrderUsecase(orders, new(AdminUserRepoMock))

	_, err := uc.UpdateStatus(context.Background(), 1, 1, "shipped")
	assertHTTPError(t, err, http.StatusBadRequest, "Invalid status")

	// 閉集合チェックはDBより前
	orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	uc := newAdminOrderUsecase(orders, new(AdminUserRepoMock))

	_, err := uc.UpdateStatus(context.Background(), 1, 99, "confirmed")
	assertHTTPError(t, err, http.StatusNotFound, "Order not found")
}

func TestAdminOrderUsecase_UpdateStatus_SameStatus_NoOp(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusConfirmed,
	}, nil)

	uc := newAdminOrderUsecase(orders, new(AdminUserRepoMock))

	out, err := uc.UpdateStatus(context.Background(), 1, 1, "confirmed")
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, out.Status)

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_CannotChangeDelivered(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusDelivered,
	}, nil)

	uc := newAdminOrderUsecase(orders, new(AdminUserRepoMock))

	_, err := uc.UpdateStatus(context.Background(), 1, 1, "confirmed")
	assertHTTPError(t, err, http.StatusBadRequest, "Cannot change delivered order")
}

func TestAdminOrderUsecase_UpdateStatus_CannotChangeCancelled(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusCancelled,
	}, nil)

	uc := newAdminOrderUsecase(orders, new(AdminUserRepoMock))

	_, err := uc.UpdateStatus(context.Background(), 1, 1, "preparing")
	assertHTTPError(t, err, http.StatusBadRequest, "Cannot change cancelled order")
}

func TestAdminOrderUsecase_UpdateStatus_CannotRevertToPending(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusConfirmed,
	}, nil)

	uc := newAdminOrderUsecase(orders, new(AdminUserRepoMock))

	_, err := uc.UpdateStatus(context.Background(), 1, 1, "pending")
	assertHTTPError(t, err, http.StatusBadRequest, "Cannot revert order to pending")
}

func TestAdminOrderUsecase_UpdateStatus_Success(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusPending,
	}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusConfirmed).Return(nil)

	uc := newAdminOrderUsecase(orders, new(AdminUserRepoMock))

	out, err := uc.UpdateStatus(context.Background(), 1, 1, "confirmed")
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, out.Status)

	orders.AssertExpectations(t)
}

// 中間stateの飛び越しも許可（confirmedからdeliveredへ直接）
func TestAdminOrderUsecase_UpdateStatus_SkipForward(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusConfirmed,
	}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusDelivered).Return(nil)

	uc := newAdminOrderUsecase(orders, new(AdminUserRepoMock))

	out, err := uc.UpdateStatus(context.Background(), 1, 1, "delivered")
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, out.Status)
}

func TestAdminOrderUsecase_UpdateStatus_DBError_OnUpdate(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusPending,
	}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusConfirmed).Return(errors.New("db down"))

	uc := newAdminOrderUsecase(orders, new(AdminUserRepoMock))

	_, err := uc.UpdateStatus(context.Background(), 1, 1, "confirmed")
	assertHTTPError(t, err, http.StatusInternalServerError, "db error")
}

// =====================
// Delete tests
// =====================

func TestAdminOrderUsecase_Delete_NotFound(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	uc := newAdminOrderUsecase(orders, new(AdminUserRepoMock))

	_, err := uc.Delete(context.Background(), 99)
	assertHTTPError(t, err, http.StatusNotFound, "Order not found")

	orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// 消した注文のスナップショットを返す（フロントの確認表示用）
func TestAdminOrderUsecase_Delete_Success(t *testing.T) {
	orders := new(AdminOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(5)).Return(model.Order{
		ID:          5,
		UserID:      7,
		TotalAmount: 42.5,
		Status:      model.OrderStatusCancelled,
	}, nil)
	orders.On("Delete", mock.Anything, int64(5)).Return(nil)

	uc := newAdminOrderUsecase(orders, new(AdminUserRepoMock))

	out, err := uc.Delete(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, 42.5, out.TotalAmount)

	orders.AssertExpectations(t)
}
