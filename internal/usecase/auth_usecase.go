package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/notification"
	"app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗（emailなし・パスワード不一致は同じ文言にする）
	ErrUnauthorized = errors.New("invalid credentials")
	//404
	ErrUserNotFound = errors.New("user not found")
	//競合（email使用済み）
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)

// bcryptコスト（会員登録）
const bcryptCost = 12

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, name string, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// 登録/ログインの結果。Tokenはhandlerがcookieにする。
type AuthResult struct {
	User  UserDTO
	Token string
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	validator AuthValidator
	mailer    notification.Mailer
	log       *logrus.Logger
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	validator AuthValidator,
	mailer notification.Mailer,
	log *logrus.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
		mailer:    mailer,
		log:       log,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in.Name, in.Email, in.Password); err != nil {
		return nil, err
	}

	email := normalizeEmail(in.Email)

	//email重複チェック（unique indexが最後の砦）
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInternal
	}
	if existing != nil {
		return nil, ErrConflict
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, ErrInternal
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(pwHash),
		Role:         model.RoleUser,
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrConflict
		}
		return nil, ErrInternal
	}

	//セッショントークン発行
	token, err := u.issueSessionToken(user)
	if err != nil {
		return nil, ErrInternal
	}

	//ウェルカムメールはbest-effort。レスポンスは待たない。
	u.sendWelcomeAsync(user.Email, user.Name)

	return &AuthResult{
		User:  toUserDTO(user),
		Token: token,
	}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := u.validator.ValidateLogin(ctx, in.Email, in.Password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, ErrInternal
	}

	// emailなしもパスワード不一致も同じエラーにする（列挙防止）
	if user == nil {
		return nil, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrUnauthorized
	}

	token, err := u.issueSessionToken(user)
	if err != nil {
		return nil, ErrInternal
	}

	return &AuthResult{
		User:  toUserDTO(user),
		Token: token,
	}, nil
}

// Profile はストアから最新のユーザー情報を引き直す。
// 認証そのものはトークンだけで済ませるので、ここが唯一の再照会ポイント。
func (u *AuthUsecase) Profile(ctx context.Context, userID int64) (*UserDTO, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// jwt発行。payloadが以降のリクエストの認可の根拠になる。
func (u *AuthUsecase) issueSessionToken(user *model.User) (string, error) {
	now := time.Now()
	exp := now.Add(u.cfg.JWTExpires)

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", err
	}

	return signed, nil
}

func (u *AuthUsecase) sendWelcomeAsync(email string, name string) {
	timeout := u.cfg.NotifyTimeout

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := u.mailer.SendWelcomeEmail(ctx, email, name); err != nil {
			u.log.WithError(err).WithField("email", email).Error("failed to send welcome email")
		}
	}()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}
