package validator

import (
	"context"
	"regexp"
	"strings"

	"app/internal/usecase"
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, name string, email string, password string) error {
	name = SanitizeString(name)
	email = strings.TrimSpace(email)

	// 必須チェック
	if name == "" || email == "" || password == "" {
		return usecase.ErrValidation
	}

	// 名前は2文字以上
	if len([]rune(name)) < 2 {
		return usecase.ErrValidation
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.ErrValidation
	}

	// パスワードは8文字以上＋大文字・小文字・数字を各1つ
	if !isStrongPassword(password) {
		return usecase.ErrValidation
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return usecase.ErrValidation
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.ErrValidation
	}

	return nil
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}

func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}

// SanitizeString はtrimして山括弧を落とす
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return s
}
