package notification

import "context"

// 確認メールに載せる注文概要
type OrderConfirmation struct {
	OrderID     int64
	Status      string
	TotalAmount float64
}

// Mailer はトランザクションメールの送信先。
// 呼び出し側はbest-effort：失敗はログに残すだけでリクエストは失敗させない。
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, toEmail string, toName string) error
	SendOrderConfirmationEmail(ctx context.Context, toEmail string, toName string, oc OrderConfirmation) error
}
