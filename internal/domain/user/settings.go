// internal/domain/user/settings.go
package user

import "time"

const (
	PaymentCreditCard = "credit_card"
	PaymentBank       = "bank"
	PaymentPayPal     = "paypal"
)

// ValidPaymentMethod reports whether m is one the billing page offers.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCreditCard, PaymentBank, PaymentPayPal:
		return true
	}
	return false
}

// Settings are a user's notification and billing preferences.
type Settings struct {
	UserID             int64      `json:"-" db:"user_id"`
	EmailNotifications bool       `json:"email_notifications" db:"email_notifications"`
	SMSNotifications   bool       `json:"sms_notifications" db:"sms_notifications"`
	AutoRenew          bool       `json:"auto_renew" db:"auto_renew"`
	PaymentMethod      string     `json:"payment_method" db:"payment_method"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// DefaultSettings is what a user who never saved preferences gets.
func DefaultSettings(userID int64) *Settings {
	return &Settings{
		UserID:             userID,
		EmailNotifications: true,
		SMSNotifications:   false,
		AutoRenew:          true,
		PaymentMethod:      PaymentCreditCard,
	}
}

// UpdateSettingsRequest changes only the fields it carries.
type UpdateSettingsRequest struct {
	EmailNotifications *bool   `json:"email_notifications"`
	SMSNotifications   *bool   `json:"sms_notifications"`
	AutoRenew          *bool   `json:"auto_renew"`
	PaymentMethod      *string `json:"payment_method"`
}

// Apply merges the request onto s.
func (r *UpdateSettingsRequest) Apply(s *Settings) {
	if r.EmailNotifications != nil {
		s.EmailNotifications = *r.EmailNotifications
	}
	if r.SMSNotifications != nil {
		s.SMSNotifications = *r.SMSNotifications
	}
	if r.AutoRenew != nil {
		s.AutoRenew = *r.AutoRenew
	}
	if r.PaymentMethod != nil {
		s.PaymentMethod = *r.PaymentMethod
	}
}
