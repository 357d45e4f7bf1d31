package models

import "time"

// Payment methods accepted at checkout.
const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodStripe   = "stripe"
)

// PaymentStatusCompleted is the only status an order row is ever written with:
// rows are inserted after provider-side verification succeeds, never before.
const PaymentStatusCompleted = "completed"

// Order is the historical record of one successful payment attempt. It is an
// audit artifact; access control for downloads is the UserDownload row, not this.
type Order struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string    `json:"userId" gorm:"type:varchar(36);index"`
	ProjectID     string    `json:"projectId" gorm:"type:varchar(36);index"`
	Amount        float64   `json:"amount"` // Price snapshot at purchase time
	PaymentID     string    `json:"paymentId" gorm:"type:varchar(100)"`
	PaymentStatus string    `json:"paymentStatus" gorm:"type:varchar(20)"`
	PaymentMethod string    `json:"paymentMethod" gorm:"type:varchar(20)"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OrderUser is the buyer info joined into an admin order summary.
type OrderUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderProject is the project info joined into an admin order summary.
type OrderProject struct {
	Title string `json:"title"`
}

// AdminOrderSummary is one row of the admin order listing: an order joined
// with its buyer and project.
type AdminOrderSummary struct {
	ID            string       `json:"id"`
	Amount        float64      `json:"amount"`
	PaymentStatus string       `json:"paymentStatus"`
	PaymentMethod string       `json:"paymentMethod"`
	CreatedAt     time.Time    `json:"createdAt"`
	User          OrderUser    `json:"user" gorm:"embedded"`
	Project       OrderProject `json:"project" gorm:"embedded"`
}
