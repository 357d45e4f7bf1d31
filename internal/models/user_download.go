package models

import "time"

// UserDownload is the ownership grant: its existence is both necessary and
// sufficient for a user to download a project. The composite unique index
// guarantees at most one grant per (user, project) pair even under concurrent
// payment verifications.
type UserDownload struct {
	ID               string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID           string     `json:"userId" gorm:"type:varchar(36);uniqueIndex:idx_user_downloads_user_project"`
	ProjectID        string     `json:"projectId" gorm:"type:varchar(36);uniqueIndex:idx_user_downloads_user_project"`
	OrderID          string     `json:"orderId" gorm:"type:varchar(36)"`
	DownloadCount    int        `json:"downloadCount"`
	LastDownloadedAt *time.Time `json:"lastDownloadedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// PurchaseSummary is one row of a user's purchase history: the grant joined
// with its project and order. The download link always resolves the live
// project row; it is not snapshotted at purchase time.
type PurchaseSummary struct {
	ID             string     `json:"id"` // Project ID
	Title          string     `json:"title"`
	Thumbnail      string     `json:"thumbnail"`
	DownloadLink   string     `json:"downloadLink"`
	PurchaseDate   time.Time  `json:"purchaseDate"`
	Amount         float64    `json:"amount"`
	DownloadCount  int        `json:"downloadCount"`
	LastDownloaded *time.Time `json:"lastDownloaded"`
}
