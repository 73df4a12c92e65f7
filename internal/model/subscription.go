package model

type Subscription struct {
	Tier              SubscriptionTier   `json:"tier"`
	Status            SubscriptionStatus `json:"status"`
	CurrentPeriodEnd  FlexTime           `json:"currentPeriodEnd"`
	CancelAtPeriodEnd bool               `json:"cancelAtPeriodEnd"`
}

type DownloadStats struct {
	DownloadsThisPeriod int      `json:"downloadsThisPeriod"`
	DownloadLimit       int      `json:"downloadLimit"`
	PeriodStart         FlexTime `json:"periodStart"`
	PeriodEnd           FlexTime `json:"periodEnd"`
}

type DownloadLog struct {
	ID           string      `json:"id"`
	BeatID       string      `json:"beatId"`
	UserID       string      `json:"userId"`
	LicenseType  LicenseType `json:"licenseType"`
	DownloadedAt FlexTime    `json:"downloadedAt"`
}

type User struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	CreatedAt FlexTime `json:"createdAt"`
	UpdatedAt FlexTime `json:"updatedAt"`
}
