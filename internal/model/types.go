package model

// Enumerations mirror the marketplace backend's wire values verbatim.

type AssetType string

const (
	AssetTypeOriginalAudio  AssetType = "ORIGINAL_AUDIO"
	AssetTypePreviewAudio   AssetType = "PREVIEW_AUDIO"
	AssetTypeThumbnailImage AssetType = "THUMBNAIL_IMAGE"
	AssetTypeCoverImage     AssetType = "COVER_IMAGE"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeOriginalAudio, AssetTypePreviewAudio, AssetTypeThumbnailImage, AssetTypeCoverImage:
		return true
	}
	return false
}

func (t AssetType) IsAudio() bool {
	return t == AssetTypeOriginalAudio || t == AssetTypePreviewAudio
}

func (t AssetType) IsImage() bool {
	return t == AssetTypeThumbnailImage || t == AssetTypeCoverImage
}

type ProcessingStatus string

const (
	ProcessingStatusUploading  ProcessingStatus = "UPLOADING"
	ProcessingStatusUploaded   ProcessingStatus = "UPLOADED"
	ProcessingStatusProcessing ProcessingStatus = "PROCESSING"
	ProcessingStatusReady      ProcessingStatus = "READY"
	ProcessingStatusFailed     ProcessingStatus = "FAILED"
)

// Terminal reports whether no further status transition can occur.
func (s ProcessingStatus) Terminal() bool {
	return s == ProcessingStatusReady || s == ProcessingStatusFailed
}

// Rank orders statuses along the processing pipeline. A status with a lower
// rank than one already observed is stale and must be ignored.
func (s ProcessingStatus) Rank() int {
	switch s {
	case ProcessingStatusUploading:
		return 0
	case ProcessingStatusUploaded:
		return 1
	case ProcessingStatusProcessing:
		return 2
	case ProcessingStatusReady, ProcessingStatusFailed:
		return 3
	}
	return -1
}

type BeatStatus string

const (
	BeatStatusDraft     BeatStatus = "DRAFT"
	BeatStatusPublished BeatStatus = "PUBLISHED"
	BeatStatusArchived  BeatStatus = "ARCHIVED"
)

type LicenseType string

const (
	LicenseTypeBasic     LicenseType = "BASIC"
	LicenseTypePremium   LicenseType = "PREMIUM"
	LicenseTypeExclusive LicenseType = "EXCLUSIVE"
)

type UserRole string

const (
	RoleProducer UserRole = "PRODUCER"
	RoleArtist   UserRole = "ARTIST"
	RoleAdmin    UserRole = "ADMIN"
)

type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "FREE"
	TierCreator SubscriptionTier = "CREATOR"
	TierPro     SubscriptionTier = "PRO"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionPastDue  SubscriptionStatus = "PAST_DUE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
	SubscriptionNone     SubscriptionStatus = "NONE"
)
