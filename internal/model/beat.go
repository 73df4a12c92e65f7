package model

type Beat struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	BPM         int        `json:"bpm,omitempty"`
	MusicalKey  string     `json:"musicalKey,omitempty"`
	Genre       string     `json:"genre,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Status      BeatStatus `json:"status"`
	ProducerID  string     `json:"producerId"`
	Assets      []Asset    `json:"assets,omitempty"`
	CreatedAt   FlexTime   `json:"createdAt"`
	UpdatedAt   FlexTime   `json:"updatedAt"`
}

type Asset struct {
	ID               string           `json:"id"`
	BeatID           string           `json:"beatId"`
	Type             AssetType        `json:"type"`
	FileName         string           `json:"fileName"`
	MimeType         string           `json:"mimeType"`
	S3Key            string           `json:"s3Key"`
	URL              string           `json:"url,omitempty"`
	ProcessingStatus ProcessingStatus `json:"processingStatus"`
	CreatedAt        FlexTime         `json:"createdAt"`
	UpdatedAt        FlexTime         `json:"updatedAt"`
}

// BeatFilters are the supported catalogue filters. Zero values are omitted
// from the query string and the cache key alike.
type BeatFilters struct {
	Genre      string
	MinBPM     int
	MaxBPM     int
	Status     BeatStatus
	ProducerID string
}
