package cache

import (
	"net/url"
	"strconv"

	"github.com/beatvault/beatvault/internal/model"
)

// Key builders mirror the resource identity the backend exposes: a detail
// key per beat, one listing key per canonical filter combination, and
// per-user keys for subscription and download state.

const (
	BeatListPrefix    = "beats/list/"
	beatDetailPrefix  = "beats/detail/"
	subscriptionSpace = "subscription/"
	downloadSpace     = "downloads/"
)

func BeatDetailKey(beatID string) string {
	return beatDetailPrefix + beatID
}

func BeatListKey(filters model.BeatFilters) string {
	params := url.Values{}
	if filters.Genre != "" {
		params.Set("genre", filters.Genre)
	}
	if filters.MinBPM > 0 {
		params.Set("minBpm", strconv.Itoa(filters.MinBPM))
	}
	if filters.MaxBPM > 0 {
		params.Set("maxBpm", strconv.Itoa(filters.MaxBPM))
	}
	if filters.Status != "" {
		params.Set("status", string(filters.Status))
	}
	if filters.ProducerID != "" {
		params.Set("producerId", filters.ProducerID)
	}
	// url.Values.Encode sorts keys, so equal filters always map to the
	// same cache key.
	return BeatListPrefix + params.Encode()
}

func SubscriptionPrefix(userID string) string {
	return subscriptionSpace + userID + "/"
}

func SubscriptionKey(userID string) string {
	return SubscriptionPrefix(userID) + "status"
}

func DownloadStatsKey(userID string) string {
	return SubscriptionPrefix(userID) + "stats"
}

func DownloadPrefix(userID string) string {
	return downloadSpace + userID + "/"
}

func DownloadHistoryKey(userID string) string {
	return DownloadPrefix(userID) + "history"
}
