package entitlement

import (
	"fmt"

	"github.com/beatvault/beatvault/internal/model"
)

type Reason string

const (
	ReasonNotAuthenticated     Reason = "not-authenticated"
	ReasonWrongRole            Reason = "wrong-role"
	ReasonNoActiveSubscription Reason = "no-active-subscription"
	ReasonLimitReached         Reason = "limit-reached"
)

// Input is everything a download decision depends on. The role comes from
// the verified token claims, never from a cached profile; subscription and
// stats come from the state cache.
type Input struct {
	Authenticated bool
	Role          model.UserRole
	Subscription  *model.Subscription
	Stats         *model.DownloadStats
}

// Decision is the gate outcome. On deny it doubles as the dialog payload
// the storefront shows instead of performing the action.
type Decision struct {
	Allowed     bool   `json:"allowed"`
	Reason      Reason `json:"reason,omitempty"`
	Title       string `json:"title,omitempty"`
	Message     string `json:"message,omitempty"`
	ActionLabel string `json:"actionLabel,omitempty"`
	ActionURL   string `json:"actionUrl,omitempty"`
}

type rule struct {
	reason Reason
	denies func(Input) bool
}

// Rules are evaluated in order; the first match is the single reason
// exposed. The order is the precedence contract, not an accident of code.
var rules = []rule{
	{ReasonNotAuthenticated, func(in Input) bool {
		return !in.Authenticated
	}},
	{ReasonWrongRole, func(in Input) bool {
		return in.Role != model.RoleArtist
	}},
	{ReasonNoActiveSubscription, func(in Input) bool {
		return in.Subscription == nil || in.Subscription.Status != model.SubscriptionActive
	}},
	{ReasonLimitReached, func(in Input) bool {
		return in.Stats == nil || in.Stats.DownloadsThisPeriod >= in.Stats.DownloadLimit
	}},
}

func Evaluate(in Input) Decision {
	for _, r := range rules {
		if r.denies(in) {
			return denial(r.reason, in)
		}
	}
	return Decision{Allowed: true}
}

// Do performs the gated action only when the decision allows it; on deny
// the action is a no-op and the dialog payload is returned.
func Do(in Input, action func() error) (Decision, error) {
	decision := Evaluate(in)
	if !decision.Allowed {
		return decision, nil
	}
	if err := action(); err != nil {
		return decision, err
	}
	return decision, nil
}

func denial(reason Reason, in Input) Decision {
	d := Decision{Allowed: false, Reason: reason}
	switch reason {
	case ReasonNotAuthenticated:
		d.Title = "Subscription Required"
		d.Message = "Please sign in to download beats."
		d.ActionLabel = "Sign In"
		d.ActionURL = "/login"
	case ReasonWrongRole:
		d.Title = "Subscription Required"
		d.Message = "Only artists can download beats. Producers can upload beats."
	case ReasonNoActiveSubscription:
		d.Title = "Subscription Required"
		d.Message = "Subscribe to unlock beat downloads. Get access to the entire library with a monthly subscription."
		d.ActionLabel = "View Plans"
		d.ActionURL = "/pricing"
	case ReasonLimitReached:
		d.Title = "Download Limit Reached"
		d.Message = limitMessage(in.Stats)
		d.ActionLabel = "Manage Subscription"
		d.ActionURL = "/dashboard/billing"
	}
	return d
}

func limitMessage(stats *model.DownloadStats) string {
	if stats == nil {
		return "You've reached your download limit for this billing period."
	}
	reset := "your next billing date"
	if !stats.PeriodEnd.IsZero() {
		reset = stats.PeriodEnd.Format("January 2, 2006")
	}
	return fmt.Sprintf("You've reached your download limit of %d beats for this billing period. Your limit will reset on %s.", stats.DownloadLimit, reset)
}
