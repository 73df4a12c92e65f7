package entitlement

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/beatvault/beatvault/internal/model"
)

func activeInput() Input {
	return Input{
		Authenticated: true,
		Role:          model.RoleArtist,
		Subscription:  &model.Subscription{Tier: model.TierPro, Status: model.SubscriptionActive},
		Stats:         &model.DownloadStats{DownloadsThisPeriod: 3, DownloadLimit: 25},
	}
}

func TestEvaluateAllowsActiveArtistUnderLimit(t *testing.T) {
	decision := Evaluate(activeInput())
	require.True(t, decision.Allowed)
	require.Empty(t, decision.Reason)
	require.Empty(t, decision.Title)
}

func TestEvaluateNotAuthenticated(t *testing.T) {
	in := activeInput()
	in.Authenticated = false
	decision := Evaluate(in)
	require.False(t, decision.Allowed)
	require.Equal(t, ReasonNotAuthenticated, decision.Reason)
	require.Equal(t, "Subscription Required", decision.Title)
	require.Equal(t, "Sign In", decision.ActionLabel)
	require.Equal(t, "/login", decision.ActionURL)
}

func TestEvaluateNotAuthenticatedWinsOverWrongRole(t *testing.T) {
	in := Input{Authenticated: false, Role: model.RoleProducer}
	decision := Evaluate(in)
	require.Equal(t, ReasonNotAuthenticated, decision.Reason)
}

func TestEvaluateWrongRole(t *testing.T) {
	in := activeInput()
	in.Role = model.RoleProducer
	decision := Evaluate(in)
	require.False(t, decision.Allowed)
	require.Equal(t, ReasonWrongRole, decision.Reason)
	require.Contains(t, decision.Message, "Only artists can download beats")
	require.Empty(t, decision.ActionLabel)
	require.Empty(t, decision.ActionURL)
}

func TestEvaluateNoActiveSubscription(t *testing.T) {
	for name, sub := range map[string]*model.Subscription{
		"missing":  nil,
		"canceled": {Status: model.SubscriptionCanceled},
		"past due": {Status: model.SubscriptionPastDue},
	} {
		t.Run(name, func(t *testing.T) {
			in := activeInput()
			in.Subscription = sub
			decision := Evaluate(in)
			require.False(t, decision.Allowed)
			require.Equal(t, ReasonNoActiveSubscription, decision.Reason)
			require.Equal(t, "View Plans", decision.ActionLabel)
			require.Equal(t, "/pricing", decision.ActionURL)
		})
	}
}

func TestEvaluateLimitBoundary(t *testing.T) {
	in := activeInput()
	in.Stats = &model.DownloadStats{DownloadsThisPeriod: 24, DownloadLimit: 25}
	require.True(t, Evaluate(in).Allowed)

	in.Stats = &model.DownloadStats{
		DownloadsThisPeriod: 25,
		DownloadLimit:       25,
		PeriodEnd:           model.NewFlexTime(time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)),
	}
	decision := Evaluate(in)
	require.False(t, decision.Allowed)
	require.Equal(t, ReasonLimitReached, decision.Reason)
	require.Equal(t, "Download Limit Reached", decision.Title)
	require.Contains(t, decision.Message, "limit of 25 beats")
	require.Contains(t, decision.Message, "October 1, 2026")
	require.Equal(t, "Manage Subscription", decision.ActionLabel)
	require.Equal(t, "/dashboard/billing", decision.ActionURL)
}

func TestEvaluateLimitMessageWithoutPeriodEnd(t *testing.T) {
	in := activeInput()
	in.Stats = &model.DownloadStats{DownloadsThisPeriod: 25, DownloadLimit: 25}
	decision := Evaluate(in)
	require.Contains(t, decision.Message, "your next billing date")
}

func TestDoSkipsActionOnDeny(t *testing.T) {
	in := activeInput()
	in.Authenticated = false
	ran := false
	decision, err := Do(in, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.False(t, decision.Allowed)
	require.False(t, ran)
}

func TestDoRunsActionOnAllow(t *testing.T) {
	ran := false
	decision, err := Do(activeInput(), func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, decision.Allowed)
	require.True(t, ran)
}

func TestDoPropagatesActionError(t *testing.T) {
	wantErr := errors.New("backend down")
	decision, err := Do(activeInput(), func() error { return wantErr })
	require.ErrorIs(t, err, wantErr)
	require.True(t, decision.Allowed)
}
