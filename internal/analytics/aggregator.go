package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"kycadmin/internal/kycapi"
	"kycadmin/internal/models"

	"go.uber.org/zap"
)

// ErrAggregationFailed is returned when the fan-out itself breaks, as
// opposed to an individual endpoint failing.
var ErrAggregationFailed = errors.New("failed to aggregate analytics")

// Source fetches the raw body of a successful GET.
type Source interface {
	GetRaw(ctx context.Context, path string) ([]byte, error)
}

const (
	branchUsers = iota
	branchProfiles
	branchMatching
	branchScreeningPP
	branchScreeningPM
)

var branchPaths = [...]string{
	branchUsers:       kycapi.PathUsers,
	branchProfiles:    kycapi.PathProfilesPending,
	branchMatching:    kycapi.PathMatchingPending,
	branchScreeningPP: kycapi.PathScreeningPPPending,
	branchScreeningPM: kycapi.PathScreeningPMPending,
}

// Sub-list keys of the pending profile and matching buckets.
const (
	keyPPSaisie   = "pp_saisie"
	keyPMSaisie   = "pm_saisie"
	keyPPProfiles = "pp_profiles"
	keyPMProfiles = "pm_profiles"
)

type outcome struct {
	body json.RawMessage
	err  error
}

type Aggregator struct {
	source Source
}

func NewAggregator(source Source) *Aggregator {
	return &Aggregator{source: source}
}

// Aggregate issues the five dashboard reads concurrently and waits for all
// of them. A failed read contributes its empty default. Only a broken
// fan-out (an undecodable success body or a panicking branch) returns an
// error.
func (a *Aggregator) Aggregate(ctx context.Context) (models.AnalyticsSnapshot, error) {
	outcomes := make([]outcome, len(branchPaths))

	var wg sync.WaitGroup
	for i, path := range branchPaths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = a.fetch(ctx, path)
		}()
	}
	wg.Wait()

	bodies := make([]json.RawMessage, len(outcomes))
	for i, o := range outcomes {
		if o.err != nil {
			if errors.Is(o.err, ErrAggregationFailed) {
				return models.AnalyticsSnapshot{}, o.err
			}
			zap.L().Warn("Analytics source unavailable, using default",
				zap.String("path", branchPaths[i]),
				zap.Error(o.err))
			continue
		}
		bodies[i] = o.body
	}

	return Compute(
		bodies[branchUsers],
		bodies[branchProfiles],
		bodies[branchMatching],
		bodies[branchScreeningPP],
		bodies[branchScreeningPM],
	), nil
}

func (a *Aggregator) fetch(ctx context.Context, path string) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = outcome{err: fmt.Errorf("%w: %s panicked: %v", ErrAggregationFailed, path, r)}
		}
	}()

	body, err := a.source.GetRaw(ctx, path)
	if err != nil {
		return outcome{err: err}
	}
	if !json.Valid(body) {
		return outcome{err: fmt.Errorf("%w: %s returned an invalid JSON body", ErrAggregationFailed, path)}
	}
	return outcome{body: body}
}

// Compute derives the snapshot from the five response bodies. A nil body
// stands for a failed request; any body of an unexpected shape counts as
// empty.
func Compute(users, profiles, matching, screeningPP, screeningPM json.RawMessage) models.AnalyticsSnapshot {
	total, verified, completed := countUsers(users)

	return models.AnalyticsSnapshot{
		TotalUsers:        total,
		VerifiedUsers:     verified,
		CompletedProfiles: completed,
		PendingProfiles:   subListLen(profiles, keyPPSaisie) + subListLen(profiles, keyPMSaisie),
		MatchingQueue:     subListLen(matching, keyPPProfiles) + subListLen(matching, keyPMProfiles),
		ScreeningQueue:    listLen(screeningPP) + listLen(screeningPM),
	}
}

func countUsers(raw json.RawMessage) (total, verified, completed int) {
	var users []json.RawMessage
	if err := json.Unmarshal(raw, &users); err != nil {
		return 0, 0, 0
	}

	for _, item := range users {
		var user models.UserSummary
		if json.Unmarshal(item, &user) != nil {
			continue
		}
		switch user.UserVerificationStatus {
		case models.UserStatusVerified:
			verified++
		case models.UserStatusCompleted:
			completed++
		}
	}
	return len(users), verified, completed
}

func listLen(raw json.RawMessage) int {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return len(items)
}

func subListLen(raw json.RawMessage, key string) int {
	var buckets map[string]json.RawMessage
	if err := json.Unmarshal(raw, &buckets); err != nil {
		return 0
	}
	return listLen(buckets[key])
}
