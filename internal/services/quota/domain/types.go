// Package domain holds quota types and the tier limit table
package domain

import "time"

// Tier is the subscription tier of an account
type Tier string

// known tiers in upgrade order
const (
	TierFree Tier = "free"
	TierPlus Tier = "plus"
	TierPro  Tier = "pro"
)

// MonthlyUnlimited marks a tier with no per-month demo cap
const MonthlyUnlimited = -1

// Limits are the per-tier ingestion caps
type Limits struct {
	MonthlyDemos int
	StorageMB    int
}

// tierLimits is the pricing-page contract; changing a cap is a product decision
var tierLimits = map[Tier]Limits{
	TierFree: {MonthlyDemos: 3, StorageMB: 1500},
	TierPlus: {MonthlyDemos: 25, StorageMB: 15000},
	TierPro:  {MonthlyDemos: MonthlyUnlimited, StorageMB: 100000},
}

// LimitsFor returns the caps for a tier, defaulting unknown tiers to free
func LimitsFor(t Tier) Limits {
	if l, ok := tierLimits[t]; ok {
		return l
	}
	return tierLimits[TierFree]
}

// nextTier suggests the upgrade out of a denial; pro has nowhere to go
func nextTier(t Tier) Tier {
	switch t {
	case TierFree:
		return TierPlus
	case TierPlus:
		return TierPro
	default:
		return TierPro
	}
}

// Snapshot is a point-in-time view of an account's quota state
// owned by the datastore; holders must not assume it stays fresh
type Snapshot struct {
	AccountID      string
	Tier           Tier
	Admin          bool
	DemosThisMonth int
	DemosResetAt   time.Time
	StorageUsedMB  int

	// per-account override; zero means use the tier cap
	MaxStorageMB int
}

// DenyReason classifies a quota denial
type DenyReason string

// denial reasons surfaced to the caller
const (
	DenyMonthly DenyReason = "monthly"
	DenyStorage DenyReason = "storage"
)

// Decision is the outcome of a quota check
type Decision struct {
	Allowed      bool
	Reason       DenyReason
	RequiredTier Tier
}

// EffectiveMonthlyCount resolves the counter against the calendar month
// a reset stamp from an earlier month or year means the persisted counter is
// stale and reads as zero; the caller rewrites it on successful ingestion
func EffectiveMonthlyCount(s Snapshot, now time.Time) int {
	ry, rm, _ := s.DemosResetAt.UTC().Date()
	ny, nm, _ := now.UTC().Date()
	if ry != ny || rm != nm {
		return 0
	}
	return s.DemosThisMonth
}

// Decide answers whether the account may ingest candidateMB more this month
// pure: no mutation, no I/O, safe to call speculatively before any download
func Decide(s Snapshot, candidateMB int, now time.Time) Decision {
	if s.Admin {
		return Decision{Allowed: true}
	}

	limits := LimitsFor(s.Tier)

	if limits.MonthlyDemos != MonthlyUnlimited {
		if EffectiveMonthlyCount(s, now) >= limits.MonthlyDemos {
			return Decision{Reason: DenyMonthly, RequiredTier: nextTier(s.Tier)}
		}
	}

	storageCap := limits.StorageMB
	if s.MaxStorageMB > 0 {
		storageCap = s.MaxStorageMB
	}
	if s.StorageUsedMB+candidateMB > storageCap {
		return Decision{Reason: DenyStorage, RequiredTier: nextTier(s.Tier)}
	}

	return Decision{Allowed: true}
}
