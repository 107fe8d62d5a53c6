// Package http provides http transport for quota
package http

import (
	stdhttp "net/http"
	"time"

	"demovault/internal/modkit/httpkit"
	"demovault/internal/services/quota/domain"
	svc "demovault/internal/services/quota/service"
)

// Register mounts quota endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.snapshot)
}

type handlers struct{ svc svc.Service }

// SnapshotResponse is the effective quota view for the calling account
type SnapshotResponse struct {
	Tier           string `json:"tier" example:"free"`
	DemosThisMonth int    `json:"demos_this_month" example:"2"`
	MonthlyLimit   int    `json:"monthly_limit" example:"3"` // -1 means unlimited
	StorageUsedMB  int    `json:"storage_used_mb" example:"450"`
	StorageLimitMB int    `json:"storage_limit_mb" example:"1500"`
	ResetsAt       string `json:"resets_at" example:"2026-09-01T00:00:00Z"`
}

// swagger:route GET /quota Quota quotaSnapshot
// @Summary Current quota usage for the calling account
// @Tags Quota
// @Produce json
// @Success 200 type SnapshotResponse ok
// @Router /quota [get]
func (h *handlers) snapshot(r *stdhttp.Request) (any, error) {
	accountID, err := httpkit.Account(r)
	if err != nil {
		return nil, err
	}

	snap, err := h.svc.Snapshot(r.Context(), accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	limits := domain.LimitsFor(snap.Tier)
	storageCap := limits.StorageMB
	if snap.MaxStorageMB > 0 {
		storageCap = snap.MaxStorageMB
	}

	// first of next month, the moment the effective counter reads zero again
	resetsAt := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	return SnapshotResponse{
		Tier:           string(snap.Tier),
		DemosThisMonth: domain.EffectiveMonthlyCount(snap, now),
		MonthlyLimit:   limits.MonthlyDemos,
		StorageUsedMB:  snap.StorageUsedMB,
		StorageLimitMB: storageCap,
		ResetsAt:       resetsAt.Format(time.RFC3339),
	}, nil
}
