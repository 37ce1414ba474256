package coverage

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/de-tools/policy-atlas/pkg/adapters"
	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Auditor runs a coverage audit over a management group.
type Auditor interface {
	AuditGroup(ctx context.Context, groupID string) (domain.CoverageReport, error)
}

// QuotaAssessor reports the exemption quota state at a scope.
type QuotaAssessor interface {
	AssessScope(ctx context.Context, scope string) domain.QuotaState
}

type Handler struct {
	auditor Auditor
	quota   QuotaAssessor
}

func NewHandler(auditor Auditor, quota QuotaAssessor) *Handler {
	return &Handler{auditor: auditor, quota: quota}
}

func (h *Handler) GetCoverage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	groupID := chi.URLParam(r, "managementGroup")

	report, err := h.auditor.AuditGroup(ctx, groupID)
	if err != nil {
		logger.Error().Err(err).Str("group", groupID).Msg("coverage audit failed")
		http.Error(w, "coverage audit failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapCoverageReportDomainToApi(report)); err != nil {
		logger.Error().Err(err).Msg("failed to encode coverage report")
	}
}

func (h *Handler) GetQuota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		http.Error(w, "scope query parameter is required", http.StatusBadRequest)
		return
	}

	state := h.quota.AssessScope(ctx, scope)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapQuotaStateDomainToApi(state)); err != nil {
		logger.Error().Err(err).Msg("failed to encode quota state")
	}
}
