package coverage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/policy-atlas/pkg/models/api"
	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuditor struct {
	mock.Mock
}

func (m *mockAuditor) AuditGroup(ctx context.Context, groupID string) (domain.CoverageReport, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(domain.CoverageReport), args.Error(1)
}

type mockQuota struct {
	mock.Mock
}

func (m *mockQuota) AssessScope(ctx context.Context, scope string) domain.QuotaState {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.QuotaState)
}

func newRouter(auditor Auditor, quota QuotaAssessor) http.Handler {
	handler := NewHandler(auditor, quota)
	router := chi.NewRouter()
	router.Get("/coverage/{managementGroup}", handler.GetCoverage)
	router.Get("/quota", handler.GetQuota)
	return router
}

func TestGetCoverage(t *testing.T) {
	t.Run("returns the report as JSON", func(t *testing.T) {
		auditor := new(mockAuditor)
		auditor.On("AuditGroup", mock.Anything, "contoso").Return(domain.CoverageReport{
			Total:              2,
			WithBaseline:       1,
			WithoutBaseline:    []string{"s2"},
			CoveragePercentage: 50.0,
			Results: []domain.CoverageResult{
				{SubscriptionID: "s1", SubscriptionName: "prod", HasBaseline: true, MatchingAssignments: 1},
				{SubscriptionID: "s2", SubscriptionName: "dev"},
			},
		}, nil)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/coverage/contoso", nil)
		newRouter(auditor, new(mockQuota)).ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		var report api.CoverageReport
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &report))
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, 50.0, report.CoveragePercentage)
		assert.Len(t, report.Results, 2)
	})

	t.Run("audit failure maps to 502", func(t *testing.T) {
		auditor := new(mockAuditor)
		auditor.On("AuditGroup", mock.Anything, "contoso").
			Return(domain.CoverageReport{}, errors.New("access denied"))

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/coverage/contoso", nil)
		newRouter(auditor, new(mockQuota)).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
	})
}

func TestGetQuota(t *testing.T) {
	t.Run("returns the quota state for the scope", func(t *testing.T) {
		quota := new(mockQuota)
		quota.On("AssessScope", mock.Anything, "/subscriptions/s1").Return(domain.QuotaState{
			Scope:           "/subscriptions/s1",
			CurrentCount:    10,
			ProjectedTotal:  10,
			HardLimit:       1000,
			SafetyThreshold: 950,
			WithinLimits:    true,
			WarningLevel:    domain.WarningNone,
		})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/quota?scope=/subscriptions/s1", nil)
		newRouter(new(mockAuditor), quota).ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		var state api.QuotaState
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &state))
		assert.True(t, state.WithinLimits)
		assert.Equal(t, "None", state.WarningLevel)
	})

	t.Run("missing scope is a 400", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/quota", nil)
		newRouter(new(mockAuditor), new(mockQuota)).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
