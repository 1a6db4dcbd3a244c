package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrworks/appraisal-engine/internal/application/service"
	"github.com/hrworks/appraisal-engine/internal/domain/entity"
)

type stubChainService struct {
	buildFunc func(ctx context.Context, appraisalID, employeeID int64) ([]entity.ApprovalStep, error)
}

func (s *stubChainService) BuildApprovalChain(ctx context.Context, appraisalID, employeeID int64) ([]entity.ApprovalStep, error) {
	return s.buildFunc(ctx, appraisalID, employeeID)
}

type stubApprovalService struct {
	processFunc    func(ctx context.Context, appraisalID, userID int64, action, comments string) (*service.ApprovalResult, error)
	currentFunc    func(ctx context.Context, appraisalID int64) (*entity.ApprovalStep, error)
	canApproveFunc func(ctx context.Context, appraisalID, userID int64) (bool, error)
	canRateFunc    func(ctx context.Context, appraisalID, userID int64) (bool, error)
	chainFunc      func(ctx context.Context, appraisalID int64) ([]*entity.ApprovalStep, error)
	pendingFunc    func(ctx context.Context, userID int64) ([]*entity.PendingApproval, error)
}

func (s *stubApprovalService) ProcessApproval(ctx context.Context, appraisalID, userID int64, action, comments string) (*service.ApprovalResult, error) {
	return s.processFunc(ctx, appraisalID, userID, action, comments)
}

func (s *stubApprovalService) GetCurrentApprover(ctx context.Context, appraisalID int64) (*entity.ApprovalStep, error) {
	return s.currentFunc(ctx, appraisalID)
}

func (s *stubApprovalService) CanUserApprove(ctx context.Context, appraisalID, userID int64) (bool, error) {
	return s.canApproveFunc(ctx, appraisalID, userID)
}

func (s *stubApprovalService) CanUserRate(ctx context.Context, appraisalID, userID int64) (bool, error) {
	return s.canRateFunc(ctx, appraisalID, userID)
}

func (s *stubApprovalService) GetApprovalChain(ctx context.Context, appraisalID int64) ([]*entity.ApprovalStep, error) {
	return s.chainFunc(ctx, appraisalID)
}

func (s *stubApprovalService) GetPendingForUser(ctx context.Context, userID int64) ([]*entity.PendingApproval, error) {
	return s.pendingFunc(ctx, userID)
}

type stubAuditService struct {
	logsFunc func(ctx context.Context, appraisalID int64) ([]*entity.ApprovalLog, error)
}

func (s *stubAuditService) RecordChainCreation(ctx context.Context, appraisalID int64, steps []entity.ApprovalStep) error {
	return nil
}

func (s *stubAuditService) RecordAction(ctx context.Context, appraisalID int64, level int, action string, actorID int64, newStatus, comments string) error {
	return nil
}

func (s *stubAuditService) GetLogs(ctx context.Context, appraisalID int64) ([]*entity.ApprovalLog, error) {
	return s.logsFunc(ctx, appraisalID)
}

type testLogger struct{}

func (testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (testLogger) Error(msg string, keysAndValues ...interface{}) {}

func newTestRouter(chain service.ChainService, approval service.ApprovalService, audit service.AuditService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handlers := NewHandlers(chain, approval, audit, nil, testLogger{})

	r := gin.New()
	r.POST("/api/appraisals/:id/submit", handlers.SubmitAppraisal)
	r.POST("/api/appraisals/:id/approval", handlers.ProcessApproval)
	r.GET("/api/appraisals/:id/chain", handlers.GetApprovalChain)
	r.GET("/api/appraisals/:id/can-approve", handlers.CanUserApprove)
	r.GET("/api/approvals/pending", handlers.GetPendingApprovals)
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSubmitAppraisal(t *testing.T) {
	chain := &stubChainService{
		buildFunc: func(ctx context.Context, appraisalID, employeeID int64) ([]entity.ApprovalStep, error) {
			assert.Equal(t, int64(55), appraisalID)
			assert.Equal(t, int64(100), employeeID)
			return []entity.ApprovalStep{
				{Level: 1, ApproverID: 12},
				{Level: 2, ApproverID: 30, IsFinalApprover: true},
			}, nil
		},
	}
	router := newTestRouter(chain, &stubApprovalService{}, &stubAuditService{})

	w, resp := doJSON(t, router, http.MethodPost, "/api/appraisals/55/submit", gin.H{"employee_id": 100})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestSubmitAppraisal_MissingEmployeeID(t *testing.T) {
	router := newTestRouter(&stubChainService{}, &stubApprovalService{}, &stubAuditService{})

	w, resp := doJSON(t, router, http.MethodPost, "/api/appraisals/55/submit", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}

func TestSubmitAppraisal_BadPathID(t *testing.T) {
	router := newTestRouter(&stubChainService{}, &stubApprovalService{}, &stubAuditService{})

	w, _ := doJSON(t, router, http.MethodPost, "/api/appraisals/abc/submit", gin.H{"employee_id": 100})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessApproval_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"unknown appraisal", service.ErrAppraisalNotFound, http.StatusNotFound},
		{"wrong approver", service.ErrNotAuthorized, http.StatusForbidden},
		{"bad action", service.ErrInvalidAction, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approval := &stubApprovalService{
				processFunc: func(ctx context.Context, appraisalID, userID int64, action, comments string) (*service.ApprovalResult, error) {
					return nil, tt.serviceErr
				},
			}
			router := newTestRouter(&stubChainService{}, approval, &stubAuditService{})

			w, resp := doJSON(t, router, http.MethodPost, "/api/appraisals/55/approval",
				gin.H{"user_id": 12, "action": "approve"})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestProcessApproval_Success(t *testing.T) {
	approval := &stubApprovalService{
		processFunc: func(ctx context.Context, appraisalID, userID int64, action, comments string) (*service.ApprovalResult, error) {
			return &service.ApprovalResult{Action: action, Level: 1, NextLevel: 2, Message: "Appraisal approved, moving to level 2"}, nil
		},
	}
	router := newTestRouter(&stubChainService{}, approval, &stubAuditService{})

	w, resp := doJSON(t, router, http.MethodPost, "/api/appraisals/55/approval",
		gin.H{"user_id": 12, "action": "approve", "comments": "ok"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["next_level"])
}

func TestCanUserApprove_RequiresUserID(t *testing.T) {
	router := newTestRouter(&stubChainService{}, &stubApprovalService{}, &stubAuditService{})

	w, _ := doJSON(t, router, http.MethodGet, "/api/appraisals/55/can-approve", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPendingApprovals(t *testing.T) {
	approval := &stubApprovalService{
		pendingFunc: func(ctx context.Context, userID int64) ([]*entity.PendingApproval, error) {
			assert.Equal(t, int64(12), userID)
			return []*entity.PendingApproval{{AppraisalID: 55, EmployeeName: "Alice"}}, nil
		},
	}
	router := newTestRouter(&stubChainService{}, approval, &stubAuditService{})

	w, resp := doJSON(t, router, http.MethodGet, "/api/approvals/pending?user_id=12", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}
