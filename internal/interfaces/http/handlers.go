package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hrworks/appraisal-engine/internal/application/service"
	"github.com/hrworks/appraisal-engine/internal/domain/chain"
	"github.com/hrworks/appraisal-engine/internal/domain/workflow"
	"github.com/hrworks/appraisal-engine/internal/report"
)

// Response is the standard API response envelope
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SubmitRequest is the payload for submitting an appraisal for approval
type SubmitRequest struct {
	EmployeeID int64 `json:"employee_id" binding:"required"`
}

// ApprovalRequest is the payload for an approve/reject decision
type ApprovalRequest struct {
	UserID   int64  `json:"user_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
	Comments string `json:"comments"`
}

// Handlers holds the HTTP handlers and their service dependencies
type Handlers struct {
	chainService    service.ChainService
	approvalService service.ApprovalService
	auditService    service.AuditService
	exporter        *report.ChainExporter
	logger          Logger
}

// NewHandlers creates the handler set
func NewHandlers(
	chainService service.ChainService,
	approvalService service.ApprovalService,
	auditService service.AuditService,
	exporter *report.ChainExporter,
	logger Logger,
) *Handlers {
	return &Handlers{
		chainService:    chainService,
		approvalService: approvalService,
		auditService:    auditService,
		exporter:        exporter,
		logger:          logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"status": "healthy"},
	})
}

// SubmitAppraisal handles POST /api/appraisals/:id/submit
func (h *Handlers) SubmitAppraisal(c *gin.Context) {
	appraisalID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	steps, err := h.chainService.BuildApprovalChain(c.Request.Context(), appraisalID, req.EmployeeID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"appraisal_id": appraisalID,
			"total_levels": len(steps),
			"chain":        steps,
		},
	})
}

// ProcessApproval handles POST /api/appraisals/:id/approval
func (h *Handlers) ProcessApproval(c *gin.Context) {
	appraisalID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.approvalService.ProcessApproval(c.Request.Context(), appraisalID, req.UserID, req.Action, req.Comments)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// GetApprovalChain handles GET /api/appraisals/:id/chain
func (h *Handlers) GetApprovalChain(c *gin.Context) {
	appraisalID, ok := h.pathID(c)
	if !ok {
		return
	}

	steps, err := h.approvalService.GetApprovalChain(c.Request.Context(), appraisalID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: steps})
}

// GetCurrentApprover handles GET /api/appraisals/:id/current-approver
func (h *Handlers) GetCurrentApprover(c *gin.Context) {
	appraisalID, ok := h.pathID(c)
	if !ok {
		return
	}

	step, err := h.approvalService.GetCurrentApprover(c.Request.Context(), appraisalID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if step == nil {
		c.JSON(http.StatusOK, Response{Success: true, Data: nil})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: step})
}

// CanUserApprove handles GET /api/appraisals/:id/can-approve?user_id=N
func (h *Handlers) CanUserApprove(c *gin.Context) {
	appraisalID, ok := h.pathID(c)
	if !ok {
		return
	}
	userID, ok := h.queryUserID(c)
	if !ok {
		return
	}

	canApprove, err := h.approvalService.CanUserApprove(c.Request.Context(), appraisalID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"can_approve": canApprove}})
}

// CanUserRate handles GET /api/appraisals/:id/can-rate?user_id=N
func (h *Handlers) CanUserRate(c *gin.Context) {
	appraisalID, ok := h.pathID(c)
	if !ok {
		return
	}
	userID, ok := h.queryUserID(c)
	if !ok {
		return
	}

	canRate, err := h.approvalService.CanUserRate(c.Request.Context(), appraisalID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"can_rate": canRate}})
}

// GetApprovalLogs handles GET /api/appraisals/:id/logs
func (h *Handlers) GetApprovalLogs(c *gin.Context) {
	appraisalID, ok := h.pathID(c)
	if !ok {
		return
	}

	logs, err := h.auditService.GetLogs(c.Request.Context(), appraisalID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: logs})
}

// ExportApprovalChain handles GET /api/appraisals/:id/export
func (h *Handlers) ExportApprovalChain(c *gin.Context) {
	appraisalID, ok := h.pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	steps, err := h.approvalService.GetApprovalChain(ctx, appraisalID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	logs, err := h.auditService.GetLogs(ctx, appraisalID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	buf, err := h.exporter.Export(appraisalID, steps, logs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("appraisal_%d_approval_chain.xlsx", appraisalID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// GetPendingApprovals handles GET /api/approvals/pending?user_id=N
func (h *Handlers) GetPendingApprovals(c *gin.Context) {
	userID, ok := h.queryUserID(c)
	if !ok {
		return
	}

	pending, err := h.approvalService.GetPendingForUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: pending})
}

// pathID parses the :id path parameter, writing a 400 response on failure
func (h *Handlers) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid appraisal id"})
		return 0, false
	}
	return id, true
}

// queryUserID parses the user_id query parameter, writing a 400 response on failure
func (h *Handlers) queryUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid or missing user_id"})
		return 0, false
	}
	return userID, true
}

// respondError maps service and domain errors to HTTP status codes
func (h *Handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAppraisalNotFound),
		errors.Is(err, chain.ErrEmployeeNotFound),
		errors.Is(err, chain.ErrDepartmentNotFound),
		errors.Is(err, chain.ErrPositionNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
	case errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, chain.ErrMissingSupervisor),
		errors.Is(err, chain.ErrEmptyChain):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, Response{Success: false, Error: err.Error()})
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
	default:
		h.logger.Error("internal error", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal server error"})
	}
}
