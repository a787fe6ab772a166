package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/service"
	"github.com/Hari-r31/internship-platform/pkg/response"
)

// ApplicationHandler 申请模块 HTTP 处理器
type ApplicationHandler struct {
	applicationSvc service.ApplicationService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(applicationSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationSvc: applicationSvc}
}

// Apply 学生申请岗位（multipart，可附 resume 文件）
// POST /api/v1/applications/apply/:internshipID
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resume, closeFn, err := formFileUpload(c, "resume")
	if err != nil {
		response.BadRequest(c, 10001, "文件上传失败")
		return
	}
	defer closeFn()

	result, err := h.applicationSvc.Apply(c.Request.Context(), userID, c.Param("internshipID"), resume)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			response.NotFound(c, 21001, "岗位不存在")
		case errors.Is(err, service.ErrAlreadyApplied):
			response.BadRequest(c, 22002, "已申请过该岗位")
		case errors.Is(err, service.ErrUnsupportedResumeType):
			response.FieldErrors(c, 10001, "参数校验失败", map[string]string{
				"resume": "仅支持 PDF/DOC/DOCX 格式",
			})
		case errors.Is(err, service.ErrStorageUnavailable):
			response.BadGateway(c, 50001, "文件存储不可用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// ListMine 当前学生的申请列表
// GET /api/v1/applications/mine
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.applicationSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// ListForInternship 岗位收到的申请（仅发布者）
// GET /api/v1/internships/:id/applicants
func (h *ApplicationHandler) ListForInternship(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.applicationSvc.ListForInternship(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			response.NotFound(c, 21001, "岗位不存在")
		case errors.Is(err, service.ErrNotInternshipOwner):
			response.Forbidden(c, 21002, "只有岗位发布者可以执行此操作")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, list)
}

// UpdateStatus 流转申请状态（仅岗位发布者，pending → accepted/rejected）
// PATCH /api/v1/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.applicationSvc.UpdateStatus(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			response.NotFound(c, 22001, "申请不存在")
		case errors.Is(err, service.ErrNotInternshipOwner):
			response.Forbidden(c, 21002, "只有岗位发布者可以执行此操作")
		case errors.Is(err, service.ErrApplicationFinalized):
			response.BadRequest(c, 22004, "申请已处理，状态不可再变更")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Withdraw 撤回待处理申请（仅申请人）
// DELETE /api/v1/applications/:id/withdraw
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.applicationSvc.Withdraw(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			response.NotFound(c, 22001, "申请不存在")
		case errors.Is(err, service.ErrNotApplicationOwner):
			response.Forbidden(c, 22003, "只有申请人本人可以执行此操作")
		case errors.Is(err, service.ErrWithdrawNotPending):
			response.BadRequest(c, 22005, "只有待处理的申请可以撤回")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Check 是否已申请
// GET /api/v1/applications/check/:internshipID
func (h *ApplicationHandler) Check(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	applied, err := h.applicationSvc.HasApplied(c.Request.Context(), userID, c.Param("internshipID"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.ApplicationCheckResponse{Applied: applied})
}

// Export 导出岗位申请人列表为 Excel（仅发布者）
// GET /api/v1/internships/:id/applicants/export
func (h *ApplicationHandler) Export(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	f, filename, err := h.applicationSvc.ExportApplicants(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			response.NotFound(c, 21001, "岗位不存在")
		case errors.Is(err, service.ErrNotInternshipOwner):
			response.Forbidden(c, 21002, "只有岗位发布者可以执行此操作")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
