package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/service"
	"github.com/Hari-r31/internship-platform/pkg/response"
)

// InternshipHandler 实习岗位模块 HTTP 处理器
type InternshipHandler struct {
	internshipSvc service.InternshipService
}

// NewInternshipHandler 创建 InternshipHandler
func NewInternshipHandler(internshipSvc service.InternshipService) *InternshipHandler {
	return &InternshipHandler{internshipSvc: internshipSvc}
}

// Create 发布岗位（仅 recruiter）
// POST /api/v1/internships/create
func (h *InternshipHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.internshipSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidExpiryDate) {
			response.FieldErrors(c, 21003, "参数校验失败", map[string]string{
				"expiry_date": "日期格式无效，接受 YYYY-MM-DD、MM/DD/YYYY 或 DD-MM-YYYY",
			})
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// List 岗位列表（公开，支持过滤/搜索/排序/分页）
// GET /api/v1/internships
func (h *InternshipHandler) List(c *gin.Context) {
	var req dto.InternshipListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "查询参数无效")
		return
	}

	actorID, actorRole := OptionalIdentity(c)
	list, total, err := h.internshipSvc.List(c.Request.Context(), &req, actorID, actorRole)
	if err != nil {
		if filterError(c, err) {
			return
		}
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get 岗位详情（公开）
// GET /api/v1/internships/:id/view
func (h *InternshipHandler) Get(c *gin.Context) {
	actorID, actorRole := OptionalIdentity(c)

	result, err := h.internshipSvc.GetByID(c.Request.Context(), c.Param("id"), actorID, actorRole)
	if err != nil {
		if errors.Is(err, service.ErrInternshipNotFound) {
			response.NotFound(c, 21001, "岗位不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListMine 当前招聘者发布的岗位
// GET /api/v1/internships/mine
func (h *InternshipHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.internshipSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// Update 更新岗位（仅发布者）
// PATCH /api/v1/internships/:id/edit
func (h *InternshipHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.internshipSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			response.NotFound(c, 21001, "岗位不存在")
		case errors.Is(err, service.ErrNotInternshipOwner):
			response.Forbidden(c, 21002, "只有岗位发布者可以执行此操作")
		case errors.Is(err, service.ErrInvalidExpiryDate):
			response.FieldErrors(c, 21003, "参数校验失败", map[string]string{
				"expiry_date": "日期格式无效，接受 YYYY-MM-DD、MM/DD/YYYY 或 DD-MM-YYYY",
			})
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete 删除岗位（仅发布者，申请/收藏/评价级联清除）
// DELETE /api/v1/internships/:id/edit
func (h *InternshipHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.internshipSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
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

	response.OK(c, nil)
}
