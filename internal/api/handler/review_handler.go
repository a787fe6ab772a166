package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/service"
	"github.com/Hari-r31/internship-platform/pkg/response"
)

// ReviewHandler 评价模块 HTTP 处理器
type ReviewHandler struct {
	reviewSvc service.ReviewService
}

// NewReviewHandler 创建 ReviewHandler
func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

// Create 提交评价（需申请过该岗位）
// POST /api/v1/internships/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.reviewSvc.Create(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			response.NotFound(c, 21001, "岗位不存在")
		case errors.Is(err, service.ErrMustApplyFirst):
			response.Forbidden(c, 25003, "申请过该岗位后才能评价")
		case errors.Is(err, service.ErrAlreadyReviewed):
			response.BadRequest(c, 25002, "已评价过该岗位")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// List 岗位的评价列表（公开）
// GET /api/v1/internships/:id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	list, err := h.reviewSvc.ListByInternship(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrInternshipNotFound) {
			response.NotFound(c, 21001, "岗位不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// Update 更新评价（仅作者）
// PATCH /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.reviewSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			response.NotFound(c, 25001, "评价不存在")
		case errors.Is(err, service.ErrNotReviewOwner):
			response.Forbidden(c, 25004, "只有评价作者可以执行此操作")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete 删除评价（仅作者）
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.reviewSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			response.NotFound(c, 25001, "评价不存在")
		case errors.Is(err, service.ErrNotReviewOwner):
			response.Forbidden(c, 25004, "只有评价作者可以执行此操作")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
