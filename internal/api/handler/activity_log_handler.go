package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/service"
	"github.com/Hari-r31/internship-platform/pkg/response"
)

// ActivityLogHandler 活动日志模块 HTTP 处理器
type ActivityLogHandler struct {
	activityLogSvc service.ActivityLogService
}

// NewActivityLogHandler 创建 ActivityLogHandler
func NewActivityLogHandler(activityLogSvc service.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{activityLogSvc: activityLogSvc}
}

// List 当前用户自己的活动日志（时间倒序，支持动作与时间范围过滤）
// GET /api/v1/activity-logs
func (h *ActivityLogHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ActivityLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "查询参数无效")
		return
	}

	list, total, err := h.activityLogSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		if filterError(c, err) {
			return
		}
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}
