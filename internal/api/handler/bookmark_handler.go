package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hari-r31/internship-platform/internal/dto"
	"github.com/Hari-r31/internship-platform/internal/service"
	"github.com/Hari-r31/internship-platform/pkg/response"
)

// BookmarkHandler 收藏模块 HTTP 处理器
type BookmarkHandler struct {
	bookmarkSvc service.BookmarkService
}

// NewBookmarkHandler 创建 BookmarkHandler
func NewBookmarkHandler(bookmarkSvc service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkSvc: bookmarkSvc}
}

// Add 收藏岗位
// POST /api/v1/bookmarks/:internshipID/add
func (h *BookmarkHandler) Add(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.bookmarkSvc.Add(c.Request.Context(), userID, c.Param("internshipID"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			response.NotFound(c, 21001, "岗位不存在")
		case errors.Is(err, service.ErrAlreadyBookmarked):
			response.BadRequest(c, 23002, "已收藏过该岗位")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Remove 取消收藏
// DELETE /api/v1/bookmarks/:internshipID/remove
func (h *BookmarkHandler) Remove(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.bookmarkSvc.Remove(c.Request.Context(), userID, c.Param("internshipID")); err != nil {
		if errors.Is(err, service.ErrBookmarkNotFound) {
			response.NotFound(c, 23001, "收藏不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// List 当前用户的收藏列表
// GET /api/v1/bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.bookmarkSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// Check 是否已收藏
// GET /api/v1/bookmarks/check/:internshipID
func (h *BookmarkHandler) Check(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	bookmarked, err := h.bookmarkSvc.Check(c.Request.Context(), userID, c.Param("internshipID"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.BookmarkCheckResponse{Bookmarked: bookmarked})
}

// Calendar 收藏岗位截止日期的 iCalendar 订阅
// GET /api/v1/bookmarks/calendar
func (h *BookmarkHandler) Calendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ical, err := h.bookmarkSvc.Calendar(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bookmark-deadlines.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ical))
}
