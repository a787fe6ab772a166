package dto

import (
	"github.com/shopspring/decimal"
)

// ── 实习岗位模块 DTO ──

// CreateInternshipRequest 发布岗位请求
// stipend 使用 decimal 精确反序列化，避免浮点舍入；
// expiry_date 接受 ISO（2006-01-02）、美式（01/02/2006）、欧式（02-01-2006）三种格式
type CreateInternshipRequest struct {
	Title          string           `json:"title"           binding:"required,max=255"`
	Description    string           `json:"description"     binding:"required"`
	Company        string           `json:"company"         binding:"required,max=255"`
	Location       string           `json:"location"        binding:"required,max=255"`
	Stipend        *decimal.Decimal `json:"stipend"         binding:"-"`
	InternshipType string           `json:"internship_type" binding:"required,oneof=full-time part-time remote on-site"`
	ApplyLink      *string          `json:"apply_link"      binding:"omitempty,url,max=500"`
	ExpiryDate     *string          `json:"expiry_date"     binding:"omitempty"`
}

// UpdateInternshipRequest 更新岗位请求（全部字段可选）
type UpdateInternshipRequest struct {
	Title          *string          `json:"title"           binding:"omitempty,max=255"`
	Description    *string          `json:"description"     binding:"omitempty"`
	Company        *string          `json:"company"         binding:"omitempty,max=255"`
	Location       *string          `json:"location"        binding:"omitempty,max=255"`
	Stipend        *decimal.Decimal `json:"stipend"         binding:"-"`
	InternshipType *string          `json:"internship_type" binding:"omitempty,oneof=full-time part-time remote on-site"`
	ApplyLink      *string          `json:"apply_link"      binding:"omitempty,url,max=500"`
	Status         *string          `json:"status"          binding:"omitempty,oneof=open closed archived"`
	ExpiryDate     *string          `json:"expiry_date"     binding:"omitempty"`
}

// InternshipListRequest 岗位列表查询参数
// stipend 与日期边界以字符串接收，由 Service 层解析并给出字段级错误
type InternshipListRequest struct {
	PaginationRequest
	Location         string `form:"location"          binding:"omitempty,max=255"`
	LocationContains string `form:"location_contains" binding:"omitempty,max=255"`
	StipendGTE       string `form:"stipend_gte"       binding:"omitempty"`
	StipendLTE       string `form:"stipend_lte"       binding:"omitempty"`
	InternshipType   string `form:"internship_type"   binding:"omitempty,oneof=full-time part-time remote on-site"`
	PostedAfter      string `form:"posted_after"      binding:"omitempty"`
	PostedBefore     string `form:"posted_before"     binding:"omitempty"`
	Search           string `form:"search"            binding:"omitempty,max=255"`
	Ordering         string `form:"ordering"          binding:"omitempty,oneof=posted_on -posted_on stipend -stipend"`
}

// InternshipResponse 岗位响应
type InternshipResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Company        string           `json:"company"`
	Location       string           `json:"location"`
	Stipend        *decimal.Decimal `json:"stipend"`
	InternshipType string           `json:"internship_type"`
	ApplyLink      *string          `json:"apply_link"`
	PostedOn       string           `json:"posted_on"`
	Status         string           `json:"status"`
	ExpiryDate     *string          `json:"expiry_date"` // 规范化为 ISO 日历日期
	RecruiterID    string           `json:"recruiter_id"`
	Bookmarked     bool             `json:"bookmarked"` // 仅对已登录学生计算
}
