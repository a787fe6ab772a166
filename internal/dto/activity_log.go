package dto

// ── 活动日志模块 DTO ──

// ActivityLogListRequest 活动日志查询参数
// action 与时间边界由 Service 层校验，错误信息点名出错参数
type ActivityLogListRequest struct {
	PaginationRequest
	Action    string `form:"action"     binding:"omitempty,max=50"`
	StartDate string `form:"start_date" binding:"omitempty"`
	EndDate   string `form:"end_date"   binding:"omitempty"`
}

// ActivityLogResponse 活动日志响应
type ActivityLogResponse struct {
	ID              string  `json:"id"`
	Action          string  `json:"action"`
	RelatedObjectID *string `json:"related_object_id"`
	Details         string  `json:"details"`
	Timestamp       string  `json:"timestamp"`
}
