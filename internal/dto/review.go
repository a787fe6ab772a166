package dto

// ── 评价模块 DTO ──

// CreateReviewRequest 提交评价请求
type CreateReviewRequest struct {
	Rating int     `json:"rating" binding:"required,min=1,max=5"`
	Review *string `json:"review" binding:"omitempty,max=2000"`
}

// UpdateReviewRequest 更新评价请求
type UpdateReviewRequest struct {
	Rating *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Review *string `json:"review" binding:"omitempty,max=2000"`
}

// ReviewResponse 评价响应
type ReviewResponse struct {
	ID           string  `json:"id"`
	InternshipID string  `json:"internship_id"`
	UserID       string  `json:"user_id"`
	Username     string  `json:"username"`
	Rating       int     `json:"rating"`
	Review       *string `json:"review"`
	CreatedAt    string  `json:"created_at"`
}
