package dto

// ── 申请模块 DTO ──

// UpdateApplicationStatusRequest 申请状态流转请求
// pending 为初始态且不可回退，故仅接受两个终态
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// ApplicationResponse 申请详情响应（含岗位与申请人信息）
type ApplicationResponse struct {
	ID         string              `json:"id"`
	Internship *InternshipResponse `json:"internship,omitempty"`
	User       *UserResponse       `json:"user,omitempty"`
	Status     string              `json:"status"`
	AppliedOn  string              `json:"applied_on"`
	ResumeURL  *string             `json:"resume_url"`
}

// ApplicationCheckResponse 是否已申请检查响应
type ApplicationCheckResponse struct {
	Applied bool `json:"applied"`
}
