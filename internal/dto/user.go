package dto

// ── 用户模块 DTO ──

// UpdateProfileRequest 更新资料请求（multipart 中可另附 profile_picture 文件）
// role 不在其列：角色创建后不可经普通更新修改
type UpdateProfileRequest struct {
	FirstName *string `form:"first_name" json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `form:"last_name"  json:"last_name"  binding:"omitempty,max=100"`
	Bio       *string `form:"bio"        json:"bio"        binding:"omitempty,max=2000"`
	Location  *string `form:"location"   json:"location"   binding:"omitempty,max=255"`
}

// UpdateUserRequest 更新账号（用户名/邮箱）请求
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=150"`
	Email    *string `json:"email"    binding:"omitempty,email"`
}
