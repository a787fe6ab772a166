package dto

// ── 认证模块 DTO ──

// RegisterProfile 注册时附带的资料信息
type RegisterProfile struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name"  binding:"omitempty,max=100"`
	Bio       string  `json:"bio"        binding:"omitempty,max=2000"`
	Location  string  `json:"location"   binding:"omitempty,max=255"`
	Role      string  `json:"role"       binding:"required,oneof=student recruiter"`
}

// RegisterRequest 注册请求（账号 + 资料一次提交）
type RegisterRequest struct {
	Username string          `json:"username" binding:"required,min=3,max=150"`
	Email    string          `json:"email"    binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8,max=64"`
	Profile  RegisterProfile `json:"profile"  binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LogoutRequest 登出请求（拉黑 Refresh Token）
type LogoutRequest struct {
	RefreshToken string `json:"refresh" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest 找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token    string `json:"token"    binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}
