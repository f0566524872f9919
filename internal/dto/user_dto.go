package dto

// UserSignupRequest 注册请求
type UserSignupRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=255"` // 邮箱
	Password string `json:"password" form:"password" binding:"required"`         // 密码
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email      string `json:"email" form:"email" binding:"required"`
	Password   string `json:"password" form:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe" form:"rememberMe"` // 是否签发刷新令牌
}

// TokenRefreshRequest 刷新令牌请求
// Token is optional at binding time; a missing token is an auth failure, not a bad request.
type TokenRefreshRequest struct {
	Token string `json:"token" form:"token"`
}

// UserDTO 用户信息
type UserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// LoginResponse 登录响应，RefreshToken 未记住登录时为 null
type LoginResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken *string `json:"refreshToken"`
	User         UserDTO `json:"user"`
}

// TokenPairResponse 刷新令牌响应
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
