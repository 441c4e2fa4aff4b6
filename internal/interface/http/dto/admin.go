package dto

// LoginRequest 后台登录请求
type LoginRequest struct {
	Password string `json:"password" binding:"required" example:"Kiko0811"`
}

// LoginResponse 后台登录响应
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in" example:"0"` // 过期时间（秒），0表示不过期
}
