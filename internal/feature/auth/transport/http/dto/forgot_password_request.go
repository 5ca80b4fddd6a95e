package dto

// ForgotPasswordReq は/forgotPasswordエンドポイントのリクエストボディを表します。
type ForgotPasswordReq struct {
	Email string `json:"email" binding:"required,email"`
}
