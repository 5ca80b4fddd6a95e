package dto

// ResetPasswordReq は/resetPassword/:tokenエンドポイントのリクエストボディを表します。
// リセットシークレット自体はURLパラメータで渡されます。
type ResetPasswordReq struct {
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
}
