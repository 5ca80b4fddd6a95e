package dto

// UpdatePasswordReq represents the request body for the /updateMyPassword endpoint.
type UpdatePasswordReq struct {
	PasswordCurrent string `json:"passwordCurrent" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
}
