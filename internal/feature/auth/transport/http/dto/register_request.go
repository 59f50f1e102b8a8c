package dto

// RegisterReq represents the request body for the /auth/register endpoint.
// It uses Gin's binding tags for validation. bcrypt only reads the first 72 bytes of a password.
type RegisterReq struct {
	Username  string `json:"username" binding:"required,max=64"`
	Password  string `json:"password" binding:"required,max=72"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Phone     string `json:"phone" binding:"required,max=32"`
}
