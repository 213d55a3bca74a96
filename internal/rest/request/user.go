package request

type Register struct {
	UserName string `json:"userName" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type Login struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}
