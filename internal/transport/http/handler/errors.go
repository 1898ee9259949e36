package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid email or password"
	errTextRequired       = "Text is required"
	errTodoNotFound       = "Todo not found"
)
