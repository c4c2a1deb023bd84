package serverutils

// BaseResponse is the error envelope. Successful responses carry the bare resource.
type BaseResponse struct {
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ErrorResponse(code int, message string) BaseResponse {
	return BaseResponse{
		Code:    code,
		Success: false,
		Message: message,
	}
}
