package httpapi

// Result 与前端约定的统一响应信封
// - success: 是否成功
// - data: 负载
// - message: 成功提示（可选）
// - error: 失败原因
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Ok(data any) Result {
	return Result{Success: true, Data: data}
}

func OkMsg(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

func Fail(errMsg string) Result {
	return Result{Success: false, Error: errMsg}
}
