package response

// Resp 统一响应信封：{success, message, data}
type Resp struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(data interface{}) Resp {
	return Resp{Success: true, Data: data}
}

func OKMsg(msg string, data interface{}) Resp {
	return Resp{Success: true, Message: msg, Data: data}
}

func Fail(msg string) Resp {
	return Resp{Success: false, Message: msg}
}
