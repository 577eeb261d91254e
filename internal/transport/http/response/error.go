package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Err 携带 HTTP 状态码的业务错误，handler 返回后由统一出口映射
type Err struct {
	Status int
	Msg    string
	Cause  error
}

func (e *Err) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "error"
}

func (e *Err) Unwrap() error { return e.Cause }

func BadRequest(msg string) error   { return &Err{Status: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &Err{Status: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &Err{Status: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &Err{Status: http.StatusNotFound, Msg: msg} }
func Conflict(msg string) error     { return &Err{Status: http.StatusConflict, Msg: msg} }

// Internal 对外只给笼统消息，详情留在 Cause 里让日志打
func Internal(msg string, cause error) error {
	return &Err{Status: http.StatusInternalServerError, Msg: msg, Cause: cause}
}

// WriteError 统一错误出口。未知错误一律 500 + 笼统消息，不把内部细节带回去
func WriteError(c *gin.Context, err error) {
	var e *Err
	if errors.As(err, &e) {
		if e.Cause != nil {
			_ = c.Error(e.Cause)
		}
		c.JSON(e.Status, Fail(e.Error()))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Fail("internal error"))
}
