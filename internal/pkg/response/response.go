// Package response shapes every gateway reply into the webapi envelope:
// zero code plus data on success, a non-zero errcode plus message
// otherwise. Handlers never write to the gin context directly.
package response

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
)

type apiError struct {
	code uint32
	msg  string
}

func (e apiError) Error() string {
	return e.msg
}

// Code is what proxyutil reads to fill the envelope's code field.
func (e apiError) Code() uint32 {
	return e.code
}

func AsCodeErr(code uint32, msg string) error {
	return apiError{code: code, msg: msg}
}

func Success(c *gin.Context, data interface{}) {
	proxyutil.SuccessJson(c, data)
}

// Error keeps the transport status at 200; storefront clients branch on
// the envelope code alone. Gate denials never reach here, they are
// successful responses carrying a decision payload.
func Error(c *gin.Context, code int, message string) {
	proxyutil.FailJson(c, 200, AsCodeErr(uint32(code), message))
}
