package router

import "github.com/gin-gonic/gin"

// Module 各角色的路由模块都实现这个接口，由 NewEngine 统一挂载
type Module interface {
	Mount(api *gin.RouterGroup)
}
