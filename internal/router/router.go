package router

import (
	"github.com/blogapi/internal/handler"
	"github.com/blogapi/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(gin.CustomRecovery(middleware.HandlePanics()))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	a := handler.NewAPI(gdb)

	api := r.Group("/api")
	{
		api.GET("/posts", a.ListPosts)
		api.POST("/posts", a.CreatePost)
		api.GET("/posts/:id", a.GetPost)
		api.GET("/posts/:id/html", a.GetPostHTML)
		api.PATCH("/posts/:id", a.UpdatePost)
		api.DELETE("/posts/:id", a.DeletePost)
	}

	return r
}
