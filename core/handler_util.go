package core

import "github.com/gin-gonic/gin"

// respondMsg sends {"msg": ...} (login/logout/protected surface).
func respondMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg})
}

// respondMessage sends {"message": ...} (registration surface).
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
