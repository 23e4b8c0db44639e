package response

import "github.com/gin-gonic/gin"

// Error writes the API's flat error body: {"error": "..."}.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// ErrorWithContext writes a flat error body with identifying fields echoed
// alongside the message, e.g. {"error": "Bike not found", "key": "...",
// "inventoryLength": 2}. The extra fields never override "error".
func ErrorWithContext(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{"error": message}
	for k, v := range fields {
		if k == "error" {
			continue
		}
		body[k] = v
	}
	c.JSON(status, body)
}

// Message writes {"message": "..."}.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
