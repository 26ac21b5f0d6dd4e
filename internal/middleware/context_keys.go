package middleware

import "github.com/gin-gonic/gin"

// subjectKey is the key used to store the authenticated caller in the request context.
const subjectKey = contextKey("subject")

// GetSubjectFromContext retrieves the authenticated caller id from the Gin context.
// It returns the subject and a boolean indicating if it was found.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(subjectKey)); exists {
		subject, ok := v.(string)
		return subject, ok
	}
	subject, ok := c.Request.Context().Value(subjectKey).(string)
	return subject, ok && subject != ""
}
