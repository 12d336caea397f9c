package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/context"
)

// UserContext ensures the request context carries a UserContext for the
// domain layer. Auth populates it from the JWT; this middleware bridges the
// gin-context keys for routes where Auth was skipped (tests, internal
// tooling that sets "user_id" directly).
//
// Must run AFTER Auth in the chain.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if appctx.GetUser(c.Request.Context()) == nil {
			if userID, ok := c.Get("user_id"); ok {
				if uid, ok := userID.(string); ok && uid != "" {
					user := &appctx.UserContext{
						UserID: uid,
						Name:   c.GetString("user_name"),
					}
					ctx := appctx.WithUser(c.Request.Context(), user)
					c.Request = c.Request.WithContext(ctx)
				}
			}
		}
		c.Next()
	}
}
