package internal

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const cookieName = "hunt_token"

type claims struct {
	SessionID string `json:"sid"`
	Team      string `json:"team"`
	jwt.RegisteredClaims
}

// PageAuth gates a protected page. The cookie token must parse AND its
// session ID must still be live in the registry; either failing sends the
// visitor back to the login page. The login endpoint itself is never behind
// this gate, so there is no redirect loop.
func PageAuth(sessions *Sessions, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		expired := func() {
			c.Redirect(http.StatusFound, loginURL("Session expired. Please login again.", "error"))
			c.Abort()
		}

		tokenStr, err := c.Cookie(cookieName)
		if err != nil || tokenStr == "" {
			expired()
			return
		}

		tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(token *jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			expired()
			return
		}
		cl, ok := tok.Claims.(*claims)
		if !ok {
			expired()
			return
		}

		team, ok := sessions.Team(cl.SessionID)
		if !ok || team != cl.Team {
			expired()
			return
		}

		c.Set("team", team)
		c.Next()
	}
}

// RequireAdminPage allows only the admin identity through; anyone else is
// sent back to the login page.
func RequireAdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.EqualFold(sessionTeam(c), "admin") {
			c.Redirect(http.StatusFound, "/index.html")
			c.Abort()
			return
		}
		c.Next()
	}
}

func sessionTeam(c *gin.Context) string {
	v, _ := c.Get("team")
	s, _ := v.(string)
	return s
}
