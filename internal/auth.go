package internal

import (
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func Login(store *Store, sessions *Sessions, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamName := c.PostForm("teamName")
		password := c.PostForm("password")

		var ok, disqualified bool
		err := store.Do(func(d *Data) {
			t := d.Teams[teamName]
			if t == nil {
				return
			}
			if bcrypt.CompareHashAndPassword([]byte(t.Password), []byte(password)) != nil {
				return
			}
			ok = true
			disqualified = t.Disqualified
		})
		if err != nil {
			c.String(500, "Error loading data. Please try again later.")
			return
		}

		if !ok {
			log.Printf("Failed login: %s", teamName)
			c.Redirect(http.StatusFound, loginURL("Invalid credentials. Please try again.", "error"))
			return
		}
		log.Printf("Successful login: %s", teamName)

		sid := sessions.Create(teamName)
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
			SessionID: sid,
			Team:      teamName,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				Issuer:    "hunt-platform",
			},
		})
		s, _ := tok.SignedString([]byte(secret))

		secure := os.Getenv("COOKIE_SECURE") == "1"
		c.SetCookie(cookieName, s, 86400, "/", "", secure, true)

		if strings.EqualFold(teamName, "admin") {
			c.Redirect(http.StatusFound, "/admin.html")
			return
		}
		if disqualified {
			c.Redirect(http.StatusFound, dashboardURL(teamName, "Your team has been disqualified.", "error"))
			return
		}
		c.Redirect(http.StatusFound, "/dashboard.html?team="+url.QueryEscape(teamName))
	}
}

func Logout(sessions *Sessions, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, err := c.Cookie(cookieName); err == nil && tokenStr != "" {
			tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(token *jwt.Token) (any, error) {
				return []byte(secret), nil
			})
			if err == nil && tok.Valid {
				if cl, ok := tok.Claims.(*claims); ok {
					sessions.Drop(cl.SessionID)
				}
			}
		}
		c.SetCookie(cookieName, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/index.html")
	}
}
