package handlers

import (
	"errors"
	"net/http"

	"github.com/shujie1st/tinyapp/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowIndex(c *gin.Context) {
	if h.isLoggedIn(c) {
		c.Redirect(http.StatusFound, "/urls")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) ShowLogin(c *gin.Context) {
	if h.isLoggedIn(c) {
		c.Redirect(http.StatusFound, "/urls")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *Handler) HandleLogin(c *gin.Context) {
	if h.isLoggedIn(c) {
		c.Redirect(http.StatusFound, "/urls")
		return
	}

	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.users.Authenticate(email, password, c.ClientIP())
	if err != nil {
		// Unknown email and wrong password render the same way
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrInvalidCredentials) {
			c.HTML(http.StatusForbidden, "login.html", gin.H{"Error": "Invalid credentials"})
			return
		}
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong, please try again"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Failed to save session"})
		return
	}

	c.Redirect(http.StatusFound, "/urls")
}

func (h *Handler) ShowRegister(c *gin.Context) {
	if h.isLoggedIn(c) {
		c.Redirect(http.StatusFound, "/urls")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

func (h *Handler) HandleRegister(c *gin.Context) {
	if h.isLoggedIn(c) {
		c.Redirect(http.StatusFound, "/urls")
		return
	}

	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.users.Register(email, password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": "Email and password must not be empty"})
		case errors.Is(err, services.ErrEmailTaken):
			c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": "Email already registered"})
		default:
			c.HTML(http.StatusInternalServerError, "register.html", gin.H{"Error": "Failed to create account"})
		}
		return
	}

	// Registration logs the new user straight in
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"Error": "Failed to save session"})
		return
	}

	c.Redirect(http.StatusFound, "/urls")
}

// Logout invalidates the whole session so no stale attributes survive.
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true})
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Failed to clear session"})
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
