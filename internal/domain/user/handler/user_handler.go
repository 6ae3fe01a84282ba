package handler

import (
	"net/http"

	"blog_api/internal/domain/user/model"
	"blog_api/internal/domain/user/service"
	"blog_api/internal/pkg/middleware"
	"blog_api/internal/pkg/session"
	"blog_api/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	service  service.UserService
	sessions session.Store
}

// NewUserHandler 创建处理器
func NewUserHandler(service service.UserService, sessions session.Store) *UserHandler {
	return &UserHandler{service: service, sessions: sessions}
}

// SignupInput 注册输入
type SignupInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// LoginInput 登录输入
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userView 返回给前端的用户信息
func userView(u *model.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	}
}

// setSessionCookie 下发会话 Cookie
func (h *UserHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(
		session.CookieName(),
		token,
		session.CookieMaxAge(),
		"/",
		"",
		false, // secure 由反向代理层控制
		true,  // HttpOnly
	)
}

// Signup 注册并自动登录
// @Summary 注册新账号
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body SignupInput true "注册信息"
// @Success 201 {object} map[string]interface{}
// @Router /auth/signup [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Detail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.Signup(input.Username, input.Email, input.Password, input.Password2)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 注册成功后自动登录
	token, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, token)

	response.Created(c, gin.H{
		"user":   userView(user),
		"detail": "account created",
	})
}

// Login 登录
// @Summary 登录并开启会话
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body LoginInput true "登录信息"
// @Success 200 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Detail(c, http.StatusBadRequest, err.Error())
		return
	}

	if input.Username == "" || input.Password == "" {
		response.Detail(c, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.service.Login(input.Username, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, token)

	response.OK(c, gin.H{
		"user":   userView(user),
		"detail": "logged in",
	})
}

// Logout 注销会话
func (h *UserHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(session.CookieName()); err == nil && cookie != "" {
		_ = h.sessions.Destroy(c.Request.Context(), cookie)
	}

	// 清除 Cookie
	c.SetCookie(session.CookieName(), "", -1, "/", "", false, true)
	response.OK(c, gin.H{"detail": "logged out"})
}

// CurrentUser 返回当前登录用户
func (h *UserHandler) CurrentUser(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	user, err := h.service.GetUser(userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, userView(user))
}
