package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func containsString(list []string, value string) bool {
	for _, entry := range list {
		if entry == value {
			return true
		}
	}
	return false
}

// UserSession is the explicit session object passed to every view: who the
// user is, which dashboard variant applies, and which locale renders.
type UserSession struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  string   `json:"role"`
	Lang  Language `json:"lang"`
	IsRTL bool     `json:"isRTL"`
}

// OperatorSession authenticates the back-office export surface.
type OperatorSession struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (a *App) createUserSessionToken(session UserSession) (string, error) {
	claims := jwt.MapClaims{
		"name":  session.Name,
		"email": session.Email,
		"role":  session.Role,
		"lang":  string(session.Lang),
		"jti":   uuid.NewString(),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(userSessionDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.cfg.AppSigningSecret))
}

func (a *App) verifyUserSessionToken(tokenString string) (*UserSession, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(a.cfg.AppSigningSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if email == "" || !containsString(userRoles, role) {
		return nil, fmt.Errorf("invalid session payload")
	}
	name, _ := claims["name"].(string)
	lang, _ := claims["lang"].(string)
	session := &UserSession{
		Name:  name,
		Email: email,
		Role:  role,
		Lang:  parseLanguage(lang),
	}
	session.IsRTL = session.Lang.IsRTL()
	return session, nil
}

func (a *App) createOperatorSessionToken(session OperatorSession) (string, error) {
	claims := jwt.MapClaims{
		"email": session.Email,
		"role":  session.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(operatorSessionDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.cfg.AppSigningSecret))
}

func (a *App) verifyOperatorSessionToken(tokenString string) (*OperatorSession, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(a.cfg.AppSigningSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid operator session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if email == "" || !containsString(operatorRoles, role) {
		return nil, fmt.Errorf("invalid session payload")
	}
	return &OperatorSession{Email: email, Role: role}, nil
}

func (a *App) requireUserSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(userCookieName)
		if err != nil {
			writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Session required"})
			c.Abort()
			return
		}
		session, err := a.verifyUserSessionToken(token)
		if err != nil {
			writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Session required"})
			c.Abort()
			return
		}
		c.Set("userSession", *session)
		c.Next()
	}
}

func getUserSession(c *gin.Context) (UserSession, error) {
	value, exists := c.Get("userSession")
	if !exists {
		return UserSession{}, fmt.Errorf("no user session in context")
	}
	session, ok := value.(UserSession)
	if !ok {
		return UserSession{}, fmt.Errorf("invalid user session in context")
	}
	return session, nil
}

func (a *App) requireOperatorSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(operatorCookieName)
		if err != nil {
			writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Operator session required"})
			c.Abort()
			return
		}
		session, err := a.verifyOperatorSessionToken(token)
		if err != nil {
			writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Operator session required"})
			c.Abort()
			return
		}
		c.Set("operatorSession", *session)
		c.Next()
	}
}

func getOperatorSession(c *gin.Context) (OperatorSession, error) {
	value, exists := c.Get("operatorSession")
	if !exists {
		return OperatorSession{}, fmt.Errorf("no operator session in context")
	}
	session, ok := value.(OperatorSession)
	if !ok {
		return OperatorSession{}, fmt.Errorf("invalid operator session in context")
	}
	return session, nil
}

func (a *App) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := getOperatorSession(c)
		if err != nil || session.Role != role {
			writeAPIError(c, &apiError{Status: http.StatusForbidden, Code: "forbidden", Message: "Insufficient role"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// newEnquiryPublicID returns a short reference shown to the enquirer.
func newEnquiryPublicID() string {
	return "ENQ-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
