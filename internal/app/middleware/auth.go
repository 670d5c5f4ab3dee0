package middleware

import (
	"context"

	"voucher-backend/internal/app/config"
	"voucher-backend/internal/app/ds"
	"voucher-backend/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// TokenBlacklist проверяет, отозван ли токен. Возврат nil означает,
// что токен находится в blacklist.
type TokenBlacklist interface {
	CheckJWTInBlacklist(ctx context.Context, jwtStr string) error
}

type AuthMiddleware struct {
	Blacklist TokenBlacklist
	Config    *config.Config
}

func NewAuthMiddleware(blacklist TokenBlacklist, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Blacklist: blacklist,
		Config:    cfg,
	}
}

// WithAuthCheck middleware для проверки авторизации с ролями.
// Суперпользователь проходит любую ролевую проверку.
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return gin.HandlerFunc(func(gCtx *gin.Context) {
		claims, ok := am.authenticate(gCtx)
		if !ok {
			return
		}

		// Проверяем роли пользователя
		if len(assignedRoles) > 0 && !claims.IsSuperuser && !am.hasRequiredRole(claims.Role, assignedRoles) {
			gCtx.AbortWithStatus(403) // Forbidden
			return
		}

		am.storeClaims(gCtx, claims)
		gCtx.Next()
	})
}

// WithCapabilityCheck middleware для операций, закрытых предикатом
// возможности из пакета role. Решение о доступе принимает сам предикат,
// middleware только аутентифицирует запрос - политика определена в одном
// месте и не дублируется в списках ролей маршрутов.
func (am *AuthMiddleware) WithCapabilityCheck(allowed func(role.Role, bool) bool) gin.HandlerFunc {
	return gin.HandlerFunc(func(gCtx *gin.Context) {
		claims, ok := am.authenticate(gCtx)
		if !ok {
			return
		}

		if !allowed(claims.Role, claims.IsSuperuser) {
			gCtx.AbortWithStatus(403)
			return
		}

		am.storeClaims(gCtx, claims)
		gCtx.Next()
	})
}

// WithSuperuserCheck middleware для управления должностями и набором
// согласования
func (am *AuthMiddleware) WithSuperuserCheck() gin.HandlerFunc {
	return am.WithCapabilityCheck(role.CanManageDesignations)
}

// authenticate проверяет JWT токен и blacklist, при ошибке завершает запрос
func (am *AuthMiddleware) authenticate(gCtx *gin.Context) (*ds.JWTClaims, bool) {
	// Проверяем JWT токен из заголовка Authorization
	jwtStr := gCtx.GetHeader("Authorization")
	if jwtStr == "" {
		gCtx.AbortWithStatus(401) // Unauthorized
		return nil, false
	}

	// Убираем префикс "Bearer " если он есть
	if len(jwtStr) > 7 && jwtStr[:7] == "Bearer " {
		jwtStr = jwtStr[7:]
	}

	// Проверяем токен в blacklist Redis
	err := am.Blacklist.CheckJWTInBlacklist(gCtx.Request.Context(), jwtStr)
	if err == nil {
		// Токен в blacklist
		gCtx.AbortWithStatus(401)
		return nil, false
	}

	// Парсим и проверяем JWT токен
	token, err := am.parseJWTToken(jwtStr)
	if err != nil {
		gCtx.AbortWithStatus(401)
		return nil, false
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid {
		gCtx.AbortWithStatus(401)
		return nil, false
	}

	return claims, true
}

// storeClaims сохраняет данные пользователя в контексте запроса
func (am *AuthMiddleware) storeClaims(gCtx *gin.Context, claims *ds.JWTClaims) {
	gCtx.Set("userID", claims.UserID)
	gCtx.Set("userLogin", claims.Login)
	gCtx.Set("userRole", claims.Role)
	gCtx.Set("isSuperuser", claims.IsSuperuser)
}

// parseJWTToken парсит и валидирует JWT токен
func (am *AuthMiddleware) parseJWTToken(tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(am.Config.JWT.Token), nil
	})
}

// hasRequiredRole проверяет, есть ли у пользователя необходимая роль
func (am *AuthMiddleware) hasRequiredRole(userRole role.Role, requiredRoles []role.Role) bool {
	for _, requiredRole := range requiredRoles {
		if userRole == requiredRole {
			return true
		}
	}
	return false
}
