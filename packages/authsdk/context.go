package authsdk

import (
	"net/http"
	"strings"
)

// AccessTokenCookie 访问令牌 cookie 名称
const AccessTokenCookie = "access_token"

// ExtractToken 从 HTTP 请求中提取 JWT token
// 查找顺序：
// 1. access_token cookie
// 2. Authorization header (Bearer token)
// 3. token 查询参数（浏览器 WebSocket 无法设置 header）
func ExtractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	if header := r.Header.Get("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer "), nil
		}
		return "", ErrInvalidToken
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", ErrNoToken
}

// GetUserFromRequest 从请求解析用户信息
// 没有 token 或解析失败时返回 error
func GetUserFromRequest(r *http.Request, secret string) (*UserContext, error) {
	token, err := ExtractToken(r)
	if err != nil {
		return nil, err
	}
	return ParseToken(token, secret)
}
