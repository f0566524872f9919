package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 默认 Token 签发者
const DefaultTokenIssuer = "note-graph-service"

// Token subjects keep access and refresh tokens from being used in place of each other.
// 通过 subject 区分访问令牌与刷新令牌，二者不可混用
const (
	SubjectAccessToken  = "access-token"
	SubjectRefreshToken = "refresh-token"
)

// ContextUserKey gin.Context 中保存当前用户的键
const ContextUserKey = "user_token"

// TokenConfig 定义 Token 管理器的配置
type TokenConfig struct {
	SecretKey     string        // JWT 签名密钥
	Issuer        string        // Token 签发者
	AccessExpiry  time.Duration // 访问令牌有效期，默认 1 天
	RefreshExpiry time.Duration // 刷新令牌有效期，默认 7 天
}

// TokenManager 定义 Token 管理接口
type TokenManager interface {
	Generate(uid int64, email, ip string) (string, error)
	GenerateRefresh(uid int64, email, ip string) (string, error)
	Parse(token string) (*UserEntity, error)
	ParseRefresh(token string) (*UserEntity, error)
	AccessExpiry() time.Duration
}

// tokenManager 实现 TokenManager 接口
type tokenManager struct {
	config TokenConfig
}

// NewTokenManager 创建一个新的 TokenManager 实例
func NewTokenManager(cfg TokenConfig) TokenManager {
	if cfg.AccessExpiry == 0 {
		cfg.AccessExpiry = 24 * time.Hour
	}
	if cfg.RefreshExpiry == 0 {
		cfg.RefreshExpiry = 7 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &tokenManager{config: cfg}
}

// UserEntity is the claim set carried by both token kinds.
type UserEntity struct {
	UID   int64  `json:"uid"`
	Email string `json:"email"`
	IP    string `json:"ip,omitempty"`
	jwt.RegisteredClaims
}

// Generate 生成访问令牌
func (t *tokenManager) Generate(uid int64, email, ip string) (string, error) {
	return t.sign(uid, email, ip, SubjectAccessToken, t.config.AccessExpiry)
}

// GenerateRefresh 生成刷新令牌
func (t *tokenManager) GenerateRefresh(uid int64, email, ip string) (string, error) {
	return t.sign(uid, email, ip, SubjectRefreshToken, t.config.RefreshExpiry)
}

func (t *tokenManager) sign(uid int64, email, ip, subject string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &UserEntity{
		UID:   uid,
		Email: email,
		IP:    ip,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   subject,
			ID:        strconv.FormatInt(uid, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.config.SecretKey))
}

// Parse 解析访问令牌
func (t *tokenManager) Parse(token string) (*UserEntity, error) {
	return t.parse(token, SubjectAccessToken)
}

// ParseRefresh 解析刷新令牌
func (t *tokenManager) ParseRefresh(token string) (*UserEntity, error) {
	return t.parse(token, SubjectRefreshToken)
}

func (t *tokenManager) parse(token, subject string) (*UserEntity, error) {
	claims := &UserEntity{}

	parsedToken, err := jwt.ParseWithClaims(token, claims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(t.config.SecretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.config.Issuer),
		jwt.WithSubject(subject),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	if !parsedToken.Valid || claims.UID <= 0 {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

func (t *tokenManager) AccessExpiry() time.Duration {
	return t.config.AccessExpiry
}

// GetUID extracts the user ID from the request context.
func GetUID(ctx *gin.Context) (out int64) {
	if user, exist := ctx.Get(ContextUserKey); exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.UID
		}
	}
	return
}

// GetIP gets the request IP
// GetIP 获取ip
func GetIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}
