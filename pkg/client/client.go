// Package client is a Go client for the note graph HTTP API.
// It attaches the access token to protected calls and refreshes it shortly
// before it expires.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/haierkeys/note-graph-service/internal/dto"
	"github.com/pkg/errors"
)

// ErrNotAuthenticated is returned by protected calls when no usable token is left.
var ErrNotAuthenticated = errors.New("not authenticated")

// DefaultRefreshGrace 访问令牌剩余有效期小于该值时提前刷新
const DefaultRefreshGrace = 30 * time.Second

// APIError is a non-2xx response.
type APIError struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
	TraceID string `json:"traceId,omitempty"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error %d (code %d): %s", e.Status, e.Code, e.Message)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// TokenStore persists the token pair between calls.
type TokenStore interface {
	Load() (access, refresh string)
	Save(access, refresh string)
	Clear()
}

// MemoryTokenStore 内存令牌存储
type MemoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func (s *MemoryTokenStore) Load() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.refresh
}

func (s *MemoryTokenStore) Save(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = access, refresh
}

func (s *MemoryTokenStore) Clear() {
	s.Save("", "")
}

// Config 客户端配置
type Config struct {
	// BaseURL e.g. http://localhost:5000
	BaseURL string
	// HTTPClient defaults to a client with a 30s timeout
	HTTPClient *http.Client
	// Store defaults to an in-memory store
	Store TokenStore
	// RefreshGrace defaults to DefaultRefreshGrace
	RefreshGrace time.Duration
	// Now is the clock used for expiry checks
	Now func() time.Time
}

// Client note graph API client
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	grace   time.Duration
	now     func() time.Time

	refreshMu sync.Mutex
}

// New 创建客户端
func New(cfg Config) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    cfg.HTTPClient,
		store:   cfg.Store,
		grace:   cfg.RefreshGrace,
		now:     cfg.Now,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.store == nil {
		c.store = &MemoryTokenStore{}
	}
	if c.grace <= 0 {
		c.grace = DefaultRefreshGrace
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Tokens 当前保存的令牌对
func (c *Client) Tokens() (access, refresh string) {
	return c.store.Load()
}

// Logout 清除本地令牌
func (c *Client) Logout() {
	c.store.Clear()
}

// Signup 注册
func (c *Client) Signup(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/signup", "", &dto.UserSignupRequest{Email: email, Password: password}, nil)
}

// Login 登录并保存令牌
func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	req := &dto.UserLoginRequest{Email: email, Password: password, RememberMe: rememberMe}
	if err := c.do(ctx, http.MethodPost, "/api/login", "", req, &out); err != nil {
		return nil, err
	}
	refresh := ""
	if out.RefreshToken != nil {
		refresh = *out.RefreshToken
	}
	c.store.Save(out.AccessToken, refresh)
	return &out, nil
}

// Refresh exchanges the stored refresh token for a new pair. Any failure
// clears both tokens.
func (c *Client) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Client) refreshLocked(ctx context.Context) error {
	_, refresh := c.store.Load()
	if refresh == "" {
		c.store.Clear()
		return ErrNotAuthenticated
	}

	var out dto.TokenPairResponse
	if err := c.do(ctx, http.MethodPost, "/api/refresh", "", &dto.TokenRefreshRequest{Token: refresh}, &out); err != nil || out.AccessToken == "" {
		c.store.Clear()
		if err == nil {
			err = errors.New("empty access token")
		}
		return errors.Wrap(ErrNotAuthenticated, err.Error())
	}
	if out.RefreshToken == "" {
		out.RefreshToken = refresh
	}
	c.store.Save(out.AccessToken, out.RefreshToken)
	return nil
}

// ensureToken returns an access token that stays valid for at least the
// grace window, refreshing when needed.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	access, refresh := c.store.Load()
	exp, ok := expiresAt(access)
	if ok && exp.Sub(c.now()) > c.grace {
		return access, nil
	}
	if refresh == "" {
		// no way to renew; an access token that has not expired yet is still usable
		if ok && exp.After(c.now()) {
			return access, nil
		}
		c.store.Clear()
		return "", ErrNotAuthenticated
	}
	if err := c.refreshLocked(ctx); err != nil {
		return "", err
	}
	access, _ = c.store.Load()
	return access, nil
}

// expiresAt 读取令牌的 exp，不校验签名
func expiresAt(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Graph 获取笔记图
func (c *Client) Graph(ctx context.Context) (*dto.GraphDTO, error) {
	var out dto.GraphDTO
	if err := c.authed(ctx, http.MethodGet, "/api/graph", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNote 获取笔记详情
func (c *Client) GetNote(ctx context.Context, id int64) (*dto.NoteDTO, error) {
	var out dto.NoteDTO
	if err := c.authed(ctx, http.MethodGet, notePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateNote 创建笔记，parentID 为 nil 表示根笔记
func (c *Client) CreateNote(ctx context.Context, title string, parentID *int64) (*dto.NoteSummaryDTO, error) {
	var out dto.NoteSummaryDTO
	req := &dto.NoteCreateRequest{Title: title, ParentID: parentID}
	if err := c.authed(ctx, http.MethodPost, "/api/notes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNote 更新笔记
func (c *Client) UpdateNote(ctx context.Context, id int64, req *dto.NoteUpdateRequest) (*dto.NoteUpdateResponse, error) {
	var out dto.NoteUpdateResponse
	if err := c.authed(ctx, http.MethodPut, notePath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNote 删除笔记
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.authed(ctx, http.MethodDelete, notePath(id), nil, nil)
}

// Health 健康检查
func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var out dto.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func notePath(id int64) string {
	return "/api/notes/" + strconv.FormatInt(id, 10)
}

func (c *Client) authed(ctx context.Context, method, path string, in, out interface{}) error {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, token, in, out)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(raw, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}
