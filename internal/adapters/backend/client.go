// Package backend is the HTTP client for the remote advisory service. Every
// durable record (profiles, conversations, answers, dashboard feeds) is owned
// by that service; this adapter only moves JSON.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agri-sahayak/sahayak-cli/internal/domain"
	"github.com/agri-sahayak/sahayak-cli/internal/observability"
)

// APIError is a non-2xx reply from the backend.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend: unexpected status %d", e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
}

var _ domain.Backend = (*Client)(nil)

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type userResponse struct {
	User domain.Profile `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type createProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone_number"`
	District string `json:"district"`
	Crop     string `json:"crop"`
	State    string `json:"state"`
	Language string `json:"language"`
}

type createProfileResponse struct {
	UserID string `json:"user_id"`
}

type startConversationRequest struct {
	UserID   string `json:"user_id"`
	Category string `json:"category"`
}

type startConversationResponse struct {
	ConversationID string `json:"conversation_id"`
}

type conversationResponse struct {
	Conversation []domain.Turn `json:"conversation"`
}

type askRequest struct {
	UserID         string  `json:"user_id"`
	Question       string  `json:"question"`
	ConversationID *string `json:"conversation_id"`
}

type analyzeImageRequest struct {
	UserID         string  `json:"user_id"`
	ImageBase64    string  `json:"image_base64"`
	MIMEType       string  `json:"mime_type"`
	Question       *string `json:"question"`
	ConversationID *string `json:"conversation_id"`
}

type askResponse struct {
	Answer         domain.Answer `json:"answer"`
	ConversationID string        `json:"conversation_id"`
}

type initiateCallRequest struct {
	UserID string `json:"user_id"`
}

type initiateCallResponse struct {
	SID string `json:"sid"`
}

type cropActivitiesResponse struct {
	Activities []string `json:"activities"`
}

type weatherAlertsResponse struct {
	Alerts []domain.WeatherAlert `json:"alerts"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// ─────────────────────────────────────────────
// Operations
// ─────────────────────────────────────────────

func (c *Client) GetUser(ctx context.Context, id domain.UserID) (*domain.Profile, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(string(id)), nil, &resp); err != nil {
		return nil, err
	}
	if resp.User.ID == "" {
		resp.User.ID = id
	}
	return &resp.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (domain.UserID, string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", "", err
	}
	if resp.UserID == "" {
		return "", "", fmt.Errorf("backend: login reply carried no user_id")
	}
	return domain.UserID(resp.UserID), resp.Name, nil
}

func (c *Client) CreateProfile(ctx context.Context, in domain.NewProfile) (domain.UserID, error) {
	req := createProfileRequest{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
		District: in.District,
		Crop:     in.Crop,
		State:    in.State,
		Language: in.Language,
	}
	var resp createProfileResponse
	if err := c.do(ctx, http.MethodPost, "/create_profile", req, &resp); err != nil {
		return "", err
	}
	return domain.UserID(resp.UserID), nil
}

func (c *Client) StartConversation(ctx context.Context, userID domain.UserID, category string) (domain.ConversationID, error) {
	req := startConversationRequest{UserID: string(userID), Category: category}
	var resp startConversationResponse
	if err := c.do(ctx, http.MethodPost, "/conversations/start", req, &resp); err != nil {
		return "", err
	}
	return domain.ConversationID(resp.ConversationID), nil
}

func (c *Client) GetConversation(ctx context.Context, id domain.ConversationID) ([]domain.Turn, error) {
	var resp conversationResponse
	if err := c.do(ctx, http.MethodGet, "/conversations/"+url.PathEscape(string(id)), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Conversation, nil
}

func (c *Client) Ask(ctx context.Context, userID domain.UserID, question string, convID domain.ConversationID) (domain.AskResult, error) {
	req := askRequest{
		UserID:         string(userID),
		Question:       question,
		ConversationID: optionalID(convID),
	}
	var resp askResponse
	if err := c.do(ctx, http.MethodPost, "/ask", req, &resp); err != nil {
		return domain.AskResult{}, err
	}
	return domain.AskResult{Answer: resp.Answer, ConversationID: domain.ConversationID(resp.ConversationID)}, nil
}

func (c *Client) AnalyzeImage(ctx context.Context, userID domain.UserID, img domain.Attachment, question string, convID domain.ConversationID) (domain.AskResult, error) {
	req := analyzeImageRequest{
		UserID:         string(userID),
		ImageBase64:    img.Base64,
		MIMEType:       img.MIME,
		ConversationID: optionalID(convID),
	}
	if question != "" {
		req.Question = &question
	}
	var resp askResponse
	if err := c.do(ctx, http.MethodPost, "/analyze_image", req, &resp); err != nil {
		return domain.AskResult{}, err
	}
	return domain.AskResult{Answer: resp.Answer, ConversationID: domain.ConversationID(resp.ConversationID)}, nil
}

func (c *Client) InitiateCall(ctx context.Context, userID domain.UserID) (string, error) {
	var resp initiateCallResponse
	if err := c.do(ctx, http.MethodPost, "/call/initiate", initiateCallRequest{UserID: string(userID)}, &resp); err != nil {
		return "", err
	}
	return resp.SID, nil
}

func (c *Client) WeatherForecast(ctx context.Context, userID domain.UserID) (*domain.WeatherForecast, error) {
	var resp domain.WeatherForecast
	if err := c.do(ctx, http.MethodGet, "/weather-forecast/"+url.PathEscape(string(userID)), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) MarketPriceHistory(ctx context.Context, userID domain.UserID) (*domain.MarketHistory, error) {
	var resp domain.MarketHistory
	if err := c.do(ctx, http.MethodGet, "/market-price-history/"+url.PathEscape(string(userID)), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CropActivities(ctx context.Context, crop, month string) ([]string, error) {
	q := url.Values{}
	q.Set("crop", crop)
	q.Set("month", month)
	var resp cropActivitiesResponse
	if err := c.do(ctx, http.MethodGet, "/crop_activities?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Activities, nil
}

func (c *Client) WeatherAlerts(ctx context.Context, userID domain.UserID) ([]domain.WeatherAlert, error) {
	var resp weatherAlertsResponse
	if err := c.do(ctx, http.MethodGet, "/weather-alerts/"+url.PathEscape(string(userID)), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// ─────────────────────────────────────────────
// Transport
// ─────────────────────────────────────────────

// optionalID maps an empty conversation id to JSON null, which asks the
// backend to create a new conversation.
func optionalID(id domain.ConversationID) *string {
	if id == "" {
		return nil
	}
	s := string(id)
	return &s
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	reqID := uuid.NewString()
	log := observability.LoggerFromContext(ctx).With(
		"request_id", reqID,
		"method", method,
		"path", path,
	)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("request failed", "error", err)
		return err
	}
	defer resp.Body.Close()

	log.Info("request completed", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e errorResponse
		if data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
			if json.Unmarshal(data, &e) == nil {
				apiErr.Detail = e.Detail
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
