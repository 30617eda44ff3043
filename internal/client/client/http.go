package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/common"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// HTTPClient implements Client over the REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. "http://127.0.0.1:8080/api"). tokens may be nil for auth-only use.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenProvider) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

func (c *HTTPClient) Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	return c.authenticate(ctx, "/auth/register", creds)
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", models.Credentials{Username: creds.Username, Password: creds.Password})
}

func (c *HTTPClient) authenticate(ctx context.Context, path string, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, path, creds, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: empty token in auth response", ErrUnavailable)
	}
	if resp.ID == "" {
		id, err := userIDFromToken(resp.Token)
		if err != nil {
			return nil, err
		}
		resp.ID = id
	}
	return &resp, nil
}

// userIDFromToken reads the "id" claim without verifying the signature;
// only the server can verify it, the client just needs the identifier.
func userIDFromToken(token string) (models.ID, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	switch v := claims[common.UserIDClaim].(type) {
	case string:
		return models.ID(v), nil
	case float64:
		return models.ID(fmt.Sprintf("%.0f", v)), nil
	default:
		return "", errors.New("token has no user id claim")
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

/***** vehicles *****/

func (c *HTTPClient) ListVehicles(ctx context.Context, query string) ([]models.Vehicle, error) {
	return list[models.Vehicle](ctx, c, "/vehicles", "q", query)
}

func (c *HTTPClient) CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	return send(ctx, c, http.MethodPost, "/vehicles", v)
}

func (c *HTTPClient) UpdateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	return send(ctx, c, http.MethodPut, "/vehicles/"+url.PathEscape(v.ID.String()), v)
}

func (c *HTTPClient) DeleteVehicle(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/vehicles/"+url.PathEscape(id.String()), nil, nil)
}

/***** maintenances *****/

func (c *HTTPClient) ListMaintenances(ctx context.Context, vehicleID models.ID) ([]models.Maintenance, error) {
	return list[models.Maintenance](ctx, c, "/maintenances", "vehicleId", vehicleID.String())
}

func (c *HTTPClient) CreateMaintenance(ctx context.Context, m models.Maintenance) (models.Maintenance, error) {
	return send(ctx, c, http.MethodPost, "/maintenances", m)
}

func (c *HTTPClient) UpdateMaintenance(ctx context.Context, m models.Maintenance) (models.Maintenance, error) {
	return send(ctx, c, http.MethodPut, "/maintenances/"+url.PathEscape(m.ID.String()), m)
}

func (c *HTTPClient) DeleteMaintenance(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/maintenances/"+url.PathEscape(id.String()), nil, nil)
}

/***** reminders *****/

func (c *HTTPClient) ListReminders(ctx context.Context, vehicleID models.ID) ([]models.Reminder, error) {
	return list[models.Reminder](ctx, c, "/reminders", "vehicleId", vehicleID.String())
}

func (c *HTTPClient) CreateReminder(ctx context.Context, r models.Reminder) (models.Reminder, error) {
	return send(ctx, c, http.MethodPost, "/reminders", r)
}

func (c *HTTPClient) UpdateReminder(ctx context.Context, r models.Reminder) (models.Reminder, error) {
	return send(ctx, c, http.MethodPut, "/reminders/"+url.PathEscape(r.ID.String()), r)
}

func (c *HTTPClient) DeleteReminder(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/reminders/"+url.PathEscape(id.String()), nil, nil)
}

/***** devices and photos *****/

func (c *HTTPClient) RegisterDevice(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/notifications/register-device", models.DeviceRegistration{Token: token}, nil)
}

func (c *HTTPClient) VehicleImageUploadURL(ctx context.Context, vehicleID models.ID) (*models.ImageUpload, error) {
	var out models.ImageUpload
	if err := c.do(ctx, http.MethodPost, "/vehicles/"+url.PathEscape(vehicleID.String())+"/image", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VehicleImageURL(ctx context.Context, vehicleID models.ID) (string, error) {
	var out models.ImageURL
	if err := c.do(ctx, http.MethodGet, "/vehicles/"+url.PathEscape(vehicleID.String())+"/image", nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

/***** transport *****/

func list[T any](ctx context.Context, c *HTTPClient, path, param, value string) ([]T, error) {
	if value != "" {
		path += "?" + url.Values{param: {value}}.Encode()
	}
	items := make([]T, 0)
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func send[T any](ctx context.Context, c *HTTPClient, method, path string, body T) (T, error) {
	var out T
	err := c.do(ctx, method, path, body, &out)
	return out, err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= http.StatusBadRequest {
		return mapStatus(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func mapStatus(resp *http.Response) error {
	msg := resp.Status
	var er models.ErrorResponse
	if raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); len(raw) > 0 {
		if json.Unmarshal(raw, &er) == nil && er.Message != "" {
			msg = er.Message
		}
	}

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		sentinel = ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		sentinel = ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		sentinel = ErrConflict
	case resp.StatusCode >= http.StatusInternalServerError:
		sentinel = ErrUnavailable
	default:
		sentinel = ErrBadRequest
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}
