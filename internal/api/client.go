package api

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/observability"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

// CorrelationHeader carries the per-request id sent to the course service.
const CorrelationHeader = "X-Correlation-ID"

// Client is the remote course service as seen by the coordinators. Every
// failure is an *apperrors.Error.
type Client interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, token string, req dto.CourseRequest) (models.Course, error)
	UpdateCourse(ctx context.Context, token, id string, req dto.CourseRequest) (models.Course, error)
	DeleteCourse(ctx context.Context, token, id string) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Schedule(ctx context.Context, token string) ([]models.Course, error)
	Enroll(ctx context.Context, token, courseID string) ([]models.Course, error)
	Drop(ctx context.Context, token, courseID string) ([]models.Course, error)
}

// Config defines how the HTTP client reaches the course service.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

type httpClient struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
	logger  zerolog.Logger
}

// NewClient builds a Client against cfg.BaseURL.
func NewClient(cfg Config) (Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &httpClient{
		baseURL: base,
		http:    hc,
		tracer:  otel.Tracer("github.com/noah-isme/coursesync/internal/api"),
		logger:  cfg.Logger.With().Str("component", "api_client").Logger(),
	}, nil
}

func (c *httpClient) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := c.do(ctx, call{method: http.MethodGet, path: "/courses", route: "/courses"}, &courses)
	return nonNil(courses), err
}

func (c *httpClient) CreateCourse(ctx context.Context, token string, req dto.CourseRequest) (models.Course, error) {
	var course models.Course
	err := c.do(ctx, call{method: http.MethodPost, path: "/courses", route: "/courses", token: token, body: req}, &course)
	return course, err
}

func (c *httpClient) UpdateCourse(ctx context.Context, token, id string, req dto.CourseRequest) (models.Course, error) {
	var course models.Course
	err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/courses/" + url.PathEscape(id),
		route:  "/courses/{id}",
		token:  token,
		body:   req,
	}, &course)
	return course, err
}

func (c *httpClient) DeleteCourse(ctx context.Context, token, id string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/courses/" + url.PathEscape(id),
		route:  "/courses/{id}",
		token:  token,
	}, nil)
}

func (c *httpClient) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	var resp dto.AuthResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/users/login", route: "/users/login", body: req}, &resp)
	return resp, err
}

func (c *httpClient) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	var resp dto.AuthResponse
	err := c.do(ctx, call{method: http.MethodPost, path: "/users/register", route: "/users/register", body: req}, &resp)
	return resp, err
}

func (c *httpClient) Schedule(ctx context.Context, token string) ([]models.Course, error) {
	var courses []models.Course
	err := c.do(ctx, call{method: http.MethodGet, path: "/users/schedule", route: "/users/schedule", token: token}, &courses)
	return nonNil(courses), err
}

func (c *httpClient) Enroll(ctx context.Context, token, courseID string) ([]models.Course, error) {
	var courses []models.Course
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/users/schedule/add",
		route:  "/users/schedule/add",
		token:  token,
		body:   dto.ScheduleChangeRequest{CourseID: courseID},
	}, &courses)
	return nonNil(courses), err
}

func (c *httpClient) Drop(ctx context.Context, token, courseID string) ([]models.Course, error) {
	var courses []models.Course
	err := c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/users/schedule/drop",
		route:  "/users/schedule/drop",
		token:  token,
		body:   dto.ScheduleChangeRequest{CourseID: courseID},
	}, &courses)
	return nonNil(courses), err
}

type call struct {
	method string
	path   string
	route  string
	token  string
	body   interface{}
}

func (c *httpClient) do(parent context.Context, in call, out interface{}) error {
	correlationID := uuid.NewString()
	ctx, span := c.tracer.Start(parent, "api."+strings.ToLower(in.method)+" "+in.route, trace.WithAttributes(
		attribute.String("http.method", in.method),
		attribute.String("http.route", in.route),
		attribute.String("correlation_id", correlationID),
	))
	defer span.End()

	start := time.Now()
	err := c.roundTrip(ctx, in, correlationID, out, span)
	observability.APIRequestDuration().WithLabelValues(in.method, in.route).Observe(time.Since(start).Seconds())

	if err != nil {
		appErr := apperrors.FromError(err)
		observability.APIRequestFailures().WithLabelValues(in.method, in.route, appErr.Code).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, appErr.Message)
		c.logger.Debug().
			Str("method", in.method).
			Str("route", in.route).
			Str("correlation_id", correlationID).
			Str("code", appErr.Code).
			Int("status", appErr.Status).
			Msg("request failed")
		return appErr
	}
	return nil
}

func (c *httpClient) roundTrip(ctx context.Context, in call, correlationID string, out interface{}, span trace.Span) error {
	var body io.Reader
	if in.body != nil {
		payload, err := json.Marshal(in.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, c.baseURL+in.path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(CorrelationHeader, correlationID)
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if in.token != "" {
		req.Header.Set("Authorization", "Bearer "+in.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeNetwork, 0, apperrors.ErrNetwork.Message)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeNetwork, 0, apperrors.ErrNetwork.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.ForStatus(resp.StatusCode, serverMessage(raw))
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDecode, resp.StatusCode, apperrors.ErrDecode.Message)
	}
	return nil
}

// serverMessage extracts the "message" field of a failure body, if any.
func serverMessage(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Message)
}

func nonNil(courses []models.Course) []models.Course {
	if courses == nil {
		return []models.Course{}
	}
	return courses
}

// IsNetwork reports whether err means the service could not be reached.
func IsNetwork(err error) bool {
	return errors.Is(err, apperrors.ErrNetwork)
}
