package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, target, reader)
	if body != "" {
		request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	recorder := httptest.NewRecorder()

	return echo.New().NewContext(request, recorder), recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestServer_HandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedTag  string
	}{
		{
			name:         "validation error maps to 400",
			err:          errs.NewValueIsInvalidError("status"),
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "required value maps to 400",
			err:          errs.NewValueIsRequiredError("orderNumber"),
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing principal maps to 401",
			err:          errUnauthenticated,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "access denied maps to 403",
			err:          errs.NewAccessDeniedError("user 303 is not a party"),
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "not found maps to 404",
			err:          errs.NewObjectNotFoundError("orderNumber", "ORD-1"),
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "invalid transition maps to 409 with code",
			err:          errs.NewInvalidTransitionError("CONFIRMED", "PROCESSING"),
			expectedCode: http.StatusConflict,
			expectedTag:  "INVALID_TRANSITION",
		},
		{
			name:         "concurrency conflict maps to 409 with code",
			err:          errs.NewConcurrencyConflictError("order", "ORD-1"),
			expectedCode: http.StatusConflict,
			expectedTag:  "CONFLICT",
		},
		{
			name:         "unclassified error maps to 500",
			err:          assert.AnError,
			expectedCode: http.StatusInternalServerError,
		},
	}

	server := &Server{environment: "development"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, recorder := newContext(t, http.MethodGet, "/", "")

			require.NoError(t, server.handleError(ctx, tt.err))

			assert.Equal(t, tt.expectedCode, recorder.Code)

			response := decodeError(t, recorder)
			assert.False(t, response.Success)
			assert.Equal(t, tt.expectedTag, response.Code)
			assert.NotEmpty(t, response.Detail)
		})
	}
}

func TestServer_HandleError_DetailHiddenInProduction(t *testing.T) {
	server := &Server{environment: envProduction}
	ctx, recorder := newContext(t, http.MethodGet, "/", "")

	require.NoError(t, server.handleError(ctx, errs.NewAccessDeniedError("secret internals")))

	response := decodeError(t, recorder)
	assert.Empty(t, response.Detail)
	assert.Equal(t, "Access denied", response.Message)
}

func TestServer_RequiresPrincipal(t *testing.T) {
	server := &Server{environment: "development"}

	ctx, recorder := newContext(t, http.MethodGet, "/api/v1/order/ORD-123456789012", "")
	ctx.SetParamNames("orderNumber")
	ctx.SetParamValues("ORD-123456789012")

	require.NoError(t, server.GetOrder(ctx))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestServer_ChangeOrderStatus_RejectsUnknownStatus(t *testing.T) {
	server := &Server{environment: "development"}

	ctx, recorder := newContext(t, http.MethodPatch,
		"/api/v1/order/ORD-123456789012/status", `{"status":"SHIPPED"}`)
	ctx.SetParamNames("orderNumber")
	ctx.SetParamValues("ORD-123456789012")
	SetPrincipal(ctx, kernel.UserID(101))

	require.NoError(t, server.ChangeOrderStatus(ctx))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_CreatePurchase_RejectsMalformedPrice(t *testing.T) {
	server := &Server{environment: "development"}

	body := `{"sellerId":"202","listingId":"555","title":"Hamilton",` +
		`"venue":"Richard Rodgers Theatre","eventAt":"2026-09-12T19:30:00Z",` +
		`"price":"abc","quantity":2}`
	ctx, recorder := newContext(t, http.MethodPost, "/api/v1/orders", body)
	SetPrincipal(ctx, kernel.UserID(101))

	require.NoError(t, server.CreatePurchase(ctx))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_SendMessage_RejectsNonNumericReceiver(t *testing.T) {
	server := &Server{environment: "development"}

	body := `{"receiverId":"not-a-number","message":"hi","orderNumber":"ORD-123456789012"}`
	ctx, recorder := newContext(t, http.MethodPost, "/api/v1/messages", body)
	SetPrincipal(ctx, kernel.UserID(101))

	require.NoError(t, server.SendMessage(ctx))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_GetHealth(t *testing.T) {
	server := &Server{}
	ctx, recorder := newContext(t, http.MethodGet, "/api/v1/health", "")

	require.NoError(t, server.GetHealth(ctx))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, recorder.Body.String())
}
