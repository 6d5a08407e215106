package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"robo-advisor/internal/codehook"
	apperrors "robo-advisor/internal/common/errors"
	"robo-advisor/internal/common/logger"
	"robo-advisor/internal/common/metrics"
	"robo-advisor/internal/dispatcher"
	rp "robo-advisor/internal/intents/recommend-portfolio"
	"robo-advisor/internal/lex"
)

type mockInvoker struct {
	mock.Mock
}

func (m *mockInvoker) Invoke(ctx context.Context, payload json.RawMessage) (*lex.Response, error) {
	args := m.Called(ctx, payload)
	resp, _ := args.Get(0).(*lex.Response)
	return resp, args.Error(1)
}

func newTestServer(t *testing.T) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	log := logger.NewTestLogger(t)
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg, "test")

	h, err := rp.NewHandler(rp.DefaultConfig(), rp.Dependencies{Logger: log, Metrics: rec})
	require.NoError(t, err)
	fn := codehook.New(codehook.Options{
		Dispatcher: dispatcher.New(map[string]dispatcher.IntentHandler{rp.IntentName: h}, log),
		Logger:     log,
		Metrics:    rec,
	})

	ts := httptest.NewServer(New(":0", fn, reg, log).Handler())
	t.Cleanup(ts.Close)
	return ts, reg
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/codehook", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCodeHook_Fulfillment(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := post(t, ts.URL, `{
		"invocationSource": "FulfillmentCodeHook",
		"bot": {"name": "RoboAdvisor"},
		"currentIntent": {"name": "recommendPortfolio", "slots": {"firstName": "Sam", "age": "30", "investmentAmount": "9000", "riskLevel": "low"}}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out lex.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, lex.CloseAction, out.DialogAction.Type)
	assert.Contains(t, out.DialogAction.Message.Content, "60% bonds (AGG), 40% equities (SPY)")
}

func TestCodeHook_ErrorStatuses(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"unsupported intent", `{"invocationSource": "DialogCodeHook", "currentIntent": {"name": "bookHotel"}}`, http.StatusUnprocessableEntity, "UNSUPPORTED_INTENT"},
		{"malformed", `{"currentIntent": 12}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad source", `{"invocationSource": "Later", "currentIntent": {"name": "recommendPortfolio"}}`, http.StatusBadRequest, "INVALID_INVOCATION_SOURCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			var out struct {
				Error apperrors.StandardError `json:"error"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, tt.code, string(out.Error.Code))
		})
	}
}

func TestCodeHook_PassesRequestID(t *testing.T) {
	inv := &mockInvoker{}
	inv.On("Invoke", mock.MatchedBy(func(ctx context.Context) bool {
		return codehook.RequestIDFromContext(ctx) == "req-42"
	}), mock.Anything).Return(lex.Delegate(nil, nil), nil).Once()

	ts := httptest.NewServer(New(":0", inv, nil, logger.NewTestLogger(t)).Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/codehook", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "req-42")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	inv.AssertExpectations(t)
}

func TestHealthReadyMetrics(t *testing.T) {
	ts, _ := newTestServer(t)

	// Produce at least one sample so the counter families are exported.
	post(t, ts.URL, `{"invocationSource": "DialogCodeHook", "currentIntent": {"name": "recommendPortfolio"}}`)

	for _, path := range []string{"/health", "/ready"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "test_codehook_invocations_total")
}

func TestCodeHook_MethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/codehook")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
