package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/donorconnect/donor-api/config"
	"github.com/donorconnect/donor-api/internal/handler"
	assistantHandler "github.com/donorconnect/donor-api/internal/handler/assistant"
	authHandler "github.com/donorconnect/donor-api/internal/handler/auth"
	dashboardHandler "github.com/donorconnect/donor-api/internal/handler/dashboard"
	donorHandler "github.com/donorconnect/donor-api/internal/handler/donor"
	inventoryHandler "github.com/donorconnect/donor-api/internal/handler/inventory"
	requestHandler "github.com/donorconnect/donor-api/internal/handler/request"
	"github.com/donorconnect/donor-api/internal/middleware"
	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository/memory"
	"github.com/donorconnect/donor-api/internal/service/assistant"
	authService "github.com/donorconnect/donor-api/internal/service/auth"
	"github.com/donorconnect/donor-api/internal/service/contact"
	"github.com/donorconnect/donor-api/internal/service/dashboard"
	donorService "github.com/donorconnect/donor-api/internal/service/donor"
	"github.com/donorconnect/donor-api/internal/service/intake"
	inventoryService "github.com/donorconnect/donor-api/internal/service/inventory"
	"github.com/donorconnect/donor-api/internal/service/matchmaker"
	"github.com/donorconnect/donor-api/pkg/auth"
	"github.com/donorconnect/donor-api/pkg/llm"
	"github.com/donorconnect/donor-api/pkg/messaging"
	memoryBroker "github.com/donorconnect/donor-api/pkg/messaging/memory"
	"github.com/donorconnect/donor-api/pkg/metrics"
)

const (
	operatorEmail    = "admin@donorconnect.example"
	operatorPassword = "s3cret-pass"
	contactChannel   = "donor.contact"
)

const matchesJSON = `{"matches":[
	{"donorName":"Ava Chen","donorId":"d1","matchScore":93,"location":"City Medical Center","isAvailable":true},
	{"donorName":"Luis Ortiz","donorId":"d2","matchScore":71,"location":"Downtown","isAvailable":true},
	{"donorName":"Mia Park","donorId":"d3","matchScore":58,"location":"Uptown","isAvailable":false}
]}`

type testServer struct {
	engine     *gin.Engine
	broker     *memoryBroker.Broker
	token      string
	matchCalls *int32
}

func newTestServer(t *testing.T, rateLimit bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	m := metrics.NewMetrics("test", "api")
	broker := memoryBroker.NewBroker()
	t.Cleanup(func() { _ = broker.Close() })

	var calls int32
	matchGen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		atomic.AddInt32(&calls, 1)
		return matchesJSON, nil
	})

	matcher := matchmaker.NewService(matchGen, matchmaker.Options{Metrics: m})
	inventorySvc := inventoryService.NewService(store.Inventory, store.Drives, time.Minute, time.Minute)

	jwtSvc := auth.NewJWTService("test-secret", "donorconnect", time.Hour)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash(operatorPassword)
	require.NoError(t, err)
	authSvc := authService.NewService([]config.OperatorConfig{
		{Email: operatorEmail, PasswordHash: hash, Role: model.RoleAdmin},
	}, jwtSvc, hasher)

	r := NewRouter(
		middleware.NewAuthMiddleware(jwtSvc),
		Handlers{
			Health:    handler.NewHandler(nil),
			Auth:      authHandler.NewHandler(authSvc),
			Requests:  requestHandler.NewHandler(intake.NewService(store.Requests, matcher), contact.NewService(store.Requests, store.Donors, messaging.NewChannelPublisher(broker, contactChannel), m)),
			Donors:    donorHandler.NewHandler(donorService.NewService(store.Donors), inventorySvc),
			Inventory: inventoryHandler.NewHandler(inventorySvc),
			Assistant: assistantHandler.NewHandler(assistant.NewChatbot(llm.Unconfigured, assistant.Options{}), assistant.NewSummarizer(llm.Unconfigured, assistant.Options{})),
			Dashboard: dashboardHandler.NewHandler(dashboard.NewService(store.Requests, inventorySvc)),
		},
		m,
		RouterConfig{
			Mode:           gin.TestMode,
			RateLimit:      1,
			RateBurst:      2,
			RateLimitOn:    rateLimit,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsEnabled: true,
		},
	)
	r.Setup()

	token, _, err := jwtSvc.GenerateAccessToken(operatorEmail, model.RoleAdmin)
	require.NoError(t, err)

	return &testServer{engine: r.Engine(), broker: broker, token: token, matchCalls: &calls}
}

func (s *testServer) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/api/v1/health/live", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.0", w.Header().Get("X-API-Version"))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))

	w = s.do(http.MethodGet, "/api/v1/health/ready", "", false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/metrics", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_api_http_requests_total")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/api/v1/admin/requests", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "error", decode(t, w).Status)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/requests", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenFlow(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodPost, "/api/v1/auth/token", `{"email":"admin@donorconnect.example","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/token", `{"email":"not-an-email"}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/token", `{"email":"admin@donorconnect.example","password":"s3cret-pass"}`, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tokens model.TokenResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &tokens))
	assert.Equal(t, "Bearer", tokens.TokenType)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/overview", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListAndCreateRequests(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/api/v1/admin/requests?status=Pending", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []model.EmergencyRequest
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &pending))
	assert.Len(t, pending, 3)

	w = s.do(http.MethodGet, "/api/v1/admin/requests?status=Archived", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/admin/requests",
		`{"requestType":"Blood","bloodType":"AB-","location":"North Clinic","patientName":"Nora Quinn"}`, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.EmergencyRequest
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	assert.Equal(t, model.RequestStatusPending, created.Status)
	assert.True(t, strings.HasPrefix(created.ID, "req_"))

	w = s.do(http.MethodGet, "/api/v1/admin/requests/"+created.ID, "", true)
	assert.Equal(t, http.StatusOK, w.Code)

	// two details violate the one-detail rule
	w = s.do(http.MethodPost, "/api/v1/admin/requests",
		`{"requestType":"Blood","bloodType":"AB-","organ":"Liver","location":"North Clinic","patientName":"Nora Quinn"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/admin/requests/req_missing", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFindMatches(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodPost, "/api/v1/admin/requests/req_2/matches", "", true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result model.MatchResult
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
	assert.Len(t, result.Matches, 3)
	assert.Nil(t, result.Error)

	w = s.do(http.MethodPost, "/api/v1/admin/requests/req_3/matches", "", true)
	assert.Equal(t, http.StatusConflict, w.Code)
	env := decode(t, w)
	assert.Equal(t, intake.NotPendingMessage, env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotNil(t, result.Error)
	assert.Equal(t, intake.NotPendingMessage, *result.Error)
	assert.Empty(t, result.Matches)

	assert.Equal(t, int32(1), atomic.LoadInt32(s.matchCalls))
}

func TestContactDonorPublishesAlert(t *testing.T) {
	s := newTestServer(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	msgs, err := s.broker.Subscribe(ctx, contactChannel)
	require.NoError(t, err)

	w := s.do(http.MethodPost, "/api/v1/admin/requests/req_2/contact", `{"donorId":"usr_1","donorName":"Jane Doe"}`, true)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	select {
	case raw := <-msgs:
		env, err := messaging.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, model.EventDonorContactRequested, env.Type)

		var alert model.ContactAlert
		require.NoError(t, json.Unmarshal(env.Payload, &alert))
		assert.Equal(t, "jane.doe@email.com", alert.DonorEmail)
		assert.Equal(t, operatorEmail, alert.RequestedBy)
		assert.Equal(t, "O-", alert.Detail)
	case <-time.After(time.Second):
		t.Fatal("no alert published")
	}

	w = s.do(http.MethodPost, "/api/v1/admin/requests/req_3/contact", `{"donorId":"usr_1","donorName":"Jane Doe"}`, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/v1/admin/requests/req_2/contact", `{"donorId":"usr_1"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDonorAndInventoryRoutes(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/api/v1/donors/usr_1", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var d model.Donor
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &d))
	assert.Equal(t, "usr_1", d.ID)

	w = s.do(http.MethodGet, "/api/v1/donors/usr_404/history", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/drives", "", false)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{"/inventory/blood", "/inventory/organs", "/inventory/tissues", "/campaigns", "/forecast", "/overview"} {
		w = s.do(http.MethodGet, "/api/v1/admin"+path, "", true)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestDonorInsightsRoute(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/api/v1/donors/usr_1/insights", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var insights []model.HealthInsight
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &insights))
	require.Len(t, insights, 4)
	assert.Equal(t, "Iron Levels", insights[1].Title)
	assert.Equal(t, "Normal", insights[1].Value)
	assert.NotContains(t, w.Body.String(), "donor_id")

	w = s.do(http.MethodGet, "/api/v1/donors/usr_404/insights", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDemandForecastRoute(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/api/v1/admin/forecast", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/admin/forecast", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var forecast []model.DemandForecast
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &forecast))
	require.Len(t, forecast, 5)
	assert.Equal(t, "Today", forecast[0].Label)
	assert.Equal(t, map[model.BloodType]int{
		model.BloodTypeAPos: 55,
		model.BloodTypeONeg: 85,
		model.BloodTypeBPos: 45,
	}, forecast[4].Demand)
	assert.Contains(t, w.Body.String(), `"date":"In 4 Days"`)
}

func TestAssistantRoutes(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodPost, "/api/v1/chat", `{"query":"   "}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, assistant.EmptyQueryMessage, decode(t, w).Message)

	// an unconfigured generator still answers the donor with the fallback
	w = s.do(http.MethodPost, "/api/v1/chat", `{"query":"Can I donate after a tattoo?"}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	var reply model.ChatResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &reply))
	assert.Equal(t, assistant.ChatFallback, reply.Response)

	w = s.do(http.MethodPost, "/api/v1/admin/feedback/summary", `{"feedbackText":"Great staff, long wait."}`, true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, assistant.SummarizerUnavailableText, decode(t, w).Message)
}

func TestAIRoutesAreRateLimited(t *testing.T) {
	s := newTestServer(t, true)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := s.do(http.MethodPost, "/api/v1/chat", `{"query":"hello"}`, false)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// read routes are not limited
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/drives", "", false).Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/chat", nil)
	req.Header.Set("Origin", "https://donorconnect.example")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}
