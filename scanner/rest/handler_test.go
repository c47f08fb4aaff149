package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/procwarden/procwarden/pkg/logger"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/procwarden/procwarden/scanner/rest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

type HandlerTestSuite struct {
	suite.Suite
	Svc      *domain.MockService
	Handler  *rest.Handler
	Engine   *echo.Echo
	Registry *prometheus.Registry
}

func (suite *HandlerTestSuite) SetupSuite() {
	logger.InitLogger()
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.Svc = domain.NewMockService(suite.T())
	suite.Registry = prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "procwarden_cycles_total", Help: "test"})
	counter.Add(3)
	suite.Require().NoError(suite.Registry.Register(counter))

	handler, err := rest.NewHandler(rest.Params{Svc: suite.Svc, Gatherer: suite.Registry})
	suite.Require().NoError(err)
	suite.Handler = handler

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	suite.Engine = e
	suite.Handler.SetupRoutes(e)
}

func (suite *HandlerTestSuite) do(method, target string) *httptest.ResponseRecorder {
	return suite.doWith(method, target, "", nil)
}

func (suite *HandlerTestSuite) doWith(method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)
	return rec
}

func (suite *HandlerTestSuite) enableAuth() *domain.MockAuthenticator {
	auth := domain.NewMockAuthenticator(suite.T())
	auth.EXPECT().Enabled().Return(true).Maybe()
	suite.Handler.Auth = auth
	return auth
}

func (suite *HandlerTestSuite) JSONDecode(r *httptest.ResponseRecorder, dst any) {
	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(dst)
	suite.Require().NoError(err, "Failed to decode JSON response")
}

func (suite *HandlerTestSuite) TestHealthCheck() {
	rec := suite.do(http.MethodGet, "/health")
	suite.Equal(http.StatusOK, rec.Code, "Expected status OK")
	var resp map[string]any
	suite.JSONDecode(rec, &resp)
	suite.Equal("healthy", resp["status"].(string), "Expected status to be healthy")
}

func (suite *HandlerTestSuite) TestVersion() {
	rec := suite.do(http.MethodGet, "/version")
	suite.Equal(http.StatusOK, rec.Code)
	var resp map[string]string
	suite.JSONDecode(rec, &resp)
	suite.Equal(rest.Version, resp["version"])
}

func (suite *HandlerTestSuite) TestMetrics() {
	rec := suite.do(http.MethodGet, "/metrics")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "procwarden_cycles_total 3")
}

func (suite *HandlerTestSuite) TestGetStatus() {
	started := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	last := domain.NewCycleReport("cycle-1", started)
	last.FinishedAt = started.Add(250 * time.Millisecond)
	last.Enumerated = 12
	last.Evaluated = 12
	last.Counts[domain.ResultClean] = 10
	last.Counts[domain.ResultFlaggedAndTerminated] = 2
	suite.Svc.EXPECT().Status(mock.Anything).Return(domain.Status{
		Running:              true,
		Backend:              "procfs",
		CyclePeriod:          3 * time.Second,
		Patterns:             []string{"ntfsDump.exe", "echo"},
		KnownDigests:         1,
		DigestSetFingerprint: "abc",
		CyclesCompleted:      7,
		LastCycle:            last,
	}).Once()

	rec := suite.do(http.MethodGet, "/api/v1/scanner/status")
	suite.Equal(http.StatusOK, rec.Code)
	suite.NotEmpty(rec.Header().Get("X-Request-ID"))

	var resp rest.SuccessResponse[rest.StatusResponse]
	suite.JSONDecode(rec, &resp)
	suite.True(resp.Success)
	suite.Require().NotNil(resp.Data)
	suite.True(resp.Data.Running)
	suite.Equal("3s", resp.Data.CyclePeriod)
	suite.Equal(uint64(7), resp.Data.CyclesCompleted)
	suite.Require().NotNil(resp.Data.LastCycle)
	suite.Equal("cycle-1", resp.Data.LastCycle.ID)
	suite.Equal(int64(250), resp.Data.LastCycle.DurationMs)
	suite.Equal(2, resp.Data.LastCycle.Flagged)
	suite.Equal(2, resp.Data.LastCycle.Results["flagged_and_terminated"])
	suite.Equal(0, resp.Data.LastCycle.Results["digest_unavailable"])
}

func (suite *HandlerTestSuite) TestListFlagged() {
	suite.Svc.EXPECT().ListFlagged(mock.Anything).Return([]domain.FlaggedProcess{
		{PID: 20, Name: "ntfsDump.exe", Result: domain.ResultFlaggedAndTerminated, State: domain.StateMatchedDigestHitTerminated, CycleID: "c"},
		{PID: 21, Name: "echo", Result: domain.ResultFlaggedNoMatch, State: domain.StateMatchedPathUnresolved, Reason: "denied", CycleID: "c"},
	}).Once()

	rec := suite.do(http.MethodGet, "/api/v1/scanner/flagged")
	suite.Equal(http.StatusOK, rec.Code)
	var resp rest.SuccessResponse[rest.ListFlaggedResponse]
	suite.JSONDecode(rec, &resp)
	suite.Require().Len(resp.Data.Processes, 2)
	suite.Equal("flagged_and_terminated", resp.Data.Processes[0].Result)
	suite.Equal("matched_path_unresolved", resp.Data.Processes[1].State)
	suite.Equal("denied", resp.Data.Processes[1].Reason)
}

func (suite *HandlerTestSuite) TestStartStop() {
	suite.Svc.EXPECT().Start(mock.Anything).Return(nil).Once()
	suite.Svc.EXPECT().Start(mock.Anything).Return(domain.ErrAlreadyRunning).Once()
	suite.Svc.EXPECT().Stop(mock.Anything).Return(nil).Once()
	suite.Svc.EXPECT().Stop(mock.Anything).Return(domain.ErrNotRunning).Once()

	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/scanner/start").Code)
	rec := suite.do(http.MethodPost, "/api/v1/scanner/start")
	suite.Equal(http.StatusConflict, rec.Code)
	var errResp rest.ErrorResponse
	suite.JSONDecode(rec, &errResp)
	suite.False(errResp.Success)
	suite.Equal(domain.ErrAlreadyRunning.Error(), errResp.Error)

	suite.Equal(http.StatusOK, suite.do(http.MethodPost, "/api/v1/scanner/stop").Code)
	suite.Equal(http.StatusConflict, suite.do(http.MethodPost, "/api/v1/scanner/stop").Code)
}

func (suite *HandlerTestSuite) TestRunCycle() {
	report := domain.NewCycleReport("cycle-2", time.Now())
	report.Enumerated = 3
	report.Evaluated = 3
	report.Counts[domain.ResultClean] = 3
	report.FinishedAt = report.StartedAt.Add(time.Millisecond)
	suite.Svc.EXPECT().RunCycle(mock.Anything).Return(report, nil).Once()

	rec := suite.do(http.MethodPost, "/api/v1/scanner/cycles")
	suite.Equal(http.StatusOK, rec.Code)
	var resp rest.SuccessResponse[rest.CycleView]
	suite.JSONDecode(rec, &resp)
	suite.Equal("cycle-2", resp.Data.ID)
	suite.Equal(3, resp.Data.Results["clean"])
}

func (suite *HandlerTestSuite) TestRunCycleInFlight() {
	suite.Svc.EXPECT().RunCycle(mock.Anything).Return(nil, domain.ErrCycleInFlight).Once()
	rec := suite.do(http.MethodPost, "/api/v1/scanner/cycles")
	suite.Equal(http.StatusConflict, rec.Code)
}

func (suite *HandlerTestSuite) TestRunCycleUnexpectedError() {
	suite.Svc.EXPECT().RunCycle(mock.Anything).Return(nil, context.DeadlineExceeded).Once()
	rec := suite.do(http.MethodPost, "/api/v1/scanner/cycles")
	suite.Equal(http.StatusServiceUnavailable, rec.Code)
	suite.True(strings.Contains(rec.Body.String(), "deadline"))
}

func (suite *HandlerTestSuite) TestControlRequiresTokenWhenAuthEnabled() {
	auth := suite.enableAuth()

	rec := suite.do(http.MethodPost, "/api/v1/scanner/start")
	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.Contains(rec.Body.String(), "Missing Authorization header")

	rec = suite.doWith(http.MethodPost, "/api/v1/scanner/stop", "", map[string]string{"Authorization": "Basic abc"})
	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.Contains(rec.Body.String(), "Invalid Authorization header format")

	auth.EXPECT().VerifyToken(mock.Anything, "stale").Return(nil, domain.ErrInvalidToken).Once()
	rec = suite.doWith(http.MethodPost, "/api/v1/scanner/cycles", "", map[string]string{"Authorization": "Bearer stale"})
	suite.Equal(http.StatusUnauthorized, rec.Code)

	auth.EXPECT().VerifyToken(mock.Anything, "good").Return(&domain.Claims{ClientID: "ops"}, nil).Once()
	suite.Svc.EXPECT().Start(mock.Anything).Return(nil).Once()
	rec = suite.doWith(http.MethodPost, "/api/v1/scanner/start", "", map[string]string{"Authorization": "Bearer good"})
	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *HandlerTestSuite) TestReadRoutesStayOpenWhenAuthEnabled() {
	suite.enableAuth()
	suite.Svc.EXPECT().ListFlagged(mock.Anything).Return(nil).Once()
	rec := suite.do(http.MethodGet, "/api/v1/scanner/flagged")
	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *HandlerTestSuite) TestGenToken() {
	auth := suite.enableAuth()
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	auth.EXPECT().IssueToken(mock.Anything, "ops", "pw").Return("signed.jwt.token", expires, nil).Once()
	auth.EXPECT().IssueToken(mock.Anything, "ops", "nope").Return("", time.Time{}, domain.ErrInvalidCredentials).Once()

	rec := suite.doWith(http.MethodPost, "/api/v1/auth/token", `{"client_id":"ops","password":"pw"}`, nil)
	suite.Equal(http.StatusOK, rec.Code)
	var resp rest.SuccessResponse[rest.TokenResponse]
	suite.JSONDecode(rec, &resp)
	suite.Equal("signed.jwt.token", resp.Data.Token)
	suite.Equal(expires.Unix(), resp.Data.ExpiredAt)

	rec = suite.doWith(http.MethodPost, "/api/v1/auth/token", `{"client_id":"ops","password":"nope"}`, nil)
	suite.Equal(http.StatusUnauthorized, rec.Code)

	rec = suite.doWith(http.MethodPost, "/api/v1/auth/token", `{"client_id":"ops","role":"admin"}`, nil)
	suite.Equal(http.StatusBadRequest, rec.Code, "unknown fields are rejected")
}

func (suite *HandlerTestSuite) TestGenTokenAuthDisabled() {
	rec := suite.doWith(http.MethodPost, "/api/v1/auth/token", `{"client_id":"ops","password":"pw"}`, nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestListDetections() {
	detected := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	suite.Svc.EXPECT().QueryDetections(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, opt *domain.QueryDetectionOptions) error {
			suite.Equal("c1", opt.CycleID)
			suite.Equal([]int32{20, 21}, opt.PIDs)
			suite.Equal([]domain.ScanResult{domain.ResultFlaggedAndTerminated}, opt.Results)
			suite.True(opt.Since.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
			suite.Equal(int64(5), opt.Limit)
			opt.Result = []*domain.Detection{{
				ID: "65f0", CycleID: "c1", MachineID: "host-a", PID: 20, Name: "ntfsDump.exe",
				Result: domain.ResultFlaggedAndTerminated, State: domain.StateMatchedDigestHitTerminated, DetectedAt: detected,
			}}
			return nil
		}).Once()

	rec := suite.do(http.MethodGet, "/api/v1/detections?cycle_id=c1&pid=20&pid=21&result=flagged_and_terminated&since=2025-02-01T00:00:00Z&limit=5")
	suite.Equal(http.StatusOK, rec.Code)
	var resp rest.SuccessResponse[rest.ListDetectionsResponse]
	suite.JSONDecode(rec, &resp)
	suite.Require().Len(resp.Data.Detections, 1)
	suite.Equal("host-a", resp.Data.Detections[0].MachineID)
	suite.Equal("matched_digest_hit_terminated", resp.Data.Detections[0].State)
	suite.True(detected.Equal(resp.Data.Detections[0].DetectedAt))
}

func (suite *HandlerTestSuite) TestListDetectionsBadQuery() {
	for _, target := range []string{
		"/api/v1/detections?pid=abc",
		"/api/v1/detections?pid=-1",
		"/api/v1/detections?result=quarantined",
		"/api/v1/detections?since=yesterday",
		"/api/v1/detections?limit=0",
	} {
		rec := suite.do(http.MethodGet, target)
		suite.Equal(http.StatusBadRequest, rec.Code, target)
	}
}

func (suite *HandlerTestSuite) TestListDetectionsStoreDisabled() {
	suite.Svc.EXPECT().QueryDetections(mock.Anything, mock.Anything).Return(domain.ErrDetectionStoreDisabled).Once()
	rec := suite.do(http.MethodGet, "/api/v1/detections")
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestUnexpectedErrorIsHidden() {
	suite.Svc.EXPECT().QueryDetections(mock.Anything, mock.Anything).Return(errors.New("socket closed")).Once()
	rec := suite.do(http.MethodGet, "/api/v1/detections")
	suite.Equal(http.StatusInternalServerError, rec.Code)
	suite.NotContains(rec.Body.String(), "socket")
}

func (suite *HandlerTestSuite) TestSwagger() {
	rec := suite.do(http.MethodGet, "/swagger/doc.json")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "/api/v1/scanner/cycles")
	suite.Contains(rec.Body.String(), "BearerAuth")
}
