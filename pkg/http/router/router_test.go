package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lintang-b-s/navigatorx-matrix/pkg/benchmark"
	http_server "github.com/lintang-b-s/navigatorx-matrix/pkg/http/server"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMatrixService struct {
	err error

	gotIterations int
	gotOptimize   bool
	gotOpen       bool
	gotLocations  []matrix.Location
	gotCosting    string
}

func (f *fakeMatrixService) ComputeMatrix(req *matrix.MatrixRequest, iterations int, optimize bool) (*benchmark.Report, error) {
	f.gotIterations, f.gotOptimize = iterations, optimize
	if f.err != nil {
		return nil, f.err
	}
	m := matrix.NewCostMatrix(len(req.Sources), len(req.Targets))
	return &benchmark.Report{
		Costing:         req.Costing,
		TimeDifferences: -1,
		Backends:        []benchmark.BackendReport{{Name: "costmatrix", Iterations: iterations, Matrix: m}},
	}, nil
}

func (f *fakeMatrixService) OptimizeRoute(locs []matrix.Location, costingName string, open bool) (*benchmark.Tour, error) {
	f.gotLocations, f.gotCosting, f.gotOpen = locs, costingName, open
	if f.err != nil {
		return nil, f.err
	}
	order := make([]int, len(locs))
	for i := range order {
		order[i] = i
	}
	return &benchmark.Tour{Order: order, Cost: 42, Took: time.Millisecond}, nil
}

func newTestHandler(svc *fakeMatrixService, useRateLimit bool, rps float64) http.Handler {
	cfg := http_server.Config{Port: 0, Timeout: time.Second, RateLimit: rps}
	return NewAPI(zap.NewNop()).Handler(cfg, useRateLimit, svc)
}

const twoLocations = `{"locations":[{"lat":-7.55,"lon":110.78},{"lat":-7.56,"lon":110.78}],"costing":"auto"`

// n copies of the same location, as a json array or as the optimizeRoute query value
func repeatedLocations(n int, asQuery bool) string {
	if asQuery {
		return strings.TrimSuffix(strings.Repeat("-7.55,110.78|", n), "|")
	}
	return "[" + strings.TrimSuffix(strings.Repeat(`{"lat":-7.55,"lon":110.78},`, n), ",") + "]"
}

func TestComputeMatrix(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		contentType    string
		serviceErr     error
		wantStatus     int
		wantIterations int
	}{
		{name: "locations for both sides", body: twoLocations + `}`, contentType: "application/json",
			wantStatus: http.StatusOK, wantIterations: 1},
		{name: "iterations & optimize", body: twoLocations + `,"iterations":5,"optimize":true}`,
			contentType: "application/json", wantStatus: http.StatusOK, wantIterations: 5},
		{name: "too many iterations", body: twoLocations + `,"iterations":1000}`, contentType: "application/json",
			wantStatus: http.StatusBadRequest},
		{name: "too many locations", body: `{"locations":` + repeatedLocations(501, false) + `,"costing":"auto"}`,
			contentType: "application/json", wantStatus: http.StatusBadRequest},
		{name: "too many sources", body: `{"sources":` + repeatedLocations(501, false) +
			`,"targets":[{"lat":-7.55,"lon":110.78}],"costing":"auto"}`,
			contentType: "application/json", wantStatus: http.StatusBadRequest},
		{name: "unknown costing", body: `{"locations":[{"lat":1,"lon":1}],"costing":"boat"}`,
			contentType: "application/json", wantStatus: http.StatusBadRequest},
		{name: "no locations", body: `{"costing":"auto"}`, contentType: "application/json",
			wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"costing":`, contentType: "application/json",
			wantStatus: http.StatusBadRequest},
		{name: "not json", body: twoLocations + `}`, contentType: "text/plain",
			wantStatus: http.StatusUnsupportedMediaType},
		{name: "location not on the map", body: twoLocations + `}`, contentType: "application/json",
			serviceErr: util.WrapErrorf(nil, util.ErrNotFound, "no road"), wantStatus: http.StatusNotFound},
		{name: "configuration error", body: twoLocations + `}`, contentType: "application/json",
			serviceErr: util.WrapErrorf(nil, util.ErrConfiguration, "no limits"), wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMatrixService{err: tt.serviceErr}
			h := newTestHandler(svc, false, 0)

			req := httptest.NewRequest(http.MethodPost, "/api/matrix", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantIterations, svc.gotIterations)

			var body struct {
				Data struct {
					Costing  string `json:"costing"`
					Backends []struct {
						Name   string `json:"name"`
						Matrix [][]struct {
							Time float64 `json:"time"`
						} `json:"sources_to_targets"`
					} `json:"backends"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "auto", body.Data.Costing)
			require.Len(t, body.Data.Backends, 1)
			require.Len(t, body.Data.Backends[0].Matrix, 2)
			assert.Len(t, body.Data.Backends[0].Matrix[0], 2)
			assert.Equal(t, -1.0, body.Data.Backends[0].Matrix[1][0].Time)
		})
	}
}

func TestOptimizeRoute(t *testing.T) {
	testCases := []struct {
		name        string
		query       string
		wantStatus  int
		wantCosting string
		wantOpen    bool
	}{
		{name: "default costing", query: "locations=-7.55,110.78|-7.56,110.78|-7.57,110.79",
			wantStatus: http.StatusOK, wantCosting: "auto"},
		{name: "open path for bicycle", query: "locations=-7.55,110.78|-7.56,110.78&costing=bicycle&open=true",
			wantStatus: http.StatusOK, wantCosting: "bicycle", wantOpen: true},
		{name: "single location", query: "locations=-7.55,110.78", wantStatus: http.StatusBadRequest},
		{name: "missing locations", query: "", wantStatus: http.StatusBadRequest},
		{name: "bad latitude", query: "locations=x,110.78|-7.56,110.78", wantStatus: http.StatusBadRequest},
		{name: "latitude out of range", query: "locations=97,110.78|-7.56,110.78", wantStatus: http.StatusBadRequest},
		{name: "bad open flag", query: "locations=-7.55,110.78|-7.56,110.78&open=maybe", wantStatus: http.StatusBadRequest},
		{name: "unknown costing", query: "locations=-7.55,110.78|-7.56,110.78&costing=boat",
			wantStatus: http.StatusBadRequest},
		{name: "too many locations", query: "locations=" + repeatedLocations(501, true),
			wantStatus: http.StatusBadRequest},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMatrixService{}
			h := newTestHandler(svc, false, 0)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/optimizeRoute?"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantCosting, svc.gotCosting)
			assert.Equal(t, tt.wantOpen, svc.gotOpen)

			var body struct {
				Data struct {
					Order []int   `json:"order"`
					Cost  float64 `json:"cost"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Len(t, body.Data.Order, len(svc.gotLocations))
			assert.Equal(t, 42.0, body.Data.Cost)
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Run("heartbeat", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestHandler(&fakeMatrixService{}, false, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, ".", rec.Body.String())
	})

	t.Run("request id is propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Request-Id", "abc")
		rec := httptest.NewRecorder()
		Labels(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "abc", RequestID(r.Context()))
		})).ServeHTTP(rec, req)
		assert.Equal(t, "abc", rec.Header().Get("X-Request-Id"))
	})

	t.Run("real ip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.7, 10.0.0.1")
		RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "10.0.0.7", r.RemoteAddr)
		})).ServeHTTP(httptest.NewRecorder(), req)
	})

	t.Run("rate limit", func(t *testing.T) {
		h := newTestHandler(&fakeMatrixService{}, true, 1)
		query := "/api/optimizeRoute?locations=-7.55,110.78|-7.56,110.78"

		first := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, query, nil))
		second := httptest.NewRecorder()
		h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, query, nil))

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})

	t.Run("panic is recovered", func(t *testing.T) {
		api := NewAPI(zap.NewNop())
		rec := httptest.NewRecorder()
		api.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		h := newTestHandler(&fakeMatrixService{}, false, 0)
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet,
			"/api/optimizeRoute?locations=-7.55,110.78|-7.56,110.78", nil))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "http_requests_total")
	})
}
