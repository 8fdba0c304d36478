package controllers

import (
	"github.com/lintang-b-s/navigatorx-matrix/pkg/benchmark"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/costing"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
)

// location lists are capped at 500 entries, a 500x500 matrix per request at most
type matrixRequest struct {
	Locations      []matrix.Location          `json:"locations" validate:"max=500"`
	Sources        []matrix.Location          `json:"sources" validate:"max=500"`
	Targets        []matrix.Location          `json:"targets" validate:"max=500"`
	Costing        string                     `json:"costing"`
	CostingOptions map[string]costing.Options `json:"costing_options"`
	Iterations     int                        `json:"iterations" validate:"omitempty,min=1,max=100"`
	Optimize       bool                       `json:"optimize"`
}

func (r matrixRequest) toMatrixRequest() *matrix.MatrixRequest {
	return &matrix.MatrixRequest{
		Locations:      r.Locations,
		Sources:        r.Sources,
		Targets:        r.Targets,
		Costing:        r.Costing,
		CostingOptions: r.CostingOptions,
	}
}

type optimizeRouteRequest struct {
	Locations []matrix.Location `validate:"min=2,max=500,dive"`
	Costing   string            `validate:"required,oneof=auto bicycle pedestrian"`
	Open      bool
}

type tourResponse struct {
	Order    []int   `json:"order"`
	Cost     float64 `json:"cost"`
	Polyline string  `json:"polyline"`
	TookMs   int64   `json:"took_ms"`
}

func newTourResponse(t *benchmark.Tour) *tourResponse {
	if t == nil {
		return nil
	}
	return &tourResponse{
		Order:    t.Order,
		Cost:     t.Cost,
		Polyline: t.Polyline,
		TookMs:   t.Took.Milliseconds(),
	}
}

type cellResponse struct {
	From     int     `json:"from_index"`
	To       int     `json:"to_index"`
	Time     float64 `json:"time"`
	Distance float64 `json:"distance"`
}

type backendResponse struct {
	Name           string           `json:"name"`
	Iterations     int              `json:"iterations"`
	AverageSeconds float64          `json:"average_seconds"`
	Matrix         [][]cellResponse `json:"sources_to_targets"`
	Tour           *tourResponse    `json:"tour,omitempty"`
	OpenPath       *tourResponse    `json:"open_path,omitempty"`
}

type matrixResponse struct {
	Costing              string            `json:"costing"`
	MaxMatrixDistance    float64           `json:"max_matrix_distance"`
	LocationProcessingMs int64             `json:"location_processing_ms"`
	Optimized            bool              `json:"optimized"`
	TimeDifferences      int               `json:"time_differences"`
	Backends             []backendResponse `json:"backends"`
}

func newMatrixResponse(report *benchmark.Report) matrixResponse {
	resp := matrixResponse{
		Costing:              report.Costing,
		MaxMatrixDistance:    report.MaxMatrixDistance,
		LocationProcessingMs: report.LocationProcessing.Milliseconds(),
		Optimized:            report.Optimized,
		TimeDifferences:      report.TimeDifferences,
		Backends:             make([]backendResponse, 0, len(report.Backends)),
	}

	for _, br := range report.Backends {
		m := br.Matrix
		rows := make([][]cellResponse, m.NumSources())
		for idx := 0; idx < m.Len(); idx++ {
			i, j := benchmark.CellIndex(idx, m.NumTargets())
			rows[i] = append(rows[i], cellResponse{From: i, To: j, Time: m.Time(idx), Distance: m.Distance(idx)})
		}
		resp.Backends = append(resp.Backends, backendResponse{
			Name:           br.Name,
			Iterations:     br.Iterations,
			AverageSeconds: br.AverageSeconds,
			Matrix:         rows,
			Tour:           newTourResponse(br.Tour),
			OpenPath:       newTourResponse(br.OpenPath),
		})
	}
	return resp
}

type errorResponse struct {
	Error string `json:"error"`
}
