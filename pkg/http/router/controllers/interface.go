package controllers

import (
	"github.com/lintang-b-s/navigatorx-matrix/pkg/benchmark"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
)

type MatrixService interface {
	ComputeMatrix(req *matrix.MatrixRequest, iterations int, optimize bool) (*benchmark.Report, error)
	OptimizeRoute(locs []matrix.Location, costingName string, open bool) (*benchmark.Tour, error)
}
