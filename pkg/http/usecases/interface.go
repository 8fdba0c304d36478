package usecases

import (
	"github.com/lintang-b-s/navigatorx-matrix/pkg/benchmark"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
)

type MatrixEngine interface {
	NewDriver(backends ...matrix.Backend) *benchmark.Driver
}
