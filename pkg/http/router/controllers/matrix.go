package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/navigatorx-matrix/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
	"go.uber.org/zap"
)

const maxRequestBodyBytes = 1 << 20

type matrixAPI struct {
	matrixService MatrixService
	log           *zap.Logger
}

func New(matrixService MatrixService, log *zap.Logger) *matrixAPI {
	return &matrixAPI{
		matrixService: matrixService,
		log:           log,
	}
}

func (api *matrixAPI) Routes(group *helper.RouteGroup) {
	group.POST("/matrix", api.computeMatrix)
	group.GET("/optimizeRoute", api.optimizeRoute)
}

// computeMatrix
//
//	@Summary		compute the time & distance matrix between sources and targets with every matrix backend
//	@Tags			matrix
//	@Accept			json
//	@Produce		json
//	@Param			body	body		matrixRequest	true	"matrix request"
//	@Success		200		{object}	matrixResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/matrix [post]
func (api *matrixAPI) computeMatrix(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request matrixRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("invalid matrix request body: %w", err))
		return
	}
	if err := matrix.ValidateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.Iterations == 0 {
		request.Iterations = 1
	}

	req := request.toMatrixRequest()
	if err := req.Normalize(); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	report, err := api.matrixService.ComputeMatrix(req, request.Iterations, request.Optimize)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": newMatrixResponse(report)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// optimizeRoute
//
//	@Summary		visiting order of the locations minimizing total travel time, starting at the first location
//	@Tags			matrix
//	@Produce		json
//	@Param			locations	query		string	true	"lat,lon pairs separated by |"
//	@Param			costing		query		string	false	"auto, bicycle or pedestrian"
//	@Param			open		query		bool	false	"open path instead of a closed tour"
//	@Success		200			{object}	tourResponse
//	@Failure		400			{object}	errorResponse
//	@Failure		404			{object}	errorResponse
//	@Failure		500			{object}	errorResponse
//	@Router			/optimizeRoute [get]
func (api *matrixAPI) optimizeRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request optimizeRouteRequest
		err     error
	)

	query := r.URL.Query()
	request.Locations, err = parseLocations(query.Get("locations"))
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.Costing = query.Get("costing")
	if request.Costing == "" {
		request.Costing = "auto"
	}
	if open := query.Get("open"); open != "" {
		request.Open, err = strconv.ParseBool(open)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("open must be a valid bool"))
			return
		}
	}

	if err := matrix.ValidateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	tour, err := api.matrixService.OptimizeRoute(request.Locations, request.Costing, request.Open)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": newTourResponse(tour)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// parseLocations. "lat,lon|lat,lon|..."
func parseLocations(s string) ([]matrix.Location, error) {
	if s == "" {
		return nil, errors.New("locations is required")
	}
	pairs := strings.Split(s, "|")
	locs := make([]matrix.Location, 0, len(pairs))
	for i, pair := range pairs {
		latLon := strings.Split(pair, ",")
		if len(latLon) != 2 {
			return nil, fmt.Errorf("location %d must be lat,lon", i)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latLon[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("latitude of location %d must be a valid float", i)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(latLon[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("longitude of location %d must be a valid float", i)
		}
		locs = append(locs, matrix.NewLocation(lat, lon))
	}
	return locs, nil
}
