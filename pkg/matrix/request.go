package matrix

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/costing"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
)

var ErrEmptyLocations = errors.New("matrix request needs at least one source and one target")

var (
	validate = validator.New()
	trans    ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
}

// MatrixRequest. matrix request body, either sources & targets or locations for both
type MatrixRequest struct {
	Locations      []Location                 `json:"locations,omitempty" validate:"omitempty,dive"`
	Sources        []Location                 `json:"sources,omitempty" validate:"omitempty,dive"`
	Targets        []Location                 `json:"targets,omitempty" validate:"omitempty,dive"`
	Costing        string                     `json:"costing" validate:"required,oneof=auto bicycle pedestrian"`
	CostingOptions map[string]costing.Options `json:"costing_options,omitempty" validate:"omitempty,dive"`
}

// ParseRequest. decode & validate a json matrix request
func ParseRequest(data []byte) (*MatrixRequest, error) {
	var req MatrixRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid matrix request json")
	}
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Normalize. use locations for missing sources/targets, then validate the request
func (r *MatrixRequest) Normalize() error {
	if len(r.Sources) == 0 {
		r.Sources = r.Locations
	}
	if len(r.Targets) == 0 {
		r.Targets = r.Locations
	}
	if err := ValidateStruct(r); err != nil {
		return err
	}
	if len(r.Sources) == 0 || len(r.Targets) == 0 {
		return util.WrapErrorf(ErrEmptyLocations, util.ErrBadParamInput, "invalid matrix request")
	}
	return nil
}

func (r *MatrixRequest) RequestOptions() costing.RequestOptions {
	return costing.RequestOptions{Costing: r.Costing, CostingOptions: r.CostingOptions}
}

// ValidateStruct. run struct validation, errors are translated to english messages
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	return util.WrapErrorf(err, util.ErrBadParamInput, "validation error: %v", ValidationMessages(err))
}

func ValidationMessages(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, fmt.Sprint(e.Translate(trans)))
	}
	return msgs
}
