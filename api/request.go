package api

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/devportfolio/portfolio-backend/errs"
)

// maxBodySize caps request bodies at 1 MiB.
const maxBodySize = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checker is implemented by inputs with rules the validator tags cannot express.
type checker interface {
	Check() error
}

// parseID reads the {id} path parameter. ok is false when the value cannot
// be the id of any row, which callers treat as "not found".
func parseID(r *http.Request) (id uint, ok bool) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 || n > math.MaxInt32 {
		return 0, false
	}
	return uint(n), true
}

// decodeJSON reads a single JSON value into dst. A body that is empty
// decodes as {}; anything after the first value is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
			return errs.NewInvalidJSONError(errors.New("request body must contain a single JSON value"))
		}
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxBytesErr):
		return errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return errs.NewInvalidFieldError(typeErr.Field, "expected "+typeErr.Type.String())
	}
	return errs.NewInvalidJSONError(err)
}

// validateInput runs the validator tags, skipping the named struct fields,
// then any extra checks the input defines.
func validateInput(in any, except ...string) error {
	var err error
	if len(except) > 0 {
		err = validate.StructExcept(in, except...)
	} else {
		err = validate.Struct(in)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		if fe.Tag() == "required" {
			return errs.NewMissingRequiredFieldError(fe.Field())
		}
		return errs.NewInvalidFieldError(fe.Field(), "failed "+fe.Tag()+" rule")
	}
	if err != nil {
		return errs.NewInternalErrorWithCause("validation failed", err)
	}

	if c, ok := in.(checker); ok {
		return c.Check()
	}
	return nil
}
