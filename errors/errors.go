package errors

import (
	"errors"
	"net/http"
)

var (
	NotFound            = HttpError{http.StatusNotFound, errors.New("not found")}
	BadRequest          = HttpError{http.StatusBadRequest, errors.New("bad request")}
	Unauthorized        = HttpError{http.StatusUnauthorized, errors.New("unauthorized")}
	UnprocessableEntity = HttpError{http.StatusUnprocessableEntity, errors.New("unprocessable entity")}
	BadGateway          = HttpError{http.StatusBadGateway, errors.New("bad gateway")}
	InternalServerError = HttpError{http.StatusInternalServerError, errors.New("internal server error")}
)

type HttpError struct {
	Code int
	Err  error
}

func (h HttpError) Unwrap() error {
	return h.Err
}

func (h HttpError) Error() string {
	return h.Err.Error()
}

// StatusCode returns the status of the first HttpError in the chain, or 500.
func StatusCode(err error) int {
	e := HttpError{}
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}
