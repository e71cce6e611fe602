package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"hackathon_system/lib/connector"
	"hackathon_system/registration"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// requestError is returned from inside transactions to abort them with given status
type requestError struct {
	code    int
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func newRequestError(code int, format string, values ...any) error {
	return &requestError{code: code, message: fmt.Sprintf(format, values...)}
}

func badRequest(format string, values ...any) error {
	return newRequestError(http.StatusBadRequest, format, values...)
}

func forbidden(format string, values ...any) error {
	return newRequestError(http.StatusForbidden, format, values...)
}

func notFound(format string, values ...any) error {
	return newRequestError(http.StatusNotFound, format, values...)
}

func conflict(format string, values ...any) error {
	return newRequestError(http.StatusConflict, format, values...)
}

func errorCode(err error) int {
	var reqErr *requestError
	var fullErr *registration.TeamFullError
	var memberErr *registration.MemberRegisteredError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.code
	case errors.As(err, &fullErr),
		errors.Is(err, registration.ErrTeamNameRequired),
		errors.Is(err, registration.ErrAlreadyMember),
		errors.Is(err, registration.ErrRemoveCaptain),
		errors.Is(err, registration.ErrNotConfirmed),
		errors.Is(err, registration.ErrEventCancelled),
		errors.Is(err, registration.ErrDeadlinePassed):
		return http.StatusBadRequest
	case errors.As(err, &memberErr),
		errors.Is(err, registration.ErrAlreadyRegistered),
		errors.Is(err, registration.ErrEventFull),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respError responds with status matching err, unknown errors are logged and hidden
func respError(c *gin.Context, err error, format string, values ...any) {
	code := errorCode(err)
	if code == http.StatusInternalServerError {
		connector.RespServerError(c, format+", error: %v", append(values, err)...)
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		connector.RespErr(c, code, "Not found")
		return
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		connector.RespErr(c, code, "Already exists")
		return
	}
	connector.RespErr(c, code, "%s", err.Error())
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("Can not parse %s %s", name, c.Param(name))
	}
	return uint(id), nil
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := parseUintParam(c, name)
	if err != nil {
		connector.RespErr(c, http.StatusBadRequest, "%s", err.Error())
		return 0, false
	}
	return id, true
}
