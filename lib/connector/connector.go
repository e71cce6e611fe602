package connector

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Error is returned when server answered with error envelope or non 2xx code
type Error struct {
	Code    int
	Message string
	Path    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("request %s failed with code %d: %s", e.Path, e.Code, e.Message)
}

// StatusCode returns http code of failed request, 0 for transport errors
func StatusCode(err error) int {
	var connErr *Error
	if errors.As(err, &connErr) {
		return connErr.Code
	}
	return 0
}

// Receive executes request and unpacks the response envelope into T
func Receive[T any](r *resty.Request, path string, method string) (*T, error) {
	var result struct {
		OK       bool            `json:"ok"`
		Error    string          `json:"error,omitempty"`
		Response json.RawMessage `json:"response,omitempty"`
	}
	r.SetResult(&result)
	r.SetError(&result)
	resp, err := r.Execute(method, path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() || !result.OK {
		return nil, &Error{
			Code:    resp.StatusCode(),
			Message: result.Error,
			Path:    path,
		}
	}
	data := new(T)
	if len(result.Response) == 0 {
		return data, nil
	}
	if err = json.Unmarshal(result.Response, data); err != nil {
		return nil, fmt.Errorf("can not parse response of %s, error: %w", path, err)
	}
	return data, nil
}

func ReceiveEmpty(r *resty.Request, path string, method string) error {
	_, err := Receive[json.RawMessage](r, path, method)
	return err
}
