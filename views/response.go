package views

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Response is the invocation result returned to the platform. Body holds a
// ViewsBody on success and the JSON encoding of an ErrorBody on failure.
type Response struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body"`
}

type ViewsBody struct {
	Views int64 `json:"views"`
}

type ErrorBody struct {
	ErrorMessage string `json:"errorMessage"`
}

func Respond(result Result) Response {
	if result.Ok() {
		return Response{StatusCode: http.StatusOK, Body: ViewsBody{Views: result.Views}}
	}

	return Response{StatusCode: http.StatusInternalServerError, Body: EncodeError(result.Failure.Error())}
}

func EncodeError(message string) string {
	encoded, err := json.Marshal(ErrorBody{ErrorMessage: message})
	if err != nil {
		return `{"errorMessage":"failed to encode error"}`
	}

	return string(encoded)
}

// EncodedBody returns the body as JSON text, leaving already encoded bodies
// untouched.
func (r Response) EncodedBody() (string, error) {
	if body, ok := r.Body.(string); ok {
		return body, nil
	}

	encoded, err := json.Marshal(r.Body)
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}
