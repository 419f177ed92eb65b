package httpx

import (
	"errors"
	"io"
	"log"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"bookshelf/internal/apperror"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes env with the given status code.
func JSON(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("encode response failed: error=%v", err)
	}
}

// Success writes a success envelope.
func Success(w http.ResponseWriter, statusCode int, message string, data any) {
	JSON(w, statusCode, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Fail writes a fail envelope with message.
func Fail(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, Envelope{Status: StatusFail, Message: message})
}

// Error writes the fail envelope for err. Coded errors keep their status and
// message; anything else is logged and reported as a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		if appErr.Code == apperror.CodeInternal {
			log.Printf("internal error: request_id=%s error=%v", RequestIDFrom(r), err)
		}
		Fail(w, appErr.HTTPStatus(), appErr.Message)
		return
	}

	log.Printf("unhandled error: request_id=%s error=%v", RequestIDFrom(r), err)
	Fail(w, http.StatusInternalServerError, "internal server error")
}

// ErrInvalidPayload is returned by DecodeJSON for bodies that are not a JSON
// object of the expected shape.
var ErrInvalidPayload = errors.New("invalid request payload")

// DecodeJSON reads the request body into dst. An empty body decodes as {}.
func DecodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	return nil
}

// BadPayload writes the response for a DecodeJSON failure.
func BadPayload(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		Fail(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	Fail(w, http.StatusBadRequest, ErrInvalidPayload.Error())
}
