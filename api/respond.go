package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/middleware"
)

const maxBodySize = 1 << 20

func jsonResponse(writer http.ResponseWriter, status int, v interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(v)
}

func textResponse(writer http.ResponseWriter, status int, text string) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.WriteHeader(status)
	writer.Write([]byte(text))
}

func decodeBody(writer http.ResponseWriter, request *http.Request, v interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodySize)
	if err := json.NewDecoder(request.Body).Decode(v); err != nil {
		return &Error{Kind: KindValidation, Message: errBadBody.Message, Err: err}
	}
	return nil
}

// fail answers request with the client-facing form of err. Anything that
// is not an *Error is an internal failure: it is logged and the client only
// sees a generic message.
func (api *API) fail(writer http.ResponseWriter, request *http.Request, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = &Error{Kind: KindInternal, Err: err}
	}
	if apiErr.Kind == KindInternal {
		api.log.Printf("[%s] %s %s: %v", middleware.GetReqID(request.Context()), request.Method, request.URL.Path, err)
	} else {
		api.log.Debugf("[%s] %s %s: %v", middleware.GetReqID(request.Context()), request.Method, request.URL.Path, err)
	}
	textResponse(writer, apiErr.Kind.Status(), apiErr.message())
}
