// Package result contains results that are used to write out API responses.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body sent for every JSON error result.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// internalFormat splits the optional internal message arguments given to the
// result constructors into a format string and its args, using defMsg if none
// were given.
func internalFormat(defMsg string, internalMsg []interface{}) (string, []interface{}) {
	if len(internalMsg) < 1 {
		return defMsg, nil
	}
	return internalMsg[0].(string), internalMsg[1:]
}

// OK returns a Result containing an HTTP-200 along with a more detailed
// message (if desired; if none is provided it defaults to a generic one) that
// is not displayed to the user.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	f, args := internalFormat("OK", internalMsg)
	return Response(http.StatusOK, respObj, f, args...)
}

// NoContent returns a Result containing an HTTP-204 along with a more detailed
// message (if desired; if none is provided it defaults to a generic one) that
// is not displayed to the user.
func NoContent(internalMsg ...interface{}) Result {
	f, args := internalFormat("no content", internalMsg)
	return Response(http.StatusNoContent, nil, f, args...)
}

// Created returns a Result containing an HTTP-201 along with a more detailed
// message (if desired; if none is provided it defaults to a generic one) that
// is not displayed to the user.
func Created(respObj interface{}, internalMsg ...interface{}) Result {
	f, args := internalFormat("created", internalMsg)
	return Response(http.StatusCreated, respObj, f, args...)
}

// Conflict returns a Result containing an HTTP-409 along with a more detailed
// message (if desired; if none is provided it defaults to a generic one) that
// is not displayed to the user.
func Conflict(userMsg string, internalMsg ...interface{}) Result {
	f, args := internalFormat("conflict", internalMsg)
	return Err(http.StatusConflict, userMsg, f, args...)
}

// BadRequest returns a Result containing an HTTP-400 along with a more
// detailed message (if desired; if none is provided it defaults to a generic
// one) that is not displayed to the user.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	f, args := internalFormat("bad request", internalMsg)
	return Err(http.StatusBadRequest, userMsg, f, args...)
}

// MethodNotAllowed returns a Result containing an HTTP-405 along with a more
// detailed message (if desired; if none is provided it defaults to a generic
// one) that is not displayed to the user.
func MethodNotAllowed(req *http.Request, internalMsg ...interface{}) Result {
	f, args := internalFormat("method not allowed", internalMsg)
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return Err(http.StatusMethodNotAllowed, userMsg, f, args...)
}

// NotFound returns a Result containing an HTTP-404 response along with a more
// detailed message (if desired; if none is provided it defaults to a generic
// one) that is not displayed to the user.
func NotFound(internalMsg ...interface{}) Result {
	f, args := internalFormat("not found", internalMsg)
	return Err(http.StatusNotFound, "The requested resource was not found", f, args...)
}

// Forbidden returns a Result containing an HTTP-403 response. internalMsg is
// a detailed error message (if desired; if none is provided it defaults to a
// generic one) that is not displayed to the user.
func Forbidden(internalMsg ...interface{}) Result {
	f, args := internalFormat("forbidden", internalMsg)
	return Err(http.StatusForbidden, "You don't have permission to do that", f, args...)
}

// ForbiddenMsg is Forbidden with a user message other than the generic one.
func ForbiddenMsg(userMsg string, internalMsg ...interface{}) Result {
	f, args := internalFormat("forbidden", internalMsg)
	return Err(http.StatusForbidden, userMsg, f, args...)
}

// Unauthorized returns a Result containing an HTTP-401 response along with
// the proper WWW-Authenticate header. internalMsg is a detailed error message
// (if desired; if none is provided it defaults to a generic one) that is not
// displayed to the user.
func Unauthorized(userMsg string, internalMsg ...interface{}) Result {
	f, args := internalFormat("unauthorized", internalMsg)

	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}

	return Err(http.StatusUnauthorized, userMsg, f, args...).
		WithHeader("WWW-Authenticate", `Bearer realm="CommandBook server", charset="utf-8"`)
}

// InternalServerError returns a Result containing an HTTP-500 response along
// with a more detailed message that is not displayed to the user. If
// internalMsg is provided the first argument must be a string that is the
// format string and any subsequent args are passed to Sprintf with the first
// as the format string.
func InternalServerError(internalMsg ...interface{}) Result {
	f, args := internalFormat("internal server error", internalMsg)
	return Err(http.StatusInternalServerError, "An internal server error occurred", f, args...)
}

// Response creates a non-error Result. If status is http.StatusNoContent,
// respObj will not be read and may be nil. Otherwise, respObj MUST NOT be nil.
// If additional values are provided they are given to internalMsg as a format
// string.
func Response(status int, respObj interface{}, internalMsg string, v ...interface{}) Result {
	msg := fmt.Sprintf(internalMsg, v...)
	return Result{
		IsJSON:      true,
		IsErr:       false,
		Status:      status,
		InternalMsg: msg,
		resp:        respObj,
	}
}

// Err creates an error Result whose body is an ErrorResponse. If additional
// values are provided they are given to internalMsg as a format string.
func Err(status int, userMsg, internalMsg string, v ...interface{}) Result {
	msg := fmt.Sprintf(internalMsg, v...)
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: msg,
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// Redirection creates a Result that permanently redirects the client to uri.
func Redirection(uri string) Result {
	msg := fmt.Sprintf("redirect -> %s", uri)
	return Result{
		Status:      http.StatusPermanentRedirect,
		InternalMsg: msg,
		redir:       uri,
	}
}

// TextErr is like Err but it avoids JSON encoding of any kind and writes the
// output as plain text. If additional values are provided they are given to
// internalMsg as a format string.
func TextErr(status int, userMsg, internalMsg string, v ...interface{}) Result {
	msg := fmt.Sprintf(internalMsg, v...)
	return Result{
		IsJSON:      false,
		IsErr:       true,
		Status:      status,
		InternalMsg: msg,
		resp:        userMsg,
	}
}

// Result is the outcome of an endpoint, ready to be written to the client.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp  interface{}
	redir string // only used for redirects
	hdrs  [][2]string

	// set by calling PrepareMarshaledResponse.
	respJSONBytes []byte
}

// WithHeader returns a copy of r that also sets the header name to val when
// written.
func (r Result) WithHeader(name, val string) Result {
	erCopy := Result{
		IsErr:       r.IsErr,
		IsJSON:      r.IsJSON,
		Status:      r.Status,
		InternalMsg: r.InternalMsg,
		resp:        r.resp,
		redir:       r.redir,
	}

	erCopy.hdrs = make([][2]string, len(r.hdrs), len(r.hdrs)+1)
	copy(erCopy.hdrs, r.hdrs)
	erCopy.hdrs = append(erCopy.hdrs, [2]string{name, val})
	return erCopy
}

// PrepareMarshaledResponse sets the respJSONBytes to the marshaled version of
// the response if required. If required, and there is a problem marshaling, an
// error is returned. If not required, nil error is always returned.
//
// If PrepareMarshaledResponse has been successfully called with a non-nil
// returned error at least once for r, calling this method again has no effect
// and will return a nil error.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}

	if r.IsJSON && r.Status != http.StatusNoContent && r.redir == "" {
		var err error
		r.respJSONBytes, err = json.Marshal(r.resp)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteResponse writes r to w as the response to req. No body is written for
// HEAD requests.
func (r Result) WriteResponse(w http.ResponseWriter, req *http.Request) {
	// if this hasn't been properly created, panic
	if r.Status == 0 {
		panic("result not populated")
	}

	err := r.PrepareMarshaledResponse()
	if err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	var respBytes []byte

	if r.IsJSON {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if r.redir == "" {
			respBytes = r.respJSONBytes
		}
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if r.Status != http.StatusNoContent && r.redir == "" {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}

	if r.redir != "" {
		w.Header().Set("Location", r.redir)
	}

	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)

	if r.Status != http.StatusNoContent && req.Method != http.MethodHead {
		w.Write(respBytes)
	}
}
