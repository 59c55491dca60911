package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"seaside_restaurant/internal/apperror"

	"github.com/gin-gonic/gin"
)

// responder writes error bodies. Account endpoints answer {"error": ...};
// everything else also carries "success": false.
type responder struct {
	log         *slog.Logger
	withSuccess bool
}

func (r responder) body(message string) gin.H {
	if r.withSuccess {
		return gin.H{"success": false, "error": message}
	}
	return gin.H{"error": message}
}

func (r responder) abort(c *gin.Context, status int, message string) {
	c.JSON(status, r.body(message))
}

// fail maps err to a response. Typed errors keep their message; anything else
// is a 500 prefixed with action.
func (r responder) fail(c *gin.Context, err error, action string) {
	if appErr, ok := apperror.As(err); ok && appErr.Kind != apperror.Internal {
		r.abort(c, appErr.HTTPStatus(), appErr.Message)
		return
	}

	r.log.Error(action, "error", err, "path", c.FullPath(), "request_id", c.GetString("request_id"))
	r.abort(c, http.StatusInternalServerError, fmt.Sprintf("%s: %v", action, err))
}

// bind decodes the request body into dest, answering 400 with message when it
// is not valid JSON.
func (r responder) bind(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		r.abort(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// hasBody reports whether the request carries anything besides whitespace.
// The body is left readable.
func hasBody(c *gin.Context) bool {
	if c.Request.Body == nil {
		return false
	}
	raw, err := c.GetRawData()
	if err != nil {
		return false
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	return len(bytes.TrimSpace(raw)) > 0
}

// looseID accepts an identifier sent either as a JSON number or a string.
type looseID string

func (id *looseID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = looseID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = looseID(n.String())
	return nil
}

func (id looseID) String() string {
	return string(id)
}

// Uint parses the id as a positive integer.
func (id looseID) Uint() (uint, bool) {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil || n == 0 || n > uint64(^uint(0)) {
		return 0, false
	}
	return uint(n), true
}

func parseQueryID(raw string) (uint, bool) {
	return looseID(strings.TrimSpace(raw)).Uint()
}

func isoTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Int parses the id as a signed integer of any sign.
func (id looseID) Int() (int, bool) {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, false
	}
	return n, true
}
