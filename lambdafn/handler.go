// Package lambdafn exposes the line processor as an AWS Lambda Function URL.
//
// The request body carries problem lines (text, or JSON lines with
// ?format=json); the response body carries one answer per line. Malformed
// input maps to 400, everything else that fails to 500.
package lambdafn

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/katalvlaran/packer/lineproc"
)

var textHeader = map[string]string{"Content-Type": "text/plain; charset=utf-8"}

var jsonHeader = map[string]string{"Content-Type": "application/json"}

// Handler answers Function URL requests.
type Handler struct {
	opts []lineproc.Option
	log  *slog.Logger
}

// New builds a Handler; opts apply to every request before the per-request
// format. logger may be nil.
func New(logger *slog.Logger, opts ...lineproc.Option) *Handler {
	if logger == nil {
		logger = lineproc.NoopLogger()
	}

	return &Handler{opts: opts, log: logger}
}

// Handle processes one request.
func (h *Handler) Handle(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}

	format, err := lineproc.ParseFormat(event.QueryStringParameters["format"])
	if err != nil {
		return errResp(http.StatusBadRequest, err.Error())
	}

	opts := append(append([]lineproc.Option(nil), h.opts...),
		lineproc.WithFormat(format), lineproc.WithLogger(h.log))
	p, err := lineproc.New(opts...)
	if err != nil {
		return errResp(http.StatusInternalServerError, err.Error())
	}

	var out strings.Builder
	if _, err = p.Process(ctx, strings.NewReader(body), &out); err != nil {
		return errResp(statusFor(err), err.Error())
	}

	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK, Headers: textHeader, Body: out.String()}, nil
}

// statusFor maps a run failure to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, lineproc.ErrMalformedItem),
		errors.Is(err, lineproc.ErrMalformedCapacity),
		errors.Is(err, lineproc.ErrLimitExceeded),
		errors.Is(err, lineproc.ErrInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})

	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}
