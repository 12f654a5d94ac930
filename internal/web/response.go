package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// outcomeFailed is reported for operations that ended in an error.
const outcomeFailed = "failed"

// OperationResponse is the body of every lifecycle endpoint.
type OperationResponse struct {
	Outcome string       `json:"outcome"`
	Message string       `json:"message"`
	Result  *capi.Result `json:"result,omitempty"`
}

// WriteJSONResponse writes data as JSON with the given status code.
func WriteJSONResponse(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// WriteErrorResponse writes a failed OperationResponse.
func WriteErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	WriteJSONResponse(w, OperationResponse{Outcome: outcomeFailed, Message: message}, statusCode)
}

// writeResult maps a finished operation to a response. A timed-out command
// may still converge, so it is reported as accepted rather than failed.
func writeResult(w http.ResponseWriter, result *capi.Result) {
	resp := OperationResponse{
		Outcome: string(result.Outcome),
		Result:  result,
	}

	switch result.Outcome {
	case capi.OutcomeConverged:
		resp.Message = convergedMessage(result)
		WriteJSONResponse(w, resp, http.StatusOK)
	case capi.OutcomeTimedOut:
		resp.Message = fmt.Sprintf("%s did not reach %s after %d checks (last observed %q); it may still converge",
			result.Target, result.Expected, result.Attempts, result.Observed)
		WriteJSONResponse(w, resp, http.StatusAccepted)
	default:
		resp.Message = fmt.Sprintf("%s %s ended as %s", result.Command, result.Target, result.Outcome)
		WriteJSONResponse(w, resp, http.StatusServiceUnavailable)
	}
}

func convergedMessage(result *capi.Result) string {
	if result.Expected == "" {
		return fmt.Sprintf("%s %s completed", result.Command, result.Target)
	}

	return fmt.Sprintf("%s is %s", result.Target, result.Expected)
}

// writeOperationError maps the error taxonomy onto HTTP status codes.
func writeOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, capi.ErrUnsupportedCommand):
		WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
	case capi.IsNotFound(err):
		WriteErrorResponse(w, err.Error(), http.StatusNotFound)
	case capi.IsAuthenticationError(err), capi.IsProtocolError(err):
		WriteErrorResponse(w, err.Error(), http.StatusBadGateway)
	default:
		WriteErrorResponse(w, err.Error(), http.StatusInternalServerError)
	}
}
