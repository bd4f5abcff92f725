package groupapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/pairgroups/internal/grouping"
)

var errTrailingData = errors.New("trailing data after JSON document")

// payloadValidate checks request payloads before they reach the service.
var payloadValidate = validator.New(validator.WithRequiredStructEnabled())

// groupPayload is the wire form of one grouping request. Differences and
// Matrix are alternative ways to state the same relation.
type groupPayload struct {
	Items       []string    `json:"items" validate:"required,min=1,dive,required"`
	Differences [][]string  `json:"differences,omitempty" validate:"omitempty,dive,len=2,dive,required"`
	Matrix      [][]bool    `json:"matrix,omitempty"`
}

// toRequest converts a validated payload; every difference entry has exactly
// two names by then.
func (p *groupPayload) toRequest() *grouping.Request {
	var diffs [][2]string
	if p.Differences != nil {
		diffs = make([][2]string, len(p.Differences))
		for i, d := range p.Differences {
			copy(diffs[i][:], d)
		}
	}
	return &grouping.Request{
		Items:       p.Items,
		Differences: diffs,
		Matrix:      p.Matrix,
	}
}

type batchPayload struct {
	Requests []groupPayload `json:"requests" validate:"required,min=1"`
}

type batchResult struct {
	Result *grouping.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
	Code   string           `json:"code,omitempty"`
}

type batchResponse struct {
	Results []batchResult `json:"results"`
}

func (a *API) handleCompute(w http.ResponseWriter, r *http.Request) {
	var p groupPayload
	if !a.decode(w, r, &p) {
		return
	}
	if err := payloadValidate.Struct(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validationMessage(err), Code: string(grouping.OutcomeInvalid)})
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.Int("pairgroups.items", len(p.Items)))

	res, err := a.svc.Compute(r.Context(), p.toRequest())
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	span.SetAttributes(
		attribute.String("pairgroups.result.id", res.ID),
		attribute.Int("pairgroups.groups", len(res.Groups)),
	)

	writeJSON(w, http.StatusOK, res)
}

func (a *API) handleComputeBatch(w http.ResponseWriter, r *http.Request) {
	var p batchPayload
	if !a.decode(w, r, &p) {
		return
	}
	if err := payloadValidate.Struct(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validationMessage(err), Code: string(grouping.OutcomeInvalid)})
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.Int("pairgroups.batch.size", len(p.Requests)))

	// entries failing payload validation are answered directly and never reach the service
	results := make([]batchResult, len(p.Requests))
	reqs := make([]*grouping.Request, 0, len(p.Requests))
	pos := make([]int, 0, len(p.Requests))
	for i := range p.Requests {
		if err := payloadValidate.Struct(&p.Requests[i]); err != nil {
			results[i] = batchResult{Error: validationMessage(err), Code: string(grouping.OutcomeInvalid)}
			continue
		}
		reqs = append(reqs, p.Requests[i].toRequest())
		pos = append(pos, i)
	}

	if len(reqs) > 0 {
		entries, err := a.svc.ComputeBatch(r.Context(), reqs)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		for k, e := range entries {
			i := pos[k]
			if e.Err != nil {
				results[i] = batchResult{Error: e.Err.Error(), Code: string(grouping.OutcomeOf(e.Err))}
				continue
			}
			results[i] = batchResult{Result: e.Result}
		}
	}

	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

// decode reads exactly one JSON document into v, answering the request itself
// on failure. Anything but whitespace after the document is rejected.
func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err == nil {
		if _, tokErr := dec.Token(); !errors.Is(tokErr, io.EOF) {
			err = tokErr
			if err == nil {
				err = errTrailingData
			}
		}
	}
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			http.Error(w, `{"error":"payload too large"}`, http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return false
	}
	return true
}

// validationMessage flattens validator errors into one line naming each
// failing field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Namespace()+" failed "+fe.Tag())
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}
