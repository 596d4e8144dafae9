package transaction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResponseNormalizer maps a raw processor response onto a Signal.
type ResponseNormalizer interface {
	Normalize(processorResponse string) (Signal, error)
}

type ResponseNormalizerFunc func(processorResponse string) (Signal, error)

func (f ResponseNormalizerFunc) Normalize(processorResponse string) (Signal, error) {
	return f(processorResponse)
}

// StatusFieldNormalizer accepts either a bare signal ("success") or a JSON
// object carrying it in its "status" field, which is the shape of the
// simulated processor response built by ProcessPayment.
type StatusFieldNormalizer struct{}

func (StatusFieldNormalizer) Normalize(processorResponse string) (Signal, error) {
	raw := strings.TrimSpace(processorResponse)
	if strings.HasPrefix(raw, "{") {
		var body struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal([]byte(raw), &body); err != nil {
			return "", fmt.Errorf("%w: unreadable processor response: %v", ErrInvalidSignal, err)
		}
		raw = body.Status
	}
	sig, ok := ParseSignal(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSignal, raw)
	}
	return sig, nil
}
