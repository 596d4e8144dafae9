// Package queue delivers void notifications downstream over SQS FIFO or a
// Redis stream.
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/fatflowers/txledger/internal/repository"
)

// encode renders msg as {"TransactionID","Amount","Reason"} with the amount
// as a decimal string.
func encode(msg repository.VoidNotification) (string, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("encode void notification %s: %w", msg.TransactionID, err)
	}
	return string(b), nil
}
