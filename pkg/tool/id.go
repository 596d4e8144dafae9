package tool

import "github.com/google/uuid"

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// VoidTransactionID is the deterministic id of the void record derived from originalID.
// Re-submitting the same void lands on the same key.
func VoidTransactionID(originalID string) string {
	return originalID + "-VOID"
}
