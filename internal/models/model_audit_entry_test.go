package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestAuditStatus_CanTransitionTo(t *testing.T) {
	require.True(t, AuditStatusPending.CanTransitionTo(AuditStatusSuccess))
	require.True(t, AuditStatusPending.CanTransitionTo(AuditStatusFailed))
	require.False(t, AuditStatusPending.CanTransitionTo(AuditStatusPending))
	require.False(t, AuditStatusSuccess.CanTransitionTo(AuditStatusFailed))
	require.False(t, AuditStatusFailed.CanTransitionTo(AuditStatusPending))
}

func TestAuditActionFor(t *testing.T) {
	a, ok := AuditActionFor("charge")
	require.True(t, ok)
	require.Equal(t, AuditActionSale, a)

	a, ok = AuditActionFor(TransactionTypeReversal)
	require.True(t, ok)
	require.Equal(t, AuditActionReversal, a)

	_, ok = AuditActionFor("TRANSFER")
	require.False(t, ok)
}

func TestAuditEntry_CloneCopiesMetadata(t *testing.T) {
	e := &AuditEntry{AuditID: "a1", Metadata: datatypes.JSONMap{MetadataReason: "typo"}}
	c := e.Clone()
	c.Metadata[MetadataReason] = "changed"
	require.Equal(t, "typo", e.Metadata[MetadataReason])
	require.Equal(t, AuditStatusSuccess, ParseAuditStatus(" success "))
}
