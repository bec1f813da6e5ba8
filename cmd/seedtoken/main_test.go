package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewToken_KeepsGivenValue(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tok := newToken("  ABC123 ", "Banco Norte", now)

	assert.Equal(t, "ABC123", tok.Token)
	assert.Equal(t, "Banco Norte", tok.Description)
	assert.False(t, tok.Used)
	assert.Nil(t, tok.UsedBy)
	assert.Equal(t, now, tok.CreatedAt)
	assert.NotEmpty(t, tok.ID)
}

func TestNewToken_GeneratesRandomValue(t *testing.T) {
	a := newToken("", "", time.Now())
	b := newToken("", "", time.Now())

	assert.Len(t, a.Token, 12)
	assert.NotEqual(t, a.Token, b.Token)
}
