package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyRoundsHalfUp(t *testing.T) {
	m, err := NewMoneyFromString("10.005")
	require.NoError(t, err)
	assert.Equal(t, "10.01", m.String())

	m, err = NewMoneyFromString("10.004")
	require.NoError(t, err)
	assert.Equal(t, "10.00", m.String())
}

func TestNewMoneyRejectsNegative(t *testing.T) {
	_, err := NewMoneyFromString("-1.00")
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestMoneyArithmetic(t *testing.T) {
	a := MustMoney("10.00")
	b := MustMoney("5.00")

	assert.Equal(t, "15.00", a.Add(b).String())
	assert.Equal(t, "20.00", a.MultiplyInt(2).String())
	assert.Equal(t, 1, a.Cmp(b))
	assert.True(t, a.Equal(MustMoney("10.00")))
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(MustMoney("25.00"))
	require.NoError(t, err)
	assert.Equal(t, `"25.00"`, string(raw))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"10.50"`), &m))
	assert.Equal(t, "10.50", m.String())

	err = json.Unmarshal([]byte(`"-3.00"`), &m)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}
