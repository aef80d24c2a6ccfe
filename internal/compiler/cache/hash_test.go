package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum_SumString(t *testing.T) {
	c := NewChecksum()

	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", c.SumString(""))
	assert.Len(t, c.SumString("hello world"), 64)
}

func TestChecksum_Deterministic(t *testing.T) {
	c := NewChecksum()
	payload := `{"lexicons":{"en":{"id":"en"}}}`

	assert.Equal(t, c.SumString(payload), c.SumString(payload))
}

func TestChecksum_DifferentInputsDiffer(t *testing.T) {
	c := NewChecksum()

	assert.NotEqual(t, c.SumString("a"), c.SumString("b"))
}
