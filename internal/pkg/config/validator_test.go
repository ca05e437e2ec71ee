package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(30*time.Second, time.Second, time.Minute))
	assert.NoError(t, ValidateDuration(time.Second, time.Second, time.Minute))
	assert.NoError(t, ValidateDuration(time.Minute, time.Second, time.Minute))

	assert.Error(t, ValidateDuration(time.Millisecond, time.Second, time.Minute))
	assert.Error(t, ValidateDuration(2*time.Minute, time.Second, time.Minute))
	assert.Error(t, ValidateDuration(time.Second, time.Minute, time.Second))
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(5, 1, 10))
	assert.NoError(t, ValidateIntRange(1, 1, 10))
	assert.NoError(t, ValidateIntRange(10, 1, 10))

	assert.Error(t, ValidateIntRange(0, 1, 10))
	assert.Error(t, ValidateIntRange(11, 1, 10))
	assert.Error(t, ValidateIntRange(5, 10, 1))
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Nanosecond))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}
