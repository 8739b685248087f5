package config

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CHECKOUT_TEST_KEY", "value")

	assert.Equal(t, "value", GetEnv("CHECKOUT_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CHECKOUT_TEST_MISSING", "fallback"))
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "valid", value: "90s", want: 90 * time.Second},
		{name: "empty", value: "", want: time.Minute},
		{name: "malformed", value: "five minutes", want: time.Minute},
		{name: "negative", value: "-5s", want: time.Minute},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv("CHECKOUT_TEST_DURATION", testCase.value)
			assert.Equal(t, testCase.want, GetDuration("CHECKOUT_TEST_DURATION", time.Minute))
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "not-a-level")

	entry := NewLogger("checkout-svc")

	assert.Equal(t, "checkout-svc", entry.Data["service"])
	assert.Equal(t, "info", entry.Logger.GetLevel().String())
}

func TestGetFloat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{name: "valid", value: "12.5", want: 12.5},
		{name: "empty", value: "", want: 3},
		{name: "malformed", value: "ten", want: 3},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv("CHECKOUT_TEST_FLOAT", testCase.value)
			assert.Equal(t, testCase.want, GetFloat("CHECKOUT_TEST_FLOAT", 3))
		})
	}
}

func TestNewKafkaWriter_HashesKeys(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "broker:9092")

	writer := NewKafkaWriter("orders")

	assert.Equal(t, "orders", writer.Topic)
	assert.IsType(t, &kafka.Hash{}, writer.Balancer)
}
