package mq

import (
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONMessage(t *testing.T) {
	msg, err := NewJSONMessage("id-1", map[string]int{"bookingId": 5})
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "id-1", msg.MessageId)
	assert.False(t, msg.Timestamp.IsZero())

	var body map[string]int
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, 5, body["bookingId"])
}

func TestNewJSONMessage_MarshalError(t *testing.T) {
	_, err := NewJSONMessage("id-2", make(chan int))
	assert.Error(t, err)
}
