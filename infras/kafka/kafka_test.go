package kafka_test

import (
	"agenda/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookedEvent struct {
	ScheduleID int64  `json:"schedule_id"`
	Type       string `json:"type"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "42", Value: bookedEvent{ScheduleID: 42, Type: "schedule.booked"}}

	out, err := msg.ToKafkaMessage("agenda.schedules")
	require.NoError(t, err)

	assert.Equal(t, "agenda.schedules", out.Topic)
	assert.Equal(t, []byte("42"), out.Key)
	assert.JSONEq(t, `{"schedule_id":42,"type":"schedule.booked"}`, string(out.Value))
}

func TestMessage_ToKafkaMessageMarshalError(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage("topic")
	require.Error(t, err)
}

func TestDecodeKafkaMessage(t *testing.T) {
	event, err := kafka.DecodeKafkaMessage[bookedEvent](kafkaGo.Message{Value: []byte(`{"schedule_id":7,"type":"schedule.released"}`)})
	require.NoError(t, err)
	assert.Equal(t, bookedEvent{ScheduleID: 7, Type: "schedule.released"}, event)

	_, err = kafka.DecodeKafkaMessage[bookedEvent](kafkaGo.Message{Value: []byte(`nope`)})
	require.Error(t, err)
}
