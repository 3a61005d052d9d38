package event_test

import (
	"agenda/config"
	"agenda/infras/kafka/mocks"
	"agenda/infras/metrics"
	otelMocks "agenda/infras/otel/mocks"
	"agenda/internal/domains/schedule/model/dto"
	"agenda/internal/handlers/event"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)

	return string(body)
}

func TestHandle(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	handler := event.New(nil, m, &config.Config{}, otelMocks.NewOtel())

	raw, err := json.Marshal(dto.Event{EventID: "e-1", Type: dto.EventTypeBooked, ScheduleID: 12, DoctorID: 4})
	require.NoError(t, err)

	handler.Handle(context.Background(), kafkaGo.Message{Key: []byte("12"), Value: raw})
	handler.Handle(context.Background(), kafkaGo.Message{Key: []byte("13"), Value: []byte("{not json")})

	body := scrape(t, m)

	assert.Contains(t, body, `agenda_events_schedule_total{direction="consumed",status="ok",type="schedule.booked"} 1`)
	assert.Contains(t, body, `agenda_events_schedule_total{direction="consumed",status="invalid",type="unknown"} 1`)
}

func TestStart(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		cfg := &config.Config{}
		cfg.Kafka.ConsumerGroup = "agenda-audit"

		handler := event.New(client, nil, cfg, otelMocks.NewOtel())
		handler.Start(context.Background())
	})

	t.Run("consumes the schedule topic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		cfg := &config.Config{}
		cfg.Kafka.Enable = true
		cfg.Kafka.ConsumerGroup = "agenda-audit"
		cfg.Kafka.Topic = "agenda.schedules"

		started := make(chan struct{})

		client.EXPECT().
			Consume(gomock.Any(), "agenda-audit", "agenda.schedules", gomock.Any()).
			Do(func(_ context.Context, _, _ string, _ func(context.Context, kafkaGo.Message)) {
				close(started)
			})

		handler := event.New(client, nil, cfg, otelMocks.NewOtel())
		handler.Start(context.Background())

		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("consumer was not started")
		}
	})
}
