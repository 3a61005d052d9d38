package event

import (
	"agenda/config"
	"agenda/infras/kafka"
	"agenda/infras/metrics"
	"agenda/infras/otel"
	"agenda/internal/domains/schedule/model/dto"
	"agenda/shared/constant"
	"context"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	statusOK      = "ok"
	statusInvalid = "invalid"
	typeUnknown   = "unknown"
)

// Handler audits the schedule events published after every booking and release.
type Handler struct {
	kafka   kafka.Client
	metrics *metrics.Metrics
	cfg     *config.Config
	otel    otel.Otel
}

func New(kafka kafka.Client, metrics *metrics.Metrics, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		kafka:   kafka,
		metrics: metrics,
		cfg:     cfg,
		otel:    otel,
	}
}

// Start consumes the schedule topic until ctx is done. It returns immediately
// when events are disabled or no consumer group is configured.
func (handler *Handler) Start(ctx context.Context) {
	if !handler.cfg.Kafka.Enable || handler.cfg.Kafka.ConsumerGroup == "" || handler.kafka == nil {
		log.Info().Msg("Schedule event consumer disabled")

		return
	}

	log.Info().Str("topic", handler.cfg.Kafka.Topic).Str("group", handler.cfg.Kafka.ConsumerGroup).Msg("Starting schedule event consumer")

	go handler.kafka.Consume(ctx, handler.cfg.Kafka.ConsumerGroup, handler.cfg.Kafka.Topic, handler.Handle)
}

func (handler *Handler) Handle(ctx context.Context, message kafkaGo.Message) {
	_, scope := handler.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()

	event, err := kafka.DecodeKafkaMessage[dto.Event](message)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", string(message.Key)).Msg("failed to decode schedule event")

		handler.metrics.ObserveEvent(typeUnknown, metrics.DirectionConsumed, statusInvalid)

		return
	}

	scope.SetAttributes(map[string]any{
		"event.id":    event.EventID,
		"event.type":  event.Type,
		"schedule.id": event.ScheduleID,
	})

	log.Info().
		Str("event_id", event.EventID).
		Str("type", event.Type).
		Int64("schedule_id", event.ScheduleID).
		Int64("doctor_id", event.DoctorID).
		Str("date", event.Date).
		Str("time", event.Time).
		Time("occurred_at", event.OccurredAt).
		Msg("schedule event")

	handler.metrics.ObserveEvent(event.Type, metrics.DirectionConsumed, statusOK)
}
