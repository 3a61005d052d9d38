package webhook

import (
	"agenda/infras/otel"
	"agenda/internal/domains/dialogue/model/dto"
	"agenda/internal/domains/dialogue/service"
	"agenda/shared/constant"
	"agenda/shared/validator"
	"agenda/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dialogue
	otel    otel.Otel
}

func New(service service.Dialogue, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/webhook", handler.Fulfill)
}

// Fulfill answers one conversational turn of the booking dialogue.
// The platform expects a 200 for every turn, so failures are reported in the text.
// @Summary Dialogue fulfillment webhook
// @Tags Webhook
// @Accept json
// @Produce json
// @Param request body dto.WebhookRequest true "Webhook Request"
// @Success 200 {object} dto.WebhookResponse
// @Router /v1/webhook [post]
func (handler *Handler) Fulfill(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Fulfill")
	defer scope.End()

	req := dto.WebhookRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode webhook request")

		// answered by the dialogue as a turn without a query result
		req = dto.WebhookRequest{}
	}

	scope.SetAttribute("session", req.Session)

	response.WithRaw(writer, http.StatusOK, handler.service.Handle(ctx, req))
}
