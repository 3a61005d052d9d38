package service

const (
	msgNotUnderstood   = "Não entendi sua solicitação."
	msgProcessingError = "Desculpe, houve um erro ao processar sua solicitação. (%s)"
	msgApology         = "Desculpe, houve um erro ao processar sua solicitação. Tente novamente."
	reasonNoQuery      = "queryResult ausente"

	msgNoDoctors      = "Nenhum médico cadastrado."
	msgDoctorListHead = "Perfeito! Aqui estão os médicos disponíveis. Digite o número correspondente para escolher:\n\n"
	msgDoctorLine     = "%d. %s - %s"
	msgAskDoctor      = "Informe o número do médico na lista."
	msgInvalidDoctor  = "Médico inválido. Por favor, escolha um número da lista."

	msgNoSlots       = "Nenhum horário disponível para hoje."
	msgSlotListHead  = "Aqui estão os horários disponíveis para hoje, escolha um número para agendar:\n\n"
	msgSlotLine      = "%d - %s"
	msgSlotsError    = "Erro ao buscar os horários disponíveis. Tente novamente."
	msgNoDoctorData  = "Não foi possível encontrar os dados do médico. Por favor, liste os médicos novamente."
	msgInvalidSlot   = "Horário inválido. Por favor, escolha um número da lista."
	msgChoiceError   = "Erro ao processar sua escolha. Tente novamente."
	msgSlotChosen    = "Perfeito! Você escolheu o horário %s.\n\nAgora, por favor, me informe seu nome completo:"
	msgNoBookingData = "Não foi possível recuperar os dados do agendamento. Por favor, liste os médicos novamente."

	msgAskName      = "Por favor, informe seu nome completo."
	msgNameAccepted = "Obrigado, %s! Agora, por favor, me informe seu telefone para contato:"
	msgAskPhone     = "Por favor, informe seu telefone."
	msgConfirmation = "Perfeito! Vamos confirmar seu agendamento:\n\n📅 Data: %s\n⏰ Horário: %s\n👤 Nome: %s\n📞 Telefone: %s\n\n" +
		"Confirma o agendamento? (Digite \"sim\" para confirmar)"

	msgIncompleteDraft = "Dados incompletos para confirmar o agendamento. Por favor, comece novamente."
	msgBooked          = "✅ Agendamento confirmado com sucesso!\n\n📅 Data: %s\n⏰ Horário: %s\n👤 Paciente: %s\n📞 Telefone: %s\n\n" +
		"🎫 Código do agendamento: %d.\n\nAté logo!"
	msgBookingFailed = "Desculpe, houve um erro ao confirmar o agendamento: %s. Por favor, tente novamente."

	msgAskCancelID  = "Por favor, informe o ID do agendamento que deseja cancelar."
	msgCancelled    = "✅ Agendamento cancelado com sucesso! O horário foi liberado e está disponível novamente."
	msgCancelFailed = "Erro ao cancelar o agendamento: %s. Tente novamente."
)

// Parameter accessors, evaluated in order: the first non-empty value wins.
var (
	patientNameKeys  = []string{"any", "patient_name", "person.name"}
	patientPhoneKeys = []string{"phone-number", "phone_number", "any"}
	cancelIDKeys     = []string{"number", "scheduleId", "any"}
)

const selectorKey = "number"
