package schema

var messages = map[string]string{
	"name.required":          "El nombre es requerido",
	"name.notblank":          "El nombre es requerido",
	"phone.required":         "El teléfono es requerido",
	"phone.digits":           "Solo se permiten números",
	"phone.min":              "Mínimo 7 dígitos",
	"phone.max":              "Máximo 15 dígitos",
	"phone.int":              "El teléfono debe ser un número entero",
	"phone.gt":               "El teléfono debe ser un número positivo",
	"phone.lte":              "El teléfono debe tener máximo 9 dígitos",
	"code.required":          "El código es requerido",
	"code.registration_code": "Código de registro inválido",
}

var fieldMessages = map[string]string{
	"email":           "Email inválido",
	"participantType": "Seleccione un tipo de participante válido",
	"attendanceDays":  "Días de asistencia inválidos",
	"paymentMethod":   "Método de pago inválido",
}

func message(field, tag string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	if m, ok := fieldMessages[field]; ok {
		return m
	}
	return "Valor inválido"
}
