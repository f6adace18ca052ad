package confirm_booking

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// contact нормализованные контактные данные клиента
type contact struct {
	name  string
	email string
	phone string
	note  *string
}

// validateRequest проверяет запрос и нормализует контакты.
// Телефон приводится к E.164, если его удается разобрать для региона по умолчанию
func validateRequest(req *Request, defaultRegion string) (*contact, error) {
	fields := make(map[string]string)

	if req.HoldID == uuid.Nil {
		fields["holdId"] = "is required"
	}

	name := strings.TrimSpace(req.CustomerName)
	switch n := utf8.RuneCountInString(name); {
	case n < domain.MinCustomerNameLength:
		fields["customerName"] = "must be at least 2 characters"
	case n > domain.MaxCustomerNameLength:
		fields["customerName"] = "is too long"
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		fields["customerEmail"] = "must be a valid email address"
	}

	phone := strings.TrimSpace(req.CustomerPhone)
	if utf8.RuneCountInString(phone) < domain.MinCustomerPhoneLength {
		fields["customerPhone"] = "must be at least 9 characters"
	}

	var note *string
	if req.Note != nil {
		trimmed := strings.TrimSpace(*req.Note)
		if utf8.RuneCountInString(trimmed) > domain.MaxNoteLength {
			fields["note"] = "is too long"
		}
		if trimmed != "" {
			note = ptr.Ptr(trimmed)
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return &contact{
		name:  name,
		email: email,
		phone: normalizePhone(phone, defaultRegion),
		note:  note,
	}, nil
}

// normalizePhone возвращает номер в формате E.164 или исходную строку
func normalizePhone(phone, region string) string {
	num, err := phonenumbers.Parse(phone, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return phone
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
