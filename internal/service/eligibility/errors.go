package eligibility

import "errors"

// ErrInternal возвращается при ошибках хранилища
var ErrInternal = errors.New("eligibility.service: internal error")
