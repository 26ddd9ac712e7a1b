package domain

import "errors"

// ErrMalformedUpdate обновление без обязательной структуры message/chat
var ErrMalformedUpdate = errors.New("malformed update: message structure is missing")

// ErrDuplicateUpdate обновление уже обработано (повторная доставка webhook)
var ErrDuplicateUpdate = errors.New("duplicate update")
