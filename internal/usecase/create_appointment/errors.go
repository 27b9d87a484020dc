package create_appointment

import "errors"

var (
	// ErrEstablishmentNotFound возвращается, когда заведение не найдено
	ErrEstablishmentNotFound = errors.New("establishment not found")

	// ErrServiceNotFound возвращается, когда хотя бы одна из услуг не найдена в заведении
	ErrServiceNotFound = errors.New("service not found")

	// ErrStaffNotFound возвращается, когда сотрудник не работает в заведении
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrInvalidDate возвращается, когда дата записи в прошлом
	ErrInvalidDate = errors.New("invalid appointment date")

	// ErrTooLateToBook возвращается, когда до начала осталось меньше допустимого
	ErrTooLateToBook = errors.New("too late to book this time")

	// ErrOutsideBusinessHours возвращается, когда время не попадает в часы работы или приходится на обед
	ErrOutsideBusinessHours = errors.New("time is outside business hours")

	// ErrStaffUnavailable возвращается, когда сотрудник не работает в этот день или в это время
	ErrStaffUnavailable = errors.New("staff member is not available at this time")

	// ErrSlotNotAvailable возвращается, когда время уже занято
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")

	// errGuardUnavailable проверка конфликтов не выполнилась, решение остаётся за ограничением БД
	errGuardUnavailable = errors.New("conflict guard unavailable")
)
