package establishment

import "errors"

var (
	// ErrEstablishmentNotFound возвращается, когда заведение не найдено или неактивно
	ErrEstablishmentNotFound = errors.New("establishment.repository: establishment not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("establishment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("establishment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("establishment.repository: failed to scan row")
)
