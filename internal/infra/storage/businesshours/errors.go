package businesshours

import "errors"

var (
	// ErrBusinessHoursNotFound возвращается, когда для дня недели нет строки расписания
	ErrBusinessHoursNotFound = errors.New("businesshours.repository: business hours not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("businesshours.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("businesshours.repository: failed to scan row")
)
