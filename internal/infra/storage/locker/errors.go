package locker

import "errors"

var (
	// ErrLockerNotFound возвращается, когда запись не найдена
	ErrLockerNotFound = errors.New("locker.repository: locker not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("locker.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("locker.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("locker.repository: failed to scan row")
)
