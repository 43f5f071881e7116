package plan

import "errors"

var (
	// ErrPlanNotFound возвращается, когда запись не найдена
	ErrPlanNotFound = errors.New("plan.repository: plan not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("plan.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("plan.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("plan.repository: failed to scan row")
)
