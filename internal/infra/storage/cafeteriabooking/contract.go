package cafeteriabooking

import (
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
