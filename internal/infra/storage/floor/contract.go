package floor

import (
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
