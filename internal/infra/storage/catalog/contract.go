package catalog

import "github.com/turnate/booking-engine/pkg/dbmetrics"

// DBExecutor переиспользуем интерфейс из dbmetrics
type DBExecutor = dbmetrics.DBExecutor
