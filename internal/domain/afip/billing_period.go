package afip

import "time"

// BillingPeriod período de servicio facturado (FchServDesde / FchServHasta).
type BillingPeriod struct {
	Start time.Time
	End   time.Time
}

// ResolveBillingPeriod devuelve el mes calendario de today: desde el día 1
// hasta el último día del mes. Las fechas quedan a medianoche en la zona de today.
func ResolveBillingPeriod(today time.Time) BillingPeriod {
	y, m, _ := today.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, today.Location())
	// día 0 del mes siguiente = último día del mes actual
	end := time.Date(y, m+1, 0, 0, 0, 0, 0, today.Location())
	return BillingPeriod{Start: start, End: end}
}
