package models

// Роль тревоги в результате маршрутизации
const (
	RolePrimary    = "primary"
	RoleSupporting = "supporting"
)

// AlertOutcome - итог по одной созданной тревоге.
// Warning - некритичное замечание (нет координат, нет станции в радиусе), Err - ошибка записи именно этой тревоги.
type AlertOutcome struct {
	Role    string
	Alert   *RoutedAlert
	Warning string
	Err     error
}

// RoutingResult - основная тревога и вспомогательные тревоги для составных ЧС
type RoutingResult struct {
	Primary    AlertOutcome
	Supporting []AlertOutcome
}

// Outcomes возвращает все исходы, основной первым
func (r *RoutingResult) Outcomes() []AlertOutcome {
	return append([]AlertOutcome{r.Primary}, r.Supporting...)
}

// Failed возвращает исходы, которые не удалось сохранить
func (r *RoutingResult) Failed() []AlertOutcome {
	var failed []AlertOutcome
	for _, o := range r.Outcomes() {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// TriggerOutcome - результат маршрутизации одного триггера
type TriggerOutcome struct {
	Trigger Trigger
	Result  *RoutingResult
	Err     error
}

// IngestResult - сохраненное показание и исходы по каждому сработавшему триггеру
type IngestResult struct {
	Reading  *SensorReading
	Triggers []TriggerOutcome
}

// ReconcileReport - итог одного прохода назначения станций
type ReconcileReport struct {
	Processed int `json:"processed"`
	Assigned  int `json:"assigned"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
