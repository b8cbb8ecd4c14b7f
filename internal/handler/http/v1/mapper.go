package v1

import (
	"strings"

	"github.com/Too-lit247/my-guardian/internal/models"
	"github.com/google/uuid"
)

// DTOToSensorReading преобразует запрос устройства в доменное показание
func DTOToSensorReading(dto DeviceDataRequest) *models.SensorReading {
	return &models.SensorReading{
		Type:            models.ReadingType(dto.ReadingType),
		HeartRate:       dto.HeartRate,
		Temperature:     dto.Temperature,
		SmokeLevel:      dto.SmokeLevel,
		BatteryLevel:    dto.BatteryLevel,
		FearProbability: dto.FearProbability,
		Location:        models.NewGeoPoint(dto.Latitude, dto.Longitude),
		RawData:         dto.RawData,
	}
}

// DTOToIncident преобразует запрос оператора в инцидент для маршрутизации
func DTOToIncident(dto CreateAlertRequest) models.Incident {
	return models.Incident{
		Type:        strings.TrimSpace(dto.AlertType),
		Location:    models.NewGeoPoint(dto.Latitude, dto.Longitude),
		Severity:    models.Severity(dto.Severity),
		Description: dto.Description,
		ReportedBy:  dto.ReportedBy,
	}
}

// QueryToAlertFilter преобразует параметры запроса в фильтр тревог. Параметры уже провалидированы.
func QueryToAlertFilter(q ListAlertsQuery) models.AlertFilter {
	var filter models.AlertFilter
	if q.Department != "" {
		d := models.Department(q.Department)
		filter.Department = &d
	}
	if q.Status != "" {
		s := models.AlertStatus(q.Status)
		filter.Status = &s
	}
	if q.StationID != "" {
		if id, err := uuid.Parse(q.StationID); err == nil {
			filter.StationID = &id
		}
	}
	filter.Assigned = q.Assigned
	return filter
}

// ModelToAlertResponse преобразует доменную тревогу в DTO для ответа
func ModelToAlertResponse(model *models.RoutedAlert) *AlertResponse {
	lat, lon := splitPoint(model.Location)
	return &AlertResponse{
		ID:                   model.ID,
		Title:                model.Title,
		AlertType:            model.AlertType,
		Department:           string(model.Department),
		Priority:             string(model.Priority),
		Status:               string(model.Status),
		Latitude:             lat,
		Longitude:            lon,
		AssignedStationID:    model.AssignedStationID,
		AssignmentDistanceKm: model.AssignmentDistanceKm,
		ParentAlertID:        model.ParentAlertID,
		Description:          model.Description,
		ReportedBy:           model.ReportedBy,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
		ResolvedAt:           model.ResolvedAt,
	}
}

// ModelsToAlertResponses преобразует слайс моделей в слайс DTO
func ModelsToAlertResponses(models []*models.RoutedAlert) []*AlertResponse {
	responses := make([]*AlertResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToAlertResponse(model)
	}
	return responses
}

// ResultToRoutingResponse раскладывает результат маршрутизации по тревогам, основная первой
func ResultToRoutingResponse(result *models.RoutingResult) RoutingResponse {
	return RoutingResponse{Alerts: outcomesToResponses(result)}
}

// ResultToIngestResponse преобразует итог приема показания в DTO
func ResultToIngestResponse(result *models.IngestResult) IngestResponse {
	resp := IngestResponse{
		ReadingID:   result.Reading.ID,
		IsEmergency: result.Reading.IsEmergency,
		TriggeredBy: result.Reading.TriggeredBy,
		Triggers:    make([]TriggerResponse, 0, len(result.Triggers)),
	}
	for _, t := range result.Triggers {
		tr := TriggerResponse{
			ID:        t.Trigger.ID,
			Type:      string(t.Trigger.Type),
			Severity:  string(t.Trigger.Severity),
			Value:     t.Trigger.Value,
			Threshold: t.Trigger.Threshold,
			AlertID:   t.Trigger.AlertCreatedID,
			Alerts:    outcomesToResponses(t.Result),
		}
		if t.Err != nil {
			tr.Error = t.Err.Error()
		}
		resp.Triggers = append(resp.Triggers, tr)
	}
	return resp
}

// ModelToStationResponse преобразует станцию в DTO
func ModelToStationResponse(model models.Station) StationResponse {
	lat, lon := splitPoint(model.Location)
	return StationResponse{
		ID:         model.ID,
		Name:       model.Name,
		Code:       model.Code,
		Department: string(model.Department),
		Region:     model.Region,
		Latitude:   lat,
		Longitude:  lon,
		Active:     model.Active,
	}
}

// ModelToMatchResponse преобразует найденную станцию в DTO
func ModelToMatchResponse(m models.StationMatch) StationMatchResponse {
	return StationMatchResponse{Station: ModelToStationResponse(m.Station), DistanceKm: m.DistanceKm}
}

// MatchesToResponses преобразует слайс найденных станций в DTO
func MatchesToResponses(matches []models.StationMatch) []StationMatchResponse {
	responses := make([]StationMatchResponse, len(matches))
	for i, m := range matches {
		responses[i] = ModelToMatchResponse(m)
	}
	return responses
}

// ModelToCoverageResponse преобразует сводку нагрузки станции в DTO
func ModelToCoverageResponse(model *models.StationCoverage) CoverageResponse {
	return CoverageResponse{
		Station:           ModelToStationResponse(model.Station),
		CoverageRadiusKm:  model.CoverageRadiusKm,
		ActiveAlertsCount: model.ActiveAlertsCount,
		RecentAlertsCount: model.RecentAlertsCount,
	}
}

func outcomesToResponses(result *models.RoutingResult) []AlertOutcomeResponse {
	if result == nil {
		return nil
	}
	outcomes := result.Outcomes()
	responses := make([]AlertOutcomeResponse, 0, len(outcomes))
	for _, o := range outcomes {
		r := AlertOutcomeResponse{Role: o.Role, Warning: o.Warning}
		if o.Alert != nil {
			r.Alert = ModelToAlertResponse(o.Alert)
		}
		if o.Err != nil {
			r.Error = o.Err.Error()
		}
		responses = append(responses, r)
	}
	return responses
}

func splitPoint(p *models.GeoPoint) (lat, lon *float64) {
	if p == nil {
		return nil, nil
	}
	la, lo := p.Latitude, p.Longitude
	return &la, &lo
}
