package list_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Поддерживаются from, to, date (сокращение для from=to), status, search, limit, offset
func ToServiceRequest(projectID uuid.UUID, query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		ProjectID: projectID,
		Search:    query.Get("search"),
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.From = &date
		req.To = &date
	}

	from, err := parseOptionalDate(query.Get("from"))
	if err != nil {
		return nil, fmt.Errorf("invalid from: %w", err)
	}
	if from != nil {
		req.From = from
	}

	to, err := parseOptionalDate(query.Get("to"))
	if err != nil {
		return nil, fmt.Errorf("invalid to: %w", err)
	}
	if to != nil {
		req.To = to
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: %w", err)
		}
		req.Limit = limit
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %w", err)
		}
		req.Offset = offset
	}

	return req, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	date, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
