package get_establishment_appointments

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
// status принимает значения через запятую: status=pending,confirmed
func ToServiceRequest(establishmentID, userID uuid.UUID, dateStr, statusStr string) (*models.GetEstablishmentAppointmentsRequest, error) {
	req := &models.GetEstablishmentAppointmentsRequest{
		UserID:          userID,
		EstablishmentID: establishmentID,
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	for _, status := range strings.Split(statusStr, ",") {
		if status = strings.TrimSpace(status); status != "" {
			req.Statuses = append(req.Statuses, status)
		}
	}

	return req, nil
}
