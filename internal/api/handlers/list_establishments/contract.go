package list_establishments

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/establishments/models"
)

type EstablishmentService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.EstablishmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
