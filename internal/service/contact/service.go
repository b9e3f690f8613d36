package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
	"github.com/donorconnect/donor-api/pkg/messaging"
	"github.com/donorconnect/donor-api/pkg/metrics"
)

const UnavailableMessage = "Donor alerts are currently unavailable. Please try again later."

type Service struct {
	requests  repository.EmergencyRequestRepository
	donors    repository.DonorRepository
	publisher messaging.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewService wires the contact flow. m may be nil.
func NewService(requests repository.EmergencyRequestRepository, donors repository.DonorRepository, publisher messaging.Publisher, m *metrics.Metrics) *Service {
	return &Service{
		requests:  requests,
		donors:    donors,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// ContactDonor publishes an alert asking the worker to reach out to a
// matched donor. The emergency request itself is not modified.
func (s *Service) ContactDonor(ctx context.Context, requestID string, in *model.ContactDonorRequest, requestedBy string) (*model.ContactAlert, error) {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("emergency request", err)
		}
		return nil, apperrors.NewInternal(err)
	}

	if req.Status != model.RequestStatusPending {
		return nil, apperrors.NewPrecondition("Donors can only be contacted for pending requests.")
	}

	detail, _ := req.Detail()
	alert := &model.ContactAlert{
		ID:          uuid.NewString(),
		EventType:   model.EventDonorContactRequested,
		RequestID:   req.ID,
		DonorID:     strings.TrimSpace(in.DonorID),
		DonorName:   strings.TrimSpace(in.DonorName),
		RequestType: req.RequestType,
		Detail:      detail,
		Location:    req.Location,
		RequestedBy: requestedBy,
		CreatedAt:   s.now().UTC(),
	}

	// matches are often fictional donors; only registered ones have an email
	if donor, err := s.donors.Get(ctx, alert.DonorID); err == nil {
		alert.DonorEmail = donor.Email
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Warn().Err(err).Str("donor_id", alert.DonorID).Msg("donor lookup failed")
	}

	if err := s.publisher.Publish(ctx, model.EventDonorContactRequested, alert); err != nil {
		s.count("error")
		log.Error().Err(err).Str("alert_id", alert.ID).Msg("failed to publish contact alert")
		return nil, apperrors.NewUnavailable(UnavailableMessage, err)
	}
	s.count("success")

	log.Info().
		Str("alert_id", alert.ID).
		Str("request_id", alert.RequestID).
		Str("donor_id", alert.DonorID).
		Msg("contact alert published")

	return alert, nil
}

func (s *Service) count(status string) {
	if s.metrics != nil {
		s.metrics.AlertsPublished.WithLabelValues(status).Inc()
	}
}
