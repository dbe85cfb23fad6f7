package create

import (
	"context"
	"time"

	"github.com/google/uuid"

	stderrors "rma-desk/internal/common/errors"
	"rma-desk/internal/common/logger"
	"rma-desk/internal/common/metrics"
	"rma-desk/internal/common/validation"
	"rma-desk/internal/rma"
	"rma-desk/internal/rma/address"
)

// Service runs the single-pass RMA creation pipeline:
// fetch contact, fetch organization address, human confirmation, then
// allocate and append. Any failure or a declined confirmation aborts the
// pass with no store mutation.
type Service struct {
	config    *Config
	logger    logger.Logger
	directory Directory
	store     Store
	confirm   ConfirmFunc
	auditor   Auditor
	notifier  Notifier
	renderer  Renderer
}

func NewService(deps ServiceDependencies, cfg *Config) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config:    cfg,
		logger:    log,
		directory: deps.Directory,
		store:     deps.Store,
		confirm:   deps.Confirm,
		auditor:   deps.Auditor,
		notifier:  deps.Notifier,
		renderer:  deps.Renderer,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()
	defer func() {
		metrics.CreateDuration.Observe(time.Since(start).Seconds())
	}()

	requestID := uuid.NewString()
	log := s.logger.WithFields(map[string]interface{}{
		"requestId": requestID,
		"email":     input.Email,
	})

	log.Info("Processing RMA create request", nil)

	result, err := validation.ValidateCreateRequest(input)
	if err != nil {
		return nil, s.fail(log, stderrors.NewValidationFailedError(err.Error()))
	}
	if !result.Valid {
		return nil, s.fail(log, stderrors.NewValidationFailedError(validation.FormatErrors(result)))
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	contact, err := s.directory.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, s.fail(log, err)
	}

	if contact.OrganizationID != 0 {
		name, details, err := s.directory.OrganizationAddress(ctx, contact.OrganizationID)
		if err != nil {
			return nil, s.fail(log, err)
		}
		contact.Company = name

		fields := address.Parse(details)
		contact.Street = fields.Street
		contact.City = fields.City
		contact.State = fields.State
		contact.Zip = fields.Zip
		contact.Country = fields.Country
	}

	req := input.request()

	if !s.confirm(*contact, req) {
		metrics.CreatesDeclined.Inc()
		log.Info("Aborted at confirmation gate, register unchanged", nil)
		return &Output{
			Success:   false,
			Message:   "aborted at confirmation gate",
			RequestID: requestID,
		}, nil
	}

	issued, err := s.store.Append(*contact, req)
	if err != nil {
		return nil, s.fail(log, err)
	}
	metrics.CreatesCompleted.Inc()

	log.Info("RMA issued", map[string]interface{}{
		"number":  issued.Number,
		"company": issued.Contact.Company,
	})

	// The workbook save above is the commit point; everything below is best
	// effort and must not undo or fail the pass.
	s.runSideEffects(ctx, log, issued, requestID)

	return &Output{
		Success:   true,
		Message:   "RMA record appended",
		Number:    issued.Number,
		RequestID: requestID,
		CreatedAt: issued.IssuedAt,
	}, nil
}

func (s *Service) runSideEffects(ctx context.Context, log logger.Logger, issued *rma.Issued, requestID string) {
	if s.auditor != nil {
		if err := s.auditor.RecordIssued(ctx, issued, requestID); err != nil {
			log.Warn("Audit trail write failed", map[string]interface{}{
				"number": issued.Number,
				"error":  err.Error(),
			})
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendIssued(ctx, issued); err != nil {
			log.Warn("Confirmation delivery failed", map[string]interface{}{
				"number": issued.Number,
				"error":  err.Error(),
			})
		}
	}

	if s.renderer != nil {
		path, err := s.renderer.Render(issued)
		if err != nil {
			log.Warn("RMA form rendering failed", map[string]interface{}{
				"number": issued.Number,
				"error":  err.Error(),
			})
		} else {
			log.Info("RMA form written", map[string]interface{}{
				"number": issued.Number,
				"path":   path,
			})
		}
	}
}

func (s *Service) fail(log logger.Logger, err error) error {
	code := string(stderrors.CodeOf(err))
	if code == "" {
		code = "UNKNOWN"
	}
	metrics.CreatesFailed.WithLabelValues(code).Inc()
	log.WithError(err).Error("RMA create pass aborted", map[string]interface{}{
		"errorCode": code,
	})
	return err
}
