package call

import (
	"context"
	"fmt"
	"time"

	callRepo "fieldserve/database/repository/call"
	"fieldserve/models"
	"fieldserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Forward creates a call assigned to a technician, attaches it to the
// technician's assigned list and pushes a notification (best effort).
func (s *DefaultCallService) Forward(req ForwardCallRequest) (*models.Call, error) {
	logger := utils.GetLogger()

	tech, err := s.Techs.GetByID(req.TechnicianID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve technician: %w", err)
	}
	if tech == nil {
		return nil, ErrTechnicianNotFound
	}

	call := &models.Call{
		ID:             uuid.NewString(),
		ClientName:     req.ClientName,
		Phone:          req.Phone,
		Address:        req.Address,
		ServiceType:    req.ServiceType,
		Price:          req.Price,
		Status:         models.CallPending,
		TechnicianID:   tech.ID,
		TechnicianName: tech.Username,
	}
	if err := s.Repo.Create(call); err != nil {
		return nil, fmt.Errorf("failed to create call: %w", err)
	}

	if err := s.Techs.AddAssignedCall(tech.ID, call.ID); err != nil {
		// The call document is authoritative; the back-reference is a cache.
		logger.Warn("Failed to attach call to technician",
			zap.String("callID", call.ID), zap.String("technicianID", tech.ID), zap.Error(err))
	}

	s.notify(tech.ID, "New service call", fmt.Sprintf("%s — %s", req.ClientName, req.ServiceType), call.ID)
	return call, nil
}

// GetByID fetches one call.
func (s *DefaultCallService) GetByID(id string) (*models.Call, error) {
	call, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch call: %w", err)
	}
	if call == nil {
		return nil, ErrCallNotFound
	}
	return call, nil
}

// List fetches calls matching the filter.
func (s *DefaultCallService) List(filter callRepo.CallFilter) ([]models.Call, error) {
	return s.Repo.List(filter)
}

// AdminUpdate applies a partial edit. Status changes follow the transition
// table unless force is set, in which case the bypass is logged.
func (s *DefaultCallService) AdminUpdate(id string, req UpdateCallRequest, force bool) (*models.Call, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.ClientName != "" {
		fields["clientName"] = req.ClientName
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if req.ServiceType != "" {
		fields["serviceType"] = req.ServiceType
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, req.Status)
		}
		if !force && !models.CanTransition(existing.Status, req.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, req.Status)
		}
		if force && !models.CanTransition(existing.Status, req.Status) {
			utils.GetLogger().Warn("Forced call status transition",
				zap.String("callID", id),
				zap.String("from", string(existing.Status)),
				zap.String("to", string(req.Status)))
		}
		fields["status"] = req.Status
		if req.Status == models.CallClosed && existing.ClosedAt == nil {
			fields["closedAt"] = time.Now()
		}
	}
	if len(fields) == 0 {
		return existing, nil
	}

	if err := s.Repo.UpdateFields(id, fields); err != nil {
		return nil, fmt.Errorf("failed to update call: %w", err)
	}
	return s.GetByID(id)
}

// UpdateStatus is the technician-owned transition path. Closing a call
// stamps closedAt in the same update, so newly closed calls never rely on
// the created-date fallback.
func (s *DefaultCallService) UpdateStatus(id, techID string, to models.CallStatus) (*models.Call, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.TechnicianID != techID {
		return nil, ErrNotAssigned
	}
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if !models.CanTransition(existing.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, to)
	}

	fields := map[string]any{"status": to}
	if to == models.CallClosed {
		fields["closedAt"] = time.Now()
	}
	if err := s.Repo.UpdateFields(id, fields); err != nil {
		return nil, fmt.Errorf("failed to update call status: %w", err)
	}
	return s.GetByID(id)
}

// Reassign moves a call to another technician, refreshing the denormalized
// technician name and both assigned-call lists.
func (s *DefaultCallService) Reassign(id, newTechID string) (*models.Call, error) {
	logger := utils.GetLogger()

	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	tech, err := s.Techs.GetByID(newTechID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve technician: %w", err)
	}
	if tech == nil {
		return nil, ErrTechnicianNotFound
	}

	fields := map[string]any{
		"technicianId":   tech.ID,
		"technicianName": tech.Username,
	}
	if err := s.Repo.UpdateFields(id, fields); err != nil {
		return nil, fmt.Errorf("failed to reassign call: %w", err)
	}

	if existing.TechnicianID != "" && existing.TechnicianID != tech.ID {
		if err := s.Techs.RemoveAssignedCall(existing.TechnicianID, id); err != nil {
			logger.Warn("Failed to detach call from previous technician",
				zap.String("callID", id), zap.Error(err))
		}
	}
	if err := s.Techs.AddAssignedCall(tech.ID, id); err != nil {
		logger.Warn("Failed to attach call to new technician",
			zap.String("callID", id), zap.Error(err))
	}

	s.notify(tech.ID, "Call reassigned to you", fmt.Sprintf("%s — %s", existing.ClientName, existing.ServiceType), id)
	return s.GetByID(id)
}

// Delete removes a call and detaches it from its technician's assigned list.
func (s *DefaultCallService) Delete(id string) error {
	existing, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete call: %w", err)
	}
	if existing.TechnicianID != "" {
		if err := s.Techs.RemoveAssignedCall(existing.TechnicianID, id); err != nil {
			utils.GetLogger().Warn("Failed to detach deleted call from technician",
				zap.String("callID", id), zap.Error(err))
		}
	}
	return nil
}

// notify pushes to the technician and logs failures without surfacing them;
// push delivery is best effort.
func (s *DefaultCallService) notify(techID, title, body, callID string) {
	if s.Notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data := map[string]string{"callId": callID, "role": models.RoleTechnician}
	if err := s.Notifier.SendTechnicianPush(ctx, techID, title, body, data); err != nil {
		utils.GetLogger().Warn("Failed to send call push notification",
			zap.String("technicianID", techID), zap.String("callID", callID), zap.Error(err))
	}
}
