package call

import (
	"context"
	"errors"
	"testing"
	"time"

	callRepo "fieldserve/database/repository/call"
	"fieldserve/models"
)

type stubCallRepo struct {
	calls map[string]*models.Call
}

func newStubCallRepo(calls ...*models.Call) *stubCallRepo {
	r := &stubCallRepo{calls: map[string]*models.Call{}}
	for _, c := range calls {
		r.calls[c.ID] = c
	}
	return r
}

func (r *stubCallRepo) Create(c *models.Call) error {
	r.calls[c.ID] = c
	return nil
}

func (r *stubCallRepo) GetByID(id string) (*models.Call, error) {
	c, ok := r.calls[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *stubCallRepo) UpdateFields(id string, fields map[string]any) error {
	c, ok := r.calls[id]
	if !ok {
		return errors.New("call not found")
	}
	for k, v := range fields {
		switch k {
		case "status":
			c.Status = v.(models.CallStatus)
		case "closedAt":
			t := v.(time.Time)
			c.ClosedAt = &t
		case "technicianId":
			c.TechnicianID = v.(string)
		case "technicianName":
			c.TechnicianName = v.(string)
		case "clientName":
			c.ClientName = v.(string)
		case "price":
			c.Price = v.(float64)
		}
	}
	return nil
}

func (r *stubCallRepo) Delete(id string) error {
	delete(r.calls, id)
	return nil
}

func (r *stubCallRepo) List(callRepo.CallFilter) ([]models.Call, error) { return nil, nil }

func (r *stubCallRepo) ListByEffectiveClosedDate(time.Time, time.Time, string) ([]models.Call, error) {
	return nil, nil
}

func (r *stubCallRepo) GroupClosedLifetime(string) ([]models.TechnicianLifetime, error) {
	return nil, nil
}

type stubTechRepo struct {
	techs    map[string]*models.Technician
	attached []string
	detached []string
}

func newStubTechRepo(techs ...*models.Technician) *stubTechRepo {
	r := &stubTechRepo{techs: map[string]*models.Technician{}}
	for _, t := range techs {
		r.techs[t.ID] = t
	}
	return r
}

func (r *stubTechRepo) Create(*models.Technician) error { return nil }
func (r *stubTechRepo) GetByID(id string) (*models.Technician, error) {
	return r.techs[id], nil
}
func (r *stubTechRepo) GetByUsername(string) (*models.Technician, error) { return nil, nil }
func (r *stubTechRepo) GetAll() ([]models.Technician, error)             { return nil, nil }
func (r *stubTechRepo) UpdateFields(string, map[string]any) error        { return nil }
func (r *stubTechRepo) Delete(string) error                              { return nil }
func (r *stubTechRepo) AddAssignedCall(techID, callID string) error {
	r.attached = append(r.attached, techID+":"+callID)
	return nil
}
func (r *stubTechRepo) RemoveAssignedCall(techID, callID string) error {
	r.detached = append(r.detached, techID+":"+callID)
	return nil
}

type stubNotifier struct {
	sent []string
}

func (n *stubNotifier) SendTechnicianPush(_ context.Context, techID, _, _ string, _ map[string]string) error {
	n.sent = append(n.sent, techID)
	return nil
}

func TestForwardCall(t *testing.T) {
	techs := newStubTechRepo(&models.Technician{ID: "t1", Username: "ravi"})
	notifier := &stubNotifier{}
	svc := &DefaultCallService{Repo: newStubCallRepo(), Techs: techs, Notifier: notifier}

	created, err := svc.Forward(ForwardCallRequest{
		ClientName:   "Ravi Kumar",
		Phone:        "9876543210",
		ServiceType:  "AC Repair",
		Price:        450,
		TechnicianID: "t1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != models.CallPending {
		t.Fatalf("expected new calls to start Pending, got %q", created.Status)
	}
	if created.TechnicianName != "ravi" {
		t.Fatalf("expected denormalized technician name, got %q", created.TechnicianName)
	}
	if len(techs.attached) != 1 {
		t.Fatalf("expected the call attached to the technician, got %v", techs.attached)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "t1" {
		t.Fatalf("expected a push to t1, got %v", notifier.sent)
	}
}

func TestForwardCallUnknownTechnician(t *testing.T) {
	svc := &DefaultCallService{Repo: newStubCallRepo(), Techs: newStubTechRepo()}

	_, err := svc.Forward(ForwardCallRequest{ClientName: "x", Phone: "1", TechnicianID: "missing"})
	if !errors.Is(err, ErrTechnicianNotFound) {
		t.Fatalf("expected ErrTechnicianNotFound, got %v", err)
	}
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	repo := newStubCallRepo(&models.Call{ID: "c1", Status: models.CallPending, TechnicianID: "t1"})
	svc := &DefaultCallService{Repo: repo, Techs: newStubTechRepo()}

	updated, err := svc.UpdateStatus("c1", "t1", models.CallInProcess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.CallInProcess {
		t.Fatalf("expected In Process, got %q", updated.Status)
	}

	if _, err := svc.UpdateStatus("c1", "t1", models.CallClosed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected In Process -> Closed to be rejected, got %v", err)
	}
}

func TestUpdateStatusStampsClosedAt(t *testing.T) {
	repo := newStubCallRepo(&models.Call{ID: "c1", Status: models.CallCompleted, TechnicianID: "t1"})
	svc := &DefaultCallService{Repo: repo, Techs: newStubTechRepo()}

	updated, err := svc.UpdateStatus("c1", "t1", models.CallClosed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ClosedAt == nil {
		t.Fatal("expected closedAt to be stamped with the close")
	}
}

func TestUpdateStatusOwnership(t *testing.T) {
	repo := newStubCallRepo(&models.Call{ID: "c1", Status: models.CallPending, TechnicianID: "t1"})
	svc := &DefaultCallService{Repo: repo, Techs: newStubTechRepo()}

	if _, err := svc.UpdateStatus("c1", "t2", models.CallInProcess); !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}
}

func TestAdminUpdateForceBypassesStateMachine(t *testing.T) {
	repo := newStubCallRepo(&models.Call{ID: "c1", Status: models.CallPending, TechnicianID: "t1"})
	svc := &DefaultCallService{Repo: repo, Techs: newStubTechRepo()}

	if _, err := svc.AdminUpdate("c1", UpdateCallRequest{Status: models.CallClosed}, false); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected the unforced edit to be rejected, got %v", err)
	}

	updated, err := svc.AdminUpdate("c1", UpdateCallRequest{Status: models.CallClosed}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.CallClosed {
		t.Fatalf("expected forced close, got %q", updated.Status)
	}
	if updated.ClosedAt == nil {
		t.Fatal("expected forced close to stamp closedAt")
	}
}

func TestReassignMovesBackReferences(t *testing.T) {
	repo := newStubCallRepo(&models.Call{
		ID: "c1", Status: models.CallPending,
		TechnicianID: "t1", TechnicianName: "ravi",
	})
	techs := newStubTechRepo(
		&models.Technician{ID: "t1", Username: "ravi"},
		&models.Technician{ID: "t2", Username: "asha"},
	)
	notifier := &stubNotifier{}
	svc := &DefaultCallService{Repo: repo, Techs: techs, Notifier: notifier}

	updated, err := svc.Reassign("c1", "t2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.TechnicianID != "t2" || updated.TechnicianName != "asha" {
		t.Fatalf("expected reassignment to t2/asha, got %s/%s", updated.TechnicianID, updated.TechnicianName)
	}
	if len(techs.detached) != 1 || techs.detached[0] != "t1:c1" {
		t.Fatalf("expected detach from t1, got %v", techs.detached)
	}
	if len(techs.attached) != 1 || techs.attached[0] != "t2:c1" {
		t.Fatalf("expected attach to t2, got %v", techs.attached)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "t2" {
		t.Fatalf("expected a push to the new technician, got %v", notifier.sent)
	}
}

func TestDeleteDetachesCall(t *testing.T) {
	repo := newStubCallRepo(&models.Call{ID: "c1", Status: models.CallPending, TechnicianID: "t1"})
	techs := newStubTechRepo(&models.Technician{ID: "t1", Username: "ravi"})
	svc := &DefaultCallService{Repo: repo, Techs: techs}

	if err := svc.Delete("c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetByID("c1"); !errors.Is(err, ErrCallNotFound) {
		t.Fatalf("expected the call to be gone, got %v", err)
	}
	if len(techs.detached) != 1 {
		t.Fatalf("expected detach on delete, got %v", techs.detached)
	}
}
