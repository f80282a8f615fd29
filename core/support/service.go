package support

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/support-service/core"
)

var (
	// errors
	ErrNotFound  = errors.New("support not found")
	ErrForbidden = errors.New("permission denied")
)

// PreconditionError reports a transition attempted on a record that is not
// in the required status. The record is left untouched and nothing is
// notified.
type PreconditionError struct {
	Current  Status
	Expected Status
}

func (err *PreconditionError) Error() string {
	return fmt.Sprintf("support is %s, expected %s", err.Current, err.Expected)
}

type (
	Repository interface {
		CreateSupport(ctx context.Context, sup Support) (Support, error)
		QueryAllSupports(ctx context.Context, ordering []core.DBOrdering) ([]Support, error)
		GetSupportByID(ctx context.Context, id string) (Support, error)
		FilterSupportsByOwner(ctx context.Context, ownerID int, ordering []core.DBOrdering) ([]Support, error)
		FilterSupportsByStatus(ctx context.Context, status Status, ordering []core.DBOrdering) ([]Support, error)
		UpdateSupport(ctx context.Context, sup Support) (Support, error)
		DeleteSupport(ctx context.Context, id string) error
	}

	Service struct {
		repo       Repository
		directory  core.DirectoryService
		notifier   core.NotificationService
		mailSvc    core.EmailService // optional; email copies of notifications
		logger     core.Logger
		dirTimeout time.Duration
	}
)

func NewService(
	conf *core.Config,
	repo Repository,
	directory core.DirectoryService,
	notifier core.NotificationService,
	mailSvc core.EmailService,
	logger core.Logger,
) *Service {
	return &Service{
		repo:       repo,
		directory:  directory,
		notifier:   notifier,
		mailSvc:    mailSvc,
		logger:     logger,
		dirTimeout: conf.Directory.Timeout,
	}
}

// Create persists a new Draft owned by prin and notifies the owner.
func (svc *Service) Create(ctx context.Context, prin core.Principal, ns NewSupport) (Support, error) {
	if !Can(OpCreate, prin, Support{}) {
		return Support{}, ErrForbidden
	}

	sup := Support{
		ID:          uuid.New().String(),
		Title:       ns.Title,
		Description: ns.Description,
		FileURL:     ns.FileURL,
		Level:       ns.Level,
		Subject:     ns.Subject,
		OwnerID:     prin.ID,
		SubmittedOn: time.Now().UTC(),
		Status:      StatusDraft,
	}
	sup, err := svc.repo.CreateSupport(ctx, sup)
	if err != nil {
		return Support{}, err
	}

	svc.fanOut(sup, prin)
	return sup, nil
}

func (svc *Service) GetByID(ctx context.Context, prin core.Principal, id string) (Support, error) {
	if !Can(OpRead, prin, Support{}) {
		return Support{}, ErrForbidden
	}
	return svc.repo.GetSupportByID(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context, prin core.Principal, ordering []core.DBOrdering) ([]Support, error) {
	if !Can(OpList, prin, Support{}) {
		return nil, ErrForbidden
	}
	return svc.repo.QueryAllSupports(ctx, ordering)
}

// FilterByOwner returns ownerID's supports; restricted to the owner
// themselves and admins.
func (svc *Service) FilterByOwner(ctx context.Context, prin core.Principal, ownerID int, ordering []core.DBOrdering) ([]Support, error) {
	if !Can(OpListOwner, prin, Support{OwnerID: ownerID}) {
		return nil, ErrForbidden
	}
	return svc.repo.FilterSupportsByOwner(ctx, ownerID, ordering)
}

// FilterPending returns the records awaiting review (Submitted).
func (svc *Service) FilterPending(ctx context.Context, prin core.Principal, ordering []core.DBOrdering) ([]Support, error) {
	if !Can(OpListPending, prin, Support{}) {
		return nil, ErrForbidden
	}
	return svc.repo.FilterSupportsByStatus(ctx, StatusSubmitted, ordering)
}

// Update edits a Draft's content fields. OwnerID is immutable; a record
// under or past review can no longer be edited.
func (svc *Service) Update(ctx context.Context, prin core.Principal, id string, us UpdateSupport) (Support, error) {
	sup, err := svc.repo.GetSupportByID(ctx, id)
	if err != nil {
		return Support{}, err
	}
	if !Can(OpUpdate, prin, sup) {
		return Support{}, ErrForbidden
	}
	if sup.Status != StatusDraft {
		return Support{}, &PreconditionError{Current: sup.Status, Expected: StatusDraft}
	}

	// only save set fields
	if us.Title != "" {
		sup.Title = us.Title
	}
	if us.Description != "" {
		sup.Description = us.Description
	}
	if us.FileURL != "" {
		sup.FileURL = us.FileURL
	}
	if us.Level != "" {
		sup.Level = us.Level
	}
	if us.Subject != "" {
		sup.Subject = us.Subject
	}
	return svc.repo.UpdateSupport(ctx, sup)
}

// Submit moves a Draft into review and notifies the owner's department Deans.
func (svc *Service) Submit(ctx context.Context, prin core.Principal, id string) (Support, error) {
	return svc.transition(ctx, prin, id, OpSubmit, StatusDraft, func(sup *Support) {
		sup.Status = StatusSubmitted
	})
}

// Validate approves a Submitted record and notifies the owner's whole
// department.
func (svc *Service) Validate(ctx context.Context, prin core.Principal, id string, note ReviewNote) (Support, error) {
	return svc.transition(ctx, prin, id, OpValidate, StatusSubmitted, func(sup *Support) {
		sup.Status = StatusValidated
		sup.ValidatedOn.SetValid(time.Now().UTC())
		sup.ReviewerNote.SetValid(note.Note)
	})
}

// Reject refuses a Submitted record and notifies the department Deans and
// the owner.
func (svc *Service) Reject(ctx context.Context, prin core.Principal, id string, note ReviewNote) (Support, error) {
	return svc.transition(ctx, prin, id, OpReject, StatusSubmitted, func(sup *Support) {
		sup.Status = StatusRejected
		sup.ReviewerNote.SetValid(note.Note)
	})
}

// Delete removes a record. Only Drafts are deletable, for admins too.
func (svc *Service) Delete(ctx context.Context, prin core.Principal, id string) error {
	sup, err := svc.repo.GetSupportByID(ctx, id)
	if err != nil {
		return err
	}
	if !Can(OpDelete, prin, sup) {
		return ErrForbidden
	}
	if sup.Status != StatusDraft {
		return &PreconditionError{Current: sup.Status, Expected: StatusDraft}
	}
	return svc.repo.DeleteSupport(ctx, id)
}

// transition runs the shared authorize -> precondition -> mutate -> persist
// -> notify sequence. Notification happens strictly after the update
// commits; a directory or broker failure can at worst drop a notification,
// never the state change.
func (svc *Service) transition(
	ctx context.Context,
	prin core.Principal,
	id string,
	op Operation,
	expected Status,
	mutate func(*Support),
) (Support, error) {
	sup, err := svc.repo.GetSupportByID(ctx, id)
	if err != nil {
		return Support{}, err
	}
	if !Can(op, prin, sup) {
		return Support{}, ErrForbidden
	}
	if sup.Status != expected {
		return Support{}, &PreconditionError{Current: sup.Status, Expected: expected}
	}

	mutate(&sup)
	sup, err = svc.repo.UpdateSupport(ctx, sup)
	if err != nil {
		return Support{}, err
	}

	svc.fanOut(sup, prin)
	return sup, nil
}

// fanOut resolves recipients for the (already persisted) snapshot, publishes
// the notification and sends email copies to the resolved profiles.
// The caller's context is deliberately not used: once persisted, the
// transition is committed whether or not the caller is still listening.
func (svc *Service) fanOut(sup Support, prin core.Principal) {
	ctx := context.Background()

	recipients, profiles := svc.resolveRecipients(ctx, sup, prin)
	notif := core.Notification{
		SupportID:  sup.ID,
		Title:      sup.Title,
		Recipients: recipients,
		OwnerID:    sup.OwnerID,
		Status:     string(sup.Status),
		Level:      sup.Level,
		Subject:    sup.Subject,
	}
	if err := svc.notifier.PublishSupportEvent(ctx, notif); err != nil {
		svc.logger.Warn("publishing support notification", err, prin)
	}

	if svc.mailSvc == nil || len(profiles) == 0 {
		return
	}
	to := make([]mail.Address, 0, len(profiles))
	for _, p := range profiles {
		if p.Email != "" {
			to = append(to, mail.Address{Name: p.Username, Address: p.Email})
		}
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("Course material %q is now %s", sup.Title, sup.Status),
		BodyStr: fmt.Sprintf("The course material %q (owner #%d) moved to status %s.", sup.Title, sup.OwnerID, sup.Status),
	})
}
