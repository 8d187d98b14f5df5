package user

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	domuser "github.com/kailas-cloud/wareflow/internal/domain/user"
	"github.com/kailas-cloud/wareflow/internal/domain/validation"
	"github.com/kailas-cloud/wareflow/internal/domain/view/order"
	"github.com/kailas-cloud/wareflow/internal/domain/view/value"
	"github.com/kailas-cloud/wareflow/internal/export"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
)

// Bulk actions offered by the user screen.
const (
	ActionActivate   = "activate"
	ActionDeactivate = "deactivate"
	ActionSuspend    = "suspend"
	ActionDelete     = listing.ActionDelete
	ActionExport     = listing.ActionExport
)

var statusActions = map[string]domuser.Status{
	ActionActivate:   domuser.Active,
	ActionDeactivate: domuser.Inactive,
	ActionSuspend:    domuser.Suspended,
}

// SheetName is the worksheet and file base name of user exports.
const SheetName = "usuarios"

// Columns are the export columns with their Spanish headers.
var Columns = []export.Column{
	{Key: domuser.FieldID, Header: "ID"},
	{Key: domuser.FieldName, Header: "Nombre"},
	{Key: domuser.FieldEmail, Header: "Email"},
	{Key: domuser.FieldCubanID, Header: "Carnet de identidad"},
	{Key: domuser.FieldPhone, Header: "Teléfono"},
	{Key: domuser.FieldRole, Header: "Rol"},
	{Key: domuser.FieldStatus, Header: "Estado"},
	{Key: domuser.FieldWarehouse, Header: "Almacén"},
	{Key: domuser.FieldLastLogin, Header: "Último acceso"},
	{Key: domuser.FieldCreatedAt, Header: "Fecha de creación"},
}

// BulkOutcome is the result of BulkAction. Records is set only for exports.
type BulkOutcome struct {
	listing.BulkResult
	Records []record.Record
}

// Service handles the user management screen.
type Service struct {
	*Listing
	now      Clock
	activity ActivityLog
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.now = c
		}
	}
}

// WithActivityLog sets the source of profile histories. Without it histories are empty.
func WithActivityLog(l ActivityLog) Option {
	return func(s *Service) {
		s.activity = l
	}
}

// NewListing creates the user workspace, sorted by name by default.
func NewListing(store listing.Store, engine listing.Engine, opts ...listing.Option) *Listing {
	byName, _ := order.New(domuser.FieldName, order.Asc)
	opts = append([]listing.Option{listing.WithDefaultSort(byName)}, opts...)
	return listing.New(store, engine, domuser.Schema(), domuser.FromRecord, opts...)
}

// New creates a user service.
func New(l *Listing, opts ...Option) *Service {
	s := &Service{Listing: l, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the form and stores a new user with the next free id.
func (s *Service) Create(ctx context.Context, in domuser.Input) (domuser.User, int, error) {
	u, rev, err := s.Insert(ctx, func(id int64) (record.Record, error) {
		u, err := domuser.Create(id, in, s.now())
		if err != nil {
			return nil, err
		}
		return u.ToRecord(), nil
	})
	if err != nil {
		return domuser.User{}, 0, fmt.Errorf("create user: %w", err)
	}
	return u, rev, nil
}

// Update applies the form to an existing user.
func (s *Service) Update(ctx context.Context, id record.ID, expectedRevision int, in domuser.Input) (domuser.User, int, error) {
	return s.replace(ctx, "update user", id, expectedRevision, func(u domuser.User) (domuser.User, error) {
		return u.Edit(in)
	})
}

// ToggleStatus flips a user between active and inactive.
func (s *Service) ToggleStatus(ctx context.Context, id record.ID, expectedRevision int) (domuser.User, int, error) {
	return s.replace(ctx, "toggle user status", id, expectedRevision, func(u domuser.User) (domuser.User, error) {
		u.Status = u.Status.Toggled()
		return u, nil
	})
}

// SetPermissions replaces a user's permission matrix. Unmentioned actions are revoked.
func (s *Service) SetPermissions(
	ctx context.Context, id record.ID, expectedRevision int, p domuser.Permissions,
) (domuser.User, int, error) {
	if err := p.Validate(); err != nil {
		return domuser.User{}, 0, fmt.Errorf("set permissions: %w", validation.Field(domuser.FieldPermissions, err.Error()))
	}
	return s.replace(ctx, "set permissions", id, expectedRevision, func(u domuser.User) (domuser.User, error) {
		u.Permissions = p.Normalized()
		return u, nil
	})
}

// Activity returns the profile history of an existing user.
func (s *Service) Activity(ctx context.Context, id record.ID) (domuser.Activity, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return domuser.Activity{}, fmt.Errorf("user activity: %w", err)
	}
	if s.activity == nil {
		return domuser.Activity{}, nil
	}
	a, err := s.activity.Activity(ctx, id)
	if err != nil {
		return domuser.Activity{}, fmt.Errorf("user activity of %s: %w", id, err)
	}
	return a, nil
}

// BulkAction runs a named bulk action over the current selection.
func (s *Service) BulkAction(ctx context.Context, action string, expectedRevision int) (BulkOutcome, error) {
	if st, ok := statusActions[action]; ok {
		res, err := s.BulkUpdate(ctx, action, expectedRevision, map[string]any{domuser.FieldStatus: string(st)})
		if err != nil {
			return BulkOutcome{}, fmt.Errorf("user bulk %s: %w", action, err)
		}
		return BulkOutcome{BulkResult: res}, nil
	}

	switch action {
	case ActionDelete:
		res, err := s.BulkDelete(ctx, expectedRevision)
		if err != nil {
			return BulkOutcome{}, fmt.Errorf("user bulk %s: %w", action, err)
		}
		return BulkOutcome{BulkResult: res}, nil
	case ActionExport:
		picked, err := s.BulkPick(ctx)
		if err != nil {
			return BulkOutcome{}, fmt.Errorf("user bulk %s: %w", action, err)
		}
		return BulkOutcome{
			BulkResult: listing.BulkResult{
				Action:   ActionExport,
				Affected: len(picked),
				IDs:      record.IDs(picked, domuser.FieldID),
			},
			Records: picked,
		}, nil
	}
	return BulkOutcome{}, fmt.Errorf("%w: %q", domain.ErrInvalidBulkAction, action)
}

// ExportFiltered writes the filtered, sorted collection to w.
func (s *Service) ExportFiltered(ctx context.Context, w io.Writer, f export.Format, q listing.Query) error {
	records, err := s.Export(ctx, q)
	if err != nil {
		return err
	}
	return writeExport(w, f, records)
}

// ExportSelected writes the selected users to w. The selection is kept.
func (s *Service) ExportSelected(ctx context.Context, w io.Writer, f export.Format) error {
	records, err := s.BulkPick(ctx)
	if err != nil {
		return err
	}
	return writeExport(w, f, records)
}

func (s *Service) replace(
	ctx context.Context, op string, id record.ID, expectedRevision int, fn func(domuser.User) (domuser.User, error),
) (domuser.User, int, error) {
	u, rev, err := s.Replace(ctx, id, expectedRevision, func(r record.Record) (record.Record, error) {
		current, err := domuser.FromRecord(r)
		if err != nil {
			return nil, err
		}
		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		return next.ToRecord(), nil
	})
	if err != nil {
		return domuser.User{}, 0, fmt.Errorf("%s: %w", op, err)
	}
	return u, rev, nil
}

func writeExport(w io.Writer, f export.Format, records []record.Record) error {
	rows := make([]record.Record, len(records))
	for i, r := range records {
		rows[i] = r.Merge(map[string]any{
			domuser.FieldRole:   domuser.Role(value.String(r[domuser.FieldRole])).Label(),
			domuser.FieldStatus: domuser.Status(value.String(r[domuser.FieldStatus])).Label(),
		})
	}
	if err := export.Write(w, f, SheetName, Columns, rows); err != nil {
		return fmt.Errorf("export users: %w", err)
	}
	return nil
}
