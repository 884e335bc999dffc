package drivers

import (
	"context"
	"errors"
	"testing"
	"time"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/ports/deliverytx/deliverytxtest"
	testlog "shipping-allocation-engine/internal/testutil"
)

type mockDriverRepo struct {
	getFn    func(ctx context.Context, id int64) (*domain.Driver, error)
	listFn   func(ctx context.Context, f domain.DriverFilter) ([]domain.Driver, error)
	createFn func(ctx context.Context, d *domain.Driver) error
}

func (m *mockDriverRepo) GetDriver(ctx context.Context, id int64) (*domain.Driver, error) {
	return m.getFn(ctx, id)
}

func (m *mockDriverRepo) ListDrivers(ctx context.Context, f domain.DriverFilter) ([]domain.Driver, error) {
	return m.listFn(ctx, f)
}

func (m *mockDriverRepo) CreateDriver(ctx context.Context, d *domain.Driver) error {
	return m.createFn(ctx, d)
}

func TestNewService_ZeroTimeoutUsesDefault(t *testing.T) {
	t.Parallel()

	service := NewService(&mockDriverRepo{}, deliverytxtest.Runner{}, 0, nil)
	if service.operationTimeout != 3*time.Second {
		t.Fatalf("default timeout 3s, got %v", service.operationTimeout)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockDriverRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Driver, error) {
			return nil, nil
		},
	}

	_, err := NewService(repo, deliverytxtest.Runner{}, time.Second, nil).Get(context.Background(), 1)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Get_RepoError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	repo := &mockDriverRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Driver, error) {
			return nil, wantErr
		},
	}

	_, err := NewService(repo, deliverytxtest.Runner{}, time.Second, nil).Get(context.Background(), 1)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected repo error %v, got %v", wantErr, err)
	}
}

func TestService_List_Stats(t *testing.T) {
	t.Parallel()

	center := int64(1)
	repo := &mockDriverRepo{
		listFn: func(ctx context.Context, f domain.DriverFilter) ([]domain.Driver, error) {
			if f.CenterID == nil || *f.CenterID != center {
				t.Fatalf("expected center filter %d, got %v", center, f.CenterID)
			}
			return []domain.Driver{
				{ID: 1, Status: domain.DriverAvailable, Rating: 4.8, TodayDeliveries: 12},
				{ID: 2, Status: domain.DriverBusy, Rating: 4.9, TodayDeliveries: 8},
				{ID: 3, Status: domain.DriverBreak, Rating: 4.7, TodayDeliveries: 15},
				{ID: 4, Status: domain.DriverOffDuty, Rating: 4.8, TodayDeliveries: 0},
			}, nil
		},
	}

	items, st, err := NewService(repo, deliverytxtest.Runner{}, time.Second, nil).
		List(context.Background(), domain.DriverFilter{CenterID: &center})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 drivers, got %d", len(items))
	}
	want := domain.DriverStats{Total: 4, Available: 1, Busy: 1, OffDuty: 1, AvgRating: 4.8, TotalDeliveriesToday: 35}
	if st != want {
		t.Fatalf("expected %+v, got %+v", want, st)
	}
}

func TestStats_Empty(t *testing.T) {
	t.Parallel()

	if st := Stats(nil); st != (domain.DriverStats{}) {
		t.Fatalf("expected zero stats, got %+v", st)
	}
}

func TestService_List_InvalidFilter(t *testing.T) {
	t.Parallel()

	repo := &mockDriverRepo{
		listFn: func(ctx context.Context, f domain.DriverFilter) ([]domain.Driver, error) {
			t.Fatal("ListDrivers should not be called on invalid filter")
			return nil, nil
		},
	}
	bad := domain.DriverStatus("asleep")
	_, _, err := NewService(repo, deliverytxtest.Runner{}, time.Second, nil).
		List(context.Background(), domain.DriverFilter{Status: &bad})
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestService_Create_FillsDefaults(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	repo := &mockDriverRepo{
		createFn: func(ctx context.Context, d *domain.Driver) error {
			d.ID = 42
			return nil
		},
	}

	d := &domain.Driver{CenterID: 1, Name: " Alex Johnson ", Phone: "(612) 555-0101"}
	if err := NewService(repo, deliverytxtest.Runner{}, time.Second, rec.Logger()).Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != 42 || d.Name != "Alex Johnson" {
		t.Fatalf("unexpected driver %+v", d)
	}
	if d.VehicleType != domain.VehicleVan || d.Status != domain.DriverAvailable || d.Rating != DefaultRating || !d.Active {
		t.Fatalf("defaults not applied: %+v", d)
	}
	if n := len(rec.ByMsg("driver created")); n != 1 {
		t.Fatalf("expected one log entry, got %d", n)
	}
}

func TestService_Create_DuplicatePhone(t *testing.T) {
	t.Parallel()

	repo := &mockDriverRepo{
		createFn: func(ctx context.Context, d *domain.Driver) error {
			return apperr.ErrConflict
		},
	}

	d := &domain.Driver{CenterID: 1, Name: "Alex", Phone: "(612) 555-0101"}
	err := NewService(repo, deliverytxtest.Runner{}, time.Second, nil).Create(context.Background(), d)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_UpdateStatus_Success(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	var gotLoc *domain.Location
	tx := &deliverytxtest.Tx{
		GetDriverForUpdateFn: func(ctx context.Context, id int64) (*domain.Driver, error) {
			return &domain.Driver{ID: id, Status: domain.DriverAvailable}, nil
		},
		UpdateDriverStatusFn: func(ctx context.Context, id int64, status domain.DriverStatus, loc *domain.Location) error {
			if status != domain.DriverBreak {
				t.Fatalf("expected break, got %s", status)
			}
			gotLoc = loc
			return nil
		},
	}
	service := NewService(&mockDriverRepo{}, deliverytxtest.Runner{Tx: tx}, time.Second, nil)
	service.now = func() time.Time { return at }

	out, err := service.UpdateStatus(context.Background(), domain.DriverStatusUpdate{
		ID: 3, Status: domain.DriverBreak, Location: &domain.Location{Lat: 44.97, Lng: -93.26},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != domain.DriverBreak || out.Location == nil {
		t.Fatalf("unexpected driver %+v", out)
	}
	if gotLoc == nil || !gotLoc.At.Equal(at) {
		t.Fatalf("location timestamp not stamped: %+v", gotLoc)
	}
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	t.Parallel()

	service := NewService(&mockDriverRepo{}, deliverytxtest.Runner{}, time.Second, nil)
	_, err := service.UpdateStatus(context.Background(), domain.DriverStatusUpdate{ID: 3, Status: domain.DriverBusy})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
