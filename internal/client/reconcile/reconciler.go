package reconcile

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophgarage/internal/client/repositories/cache"
	"github.com/dmitrijs2005/gophgarage/internal/client/session"
	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/models"
)

// Remote is the part of the remote store the layer mirrors.
type Remote interface {
	ListVehicles(ctx context.Context, query string) ([]models.Vehicle, error)
	CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	UpdateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id models.ID) error

	ListMaintenances(ctx context.Context, vehicleID models.ID) ([]models.Maintenance, error)
	CreateMaintenance(ctx context.Context, m models.Maintenance) (models.Maintenance, error)
	UpdateMaintenance(ctx context.Context, m models.Maintenance) (models.Maintenance, error)
	DeleteMaintenance(ctx context.Context, id models.ID) error

	ListReminders(ctx context.Context, vehicleID models.ID) ([]models.Reminder, error)
	CreateReminder(ctx context.Context, r models.Reminder) (models.Reminder, error)
	UpdateReminder(ctx context.Context, r models.Reminder) (models.Reminder, error)
	DeleteReminder(ctx context.Context, id models.ID) error
}

// scope identifies the session a background continuation belongs to.
type scope struct {
	userID models.ID
	epoch  uint64
}

// Reconciler is the client data-access layer. It is safe for concurrent use;
// every state change happens under one mutex, and remote calls run outside
// it.
type Reconciler struct {
	remote Remote
	cache  cache.Repository
	logger logging.Logger

	mu     sync.Mutex
	scope  scope
	online bool

	// inflight holds temporary IDs whose remote creation is outstanding;
	// discarded holds those of them deleted locally in the meantime.
	inflight  map[models.ID]struct{}
	discarded map[models.ID]struct{}

	vehicles     *entitySet[models.Vehicle]
	maintenances *entitySet[models.Maintenance]
	reminders    *entitySet[models.Reminder]

	bg     sync.WaitGroup
	bgCtx  context.Context
	cancel context.CancelFunc
}

// Option customises a Reconciler.
type Option func(*Reconciler)

// WithOnline sets the initial connectivity flag (default offline).
func WithOnline(online bool) Option {
	return func(r *Reconciler) { r.online = online }
}

// New builds a Reconciler bound to sess. It follows session transitions from
// then on and adopts a session that is already active.
func New(remote Remote, store cache.Repository, sess *session.Context, logger logging.Logger, opts ...Option) *Reconciler {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Reconciler{
		remote:    remote,
		cache:     store,
		logger:    logger,
		inflight:  make(map[models.ID]struct{}),
		discarded: make(map[models.ID]struct{}),
		bgCtx:     ctx,
		cancel:    cancel,
	}
	r.vehicles = r.newVehicleSet()
	r.maintenances = r.newMaintenanceSet()
	r.reminders = r.newReminderSet()
	r.vehicles.afterDelete = r.cascadeVehicleLocked
	r.vehicles.afterCanonical = r.vehicleConfirmedLocked

	for _, opt := range opts {
		opt(r)
	}

	sess.OnChange(r.onSessionChange)
	if s, ok := sess.Current(); ok {
		r.onSessionChange(context.Background(), nil, &s)
	}
	return r
}

func (r *Reconciler) newVehicleSet() *entitySet[models.Vehicle] {
	s := newEntitySet[models.Vehicle](cache.Vehicles)
	s.id = func(v models.Vehicle) models.ID { return v.ID }
	s.owner = func(v models.Vehicle) models.ID { return v.UserID }
	s.vehicleOf = func(models.Vehicle) models.ID { return "" }
	s.setID = func(v *models.Vehicle, id models.ID) { v.ID = id }
	s.setOwner = func(v *models.Vehicle, id models.ID) { v.UserID = id }
	s.list = func(ctx context.Context) ([]models.Vehicle, error) { return r.remote.ListVehicles(ctx, "") }
	s.create = r.remote.CreateVehicle
	s.update = r.remote.UpdateVehicle
	s.remove = r.remote.DeleteVehicle
	s.rollback = true
	return s
}

func (r *Reconciler) newMaintenanceSet() *entitySet[models.Maintenance] {
	s := newEntitySet[models.Maintenance](cache.Maintenances)
	s.id = func(m models.Maintenance) models.ID { return m.ID }
	s.owner = func(m models.Maintenance) models.ID { return m.UserID }
	s.vehicleOf = func(m models.Maintenance) models.ID { return m.VehicleID }
	s.setID = func(m *models.Maintenance, id models.ID) { m.ID = id }
	s.setOwner = func(m *models.Maintenance, id models.ID) { m.UserID = id }
	s.list = func(ctx context.Context) ([]models.Maintenance, error) { return r.remote.ListMaintenances(ctx, "") }
	s.create = r.remote.CreateMaintenance
	s.update = r.remote.UpdateMaintenance
	s.remove = r.remote.DeleteMaintenance
	return s
}

func (r *Reconciler) newReminderSet() *entitySet[models.Reminder] {
	s := newEntitySet[models.Reminder](cache.Reminders)
	s.id = func(m models.Reminder) models.ID { return m.ID }
	s.owner = func(m models.Reminder) models.ID { return m.UserID }
	s.vehicleOf = func(m models.Reminder) models.ID { return m.VehicleID }
	s.setID = func(m *models.Reminder, id models.ID) { m.ID = id }
	s.setOwner = func(m *models.Reminder, id models.ID) { m.UserID = id }
	s.list = func(ctx context.Context) ([]models.Reminder, error) { return r.remote.ListReminders(ctx, "") }
	s.create = r.remote.CreateReminder
	s.update = r.remote.UpdateReminder
	s.remove = r.remote.DeleteReminder
	return s
}

/***** lifecycle *****/

// Wait blocks until all background remote work has finished.
func (r *Reconciler) Wait() {
	r.bg.Wait()
}

// Close cancels outstanding remote calls, waits for them and closes every
// subscription.
func (r *Reconciler) Close() {
	r.cancel()
	r.bg.Wait()
	r.vehicles.out.Close()
	r.maintenances.out.Close()
	r.reminders.out.Close()
	r.vehicles.emptyRemote.Close()
	r.maintenances.emptyRemote.Close()
	r.reminders.emptyRemote.Close()
}

func (r *Reconciler) background(fn func(ctx context.Context)) {
	r.bg.Add(1)
	go func() {
		defer r.bg.Done()
		fn(r.bgCtx)
	}()
}

// inScope reports whether s is still the active session. Caller holds r.mu.
func (r *Reconciler) inScope(s scope) bool {
	return r.scope == s && s.userID != ""
}

/***** session and connectivity *****/

func (r *Reconciler) onSessionChange(ctx context.Context, prev, next *session.Session) {
	if next == nil {
		r.clear(ctx)
		return
	}
	if prev != nil && prev.UserID == next.UserID {
		return
	}
	r.load(ctx, next.UserID)

	if r.Online() {
		r.background(func(bg context.Context) {
			r.PushLocal(bg)
			r.RefreshAll(bg)
		})
	}
}

// clear drops in-memory state. The departing user's cache stays on disk.
func (r *Reconciler) clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scope = scope{epoch: r.scope.epoch + 1}
	r.vehicles.reset(nil)
	r.maintenances.reset(nil)
	r.reminders.reset(nil)
	r.publishLocked()
	r.logger.Info(ctx, "session cleared")
}

func (r *Reconciler) load(ctx context.Context, userID models.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scope = scope{userID: userID, epoch: r.scope.epoch + 1}
	uid := userID.String()
	loadSet(ctx, r, r.vehicles, uid)
	loadSet(ctx, r, r.maintenances, uid)
	loadSet(ctx, r, r.reminders, uid)
	r.publishLocked()
	r.logger.Info(ctx, "cache loaded", "user", uid,
		"vehicles", len(r.vehicles.items), "maintenances", len(r.maintenances.items), "reminders", len(r.reminders.items))
}

func loadSet[T any](ctx context.Context, r *Reconciler, s *entitySet[T], userID string) {
	items, err := cache.LoadList[T](ctx, r.cache, s.name.Key(userID))
	if err != nil {
		r.logger.Error(ctx, "cache load failed", "collection", s.name, "error", err)
		items = nil
	}
	s.reset(items)
}

// SetOnline records connectivity. Going from offline to online pushes
// never-synced records and then refreshes everything, in the background.
func (r *Reconciler) SetOnline(ctx context.Context, online bool) {
	r.mu.Lock()
	was := r.online
	r.online = online
	active := r.scope.userID != ""
	r.mu.Unlock()

	if was == online {
		return
	}
	r.logger.Info(ctx, "connectivity changed", "online", online)
	if online && active {
		r.background(func(bg context.Context) {
			r.PushLocal(bg)
			r.RefreshAll(bg)
		})
	}
}

func (r *Reconciler) Online() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.online
}

/***** persistence *****/

// persistLocked writes s to the cache and notifies its observers.
func persistLocked[T any](ctx context.Context, r *Reconciler, s *entitySet[T]) {
	if err := saveLocked(ctx, r, r.cache, s); err != nil {
		r.logger.Error(ctx, "cache write failed", "collection", s.name, "error", err)
	}
	s.out.Publish(s.items)
}

func saveLocked[T any](ctx context.Context, r *Reconciler, store cache.Repository, s *entitySet[T]) error {
	uid := r.scope.userID
	if uid == "" {
		return nil
	}
	return cache.SaveList(ctx, store, s.name.Key(uid.String()), s.items)
}

// persistDependentsLocked writes the maintenance and reminder collections in
// one cache transaction, then notifies their observers.
func (r *Reconciler) persistDependentsLocked(ctx context.Context, maintenances, reminders bool) {
	if !maintenances && !reminders {
		return
	}
	err := cache.InTx(ctx, r.cache, func(ctx context.Context, tx cache.Repository) error {
		if maintenances {
			if err := saveLocked(ctx, r, tx, r.maintenances); err != nil {
				return err
			}
		}
		if reminders {
			return saveLocked(ctx, r, tx, r.reminders)
		}
		return nil
	})
	if err != nil {
		r.logger.Error(ctx, "cache write failed", "collection", "dependents", "error", err)
	}
	if maintenances {
		r.maintenances.out.Publish(r.maintenances.items)
	}
	if reminders {
		r.reminders.out.Publish(r.reminders.items)
	}
}

func (r *Reconciler) publishLocked() {
	r.vehicles.out.Publish(r.vehicles.items)
	r.maintenances.out.Publish(r.maintenances.items)
	r.reminders.out.Publish(r.reminders.items)
}

/***** reads *****/

func (r *Reconciler) Vehicles() []models.Vehicle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vehicles.snapshot()
}

// Vehicle returns the vehicle with id, or ErrNotFound.
func (r *Reconciler) Vehicle(id models.ID) (models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.vehicles.get(id); ok {
		return v, nil
	}
	return models.Vehicle{}, ErrNotFound
}

// Maintenances returns the maintenances of vehicleID, or all of them when
// vehicleID is empty.
func (r *Reconciler) Maintenances(vehicleID models.ID) []models.Maintenance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maintenances.filter(func(m models.Maintenance) bool {
		return vehicleID == "" || m.VehicleID == vehicleID
	})
}

// Reminders returns the reminders of vehicleID, or all of them when
// vehicleID is empty.
func (r *Reconciler) Reminders(vehicleID models.ID) []models.Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reminders.filter(func(m models.Reminder) bool {
		return vehicleID == "" || m.VehicleID == vehicleID
	})
}

/***** observers *****/

func (r *Reconciler) SubscribeVehicles() (<-chan []models.Vehicle, func()) {
	return r.vehicles.out.Subscribe()
}

func (r *Reconciler) SubscribeMaintenances() (<-chan []models.Maintenance, func()) {
	return r.maintenances.out.Subscribe()
}

func (r *Reconciler) SubscribeReminders() (<-chan []models.Reminder, func()) {
	return r.reminders.out.Subscribe()
}

// SubscribeEmptyRemote reports, per refresh of collection c, whether the
// server returned nothing for the user.
func (r *Reconciler) SubscribeEmptyRemote(c cache.Collection) (<-chan bool, func()) {
	switch c {
	case cache.Vehicles:
		return r.vehicles.emptyRemote.Subscribe()
	case cache.Maintenances:
		return r.maintenances.emptyRemote.Subscribe()
	default:
		return r.reminders.emptyRemote.Subscribe()
	}
}
