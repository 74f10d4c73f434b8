package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var nairobi = time.FixedZone("EAT", 3*60*60)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ==================== BOOKINGS ====================

type fakeBookings struct {
	mu   sync.Mutex
	rows map[uuid.UUID]entity.Booking
}

func (f *fakeBookings) slotTaken(b *entity.Booking) bool {
	if b.StylistID == nil || !b.Status.BlocksSlot() {
		return false
	}
	for id, other := range f.rows {
		if id == b.ID || other.StylistID == nil || !other.Status.BlocksSlot() {
			continue
		}
		if *other.StylistID == *b.StylistID && other.Date.Equal(b.Date) && other.Time == b.Time {
			return true
		}
	}
	return false
}

func (f *fakeBookings) Create(ctx context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slotTaken(b) {
		return repository.ErrSlotTaken
	}
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeBookings) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (f *fakeBookings) matching(filter repository.BookingFilter) []*entity.Booking {
	out := []*entity.Booking{}
	for _, b := range f.rows {
		if filter.Phone != "" && b.Phone != filter.Phone {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Date != nil && !b.Date.Equal(*filter.Date) {
			continue
		}
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

func (f *fakeBookings) FindAll(ctx context.Context, filter repository.BookingFilter) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.matching(filter), nil
}

func (f *fakeBookings) CountAll(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.matching(filter))), nil
}

func (f *fakeBookings) Update(ctx context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[b.ID]; !ok {
		return repository.ErrNotFound
	}
	if f.slotTaken(b) {
		return repository.ErrSlotTaken
	}
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeBookings) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeBookings) FindUpcoming(ctx context.Context, from time.Time) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.Booking{}
	for _, b := range f.rows {
		if b.Date.Before(from) || b.Status.IsTerminal() {
			continue
		}
		b := b
		out = append(out, &b)
	}
	return out, nil
}

func (f *fakeBookings) FindBlockingTimes(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]entity.TimeOfDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.TimeOfDay{}
	for _, b := range f.rows {
		if b.StylistID != nil && *b.StylistID == stylistID && b.Date.Equal(date) && b.Status.BlocksSlot() {
			out = append(out, b.Time)
		}
	}
	return out, nil
}

func (f *fakeBookings) FindByDateAndStatus(ctx context.Context, date time.Time, status entity.BookingStatus) ([]*entity.Booking, error) {
	d := date
	return f.FindAll(ctx, repository.BookingFilter{Date: &d, Status: status})
}

func (f *fakeBookings) CompleteMany(ctx context.Context, ids []uuid.UUID, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range ids {
		b, ok := f.rows[id]
		if !ok || b.Status.IsTerminal() {
			continue
		}
		b.Status = entity.BookingStatusCompleted
		b.CompletedAt = &at
		f.rows[id] = b
		n++
	}
	return n, nil
}

// ==================== CATALOG ====================

type fakeServices struct {
	rows     map[uuid.UUID]entity.Service
	bookings *fakeBookings
}

func (f *fakeServices) Create(ctx context.Context, s *entity.Service) error {
	for _, other := range f.rows {
		if other.Name == s.Name {
			return repository.ErrDuplicate
		}
	}
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeServices) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeServices) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Service, error) {
	out := []*entity.Service{}
	for _, id := range ids {
		if s, ok := f.rows[id]; ok {
			out = append(out, &s)
		}
	}
	return out, nil
}

func (f *fakeServices) matching(filter repository.ServiceFilter) []*entity.Service {
	out := []*entity.Service{}
	for _, s := range f.rows {
		if filter.ActiveOnly && !s.IsActive {
			continue
		}
		if filter.Category != "" && s.Category != filter.Category {
			continue
		}
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeServices) FindAll(ctx context.Context, filter repository.ServiceFilter) ([]*entity.Service, error) {
	return f.matching(filter), nil
}

func (f *fakeServices) CountAll(ctx context.Context, filter repository.ServiceFilter) (int64, error) {
	return int64(len(f.matching(filter))), nil
}

func (f *fakeServices) Update(ctx context.Context, s *entity.Service) error {
	if _, ok := f.rows[s.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeServices) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	for _, b := range f.bookings.rows {
		if b.ServiceID == id {
			return repository.ErrReferenced
		}
	}
	delete(f.rows, id)
	return nil
}

type fakeStylists struct {
	rows     map[uuid.UUID]entity.Stylist
	links    map[uuid.UUID][]uuid.UUID
	services *fakeServices
}

func (f *fakeStylists) Create(ctx context.Context, s *entity.Stylist) error {
	for _, other := range f.rows {
		if other.Email == s.Email {
			return repository.ErrDuplicate
		}
	}
	ids := []uuid.UUID{}
	for _, svc := range s.Services {
		ids = append(ids, svc.ID)
	}
	f.links[s.ID] = ids
	row := *s
	row.Services = nil
	f.rows[s.ID] = row
	return nil
}

func (f *fakeStylists) FindByID(ctx context.Context, id uuid.UUID) (*entity.Stylist, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeStylists) FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Stylist, error) {
	out := []*entity.Stylist{}
	for _, s := range f.rows {
		if activeOnly && !s.IsActive {
			continue
		}
		s := s
		out = append(out, &s)
	}
	return out, nil
}

func (f *fakeStylists) CountAll(ctx context.Context, activeOnly bool) (int64, error) {
	all, _ := f.FindAll(ctx, activeOnly, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeStylists) Update(ctx context.Context, s *entity.Stylist) error {
	if _, ok := f.rows[s.ID]; !ok {
		return repository.ErrNotFound
	}
	row := *s
	row.Services = nil
	f.rows[s.ID] = row
	return nil
}

func (f *fakeStylists) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStylists) SetServices(ctx context.Context, stylistID uuid.UUID, serviceIDs []uuid.UUID) error {
	f.links[stylistID] = serviceIDs
	return nil
}

func (f *fakeStylists) LoadServices(ctx context.Context, stylists ...*entity.Stylist) error {
	for _, s := range stylists {
		s.Services, _ = f.services.FindByIDs(ctx, f.links[s.ID])
	}
	return nil
}

// ==================== REVIEWS / CONTACTS / SETTINGS ====================

type fakeReviews struct {
	rows map[uuid.UUID]entity.Review
}

func (f *fakeReviews) Create(ctx context.Context, r *entity.Review) error {
	for _, other := range f.rows {
		if other.BookingID == r.BookingID {
			return repository.ErrDuplicate
		}
	}
	f.rows[r.ID] = *r
	return nil
}

func (f *fakeReviews) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeReviews) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	for _, r := range f.rows {
		if r.BookingID == bookingID {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviews) FindByApproval(ctx context.Context, approved bool, limit, offset int) ([]*entity.Review, error) {
	out := []*entity.Review{}
	for _, r := range f.rows {
		if r.IsApproved == approved {
			r := r
			out = append(out, &r)
		}
	}
	return out, nil
}

func (f *fakeReviews) CountByApproval(ctx context.Context, approved bool) (int64, error) {
	all, _ := f.FindByApproval(ctx, approved, 0, 0)
	return int64(len(all)), nil
}

func (f *fakeReviews) Approve(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if r, ok := f.rows[id]; ok && !r.IsApproved {
			r.IsApproved = true
			f.rows[id] = r
			n++
		}
	}
	return n, nil
}

func (f *fakeReviews) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeReviews) GetApprovedStats(ctx context.Context) (float64, int64, error) {
	var sum, n int64
	for _, r := range f.rows {
		if r.IsApproved {
			sum += int64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

type fakeContacts struct {
	rows map[uuid.UUID]entity.ContactMessage
}

func (f *fakeContacts) Create(ctx context.Context, m *entity.ContactMessage) error {
	f.rows[m.ID] = *m
	return nil
}

func (f *fakeContacts) FindByID(ctx context.Context, id uuid.UUID) (*entity.ContactMessage, error) {
	m, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (f *fakeContacts) FindAll(ctx context.Context, limit, offset int) ([]*entity.ContactMessage, error) {
	out := []*entity.ContactMessage{}
	for _, m := range f.rows {
		m := m
		out = append(out, &m)
	}
	return out, nil
}

func (f *fakeContacts) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeContacts) Update(ctx context.Context, m *entity.ContactMessage) error {
	if _, ok := f.rows[m.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[m.ID] = *m
	return nil
}

func (f *fakeContacts) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeContacts) mark(ids []uuid.UUID, apply func(*entity.ContactMessage)) int64 {
	var n int64
	for _, id := range ids {
		if m, ok := f.rows[id]; ok {
			apply(&m)
			f.rows[id] = m
			n++
		}
	}
	return n
}

func (f *fakeContacts) MarkRead(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return f.mark(ids, func(m *entity.ContactMessage) { m.IsRead = true }), nil
}

func (f *fakeContacts) MarkReplied(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return f.mark(ids, func(m *entity.ContactMessage) { m.Replied = true }), nil
}

type fakeSettings struct {
	row *entity.SalonSettings
}

func (f *fakeSettings) GetOrCreate(ctx context.Context) (*entity.SalonSettings, error) {
	if f.row == nil {
		f.row = entity.DefaultSettings()
	}
	cp := *f.row
	return &cp, nil
}

func (f *fakeSettings) Update(ctx context.Context, s *entity.SalonSettings) error {
	cp := *s
	f.row = &cp
	return nil
}

// ==================== AUTH ====================

type fakeUsers struct {
	rows map[uuid.UUID]entity.User
}

func (f *fakeUsers) Create(ctx context.Context, u *entity.User) error {
	for _, other := range f.rows {
		if other.Email == u.Email || other.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) find(match func(entity.User) bool) *entity.User {
	for _, u := range f.rows {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.find(func(u entity.User) bool { return u.Email == email }), nil
}

func (f *fakeUsers) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return f.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (f *fakeUsers) Update(ctx context.Context, u *entity.User) error {
	if _, ok := f.rows[u.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[u.ID] = *u
	return nil
}

type fakeSessions struct {
	rows map[uuid.UUID]entity.Session
}

func (f *fakeSessions) Create(ctx context.Context, s *entity.Session) error {
	f.rows[s.Token] = *s
	return nil
}

func (f *fakeSessions) FindActive(ctx context.Context, jti uuid.UUID) (*entity.Session, error) {
	s, ok := f.rows[jti]
	if !ok || !s.IsActive(time.Now()) {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSessions) Rotate(ctx context.Context, previous uuid.UUID, next *entity.Session) error {
	if err := f.Revoke(ctx, next.UserID, previous); err != nil {
		return err
	}
	return f.Create(ctx, next)
}

func (f *fakeSessions) Revoke(ctx context.Context, userID, jti uuid.UUID) error {
	s, ok := f.rows[jti]
	if !ok || s.UserID != userID || !s.IsActive(time.Now()) {
		return repository.ErrNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	f.rows[jti] = s
	return nil
}

func (f *fakeSessions) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for jti, s := range f.rows {
		if s.UserID == userID && s.IsActive(time.Now()) {
			now := time.Now()
			s.RevokedAt = &now
			f.rows[jti] = s
			n++
		}
	}
	return n, nil
}

func (f *fakeSessions) PurgeExpired(ctx context.Context) (int64, error) {
	var n int64
	for jti, s := range f.rows {
		if !s.IsActive(time.Now()) {
			delete(f.rows, jti)
			n++
		}
	}
	return n, nil
}

// ==================== NOTIFIER ====================

type recordingNotifier struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (r *recordingNotifier) Enqueue(msg notification.Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return true
}

func (r *recordingNotifier) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for _, m := range r.messages {
		out = append(out, m.Kind)
	}
	return out
}

// ==================== FIXTURE ====================

type fixture struct {
	repo     *repository.Repository
	bookings *fakeBookings
	services *fakeServices
	stylists *fakeStylists
	reviews  *fakeReviews
	contacts *fakeContacts
	settings *fakeSettings
	users    *fakeUsers
	sessions *fakeSessions
	notifier *recordingNotifier
	log      *zap.Logger
}

func newFixture() *fixture {
	bookings := &fakeBookings{rows: map[uuid.UUID]entity.Booking{}}
	services := &fakeServices{rows: map[uuid.UUID]entity.Service{}, bookings: bookings}
	stylists := &fakeStylists{rows: map[uuid.UUID]entity.Stylist{}, links: map[uuid.UUID][]uuid.UUID{}, services: services}

	f := &fixture{
		bookings: bookings,
		services: services,
		stylists: stylists,
		reviews:  &fakeReviews{rows: map[uuid.UUID]entity.Review{}},
		contacts: &fakeContacts{rows: map[uuid.UUID]entity.ContactMessage{}},
		settings: &fakeSettings{},
		users:    &fakeUsers{rows: map[uuid.UUID]entity.User{}},
		sessions: &fakeSessions{rows: map[uuid.UUID]entity.Session{}},
		notifier: &recordingNotifier{},
		log:      zap.NewNop(),
	}
	f.repo = &repository.Repository{
		User:     f.users,
		Session:  f.sessions,
		Service:  f.services,
		Stylist:  f.stylists,
		Booking:  f.bookings,
		Review:   f.reviews,
		Contact:  f.contacts,
		Settings: f.settings,
	}
	return f
}

func (f *fixture) addService(name string, active bool) *entity.Service {
	s := entity.Service{
		Base:            entity.Base{ID: uuid.New()},
		Name:            name,
		Category:        entity.CategoryHair,
		DurationMinutes: entity.DefaultServiceDuration,
		IsActive:        active,
	}
	f.services.rows[s.ID] = s
	return &s
}

func (f *fixture) addStylist(name string) *entity.Stylist {
	s := entity.Stylist{
		Base:           entity.Base{ID: uuid.New()},
		Name:           name,
		Email:          name + "@salon.test",
		Specialization: entity.SpecializationGeneral,
		IsActive:       true,
	}
	f.stylists.rows[s.ID] = s
	return &s
}

func (f *fixture) addBooking(serviceID uuid.UUID, stylistID *uuid.UUID, date time.Time, tod entity.TimeOfDay, status entity.BookingStatus) *entity.Booking {
	b := entity.Booking{
		Base:      entity.Base{ID: uuid.New()},
		FullName:  "Client " + tod.String(),
		Phone:     "+254700000000",
		ServiceID: serviceID,
		StylistID: stylistID,
		Date:      date,
		Time:      tod,
		Status:    status,
	}
	f.bookings.rows[b.ID] = b
	return &b
}
