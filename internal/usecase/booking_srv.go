package usecase

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/notification"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoints
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest, staff bool) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, req *request.ListBookingsRequest, staff bool) (*response.PaginatedResponse[response.BookingResponse], error)
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)

	// Staff endpoints
	UpcomingBookings(ctx context.Context) ([]response.BookingResponse, error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error
	ConfirmBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CompleteBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CompleteBookings(ctx context.Context, req *request.IDsRequest) (*response.BulkActionResponse, error)

	// Scheduled
	SendReminders(ctx context.Context) (int, error)
}

type bookingService struct {
	repo       *repository.Repository
	notifier   notification.Notifier
	adminEmail string
	now        Clock
	log        *zap.Logger
}

func NewBookingService(repo *repository.Repository, notifier notification.Notifier, adminEmail string, now Clock, log *zap.Logger) BookingService {
	return &bookingService{
		repo:       repo,
		notifier:   notifier,
		adminEmail: adminEmail,
		now:        now,
		log:        log.With(zap.String("service", "booking")),
	}
}

// ==================== CREATE ====================

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest, staff bool) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	tod, err := parseTime("time", req.Time)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !tod.On(date, now.Location()).After(now) {
		return nil, FieldError("date", "Booking time must be in the future")
	}

	service, stylist, err := s.loadReferences(ctx, req.ServiceID, req.StylistID)
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FullName:  req.FullName,
		Phone:     utils.NormalizePhone(req.Phone),
		Email:     req.Email,
		ServiceID: service.ID,
		Date:      date,
		Time:      tod,
		Notes:     req.Notes,
		Status:    entity.BookingStatusConfirmed,
		SendEmail: req.SendEmail,
	}
	if stylist != nil {
		booking.StylistID = &stylist.ID
	}

	// The public path confirms immediately; staff may park a booking as pending.
	if staff && req.Status == string(entity.BookingStatusPending) {
		booking.Status = entity.BookingStatusPending
	} else {
		booking.ConfirmedAt = &now
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ConflictError("This stylist is already booked at the selected time", err)
		}
		s.log.Error("Failed to create booking", zap.Error(err))
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(booking.Status)),
		zap.Bool("staff", staff),
	)

	details := notification.BookingDetails{Booking: booking, ServiceName: service.Name, Price: service.Price}
	if stylist != nil {
		details.StylistName = stylist.Name
	}

	settings := s.settings(ctx)
	if booking.Status == entity.BookingStatusConfirmed {
		s.notifyConfirmation(settings, details)
	}
	s.notifyAdmin(settings, details)

	resp := response.BookingToResponse(booking, service, stylist, now)
	return &resp, nil
}

// loadReferences resolves the service (required) and stylist (optional)
// a booking points at.
func (s *bookingService) loadReferences(ctx context.Context, rawServiceID string, rawStylistID *string) (*entity.Service, *entity.Stylist, error) {
	serviceID, err := parseID("service", rawServiceID)
	if err != nil {
		return nil, nil, err
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, nil, fmt.Errorf("load service %s: %w", serviceID, err)
	}
	if service == nil {
		return nil, nil, FieldError("service", "Selected service does not exist")
	}

	if rawStylistID == nil || *rawStylistID == "" {
		return service, nil, nil
	}

	stylistID, err := parseID("stylist", *rawStylistID)
	if err != nil {
		return nil, nil, err
	}

	stylist, err := s.repo.Stylist.FindByID(ctx, stylistID)
	if err != nil {
		return nil, nil, fmt.Errorf("load stylist %s: %w", stylistID, err)
	}
	if stylist == nil {
		return nil, nil, FieldError("stylist", "Selected stylist does not exist")
	}

	return service, stylist, nil
}

// ==================== READ ====================

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, booking)
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.ListBookingsRequest, staff bool) (*response.PaginatedResponse[response.BookingResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := repository.BookingFilter{
		Phone:  utils.NormalizePhone(req.Phone),
		Status: entity.BookingStatus(req.Status),
		Limit:  req.Limit(),
		Offset: req.Offset(),
	}

	if !staff && filter.Phone == "" {
		return nil, FieldError("phone", "Provide the phone number used for the booking")
	}

	if req.Date != "" {
		date, err := parseDate("date", req.Date)
		if err != nil {
			return nil, err
		}
		filter.Date = &date
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	data, err := s.toResponses(ctx, bookings)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *bookingService) UpcomingBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindUpcoming(ctx, today(s.now()))
	if err != nil {
		return nil, fmt.Errorf("list upcoming bookings: %w", err)
	}
	return s.toResponses(ctx, bookings)
}

// ==================== LIFECYCLE ====================

func (s *bookingService) ConfirmBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := booking.Confirm(s.now()); err != nil {
		return nil, transitionError(err)
	}

	if err := s.save(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking confirmed", zap.String("booking_id", booking.ID.String()))

	if details, err := s.details(ctx, booking); err != nil {
		s.log.Warn("Skipping confirmation message", zap.Error(err))
	} else {
		s.notifyConfirmation(s.settings(ctx), details)
	}

	return s.toResponse(ctx, booking)
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := booking.Cancel(s.now()); err != nil {
		return nil, transitionError(err)
	}

	if err := s.save(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", booking.ID.String()))
	return s.toResponse(ctx, booking)
}

func (s *bookingService) CompleteBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := booking.Complete(s.now()); err != nil {
		return nil, transitionError(err)
	}

	if err := s.save(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking completed", zap.String("booking_id", booking.ID.String()))
	return s.toResponse(ctx, booking)
}

// CompleteBookings completes the listed bookings in one statement;
// already completed or cancelled bookings are skipped.
func (s *bookingService) CompleteBookings(ctx context.Context, req *request.IDsRequest) (*response.BulkActionResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Booking.CompleteMany(ctx, ids, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ConflictError("A stylist slot is already held by another booking", err)
		}
		return nil, fmt.Errorf("complete bookings: %w", err)
	}

	s.log.Info("Bookings completed", zap.Int64("updated", updated), zap.Int("requested", len(ids)))
	return &response.BulkActionResponse{Updated: updated}, nil
}

func transitionError(err error) error {
	switch {
	case errors.Is(err, entity.ErrAlreadyConfirmed),
		errors.Is(err, entity.ErrAlreadyCancelled),
		errors.Is(err, entity.ErrBookingFinalized):
		return ConflictError(capitalize(err.Error()), err)
	case errors.Is(err, entity.ErrCancellationWindow):
		return PolicyError(capitalize(err.Error()), err)
	default:
		return err
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// ==================== UPDATE / DELETE ====================

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	booking, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		booking.FullName = *req.FullName
	}
	if req.Phone != nil {
		booking.Phone = utils.NormalizePhone(*req.Phone)
	}
	if req.Email != nil {
		booking.Email = req.Email
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}
	if req.SendEmail != nil {
		booking.SendEmail = *req.SendEmail
	}

	if req.ServiceID != nil {
		id, err := parseID("service", *req.ServiceID)
		if err != nil {
			return nil, err
		}
		service, err := s.repo.Service.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load service %s: %w", id, err)
		}
		if service == nil {
			return nil, FieldError("service", "Selected service does not exist")
		}
		booking.ServiceID = id
	}

	switch {
	case req.StylistID != nil && *req.StylistID != "":
		id, err := parseID("stylist", *req.StylistID)
		if err != nil {
			return nil, err
		}
		stylist, err := s.repo.Stylist.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load stylist %s: %w", id, err)
		}
		if stylist == nil {
			return nil, FieldError("stylist", "Selected stylist does not exist")
		}
		booking.StylistID = &id
	case req.ClearStylist:
		booking.StylistID = nil
	}

	rescheduled := false
	if req.Date != nil {
		date, err := parseDate("date", *req.Date)
		if err != nil {
			return nil, err
		}
		rescheduled = rescheduled || !date.Equal(booking.Date)
		booking.Date = date
	}
	if req.Time != nil {
		tod, err := parseTime("time", *req.Time)
		if err != nil {
			return nil, err
		}
		rescheduled = rescheduled || tod != booking.Time
		booking.Time = tod
	}

	now := s.now()
	if rescheduled && !booking.AppointmentAt(now.Location()).After(now) {
		return nil, FieldError("date", "Booking time must be in the future")
	}

	booking.UpdatedAt = now
	if err := s.save(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking updated", zap.String("booking_id", booking.ID.String()))
	return s.toResponse(ctx, booking)
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := parseID("id", bookingID)
	if err != nil {
		return NotFoundError("Booking not found")
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundError("Booking not found")
		}
		return fmt.Errorf("delete booking %s: %w", id, err)
	}

	return nil
}

// ==================== REMINDERS ====================

// SendReminders queues a reminder for every confirmed booking tomorrow
// whose customer asked for messages.
func (s *bookingService) SendReminders(ctx context.Context) (int, error) {
	tomorrow := today(s.now()).AddDate(0, 0, 1)

	bookings, err := s.repo.Booking.FindByDateAndStatus(ctx, tomorrow, entity.BookingStatusConfirmed)
	if err != nil {
		return 0, fmt.Errorf("load bookings for reminders: %w", err)
	}

	queued := 0
	for _, booking := range bookings {
		if !booking.SendEmail {
			continue
		}

		details, err := s.details(ctx, booking)
		if err != nil {
			s.log.Warn("Skipping reminder", zap.Error(err), zap.String("booking_id", booking.ID.String()))
			continue
		}

		if s.notifier.Enqueue(notification.BookingReminder(details)) {
			queued++
		}
	}

	s.log.Info("Reminders queued", zap.Int("queued", queued), zap.Time("date", tomorrow))
	return queued, nil
}

// ==================== HELPERS ====================

func (s *bookingService) find(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, NotFoundError("Booking not found")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", id, err)
	}
	if booking == nil {
		return nil, NotFoundError("Booking not found")
	}
	return booking, nil
}

// details gathers what the notification templates print about a booking.
func (s *bookingService) details(ctx context.Context, booking *entity.Booking) (notification.BookingDetails, error) {
	details := notification.BookingDetails{Booking: booking}

	service, err := s.repo.Service.FindByID(ctx, booking.ServiceID)
	if err != nil {
		return details, fmt.Errorf("load service %s: %w", booking.ServiceID, err)
	}
	if service != nil {
		details.ServiceName = service.Name
		details.Price = service.Price
	}

	if booking.StylistID != nil {
		stylist, err := s.repo.Stylist.FindByID(ctx, *booking.StylistID)
		if err != nil {
			return details, fmt.Errorf("load stylist %s: %w", *booking.StylistID, err)
		}
		if stylist != nil {
			details.StylistName = stylist.Name
		}
	}

	return details, nil
}

func (s *bookingService) save(ctx context.Context, booking *entity.Booking) error {
	err := s.repo.Booking.Update(ctx, booking)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrSlotTaken):
		return ConflictError("This stylist is already booked at the selected time", err)
	case errors.Is(err, repository.ErrNotFound):
		return NotFoundError("Booking not found")
	default:
		return fmt.Errorf("save booking %s: %w", booking.ID, err)
	}
}

func (s *bookingService) toResponse(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	out, err := s.toResponses(ctx, []*entity.Booking{booking})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// toResponses embeds services and stylists, loading each one once.
func (s *bookingService) toResponses(ctx context.Context, bookings []*entity.Booking) ([]response.BookingResponse, error) {
	serviceIDs := []uuid.UUID{}
	seen := map[uuid.UUID]bool{}
	for _, b := range bookings {
		if !seen[b.ServiceID] {
			seen[b.ServiceID] = true
			serviceIDs = append(serviceIDs, b.ServiceID)
		}
	}

	services := map[uuid.UUID]*entity.Service{}
	if len(serviceIDs) > 0 {
		found, err := s.repo.Service.FindByIDs(ctx, serviceIDs)
		if err != nil {
			return nil, fmt.Errorf("load booking services: %w", err)
		}
		for _, svc := range found {
			services[svc.ID] = svc
		}
	}

	stylists := map[uuid.UUID]*entity.Stylist{}
	for _, b := range bookings {
		if b.StylistID == nil {
			continue
		}
		if _, ok := stylists[*b.StylistID]; ok {
			continue
		}
		stylist, err := s.repo.Stylist.FindByID(ctx, *b.StylistID)
		if err != nil {
			return nil, fmt.Errorf("load booking stylist: %w", err)
		}
		stylists[*b.StylistID] = stylist
	}

	now := s.now()
	out := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		var stylist *entity.Stylist
		if b.StylistID != nil {
			stylist = stylists[*b.StylistID]
		}
		out = append(out, response.BookingToResponse(b, services[b.ServiceID], stylist, now))
	}
	return out, nil
}

// settings loads the salon settings for notification gating. A failure
// disables notifications for this call.
func (s *bookingService) settings(ctx context.Context) *entity.SalonSettings {
	settings, err := s.repo.Settings.GetOrCreate(ctx)
	if err != nil {
		s.log.Warn("Could not load settings, skipping notifications", zap.Error(err))
		return nil
	}
	return settings
}

func (s *bookingService) notifyConfirmation(settings *entity.SalonSettings, details notification.BookingDetails) {
	b := details.Booking
	if settings == nil || !settings.BookingConfirmationEnabled || !b.SendEmail || b.Email == nil || *b.Email == "" {
		return
	}
	s.notifier.Enqueue(notification.BookingConfirmation(details))
}

func (s *bookingService) notifyAdmin(settings *entity.SalonSettings, details notification.BookingDetails) {
	if settings == nil || !settings.AdminNotificationEnabled {
		return
	}
	to := adminRecipient(settings, s.adminEmail)
	if to == "" {
		return
	}
	s.notifier.Enqueue(notification.AdminBookingAlert(to, details))
}

func adminRecipient(settings *entity.SalonSettings, fallback string) string {
	if settings != nil && settings.Email != "" {
		return settings.Email
	}
	return fallback
}
