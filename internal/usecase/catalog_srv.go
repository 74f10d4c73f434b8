package usecase

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const protectedServiceMessage = "Cannot delete this service as it is used in existing bookings. Please mark it as inactive instead."

// CatalogService manages services and stylists. The staff flag selects
// the projection and lifts the active-only filter.
type CatalogService interface {
	// Services
	ListServices(ctx context.Context, req *request.ListServicesRequest, staff bool) (*response.PaginatedResponse[response.ServiceResponse], error)
	GetService(ctx context.Context, serviceID string, staff bool) (*response.ServiceResponse, error)
	CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, serviceID string) error

	// Stylists
	ListStylists(ctx context.Context, req *request.PaginatedRequest, staff bool) (*response.PaginatedResponse[response.StylistResponse], error)
	GetStylist(ctx context.Context, stylistID string, staff bool) (*response.StylistResponse, error)
	CreateStylist(ctx context.Context, req *request.CreateStylistRequest) (*response.StylistResponse, error)
	UpdateStylist(ctx context.Context, stylistID string, req *request.UpdateStylistRequest) (*response.StylistResponse, error)
	DeleteStylist(ctx context.Context, stylistID string) error
}

type catalogService struct {
	repo *repository.Repository
	now  Clock
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, now Clock, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "catalog")),
	}
}

// ==================== SERVICES ====================

func (s *catalogService) ListServices(ctx context.Context, req *request.ListServicesRequest, staff bool) (*response.PaginatedResponse[response.ServiceResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := repository.ServiceFilter{
		Category:   entity.ServiceCategory(req.Category),
		ActiveOnly: !staff,
		Limit:      req.Limit(),
		Offset:     req.Offset(),
	}

	services, err := s.repo.Service.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	total, err := s.repo.Service.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count services: %w", err)
	}

	return response.NewPaginatedResponse(response.ServicesToResponse(services, staff), req.Page, req.Limit(), total), nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string, staff bool) (*response.ServiceResponse, error) {
	service, err := s.findService(ctx, serviceID, staff)
	if err != nil {
		return nil, err
	}

	resp := response.ServiceToResponse(service, staff)
	return &resp, nil
}

func (s *catalogService) CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, FieldError("price", "Price cannot be negative")
	}

	now := s.now()
	service := &entity.Service{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:            req.Name,
		Category:        entity.ServiceCategory(req.Category),
		Description:     req.Description,
		Price:           *req.Price,
		DurationMinutes: entity.DefaultServiceDuration,
		IsActive:        true,
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, FieldError("name", "Service with this name already exists")
		}
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.log.Info("Service created", zap.String("service_id", service.ID.String()), zap.String("name", service.Name))

	resp := response.ServiceToResponse(service, true)
	return &resp, nil
}

func (s *catalogService) UpdateService(ctx context.Context, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	service, err := s.findService(ctx, serviceID, true)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Category != nil {
		service.Category = entity.ServiceCategory(*req.Category)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, FieldError("price", "Price cannot be negative")
		}
		service.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	service.UpdatedAt = s.now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, FieldError("name", "Service with this name already exists")
		case errors.Is(err, repository.ErrNotFound):
			return nil, NotFoundError("Service not found")
		}
		return nil, fmt.Errorf("update service %s: %w", service.ID, err)
	}

	resp := response.ServiceToResponse(service, true)
	return &resp, nil
}

func (s *catalogService) DeleteService(ctx context.Context, serviceID string) error {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return NotFoundError("Service not found")
	}

	if err := s.repo.Service.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrReferenced):
			return ProtectedError(protectedServiceMessage, err)
		case errors.Is(err, repository.ErrNotFound):
			return NotFoundError("Service not found")
		}
		return fmt.Errorf("delete service %s: %w", id, err)
	}

	s.log.Info("Service deleted", zap.String("service_id", id.String()))
	return nil
}

func (s *catalogService) findService(ctx context.Context, serviceID string, staff bool) (*entity.Service, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, NotFoundError("Service not found")
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load service %s: %w", id, err)
	}
	if service == nil || (!staff && !service.IsActive) {
		return nil, NotFoundError("Service not found")
	}
	return service, nil
}

// ==================== STYLISTS ====================

func (s *catalogService) ListStylists(ctx context.Context, req *request.PaginatedRequest, staff bool) (*response.PaginatedResponse[response.StylistResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	stylists, err := s.repo.Stylist.FindAll(ctx, !staff, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list stylists: %w", err)
	}

	total, err := s.repo.Stylist.CountAll(ctx, !staff)
	if err != nil {
		return nil, fmt.Errorf("count stylists: %w", err)
	}

	if err := s.repo.Stylist.LoadServices(ctx, stylists...); err != nil {
		return nil, fmt.Errorf("load stylist services: %w", err)
	}

	return response.NewPaginatedResponse(response.StylistsToResponse(stylists, staff), req.Page, req.Limit(), total), nil
}

func (s *catalogService) GetStylist(ctx context.Context, stylistID string, staff bool) (*response.StylistResponse, error) {
	stylist, err := s.findStylist(ctx, stylistID, staff)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Stylist.LoadServices(ctx, stylist); err != nil {
		return nil, fmt.Errorf("load stylist services: %w", err)
	}

	resp := response.StylistToResponse(stylist, staff)
	return &resp, nil
}

func (s *catalogService) CreateStylist(ctx context.Context, req *request.CreateStylistRequest) (*response.StylistResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	services, err := s.resolveServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stylist := &entity.Stylist{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:           req.Name,
		Email:          req.Email,
		Phone:          utils.NormalizePhone(req.Phone),
		Specialization: entity.Specialization(req.Specialization),
		Bio:            req.Bio,
		PhotoURL:       req.PhotoURL,
		IsActive:       true,
		Services:       services,
	}
	if req.IsActive != nil {
		stylist.IsActive = *req.IsActive
	}

	if err := s.repo.Stylist.Create(ctx, stylist); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, FieldError("email", "Stylist with this email already exists")
		}
		return nil, fmt.Errorf("create stylist: %w", err)
	}

	s.log.Info("Stylist created",
		zap.String("stylist_id", stylist.ID.String()),
		zap.Int("services", len(services)),
	)

	resp := response.StylistToResponse(stylist, true)
	return &resp, nil
}

func (s *catalogService) UpdateStylist(ctx context.Context, stylistID string, req *request.UpdateStylistRequest) (*response.StylistResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	stylist, err := s.findStylist(ctx, stylistID, true)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		stylist.Name = *req.Name
	}
	if req.Email != nil {
		stylist.Email = *req.Email
	}
	if req.Phone != nil {
		stylist.Phone = utils.NormalizePhone(*req.Phone)
	}
	if req.Specialization != nil {
		stylist.Specialization = entity.Specialization(*req.Specialization)
	}
	if req.Bio != nil {
		stylist.Bio = *req.Bio
	}
	if req.PhotoURL != nil {
		stylist.PhotoURL = req.PhotoURL
	}
	if req.IsActive != nil {
		stylist.IsActive = *req.IsActive
	}
	stylist.UpdatedAt = s.now()

	var services []*entity.Service
	if req.ServiceIDs != nil {
		if services, err = s.resolveServices(ctx, *req.ServiceIDs); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Stylist.Update(ctx, stylist); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, FieldError("email", "Stylist with this email already exists")
		case errors.Is(err, repository.ErrNotFound):
			return nil, NotFoundError("Stylist not found")
		}
		return nil, fmt.Errorf("update stylist %s: %w", stylist.ID, err)
	}

	if req.ServiceIDs != nil {
		ids := make([]uuid.UUID, 0, len(services))
		for _, svc := range services {
			ids = append(ids, svc.ID)
		}
		if err := s.repo.Stylist.SetServices(ctx, stylist.ID, ids); err != nil {
			return nil, fmt.Errorf("set stylist services: %w", err)
		}
	}

	if err := s.repo.Stylist.LoadServices(ctx, stylist); err != nil {
		return nil, fmt.Errorf("load stylist services: %w", err)
	}

	resp := response.StylistToResponse(stylist, true)
	return &resp, nil
}

func (s *catalogService) DeleteStylist(ctx context.Context, stylistID string) error {
	id, err := uuid.Parse(stylistID)
	if err != nil {
		return NotFoundError("Stylist not found")
	}

	if err := s.repo.Stylist.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundError("Stylist not found")
		}
		return fmt.Errorf("delete stylist %s: %w", id, err)
	}

	s.log.Info("Stylist deleted", zap.String("stylist_id", id.String()))
	return nil
}

func (s *catalogService) findStylist(ctx context.Context, stylistID string, staff bool) (*entity.Stylist, error) {
	id, err := uuid.Parse(stylistID)
	if err != nil {
		return nil, NotFoundError("Stylist not found")
	}

	stylist, err := s.repo.Stylist.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load stylist %s: %w", id, err)
	}
	if stylist == nil || (!staff && !stylist.IsActive) {
		return nil, NotFoundError("Stylist not found")
	}
	return stylist, nil
}

// resolveServices loads the capability set; every id must exist.
func (s *catalogService) resolveServices(ctx context.Context, raw []string) ([]*entity.Service, error) {
	if len(raw) == 0 {
		return []*entity.Service{}, nil
	}

	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for _, r := range raw {
		id, err := parseID("service_ids", r)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	services, err := s.repo.Service.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	if len(services) != len(ids) {
		return nil, FieldError("service_ids", "One or more services do not exist")
	}
	return services, nil
}
