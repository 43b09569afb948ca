package vehicle

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fletes/internal/page"
	"github.com/MrJamesThe3rd/fletes/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=vehicle
type Repository interface {
	CreateVehicle(ctx context.Context, v *Vehicle) error
	GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	UpdateVehicle(ctx context.Context, v *Vehicle) error
	DeleteVehicle(ctx context.Context, id uuid.UUID) error
	ListVehicles(ctx context.Context, filter ListFilter) ([]*Vehicle, int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name  string `json:"name" validate:"required"`
	Brand string `json:"brand" validate:"required"`
	Model string `json:"model" validate:"required"`
	Color string `json:"color" validate:"required"`
	Plate string `json:"plate" validate:"required"`
}

type ListFilter struct {
	Search string // Matches name or plate
	Page   page.Request
}

func (p Params) normalize() Params {
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Model = strings.TrimSpace(p.Model)
	p.Color = strings.TrimSpace(p.Color)
	p.Plate = strings.ToUpper(strings.Join(strings.Fields(p.Plate), ""))

	return p
}

func (s *Service) Create(ctx context.Context, params Params) (*Vehicle, error) {
	params = params.normalize()
	if err := validate.Struct(params).OrNil(); err != nil {
		return nil, err
	}

	v := &Vehicle{
		Name:  params.Name,
		Brand: params.Brand,
		Model: params.Model,
		Color: params.Color,
		Plate: params.Plate,
	}
	if err := s.repo.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	return s.repo.GetVehicle(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Vehicle, error) {
	params = params.normalize()
	if err := validate.Struct(params).OrNil(); err != nil {
		return nil, err
	}

	v, err := s.repo.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	v.Name = params.Name
	v.Brand = params.Brand
	v.Model = params.Model
	v.Color = params.Color
	v.Plate = params.Plate

	if err := s.repo.UpdateVehicle(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteVehicle(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) (page.Result[*Vehicle], error) {
	filter.Page = filter.Page.Normalize()

	vehicles, total, err := s.repo.ListVehicles(ctx, filter)
	if err != nil {
		return page.Result[*Vehicle]{}, err
	}

	return page.NewResult(vehicles, total, filter.Page), nil
}
