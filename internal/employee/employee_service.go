package employee

import (
	"context"
	"errors"
	"net/http"

	"eduledger/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEmployeeNotFound = apperror.New(
	apperror.CodeNotFound,
	"employee not found",
	http.StatusNotFound,
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	employee := &Employee{
		ID:          uuid.New(),
		FullName:    req.FullName,
		Role:        req.Role,
		Designation: req.Designation,
		Phone:       req.Phone,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*employee), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, employee := range employees {
		resp[i] = mapToResponse(employee)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*employee), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	employee.FullName = req.FullName
	employee.Role = req.Role
	employee.Designation = req.Designation
	employee.Phone = req.Phone
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*employee), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.findEmployee(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) findEmployee(ctx context.Context, id string) (*Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.ErrInvalidInput
	}

	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

func mapToResponse(employee Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          employee.ID.String(),
		FullName:    employee.FullName,
		Role:        employee.Role,
		Designation: employee.Designation,
		Phone:       employee.Phone,
		IsActive:    employee.IsActive,
	}
}
