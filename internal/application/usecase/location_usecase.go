package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones. El nombre es único y la
// ubicación no puede eliminarse mientras conserve stock positivo.
type LocationUseCase struct {
	txRunner inventory.TxRunner
	repos    *repository.Repos
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(txRunner inventory.TxRunner, repos *repository.Repos) *LocationUseCase {
	return &LocationUseCase{txRunner: txRunner, repos: repos}
}

// Create crea una ubicación; nombre duplicado devuelve ErrDuplicate.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repos.Locations.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	location := &entity.Location{Name: in.Name, Address: in.Address, CreatedAt: now, UpdatedAt: now}
	if err := uc.repos.Locations.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación.
func (uc *LocationUseCase) GetByID(ctx context.Context, id int64) (*dto.LocationResponse, error) {
	location, err := uc.repos.Locations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(location), nil
}

// Update actualiza nombre y/o dirección; renombrar a un nombre tomado
// devuelve ErrDuplicate.
func (uc *LocationUseCase) Update(ctx context.Context, id int64, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repos.Locations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != location.Name {
		existing, err := uc.repos.Locations.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		location.Name = *in.Name
	}
	if in.Address != nil {
		location.Address = *in.Address
	}
	location.UpdatedAt = time.Now()
	if err := uc.repos.Locations.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(ctx context.Context, limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.repos.Locations.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete elimina una ubicación solo si ninguna fila de stock ahí es positiva.
func (uc *LocationUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(r *repository.Repos) error {
		location, err := r.Locations.GetByID(id)
		if err != nil {
			return err
		}
		if location == nil {
			return domain.ErrNotFound
		}
		hasStock, err := r.Stock.HasPositiveStock(id)
		if err != nil {
			return err
		}
		if hasStock {
			return domain.ErrInvalidState
		}
		return r.Locations.Delete(id)
	})
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
