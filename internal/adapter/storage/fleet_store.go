package storage

import (
	"context"
	"errors"
	"io/fs"

	"github.com/velocity-rentals/velocity_rental_service/internal/core/domain"
)

// FleetStore implements ports.FleetRepository. On first run (or after a
// corrupt file) the catalog is re-seeded and instances are generated from the
// allocation table.
type FleetStore struct {
	store *FileStore
}

func NewFleetStore(store *FileStore) (*FleetStore, error) {
	f := &FleetStore{store: store}

	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var models []*domain.BikeModel
	if err := f.store.read(modelsKey, &models); errors.Is(err, fs.ErrNotExist) || len(models) == 0 {
		if err := f.store.write(modelsKey, seedModels()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	var instances []*domain.BikeInstance
	if err := f.store.read(instancesKey, &instances); errors.Is(err, fs.ErrNotExist) || len(instances) == 0 {
		generated := GenerateInstances(seedAllocations())
		if err := f.store.write(instancesKey, generated); err != nil {
			return nil, err
		}
		f.store.logger.Info("Fleet initialized", map[string]interface{}{
			"instances": len(generated),
		})
	} else if err != nil {
		return nil, err
	}

	return f, nil
}

func (f *FleetStore) ListModels(ctx context.Context) ([]*domain.BikeModel, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()

	var models []*domain.BikeModel
	if err := f.store.read(modelsKey, &models); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return seedModels(), nil
		}
		return nil, err
	}
	return models, nil
}

func (f *FleetStore) GetModelByID(ctx context.Context, id string) (*domain.BikeModel, error) {
	models, err := f.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	for _, model := range models {
		if model.ID == id {
			return model, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "bike model", ID: id}
}

func (f *FleetStore) ListInstances(ctx context.Context) ([]*domain.BikeInstance, error) {
	f.store.mu.RLock()
	defer f.store.mu.RUnlock()
	return f.loadInstancesLocked()
}

func (f *FleetStore) ListInstancesByCity(ctx context.Context, city string) ([]*domain.BikeInstance, error) {
	all, err := f.ListInstances(ctx)
	if err != nil {
		return nil, err
	}
	var out []*domain.BikeInstance
	for _, instance := range all {
		if instance.City == city {
			out = append(out, instance)
		}
	}
	return out, nil
}

func (f *FleetStore) UpdateInstance(ctx context.Context, instance *domain.BikeInstance) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	all, err := f.loadInstancesLocked()
	if err != nil {
		return err
	}
	for i, existing := range all {
		if existing.ID == instance.ID {
			updated := *instance
			all[i] = &updated
			return f.store.write(instancesKey, all)
		}
	}
	return domain.NotFoundError{Resource: "bike instance", ID: instance.ID}
}

func (f *FleetStore) loadInstancesLocked() ([]*domain.BikeInstance, error) {
	var instances []*domain.BikeInstance
	if err := f.store.read(instancesKey, &instances); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*domain.BikeInstance{}, nil
		}
		return nil, err
	}
	return instances, nil
}
