package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/google/uuid"
)

func NewGivesRepository() *InMemoryGivesRepository {
	return &InMemoryGivesRepository{
		byID: make(map[uuid.UUID]int),
	}
}

// InMemoryGivesRepository keeps the give log in a slice in the order entries
// were created.
type InMemoryGivesRepository struct {
	mu    sync.RWMutex
	gives []dao.Give
	byID  map[uuid.UUID]int
}

func (imgr *InMemoryGivesRepository) Close() error {
	return nil
}

func (imgr *InMemoryGivesRepository) Create(ctx context.Context, g dao.Give) (dao.Give, error) {
	imgr.mu.Lock()
	defer imgr.mu.Unlock()

	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Give{}, fmt.Errorf("could not generate ID: %w", err)
	}

	g.ID = newUUID
	g.Created = time.Now()
	g.Targets = append([]string{}, g.Targets...)

	imgr.byID[g.ID] = len(imgr.gives)
	imgr.gives = append(imgr.gives, g)

	return g, nil
}

func (imgr *InMemoryGivesRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Give, error) {
	imgr.mu.RLock()
	defer imgr.mu.RUnlock()

	idx, ok := imgr.byID[id]
	if !ok {
		return dao.Give{}, dao.ErrNotFound
	}

	return copyGive(imgr.gives[idx]), nil
}

func (imgr *InMemoryGivesRepository) GetAll(ctx context.Context) ([]dao.Give, error) {
	imgr.mu.RLock()
	defer imgr.mu.RUnlock()

	all := make([]dao.Give, len(imgr.gives))
	for i := range imgr.gives {
		all[i] = copyGive(imgr.gives[i])
	}

	return all, nil
}

func (imgr *InMemoryGivesRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Give, error) {
	imgr.mu.RLock()
	defer imgr.mu.RUnlock()

	var all []dao.Give
	for i := range imgr.gives {
		if imgr.gives[i].UserID == userID {
			all = append(all, copyGive(imgr.gives[i]))
		}
	}

	return all, nil
}

func copyGive(g dao.Give) dao.Give {
	g.Targets = append([]string{}, g.Targets...)
	return g
}
