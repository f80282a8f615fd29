package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/campushub/support-service/core"
	"github.com/campushub/support-service/core/support"
)

type supportRepository struct {
	db *supportTable
}

var _ support.Repository = (*supportRepository)(nil)

func NewSupportRepository(db *DB) *supportRepository {
	return &supportRepository{db: db.support}
}

func (repo *supportRepository) query() []support.Support {
	sups := make([]support.Support, 0, len(repo.db.table))
	for _, sup := range repo.db.table {
		sups = append(sups, *sup)
	}
	return sups
}

// sortSupports orders sups in place. Only the first ordering is honored;
// unknown fields fall back to the newest-first default.
func sortSupports(sups []support.Support, ordering []core.DBOrdering) {
	ord := core.DBOrdering{Field: "submitted_on"}
	if len(ordering) > 0 {
		ord = ordering[0]
	}
	sort.SliceStable(sups, func(i, j int) bool {
		var less bool
		switch ord.Field {
		case "title":
			less = sups[i].Title < sups[j].Title
		case "status":
			less = sups[i].Status < sups[j].Status
		case "owner_id":
			less = sups[i].OwnerID < sups[j].OwnerID
		default:
			less = sups[i].SubmittedOn.Before(sups[j].SubmittedOn)
		}
		if ord.Ascending {
			return less
		}
		return !less
	})
}

func (repo *supportRepository) CreateSupport(_ context.Context, sup support.Support) (support.Support, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if sup.ID == "" {
		sup.ID = uuid.New().String()
	}
	repo.db.table[sup.ID] = &sup
	return sup, nil
}

func (repo *supportRepository) QueryAllSupports(_ context.Context, ordering []core.DBOrdering) ([]support.Support, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sups := repo.query()
	sortSupports(sups, ordering)
	return sups, nil
}

func (repo *supportRepository) GetSupportByID(_ context.Context, id string) (support.Support, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sup, ok := repo.db.table[id]; ok {
		return *sup, nil
	}
	return support.Support{}, support.ErrNotFound
}

func (repo *supportRepository) FilterSupportsByOwner(_ context.Context, ownerID int, ordering []core.DBOrdering) ([]support.Support, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var sups []support.Support
	for _, sup := range repo.query() {
		if sup.OwnerID == ownerID {
			sups = append(sups, sup)
		}
	}
	sortSupports(sups, ordering)
	return sups, nil
}

func (repo *supportRepository) FilterSupportsByStatus(_ context.Context, status support.Status, ordering []core.DBOrdering) ([]support.Support, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var sups []support.Support
	for _, sup := range repo.query() {
		if sup.Status == status {
			sups = append(sups, sup)
		}
	}
	sortSupports(sups, ordering)
	return sups, nil
}

func (repo *supportRepository) UpdateSupport(_ context.Context, sup support.Support) (support.Support, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[sup.ID]
	if !ok {
		return support.Support{}, support.ErrNotFound
	}
	sup.OwnerID = orig.OwnerID // immutable
	sup.SubmittedOn = orig.SubmittedOn
	repo.db.table[sup.ID] = &sup
	return sup, nil
}

func (repo *supportRepository) DeleteSupport(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return support.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
