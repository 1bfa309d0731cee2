// Package datastore holds the canonical users, projects and tasks the
// facade operates on. Reads hand out copies; writes go through Update so
// each read-modify-write happens under one lock.
package datastore

import (
	"slices"
	"sync"

	"github.com/huangang/teamboard/internal/models"
)

// Snapshot is a detached copy of every collection.
type Snapshot struct {
	Users    []models.User    `json:"users"`
	Projects []models.Project `json:"projects"`
	Tasks    []models.Task    `json:"tasks"`
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Users:    slices.Clone(s.Users),
		Projects: cloneProjects(s.Projects),
		Tasks:    slices.Clone(s.Tasks),
	}
}

type Store struct {
	mu   sync.Mutex
	data Snapshot
}

// New returns a store loaded with seed data.
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// NewWith returns a store holding exactly the given collections.
func NewWith(snap Snapshot) *Store {
	return &Store{data: snap.clone()}
}

func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Users)
}

func (s *Store) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProjects(s.data.Projects)
}

func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Tasks)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone()
}

func (s *Store) ReplaceUsers(users []models.User) {
	s.mu.Lock()
	s.data.Users = slices.Clone(users)
	s.mu.Unlock()
}

func (s *Store) ReplaceProjects(projects []models.Project) {
	s.mu.Lock()
	s.data.Projects = cloneProjects(projects)
	s.mu.Unlock()
}

func (s *Store) ReplaceTasks(tasks []models.Task) {
	s.mu.Lock()
	s.data.Tasks = slices.Clone(tasks)
	s.mu.Unlock()
}

// Reset reloads the seed collections.
func (s *Store) Reset() {
	s.mu.Lock()
	s.data = Snapshot{
		Users:    models.SeedUsers(),
		Projects: models.SeedProjects(),
		Tasks:    models.SeedTasks(),
	}
	s.mu.Unlock()
}

// Hydrate replaces each collection for which snap carries at least one
// item. Empty collections leave the current data in place.
func (s *Store) Hydrate(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(snap.Users) > 0 {
		s.data.Users = slices.Clone(snap.Users)
	}
	if len(snap.Projects) > 0 {
		s.data.Projects = cloneProjects(snap.Projects)
	}
	if len(snap.Tasks) > 0 {
		s.data.Tasks = slices.Clone(snap.Tasks)
	}
}

// Update runs fn against a working copy and commits it only when fn
// returns nil. Calls are serialized, so concurrent updates never
// interleave their reads and writes.
func (s *Store) Update(fn func(tx *Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&work); err != nil {
		return err
	}
	s.data = work
	return nil
}

// View runs fn against the live data under the lock. fn must not retain
// or modify anything it is given.
func (s *Store) View(fn func(data *Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

func cloneProjects(in []models.Project) []models.Project {
	if in == nil {
		return nil
	}
	out := make([]models.Project, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
