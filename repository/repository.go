// Package repository owns the authoritative Group and Student collections
// and is the only sanctioned mutation surface. Every mutation persists both
// collections through the store immediately and keeps them mutually
// consistent: no student may reference a deleted group.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bilal-attab/tuition_manager/ledger"
	"github.com/bilal-attab/tuition_manager/models"
	"github.com/bilal-attab/tuition_manager/store"
)

// Canonical persisted-state keys. The legacy keys are what earlier releases
// wrote; Load migrates them forward once when the canonical keys are absent.
const (
	groupsKey   = "tuition:groups"
	studentsKey = "tuition:students"

	legacyGroupsKey   = "tm_groups_v2"
	legacyStudentsKey = "tm_students_v2"
)

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// Repository holds the in-memory collections and the store they persist to.
// Construct one per process (or per test) with New; there is no global.
type Repository struct {
	mu       sync.Mutex
	kv       store.KV
	groups   []models.Group
	students []models.Student
}

func New(kv store.KV) *Repository {
	return &Repository{kv: kv}
}

// Load populates the collections from the store. Absent canonical keys fall
// back to the legacy keys and the data is rewritten under the canonical ones,
// so the rename cannot silently lose a user's records.
func (r *Repository) Load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.groups = loadWithLegacy[models.Group](ctx, r.kv, groupsKey, legacyGroupsKey)
	r.students = loadWithLegacy[models.Student](ctx, r.kv, studentsKey, legacyStudentsKey)
	r.persist(ctx)
}

func loadWithLegacy[T any](ctx context.Context, kv store.KV, key, legacyKey string) []T {
	if _, ok, err := kv.Get(ctx, key); err == nil && !ok {
		return store.Load(ctx, kv, legacyKey, []T{})
	}
	return store.Load(ctx, kv, key, []T{})
}

// persist writes both collections. Callers must hold the mutex.
func (r *Repository) persist(ctx context.Context) {
	store.Save(ctx, r.kv, groupsKey, r.groups)
	store.Save(ctx, r.kv, studentsKey, r.students)
}

// Groups returns a snapshot of the group collection.
func (r *Repository) Groups() []models.Group {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Group(nil), r.groups...)
}

// Students returns a snapshot of the student collection.
func (r *Repository) Students() []models.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Student(nil), r.students...)
}

// Group looks up a group by id.
func (r *Repository) Group(id string) (models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.groupLocked(id)
}

func (r *Repository) groupLocked(id string) (models.Group, error) {
	for _, g := range r.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Group{}, ErrGroupNotFound
}

// Student looks up a student by id.
func (r *Repository) Student(id string) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Student{}, ErrStudentNotFound
}

// StudentsOfGroup returns the group's students, unordered.
func (r *Repository) StudentsOfGroup(groupID string) []models.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Student
	for _, s := range r.students {
		if s.GroupID == groupID {
			out = append(out, s)
		}
	}
	return out
}

// AddGroup appends a new group. The debt-threshold field must be a positive
// integer here at the edge so the ledger's divisions are always defined.
func (r *Repository) AddGroup(ctx context.Context, name string, monthlyPrice float64, sessionsPerMonth int) (models.Group, error) {
	if strings.TrimSpace(name) == "" {
		return models.Group{}, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}
	if monthlyPrice < 0 {
		return models.Group{}, fmt.Errorf("%w: monthly price cannot be negative", ErrInvalidInput)
	}
	if sessionsPerMonth < 1 {
		return models.Group{}, fmt.Errorf("%w: sessions per month must be a positive integer", ErrInvalidInput)
	}

	g := models.Group{
		ID:               models.NewID(),
		Name:             name,
		MonthlyPrice:     monthlyPrice,
		SessionsPerMonth: sessionsPerMonth,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = append(r.groups, g)
	r.persist(ctx)
	return g, nil
}

// DeleteGroup removes the group and every student enrolled in it, so no
// orphaned students can survive the delete.
func (r *Repository) DeleteGroup(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.groupLocked(id); err != nil {
		return err
	}

	groups := r.groups[:0]
	for _, g := range r.groups {
		if g.ID != id {
			groups = append(groups, g)
		}
	}
	r.groups = groups

	students := r.students[:0]
	for _, s := range r.students {
		if s.GroupID != id {
			students = append(students, s)
		}
	}
	r.students = students

	r.persist(ctx)
	return nil
}

// AddStudent enrolls a new student in the group with a zeroed balance.
func (r *Repository) AddStudent(ctx context.Context, groupID, name, phone string, individualPrice *float64) (models.Student, error) {
	if strings.TrimSpace(name) == "" {
		return models.Student{}, fmt.Errorf("%w: student name is required", ErrInvalidInput)
	}
	if individualPrice != nil && *individualPrice < 0 {
		return models.Student{}, fmt.Errorf("%w: individual price cannot be negative", ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.groupLocked(groupID); err != nil {
		return models.Student{}, err
	}

	s := models.Student{
		ID:              models.NewID(),
		Name:            name,
		Phone:           phone,
		GroupID:         groupID,
		IndividualPrice: individualPrice,
	}
	r.students = append(r.students, s)
	r.persist(ctx)
	return s, nil
}

// StudentUpdate carries the fields an edit may change. Nil fields are left
// untouched; ClearIndividualPrice reverts the student to the group price.
// The group reference is not reassignable.
type StudentUpdate struct {
	Name                 *string
	Phone                *string
	SessionsOwed         *int
	IndividualPrice      *float64
	ClearIndividualPrice bool
}

// UpdateStudent merges the given fields into the student record.
func (r *Repository) UpdateStudent(ctx context.Context, id string, upd StudentUpdate) (models.Student, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return models.Student{}, fmt.Errorf("%w: student name is required", ErrInvalidInput)
	}
	if upd.IndividualPrice != nil && *upd.IndividualPrice < 0 {
		return models.Student{}, fmt.Errorf("%w: individual price cannot be negative", ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.students {
		if r.students[i].ID != id {
			continue
		}
		s := &r.students[i]
		if upd.Name != nil {
			s.Name = *upd.Name
		}
		if upd.Phone != nil {
			s.Phone = *upd.Phone
		}
		if upd.SessionsOwed != nil {
			s.SessionsOwed = *upd.SessionsOwed
		}
		if upd.ClearIndividualPrice {
			s.IndividualPrice = nil
		} else if upd.IndividualPrice != nil {
			s.IndividualPrice = upd.IndividualPrice
		}
		r.persist(ctx)
		return *s, nil
	}
	return models.Student{}, ErrStudentNotFound
}

// DeleteStudent removes the student.
func (r *Repository) DeleteStudent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.students {
		if r.students[i].ID == id {
			r.students = append(r.students[:i], r.students[i+1:]...)
			r.persist(ctx)
			return nil
		}
	}
	return ErrStudentNotFound
}

// MarkAttendance records one attended session for the student.
func (r *Repository) MarkAttendance(ctx context.Context, id string) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.students {
		if r.students[i].ID == id {
			r.students[i].SessionsOwed++
			r.persist(ctx)
			return r.students[i], nil
		}
	}
	return models.Student{}, ErrStudentNotFound
}

// MarkPayment records one billing-cycle payment: the owed counter drops by
// the group's sessions per month (possibly below zero, which is prepaid
// credit) and the collected total grows by the price in effect right now.
func (r *Repository) MarkPayment(ctx context.Context, id string) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.students {
		if r.students[i].ID != id {
			continue
		}
		g, err := r.groupLocked(r.students[i].GroupID)
		if err != nil {
			return models.Student{}, err
		}
		r.students[i].SessionsOwed -= g.SessionsPerMonth
		r.students[i].Collected += ledger.PriceInEffect(r.students[i], g)
		r.persist(ctx)
		return r.students[i], nil
	}
	return models.Student{}, ErrStudentNotFound
}

// IncrementTeacherSessions bumps the group's taught-session counter. It is
// independent of per-student attendance.
func (r *Repository) IncrementTeacherSessions(ctx context.Context, groupID string) (models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.groups {
		if r.groups[i].ID == groupID {
			r.groups[i].TeacherSessions++
			r.persist(ctx)
			return r.groups[i], nil
		}
	}
	return models.Group{}, ErrGroupNotFound
}
