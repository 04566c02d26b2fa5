package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/repository/contract"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repository fakes. They honor the same specifications the GORM
// implementations translate to SQL, by switching on the spec type.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
}

func userMatches(u entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.ByGoogleId:
			if u.GoogleId == nil || *u.GoogleId != s.GoogleId {
				return false
			}
		case specification.ByOTP:
			if u.OTP == nil || *u.OTP != s.Code {
				return false
			}
			if u.OTPExpiresAt == nil || !u.OTPExpiresAt.After(s.Now) {
				return false
			}
		case specification.Unverified:
			if u.EmailVerified {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if userMatches(u, specs) {
			c := u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, u := range r.users {
		if userMatches(u, specs) {
			count++
		}
	}
	return count, nil
}

type fakeNoteRepo struct {
	mu    sync.Mutex
	notes map[uuid.UUID]entity.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]entity.Note)}
}

func noteMatches(n entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if n.UserId != s.UserID {
				return false
			}
		case specification.OrderBy:
			// ordering handled in FindAll
		default:
			return false
		}
	}
	return true
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mirror the column defaults the database would fill in.
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}
	r.notes[note.Id] = *note
	return nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes[note.Id] = *note
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notes {
		if noteMatches(n, specs) {
			c := n
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []*entity.Note
	for _, n := range r.notes {
		if noteMatches(n, specs) {
			c := n
			res = append(res, &c)
		}
	}

	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && strings.EqualFold(s.Field, "created_at") {
			sort.Slice(res, func(i, j int) bool {
				if s.Desc {
					return res[i].CreatedAt.After(res[j].CreatedAt)
				}
				return res[i].CreatedAt.Before(res[j].CreatedAt)
			})
		}
	}
	return res, nil
}

func (r *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notes {
		if noteMatches(n, specs) {
			count++
		}
	}
	return count, nil
}

type fakeUnitOfWork struct {
	users *fakeUserRepo
	notes *fakeNoteRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error         { return nil }
func (u *fakeUnitOfWork) Commit() error                           { return nil }
func (u *fakeUnitOfWork) Rollback() error                         { return nil }
func (u *fakeUnitOfWork) UserRepository() contract.UserRepository { return u.users }
func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository { return u.notes }

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func newFakeRepositoryFactory() *fakeRepositoryFactory {
	return &fakeRepositoryFactory{
		uow: &fakeUnitOfWork{
			users: newFakeUserRepo(),
			notes: newFakeNoteRepo(),
		},
	}
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeMailQueue struct {
	mu       sync.Mutex
	messages []dto.SendOTPMailMessage
}

func (p *fakeMailQueue) Publish(ctx context.Context, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if msg, ok := payload.(dto.SendOTPMailMessage); ok {
		p.messages = append(p.messages, msg)
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
