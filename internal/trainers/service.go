package trainers

import (
	"context"
	"errors"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"

	"academy/internal/httpapi"
	"academy/pkg/apperrors"
	"academy/pkg/sentinel"
)

// MaxPhotoSize bounds trainer photo uploads.
const MaxPhotoSize = 5 << 20

type Service struct {
	store  Store
	photos PhotoStorage
	now    func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store Store, photos PhotoStorage, opts ...Option) *Service {
	s := &Service{store: store, photos: photos, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	NameEn       string  `json:"nameEn"`
	NameAr       string  `json:"nameAr"`
	BioEn        *string `json:"bioEn"`
	BioAr        *string `json:"bioAr"`
	SpecialityID *int64  `json:"specialityId"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Active       *bool   `json:"active"`
}

type UpdateInput struct {
	NameEn       *string `json:"nameEn"`
	NameAr       *string `json:"nameAr"`
	BioEn        *string `json:"bioEn"`
	BioAr        *string `json:"bioAr"`
	SpecialityID *int64  `json:"specialityId"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Active       *bool   `json:"active"`
}

// Create stores a trainer; absent active defaults to true.
func (s *Service) Create(ctx context.Context, in CreateInput) (Trainer, error) {
	now := s.now().UTC()
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	trainer := Trainer{
		ID:           uuid.New(),
		NameEn:       in.NameEn,
		NameAr:       in.NameAr,
		BioEn:        in.BioEn,
		BioAr:        in.BioAr,
		SpecialityID: in.SpecialityID,
		Email:        in.Email,
		Phone:        in.Phone,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, trainer); err != nil {
		return Trainer{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create trainer")
	}
	return trainer, nil
}

func (s *Service) Get(ctx context.Context, id string) (Trainer, error) {
	tid, err := uuid.Parse(id)
	if err != nil {
		return Trainer{}, notFound(id)
	}
	trainer, err := s.store.FindByID(ctx, tid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Trainer{}, notFound(id)
	}
	if err != nil {
		return Trainer{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load trainer")
	}
	return trainer, nil
}

func (s *Service) List(ctx context.Context, search string, active *bool, page httpapi.Page) (int, []Trainer, error) {
	q := ListQuery{Search: search, Active: active, Offset: page.Offset(), Limit: page.PerPage}
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count trainers")
	}
	list, err := s.store.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list trainers")
	}
	return total, list, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Trainer, error) {
	trainer, err := s.Get(ctx, id)
	if err != nil {
		return Trainer{}, err
	}

	if in.NameEn != nil {
		trainer.NameEn = *in.NameEn
	}
	if in.NameAr != nil {
		trainer.NameAr = *in.NameAr
	}
	if in.BioEn != nil {
		trainer.BioEn = in.BioEn
	}
	if in.BioAr != nil {
		trainer.BioAr = in.BioAr
	}
	if in.SpecialityID != nil {
		trainer.SpecialityID = in.SpecialityID
	}
	if in.Email != nil {
		trainer.Email = in.Email
	}
	if in.Phone != nil {
		trainer.Phone = in.Phone
	}
	if in.Active != nil {
		trainer.Active = *in.Active
	}
	trainer.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, trainer); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Trainer{}, notFound(id)
		}
		return Trainer{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update trainer")
	}
	return trainer, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tid, err := uuid.Parse(id)
	if err != nil {
		return notFound(id)
	}
	if err := s.store.Delete(ctx, tid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete trainer")
	}
	return nil
}

// ToggleActive flips the active flag and returns the new state.
func (s *Service) ToggleActive(ctx context.Context, id string) (Trainer, error) {
	trainer, err := s.Get(ctx, id)
	if err != nil {
		return Trainer{}, err
	}
	trainer.Active = !trainer.Active
	trainer.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, trainer); err != nil {
		return Trainer{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update trainer")
	}
	return trainer, nil
}

// SavePhoto validates and stores an uploaded photo, replacing any previous
// one, and records its URL on the trainer.
func (s *Service) SavePhoto(ctx context.Context, id, contentType string, content io.Reader) (Trainer, error) {
	trainer, err := s.Get(ctx, id)
	if err != nil {
		return Trainer{}, err
	}

	if !strings.HasPrefix(contentType, "image/") {
		return Trainer{}, apperrors.New(apperrors.CodeValidation, "Only image files are allowed")
	}

	url, err := s.photos.Save(ctx, photoExt(contentType), content)
	if err != nil {
		return Trainer{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to store photo")
	}

	if trainer.PhotoURL != nil {
		// Previous photo is orphaned otherwise; removal failure is not fatal.
		_ = s.photos.Remove(ctx, *trainer.PhotoURL)
	}

	trainer.PhotoURL = &url
	trainer.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, trainer); err != nil {
		return Trainer{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update trainer")
	}
	return trainer, nil
}

// Exists reports whether a trainer id references a stored trainer.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.store.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load trainer")
	}
	return true, nil
}

func photoExt(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ".img"
	}
	return exts[0]
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "Trainer with ID %s not found", id)
}
