package service

import (
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/permission"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

// CategoryService and GenreService carry the same operations over the two
// taxonomy tables: public listing, admin-only create and delete by slug.

type CategoryService interface {
	List(search string, page, pageSize int) (*dto.PaginatedResponse[dto.CategoryResponse], error)
	Create(actor permission.Actor, in dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(actor permission.Actor, slug string) error
}

type GenreService interface {
	List(search string, page, pageSize int) (*dto.PaginatedResponse[dto.GenreResponse], error)
	Create(actor permission.Actor, in dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Delete(actor permission.Actor, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(search string, page, pageSize int) (*dto.PaginatedResponse[dto.CategoryResponse], error) {
	categories, total, err := s.repo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, dto.CategoryFromModel(c))
	}
	return dto.NewPaginatedResponse(resp, int(total), page, pageSize), nil
}

func (s *categoryService) Create(actor permission.Actor, in dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	if !permission.CanManageCatalog(actor) {
		return nil, ErrForbidden
	}
	category := in.ToModel()
	if err := s.repo.Create(&category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}
	resp := dto.CategoryFromModel(category)
	return &resp, nil
}

// Delete drops the category; titles referencing it fall back to no
// category through the storage-level SET NULL.
func (s *categoryService) Delete(actor permission.Actor, slug string) error {
	if !permission.CanManageCatalog(actor) {
		return ErrForbidden
	}
	if err := s.repo.Delete(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) List(search string, page, pageSize int) (*dto.PaginatedResponse[dto.GenreResponse], error) {
	genres, total, err := s.repo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		resp = append(resp, dto.GenreFromModel(g))
	}
	return dto.NewPaginatedResponse(resp, int(total), page, pageSize), nil
}

func (s *genreService) Create(actor permission.Actor, in dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	if !permission.CanManageCatalog(actor) {
		return nil, ErrForbidden
	}
	genre := in.ToModel()
	if err := s.repo.Create(&genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugInUse
		}
		return nil, err
	}
	resp := dto.GenreFromModel(genre)
	return &resp, nil
}

func (s *genreService) Delete(actor permission.Actor, slug string) error {
	if !permission.CanManageCatalog(actor) {
		return ErrForbidden
	}
	if err := s.repo.Delete(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}
