package service

import (
	"testing"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/permission"
	"reviewhub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCreateCategory_AdminSuccess(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	categoryService := NewCategoryService(mockCategoryRepo)

	mockCategoryRepo.On("Create", mock.AnythingOfType("*models.Category")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Category).ID = 1
	}).Return(nil)

	resp, err := categoryService.Create(adminActor(), dto.CreateCategoryDTO{Name: "Movies", Slug: "movies"})

	assert.NoError(t, err)
	assert.Equal(t, "movies", resp.Slug)
	mockCategoryRepo.AssertExpectations(t)
}

func TestCreateCategory_NonAdminForbidden(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	categoryService := NewCategoryService(mockCategoryRepo)
	actor := reviewActor("user-1", permission.RoleUser)

	resp, err := categoryService.Create(actor, dto.CreateCategoryDTO{Name: "Movies", Slug: "movies"})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, resp)
	mockCategoryRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateCategory_SlugTaken(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	categoryService := NewCategoryService(mockCategoryRepo)

	mockCategoryRepo.On("Create", mock.AnythingOfType("*models.Category")).Return(repository.ErrDuplicate)

	resp, err := categoryService.Create(adminActor(), dto.CreateCategoryDTO{Name: "Movies", Slug: "movies"})

	assert.ErrorIs(t, err, ErrSlugInUse)
	assert.Nil(t, resp)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	categoryService := NewCategoryService(mockCategoryRepo)

	mockCategoryRepo.On("Delete", "ghost").Return(gorm.ErrRecordNotFound)

	err := categoryService.Delete(adminActor(), "ghost")

	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestListCategories_Public(t *testing.T) {
	mockCategoryRepo := new(MockCategoryRepository)
	categoryService := NewCategoryService(mockCategoryRepo)

	categories := []models.Category{{ID: 2, Name: "Books", Slug: "books"}, {ID: 1, Name: "Movies", Slug: "movies"}}
	mockCategoryRepo.On("List", "", 1, 20).Return(categories, int64(2), nil)

	resp, err := categoryService.List("", 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "books", resp.Data[0].Slug)
}

func TestCreateGenre_SlugTaken(t *testing.T) {
	mockGenreRepo := new(MockGenreRepository)
	genreService := NewGenreService(mockGenreRepo)

	mockGenreRepo.On("Create", mock.AnythingOfType("*models.Genre")).Return(repository.ErrDuplicate)

	resp, err := genreService.Create(adminActor(), dto.CreateGenreDTO{Name: "Drama", Slug: "drama"})

	assert.ErrorIs(t, err, ErrSlugInUse)
	assert.Nil(t, resp)
}

func TestDeleteGenre_AdminSuccess(t *testing.T) {
	mockGenreRepo := new(MockGenreRepository)
	genreService := NewGenreService(mockGenreRepo)

	mockGenreRepo.On("Delete", "drama").Return(nil)

	err := genreService.Delete(adminActor(), "drama")

	assert.NoError(t, err)
	mockGenreRepo.AssertExpectations(t)
}

func TestDeleteGenre_NonAdminForbidden(t *testing.T) {
	mockGenreRepo := new(MockGenreRepository)
	genreService := NewGenreService(mockGenreRepo)
	actor := reviewActor("mod-1", permission.RoleModerator)

	err := genreService.Delete(actor, "drama")

	assert.ErrorIs(t, err, ErrForbidden)
	mockGenreRepo.AssertNotCalled(t, "Delete", mock.Anything)
}
