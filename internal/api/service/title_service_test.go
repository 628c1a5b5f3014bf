package service

import (
	"context"
	"testing"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/permission"
	"reviewhub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newTitleServiceMocks() (*MockTitleRepository, *MockCategoryRepository, *MockGenreRepository, TitleService) {
	mockTitleRepo := new(MockTitleRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockGenreRepo := new(MockGenreRepository)
	return mockTitleRepo, mockCategoryRepo, mockGenreRepo,
		NewTitleService(mockTitleRepo, mockCategoryRepo, mockGenreRepo)
}

func adminActor() permission.Actor {
	return permission.Actor{ID: "admin-1", Username: "boss", Role: permission.RoleAdmin, Authenticated: true}
}

func TestCreateTitle_Success(t *testing.T) {
	mockTitleRepo, mockCategoryRepo, mockGenreRepo, titleService := newTitleServiceMocks()

	year := 1994
	category := &models.Category{ID: 3, Name: "Movies", Slug: "movies"}
	genres := []models.Genre{{ID: 1, Name: "Drama", Slug: "drama"}}

	mockCategoryRepo.On("FindBySlug", "movies").Return(category, nil)
	mockGenreRepo.On("FindBySlugs", []string{"drama"}).Return(genres, nil)
	mockTitleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Title).ID = 10
	}).Return(nil)

	categoryID := int64(3)
	reloaded := &models.Title{
		ID:         10,
		Name:       "The Shawshank Redemption",
		Year:       &year,
		CategoryID: &categoryID,
		Category:   category,
		Genres:     genres,
	}
	mockTitleRepo.On("GetByID", mock.Anything, int64(10)).Return(reloaded, nil)

	slug := "movies"
	resp, err := titleService.Create(context.Background(), adminActor(), dto.CreateTitleDTO{
		Name:     "The Shawshank Redemption",
		Year:     &year,
		Category: &slug,
		Genre:    []string{"drama"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.NotNil(t, resp.Category)
	assert.Equal(t, "movies", resp.Category.Slug)
	assert.Len(t, resp.Genre, 1)
	assert.Nil(t, resp.Rating)
	mockTitleRepo.AssertExpectations(t)
}

func TestCreateTitle_NonAdminForbidden(t *testing.T) {
	mockTitleRepo, _, _, titleService := newTitleServiceMocks()
	actor := reviewActor("user-1", permission.RoleModerator)

	resp, err := titleService.Create(context.Background(), actor, dto.CreateTitleDTO{Name: "X"})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, resp)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTitle_StaffFlagCountsAsAdmin(t *testing.T) {
	mockTitleRepo, _, mockGenreRepo, titleService := newTitleServiceMocks()
	actor := permission.Actor{ID: "staff-1", Role: permission.RoleUser, Staff: true, Authenticated: true}

	mockGenreRepo.On("FindBySlugs", []string{}).Return([]models.Genre{}, nil)
	mockTitleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Title).ID = 11
	}).Return(nil)
	mockTitleRepo.On("GetByID", mock.Anything, int64(11)).Return(&models.Title{ID: 11, Name: "X"}, nil)

	resp, err := titleService.Create(context.Background(), actor, dto.CreateTitleDTO{Name: "X"})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
}

func TestCreateTitle_UnknownCategory(t *testing.T) {
	_, mockCategoryRepo, _, titleService := newTitleServiceMocks()

	mockCategoryRepo.On("FindBySlug", "ghost").Return(nil, gorm.ErrRecordNotFound)

	slug := "ghost"
	resp, err := titleService.Create(context.Background(), adminActor(), dto.CreateTitleDTO{Name: "X", Category: &slug})

	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Nil(t, resp)
}

func TestCreateTitle_UnknownGenre(t *testing.T) {
	_, _, mockGenreRepo, titleService := newTitleServiceMocks()

	// one of the two slugs resolves; the request still fails whole
	mockGenreRepo.On("FindBySlugs", []string{"drama", "ghost"}).Return([]models.Genre{{ID: 1, Slug: "drama"}}, nil)

	resp, err := titleService.Create(context.Background(), adminActor(), dto.CreateTitleDTO{Name: "X", Genre: []string{"drama", "ghost"}})

	assert.ErrorIs(t, err, ErrGenreNotFound)
	assert.Nil(t, resp)
}

func TestCreateTitle_RepeatedGenreSlug(t *testing.T) {
	mockTitleRepo, _, mockGenreRepo, titleService := newTitleServiceMocks()

	// a repeated slug must not read as a missing genre
	mockGenreRepo.On("FindBySlugs", []string{"drama"}).Return([]models.Genre{{ID: 1, Slug: "drama"}}, nil)
	mockTitleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Title).ID = 12
	}).Return(nil)
	mockTitleRepo.On("GetByID", mock.Anything, int64(12)).Return(&models.Title{ID: 12, Name: "X", Genres: []models.Genre{{ID: 1, Slug: "drama"}}}, nil)

	resp, err := titleService.Create(context.Background(), adminActor(), dto.CreateTitleDTO{Name: "X", Genre: []string{"drama", "drama"}})

	assert.NoError(t, err)
	assert.Len(t, resp.Genre, 1)
	mockGenreRepo.AssertExpectations(t)
}

func TestCreateTitle_DuplicateName(t *testing.T) {
	mockTitleRepo, _, mockGenreRepo, titleService := newTitleServiceMocks()

	mockGenreRepo.On("FindBySlugs", []string{}).Return([]models.Genre{}, nil)
	mockTitleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title")).Return(repository.ErrDuplicate)

	resp, err := titleService.Create(context.Background(), adminActor(), dto.CreateTitleDTO{Name: "X"})

	assert.ErrorIs(t, err, ErrTitleNameInUse)
	assert.Nil(t, resp)
}

func TestUpdateTitle_PartialKeepsUnsetFields(t *testing.T) {
	mockTitleRepo, _, _, titleService := newTitleServiceMocks()

	year := 1999
	current := &models.Title{ID: 10, Name: "Old Name", Year: &year}
	mockTitleRepo.On("GetByID", mock.Anything, int64(10)).Return(current, nil)
	mockTitleRepo.On("Update", mock.Anything, current).Return(nil)

	name := "New Name"
	resp, err := titleService.Update(context.Background(), adminActor(), 10, dto.UpdateTitleDTO{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", resp.Name)
	assert.Equal(t, &year, resp.Year)
	mockTitleRepo.AssertNotCalled(t, "ReplaceGenres", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTitle_ClearCategory(t *testing.T) {
	mockTitleRepo, _, _, titleService := newTitleServiceMocks()

	categoryID := int64(3)
	current := &models.Title{ID: 10, Name: "X", CategoryID: &categoryID}
	mockTitleRepo.On("GetByID", mock.Anything, int64(10)).Return(current, nil)
	mockTitleRepo.On("Update", mock.Anything, current).Return(nil)

	empty := ""
	resp, err := titleService.Update(context.Background(), adminActor(), 10, dto.UpdateTitleDTO{Category: &empty})

	assert.NoError(t, err)
	assert.Nil(t, current.CategoryID)
	assert.Nil(t, resp.Category)
}

func TestUpdateTitle_ReplacesGenres(t *testing.T) {
	mockTitleRepo, _, mockGenreRepo, titleService := newTitleServiceMocks()

	current := &models.Title{ID: 10, Name: "X", Genres: []models.Genre{{ID: 1, Slug: "drama"}}}
	comedy := []models.Genre{{ID: 2, Name: "Comedy", Slug: "comedy"}}
	mockTitleRepo.On("GetByID", mock.Anything, int64(10)).Return(current, nil)
	mockTitleRepo.On("Update", mock.Anything, current).Return(nil)
	mockGenreRepo.On("FindBySlugs", []string{"comedy"}).Return(comedy, nil)
	mockTitleRepo.On("ReplaceGenres", mock.Anything, current, comedy).Return(nil)

	genre := []string{"comedy"}
	_, err := titleService.Update(context.Background(), adminActor(), 10, dto.UpdateTitleDTO{Genre: &genre})

	assert.NoError(t, err)
	mockTitleRepo.AssertExpectations(t)
	mockGenreRepo.AssertExpectations(t)
}

func TestUpdateTitle_NotFound(t *testing.T) {
	mockTitleRepo, _, _, titleService := newTitleServiceMocks()

	mockTitleRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	name := "X"
	resp, err := titleService.Update(context.Background(), adminActor(), 404, dto.UpdateTitleDTO{Name: &name})

	assert.ErrorIs(t, err, ErrTitleNotFound)
	assert.Nil(t, resp)
}

func TestGetTitle_CarriesComputedRating(t *testing.T) {
	mockTitleRepo, _, _, titleService := newTitleServiceMocks()

	rating := 7.5
	mockTitleRepo.On("GetByID", mock.Anything, int64(10)).Return(&models.Title{ID: 10, Name: "X", Rating: &rating}, nil)

	resp, err := titleService.GetByID(context.Background(), 10)

	assert.NoError(t, err)
	assert.NotNil(t, resp.Rating)
	assert.Equal(t, 7.5, *resp.Rating)
}

func TestDeleteTitle_NonAdminForbidden(t *testing.T) {
	mockTitleRepo, _, _, titleService := newTitleServiceMocks()
	actor := reviewActor("user-1", permission.RoleUser)

	err := titleService.Delete(context.Background(), actor, 10)

	assert.ErrorIs(t, err, ErrForbidden)
	mockTitleRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListTitles_PassesFilters(t *testing.T) {
	mockTitleRepo, _, _, titleService := newTitleServiceMocks()

	year := 1994
	filters := repository.TitleFilters{CategorySlug: "movies", Year: &year}
	mockTitleRepo.On("List", mock.Anything, filters, 2, 10).Return([]models.Title{{ID: 10, Name: "X"}}, int64(11), nil)

	resp, err := titleService.List(context.Background(), filters, 2, 10)

	assert.NoError(t, err)
	assert.Equal(t, 11, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Data, 1)
	mockTitleRepo.AssertExpectations(t)
}
