package dto

import "reviewhub/internal/api/models"

// Categories and genres share a shape: a display name plus a unique slug.

type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=40"`
	Slug string `json:"slug" binding:"required,max=40"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=40"`
	Slug string `json:"slug" binding:"required,max=40"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (d CreateCategoryDTO) ToModel() models.Category {
	return models.Category{Name: d.Name, Slug: d.Slug}
}

func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}

func (d CreateGenreDTO) ToModel() models.Genre {
	return models.Genre{Name: d.Name, Slug: d.Slug}
}

func GenreFromModel(g models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}
