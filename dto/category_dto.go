package dto

type CreateSectionDTO struct {
	Name   string   `json:"name" binding:"required"`
	Images []string `json:"images"`
}

type CreateTypeDTO struct {
	Name    string   `json:"name" binding:"required"`
	Section string   `json:"section" binding:"required"` // parent section id
	Images  []string `json:"images"`
}
