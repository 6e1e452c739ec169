package wikifolder

import (
	"time"

	"wikiarea-backend/internal/domain"
)

type WikiFolderDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Path           string    `json:"path"`
	ParentFolderID string    `json:"parentFolderId,omitempty"`
	SortOrder      int       `json:"sortOrder"`
	Tags           []string  `json:"tags"`
	IsPublic       bool      `json:"isPublic"`
	AllowedRoles   []string  `json:"allowedRoles"`
	IsRoot         bool      `json:"isRoot"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	CreatedBy      string    `json:"createdBy"`
	UpdatedBy      string    `json:"updatedBy,omitempty"`
}

func toWikiFolderDTO(f *domain.WikiFolder) WikiFolderDTO {
	return WikiFolderDTO{
		ID:             f.ID,
		Name:           f.Name,
		Description:    f.Description,
		Path:           f.Path,
		ParentFolderID: f.ParentFolderID,
		SortOrder:      f.SortOrder,
		Tags:           f.Tags,
		IsPublic:       f.IsPublic,
		AllowedRoles:   f.AllowedRoles,
		IsRoot:         f.IsRoot(),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
		CreatedBy:      f.CreatedBy,
		UpdatedBy:      f.UpdatedBy,
	}
}
