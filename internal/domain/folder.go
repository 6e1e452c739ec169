package domain

import (
	"errors"
	"slices"
	"strings"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrPathRequired = errors.New("path is required")
)

// WikiFolder is a node in the folder forest. Path is a globally unique
// slash-delimited key curated independently of the parent pointer; the two
// are not cross-validated.
type WikiFolder struct {
	Base `bson:",inline"`

	Name           string   `bson:"name" json:"name"`
	Description    string   `bson:"description" json:"description"`
	Path           string   `bson:"path" json:"path"`
	ParentFolderID string   `bson:"parentFolderId,omitempty" json:"parentFolderId,omitempty"`
	SortOrder      int      `bson:"sortOrder" json:"sortOrder"`
	Tags           []string `bson:"tags" json:"tags"`
	IsPublic       bool     `bson:"isPublic" json:"isPublic"`
	AllowedRoles   []string `bson:"allowedRoles" json:"allowedRoles"`
}

func NewWikiFolder(name, description, path, parentFolderID string, isPublic bool, createdBy string) (*WikiFolder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}

	f := &WikiFolder{
		Base:           newBase(createdBy),
		Name:           name,
		Description:    description,
		Path:           path,
		ParentFolderID: parentFolderID,
		IsPublic:       isPublic,
		Tags:           []string{},
		AllowedRoles:   []string{},
	}
	f.record(FolderCreated{FolderID: f.ID, Name: f.Name, Path: f.Path})
	return f, nil
}

func (f *WikiFolder) UpdateDetails(name, description string, isPublic bool, updatedBy string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	f.Name = name
	f.Description = description
	f.IsPublic = isPublic
	f.touch(updatedBy)
	return nil
}

func (f *WikiFolder) UpdatePath(newPath, updatedBy string) error {
	if strings.TrimSpace(newPath) == "" {
		return ErrPathRequired
	}
	oldPath := f.Path
	f.Path = newPath
	f.touch(updatedBy)
	f.record(FolderPathChanged{FolderID: f.ID, OldPath: oldPath, NewPath: newPath})
	return nil
}

func (f *WikiFolder) Move(newParentFolderID, movedBy string) {
	f.ParentFolderID = newParentFolderID
	f.touch(movedBy)
	f.record(FolderMoved{FolderID: f.ID, NewParentID: newParentFolderID})
}

func (f *WikiFolder) UpdateSortOrder(sortOrder int) {
	f.SortOrder = sortOrder
	f.touch("")
}

func (f *WikiFolder) AddTag(tag string) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if !slices.Contains(f.Tags, normalized) {
		f.Tags = append(f.Tags, normalized)
		f.touch("")
	}
}

func (f *WikiFolder) RemoveTag(tag string) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if i := slices.Index(f.Tags, normalized); i >= 0 {
		f.Tags = slices.Delete(f.Tags, i, i+1)
		f.touch("")
	}
}

func (f *WikiFolder) SetAllowedRoles(roles []string) {
	f.AllowedRoles = append([]string{}, roles...)
	f.touch("")
}

// HasAccess mirrors WikiPage's visibility rule.
func (f *WikiFolder) HasAccess(u *User) bool {
	if f.IsPublic {
		return true
	}
	if u.Role == RoleAdministrator {
		return true
	}
	return slices.Contains(f.AllowedRoles, string(u.Role))
}

func (f *WikiFolder) IsRoot() bool {
	return f.ParentFolderID == ""
}
