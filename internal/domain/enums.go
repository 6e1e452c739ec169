package domain

import "fmt"

// Enumerations are closed string types so they serialize as their name in
// both BSON and JSON. Each carries an ordinal for clients that negotiate
// numeric values.

type ContentType string

const (
	ContentTypeMarkdown  ContentType = "Markdown"
	ContentTypeHtml      ContentType = "Html"
	ContentTypePlainText ContentType = "PlainText"
	ContentTypeVideo     ContentType = "Video"
	ContentTypeImage     ContentType = "Image"
	ContentTypeDocument  ContentType = "Document"
)

type contentTypeInfo struct {
	ordinal   int
	mimeType  string
	extension string
}

var contentTypes = map[ContentType]contentTypeInfo{
	ContentTypeMarkdown:  {1, "text/markdown", ".md"},
	ContentTypeHtml:      {2, "text/html", ".html"},
	ContentTypePlainText: {3, "text/plain", ".txt"},
	ContentTypeVideo:     {4, "video/*", ".mp4"},
	ContentTypeImage:     {5, "image/*", ".jpg"},
	ContentTypeDocument:  {6, "application/*", ".pdf"},
}

func (t ContentType) Ordinal() int             { return contentTypes[t].ordinal }
func (t ContentType) MimeType() string         { return contentTypes[t].mimeType }
func (t ContentType) DefaultExtension() string { return contentTypes[t].extension }

func ParseContentType(name string) (ContentType, error) {
	t := ContentType(name)
	if _, ok := contentTypes[t]; !ok {
		return "", fmt.Errorf("unknown content type %q", name)
	}
	return t, nil
}

func ContentTypeFromOrdinal(v int) (ContentType, error) {
	for t, info := range contentTypes {
		if info.ordinal == v {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown content type ordinal %d", v)
}

type PageStatus string

const (
	PageStatusDraft       PageStatus = "Draft"
	PageStatusUnderReview PageStatus = "UnderReview"
	PageStatusPublished   PageStatus = "Published"
	PageStatusArchived    PageStatus = "Archived"
)

var pageStatuses = map[PageStatus]int{
	PageStatusDraft:       1,
	PageStatusUnderReview: 2,
	PageStatusPublished:   3,
	PageStatusArchived:    4,
}

func (s PageStatus) Ordinal() int { return pageStatuses[s] }

func ParsePageStatus(name string) (PageStatus, error) {
	s := PageStatus(name)
	if _, ok := pageStatuses[s]; !ok {
		return "", fmt.Errorf("unknown page status %q", name)
	}
	return s, nil
}

func PageStatusFromOrdinal(v int) (PageStatus, error) {
	for s, ordinal := range pageStatuses {
		if ordinal == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown page status ordinal %d", v)
}

// UserRole ordinals form a total order of privilege.
type UserRole string

const (
	RoleReader        UserRole = "Reader"
	RoleWriter        UserRole = "Writer"
	RoleReviewer      UserRole = "Reviewer"
	RoleAdministrator UserRole = "Administrator"
)

var userRoles = map[UserRole]int{
	RoleReader:        1,
	RoleWriter:        2,
	RoleReviewer:      3,
	RoleAdministrator: 4,
}

func (r UserRole) Ordinal() int { return userRoles[r] }

// AllUserRoles lists the roles in ascending order of privilege.
func AllUserRoles() []UserRole {
	return []UserRole{RoleReader, RoleWriter, RoleReviewer, RoleAdministrator}
}

func ParseUserRole(name string) (UserRole, error) {
	r := UserRole(name)
	if _, ok := userRoles[r]; !ok {
		return "", fmt.Errorf("unknown user role %q", name)
	}
	return r, nil
}

func UserRoleFromOrdinal(v int) (UserRole, error) {
	for r, ordinal := range userRoles {
		if ordinal == v {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown user role ordinal %d", v)
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "Active"
	UserStatusInactive  UserStatus = "Inactive"
	UserStatusSuspended UserStatus = "Suspended"
)

var userStatuses = map[UserStatus]int{
	UserStatusActive:    1,
	UserStatusInactive:  2,
	UserStatusSuspended: 3,
}

func (s UserStatus) Ordinal() int { return userStatuses[s] }

func ParseUserStatus(name string) (UserStatus, error) {
	s := UserStatus(name)
	if _, ok := userStatuses[s]; !ok {
		return "", fmt.Errorf("unknown user status %q", name)
	}
	return s, nil
}

func UserStatusFromOrdinal(v int) (UserStatus, error) {
	for s, ordinal := range userStatuses {
		if ordinal == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown user status ordinal %d", v)
}
