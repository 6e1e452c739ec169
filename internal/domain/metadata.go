package domain

// PageMetadata holds free-form SEO fields attached to a wiki page.
type PageMetadata struct {
	MetaTitle        string            `bson:"metaTitle" json:"metaTitle"`
	MetaDescription  string            `bson:"metaDescription" json:"metaDescription"`
	Keywords         []string          `bson:"keywords" json:"keywords"`
	Author           string            `bson:"author" json:"author"`
	Language         string            `bson:"language" json:"language"`
	IsIndexable      bool              `bson:"isIndexable" json:"isIndexable"`
	CustomProperties map[string]string `bson:"customProperties" json:"customProperties"`
}

func NewPageMetadata() PageMetadata {
	return PageMetadata{
		Keywords:         []string{},
		Language:         "en",
		IsIndexable:      true,
		CustomProperties: map[string]string{},
	}
}

func (m *PageMetadata) SetMetaData(title, description string, keywords []string) {
	m.MetaTitle = title
	m.MetaDescription = description
	if keywords != nil {
		m.Keywords = append([]string{}, keywords...)
	}
}

func (m *PageMetadata) AddCustomProperty(key, value string) {
	if m.CustomProperties == nil {
		m.CustomProperties = map[string]string{}
	}
	m.CustomProperties[key] = value
}

func (m *PageMetadata) RemoveCustomProperty(key string) {
	delete(m.CustomProperties, key)
}

func (m *PageMetadata) GetCustomProperty(key string) string {
	return m.CustomProperties[key]
}
