package googlebooks

// volumesResponse matches the Google Books volumes search response.
type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Volume is one raw record from the volumes endpoint.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo carries the book metadata of a volume.
type VolumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
	PageCount           int                  `json:"pageCount"`
	PrintType           string               `json:"printType"`
	Categories          []string             `json:"categories"`
	Language            string               `json:"language"`
	ImageLinks          ImageLinks           `json:"imageLinks"`
}

// IndustryIdentifier is one ISBN (or other) identifier of a volume.
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// ImageLinks holds the cover image URLs of a volume.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

// HasCover reports whether the volume carries any cover image. Volumes
// without one are excluded from the import.
func (v Volume) HasCover() bool {
	return v.VolumeInfo.ImageLinks.Thumbnail != "" || v.VolumeInfo.ImageLinks.SmallThumbnail != ""
}

// CoverURL returns the preferred cover image URL, favoring the larger
// thumbnail.
func (v Volume) CoverURL() string {
	if v.VolumeInfo.ImageLinks.Thumbnail != "" {
		return v.VolumeInfo.ImageLinks.Thumbnail
	}
	return v.VolumeInfo.ImageLinks.SmallThumbnail
}
